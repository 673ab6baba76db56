// Package zambia extracts identity fields from Zambian national registration
// cards. The demographic fields live on the registration side, read top to
// bottom from a header anchor; the NRC number is read from the other side by
// pattern alone. There is no classification step for this layout.
package zambia
