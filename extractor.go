package idscan

import (
	"errors"
	"fmt"

	"github.com/tsawler/idscan/classify"
	"github.com/tsawler/idscan/congo"
	"github.com/tsawler/idscan/extract"
	"github.com/tsawler/idscan/kenya"
	"github.com/tsawler/idscan/layout"
	"github.com/tsawler/idscan/madagascar"
	"github.com/tsawler/idscan/malawi"
	"github.com/tsawler/idscan/model"
	"github.com/tsawler/idscan/zambia"
	"go.uber.org/zap"
)

// Country selects the document layout family to extract against.
type Country int

const (
	countryUnset Country = iota
	Kenya
	Malawi
	Zambia
	Madagascar
	Congo
)

// String returns the country name.
func (c Country) String() string {
	switch c {
	case Kenya:
		return "Kenya"
	case Malawi:
		return "Malawi"
	case Zambia:
		return "Zambia"
	case Madagascar:
		return "Madagascar"
	case Congo:
		return "Congo"
	}
	return "Unset"
}

var (
	// ErrNoCountry is returned by terminal operations when no country
	// was selected on the chain.
	ErrNoCountry = errors.New("idscan: no country selected")

	// ErrNoClassifier is returned by DocumentType for countries whose
	// layout family has no classification step.
	ErrNoClassifier = errors.New("idscan: country has no document classifier")
)

// countryModule is one country's entry points. Dispatch is a fixed table;
// every supported country is wired here at compile time.
type countryModule struct {
	schema       func() []string
	extract      func(*extract.Context) []model.Field
	documentType func([]layout.Record) classify.DocType
}

func countryModules(c Country) (countryModule, bool) {
	switch c {
	case Kenya:
		return countryModule{kenya.Schema, kenya.ExtractFields, kenya.Classify}, true
	case Malawi:
		return countryModule{malawi.Schema, malawi.ExtractFields, malawi.Classify}, true
	case Zambia:
		return countryModule{zambia.Schema, zambia.ExtractFields, nil}, true
	case Madagascar:
		return countryModule{madagascar.Schema, madagascar.ExtractFields, nil}, true
	case Congo:
		return countryModule{congo.Schema, congo.ExtractFields, congo.Classify}, true
	}
	return countryModule{}, false
}

// Extractor provides a fluent interface for configuring and running one
// extraction. Each configuration method returns a new Extractor instance,
// making a configured chain safe to reuse and fork.
type Extractor struct {
	front []model.TextDetection

	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		front:   e.front,
		options: e.options.clone(),
		err:     e.err,
	}
}

// Back supplies the detections of the document's other side. Some layout
// families read demographics from one side and the document number from the
// other; countries that never look at the back ignore it.
func (e *Extractor) Back(back []model.TextDetection) *Extractor {
	newExt := e.clone()
	newExt.options.back = back
	return newExt
}

// ImageSize supplies the pixel dimensions of the front image. Strategies
// using relative positions ("left half of the image") need them; without
// them those strategies withhold their width-dependent matches rather than
// accept candidates they cannot position.
func (e *Extractor) ImageSize(width, height float64) *Extractor {
	newExt := e.clone()
	if width < 0 || height < 0 {
		newExt.err = fmt.Errorf("idscan: negative image size %gx%g", width, height)
		return newExt
	}
	newExt.options.imageWidth = width
	newExt.options.imageHeight = height
	return newExt
}

// WithLogger attaches a logger for per-field degradation reporting. Without
// one, extraction is silent.
func (e *Extractor) WithLogger(logger *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// Country selects the document layout family.
func (e *Extractor) Country(c Country) *Extractor {
	newExt := e.clone()
	if _, ok := countryModules(c); !ok {
		newExt.err = fmt.Errorf("idscan: unsupported country %d", int(c))
		return newExt
	}
	newExt.options.country = c
	return newExt
}

func (e *Extractor) module() (countryModule, error) {
	if e.err != nil {
		return countryModule{}, e.err
	}
	if e.options.country == countryUnset {
		return countryModule{}, ErrNoCountry
	}
	m, ok := countryModules(e.options.country)
	if !ok {
		return countryModule{}, fmt.Errorf("idscan: unsupported country %d", int(e.options.country))
	}
	return m, nil
}

func (e *Extractor) newContext() *extract.Context {
	ctx := extract.NewContext(e.front, e.options.back, e.options.logger)
	ctx.ImageWidth = e.options.imageWidth
	ctx.ImageHeight = e.options.imageHeight
	return ctx
}

// Fields runs the extraction and returns the country's fixed field schema,
// every field present by name and null where nothing could be read.
func (e *Extractor) Fields() ([]model.Field, error) {
	m, err := e.module()
	if err != nil {
		return nil, err
	}
	return m.extract(e.newContext()), nil
}

// Schema returns the field names Fields will produce for the selected
// country, in order.
func (e *Extractor) Schema() ([]string, error) {
	m, err := e.module()
	if err != nil {
		return nil, err
	}
	return m.schema(), nil
}

// DocumentType classifies the front detections without extracting fields.
// Countries whose layout family has a single document type return
// ErrNoClassifier.
func (e *Extractor) DocumentType() (classify.DocType, error) {
	m, err := e.module()
	if err != nil {
		return classify.Unresolved, err
	}
	if m.documentType == nil {
		return classify.Unresolved, ErrNoClassifier
	}
	return m.documentType(layout.NewRecords(e.front)), nil
}
