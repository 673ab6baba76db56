package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/tsawler/idscan/fuzzy"
	"github.com/tsawler/idscan/layout"
)

// centuryCutoff disambiguates two-digit years: values above the cutoff map
// to the 1900s, values at or below it to the 2000s. The cutoff is a fixed
// literal so results do not drift with the wall clock.
const centuryCutoff = 25

// Century expands a two-digit year.
func Century(yy int) int {
	if yy > centuryCutoff {
		return 1900 + yy
	}
	return 2000 + yy
}

// DateMatch is a parsed date candidate with its source record.
type DateMatch struct {
	Year, Month, Day int
	Record           layout.Record
}

// ISO returns the date as YYYY-MM-DD.
func (d DateMatch) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ValidDayMonth reports whether day/month fall in calendar range. Date
// extractors accept a candidate only after this check.
func ValidDayMonth(day, month int) bool {
	return day >= 1 && day <= 31 && month >= 1 && month <= 12
}

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecodePacked8 parses a digit-packed day-month-year date: the first eight
// digits of the token read as DDMMYYYY. Tokens carrying fewer than eight
// digits are rejected.
func DecodePacked8(token string) (DateMatch, bool) {
	digits := Digits(token)
	if len(digits) < 8 {
		return DateMatch{}, false
	}
	day, _ := strconv.Atoi(digits[0:2])
	month, _ := strconv.Atoi(digits[2:4])
	year, _ := strconv.Atoi(digits[4:8])
	if !ValidDayMonth(day, month) {
		return DateMatch{}, false
	}
	return DateMatch{Year: year, Month: month, Day: day}, true
}

// DecodePacked6 parses a digit-packed DDMMYY date, expanding the two-digit
// year with Century.
func DecodePacked6(token string) (DateMatch, bool) {
	digits := Digits(token)
	if len(digits) < 6 {
		return DateMatch{}, false
	}
	day, _ := strconv.Atoi(digits[0:2])
	month, _ := strconv.Atoi(digits[2:4])
	yy, _ := strconv.Atoi(digits[4:6])
	if !ValidDayMonth(day, month) {
		return DateMatch{}, false
	}
	return DateMatch{Year: Century(yy), Month: month, Day: day}, true
}

var monthNames = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// monthNumber resolves a three-letter month token, repairing a single OCR
// character error when exactly one month name is within edit distance one.
func monthNumber(token string) (int, bool) {
	t := strings.ToLower(token)
	for i, m := range monthNames {
		if t == m {
			return i + 1, true
		}
	}

	match := 0
	count := 0
	for i, m := range monthNames {
		if fuzzy.Distance(t, m) <= 1 {
			match = i + 1
			count++
		}
	}
	if count == 1 {
		return match, true
	}
	return 0, false
}

// ParseDayMonthNameYear parses dates written as "12 MAR 1994". The token is
// split into alphanumeric runs; it must contain exactly two numeric runs
// (day and four-digit year) and one three-letter month name, in any order.
func ParseDayMonthNameYear(token string) (DateMatch, bool) {
	runs := alnumRuns(token)

	var numbers []int
	month := 0
	for _, run := range runs {
		if isDigits(run) {
			n, err := strconv.Atoi(run)
			if err != nil {
				return DateMatch{}, false
			}
			numbers = append(numbers, n)
			continue
		}
		if len(run) == 3 {
			if m, ok := monthNumber(run); ok && month == 0 {
				month = m
			}
		}
	}

	if month == 0 || len(numbers) != 2 {
		return DateMatch{}, false
	}

	day, year := numbers[0], numbers[1]
	if day > year {
		day, year = year, day
	}
	if day < 1 || day > 31 {
		return DateMatch{}, false
	}
	if year < 1900 || year > 2100 {
		return DateMatch{}, false
	}
	return DateMatch{Year: year, Month: month, Day: day}, true
}

// FormatDayMonthNameYear renders a date as DD-Mmm-YYYY, the display form
// used by layouts whose cards print month names.
func FormatDayMonthNameYear(d DateMatch) string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	m := monthNames[d.Month-1]
	m = strings.ToUpper(m[:1]) + m[1:]
	return fmt.Sprintf("%02d-%s-%04d", d.Day, m, d.Year)
}

// alnumRuns splits a token into maximal runs of letters or digits, dropping
// everything else.
func alnumRuns(s string) []string {
	var runs []string
	var current []rune
	var currentDigit bool

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, string(current))
			current = nil
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			if !currentDigit {
				flush()
			}
			currentDigit = true
			current = append(current, r)
		case unicode.IsLetter(r):
			if currentDigit {
				flush()
			}
			currentDigit = false
			current = append(current, r)
		default:
			flush()
		}
	}
	flush()
	return runs
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// datePattern matches numeric dates with optional separators, such as
// 01-05-1992, 01/05/1992 or 01051992.
var datePattern = regexp.MustCompile(`\d{1,2}[-./:, ]?\d{1,2}[-./:, ]?(?:19|20)\d{2}`)

// ScanNumericDates collects every record whose text contains a numeric date,
// at most one candidate per record.
func ScanNumericDates(records []layout.Record) []DateMatch {
	var matches []DateMatch
	for _, r := range records {
		token := datePattern.FindString(r.Text())
		if token == "" {
			continue
		}
		d, ok := DecodePacked8(token)
		if !ok {
			continue
		}
		d.Record = r
		matches = append(matches, d)
	}
	return matches
}

// ScanDates collects date candidates using a caller-supplied parser, at most
// one candidate per record.
func ScanDates(records []layout.Record, parse func(string) (DateMatch, bool)) []DateMatch {
	var matches []DateMatch
	for _, r := range records {
		if d, ok := parse(r.Text()); ok {
			d.Record = r
			matches = append(matches, d)
		}
	}
	return matches
}

// ThreeDates disambiguates a birth/issue/expiry triple: the earliest year is
// the birth date, the latest the expiry, the remaining one the issue date.
// Exactly three candidates are required; any other count is an extraction
// failure, not a guess.
func ThreeDates(matches []DateMatch) (birth, issue, expiry DateMatch, ok bool) {
	if len(matches) != 3 {
		return DateMatch{}, DateMatch{}, DateMatch{}, false
	}

	sorted := make([]DateMatch, 3)
	copy(sorted, matches)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if before(sorted[j], sorted[i]) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	return sorted[0], sorted[1], sorted[2], true
}

func before(a, b DateMatch) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}
