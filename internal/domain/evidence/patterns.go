package evidence

import "regexp"

// Class identifies one of the six pattern-based evidence categories.
type Class string

const (
	ClassEmail Class = "email"
	ClassPhone Class = "phone"
	ClassIP    Class = "ip"
	ClassURL   Class = "url"
	ClassMoney Class = "money"
	ClassDate  Class = "date"
)

// Recognizer scans free text for one evidence category.  Implementations
// must be pure and stateless: same input, same matches, safe for concurrent
// use.  Matches are returned non-overlapping, in order of appearance, with
// duplicates preserved.
type Recognizer interface {
	Class() Class
	Scan(text string) []string
}

// The recognizers operate on raw text with no normalization and deliberately
// accept syntactically invalid values (out-of-range IP octets, ambiguous
// dates).  Tightening them would change which matches downstream scoring
// counts.
var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s-]{7,}\d`)
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	urlPattern   = regexp.MustCompile(`https?://[\w./%?=&-]+`)
	moneyPattern = regexp.MustCompile(`\$\s?\d+[\d,]*(?:\.\d+)?|\d+[\d,]*\s?(?:USD|INR|Rs\.?|₹)`)
	datePattern  = regexp.MustCompile(`\b(?:\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|(?i:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*)\s+\d{1,2},?\s+\d{4})`)
)

// regexRecognizer is the standard Recognizer implementation: a compiled
// pattern scanned left to right.
type regexRecognizer struct {
	class Class
	re    *regexp.Regexp
}

func (r *regexRecognizer) Class() Class { return r.class }

func (r *regexRecognizer) Scan(text string) []string {
	matches := r.re.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// NewEmailRecognizer matches tokens containing '@' bounded by word-safe
// characters (alnum, dot, hyphen, underscore) on each side.
func NewEmailRecognizer() Recognizer {
	return &regexRecognizer{class: ClassEmail, re: emailPattern}
}

// NewPhoneRecognizer matches digit sequences of total length >= 9 allowing
// interior hyphens and spaces, with an optional leading '+'.
func NewPhoneRecognizer() Recognizer {
	return &regexRecognizer{class: ClassPhone, re: phonePattern}
}

// NewIPRecognizer matches four dot-separated groups of 1-3 digits.  No range
// check is applied: "999.999.999.999" matches.
func NewIPRecognizer() Recognizer {
	return &regexRecognizer{class: ClassIP, re: ipPattern}
}

// NewURLRecognizer matches http:// or https:// followed by a run of URL-safe
// characters.
func NewURLRecognizer() Recognizer {
	return &regexRecognizer{class: ClassURL, re: urlPattern}
}

// NewMoneyRecognizer matches $-prefixed numbers (optional thousands
// separators and decimals) and bare numbers followed by a currency token
// (USD, INR, Rs, Rs., ₹).
func NewMoneyRecognizer() Recognizer {
	return &regexRecognizer{class: ClassMoney, re: moneyPattern}
}

// NewDateRecognizer matches numeric D-M-YYYY / D/M/YYYY shaped tokens and
// "Month D, YYYY" shaped tokens; month names may be abbreviated or full and
// are matched case-insensitively.
func NewDateRecognizer() Recognizer {
	return &regexRecognizer{class: ClassDate, re: datePattern}
}

// Library is the fixed set of recognizers, one per evidence class, in
// canonical order.  Recognizers are independent: none depends on another's
// output, and each can be replaced in isolation.
type Library struct {
	recognizers []Recognizer
}

// NewLibrary builds the default six-recognizer library.
func NewLibrary() *Library {
	return &Library{
		recognizers: []Recognizer{
			NewEmailRecognizer(),
			NewPhoneRecognizer(),
			NewIPRecognizer(),
			NewURLRecognizer(),
			NewMoneyRecognizer(),
			NewDateRecognizer(),
		},
	}
}

// Recognizers returns the library's recognizers in canonical order.
func (l *Library) Recognizers() []Recognizer {
	return l.recognizers
}

// Scan runs every recognizer over text and returns the matches keyed by class.
func (l *Library) Scan(text string) map[Class][]string {
	out := make(map[Class][]string, len(l.recognizers))
	for _, r := range l.recognizers {
		out[r.Class()] = r.Scan(text)
	}
	return out
}
