// Package ner provides the capability-gated named-entity taggers.  The
// service runs with either the lexicon tagger or the null tagger installed,
// selected once at startup; call sites never check which one is present.
package ner

import (
	"strings"
	"unicode"

	"github.com/casetrace/casetrace/internal/domain/evidence"
)

// NoopTagger is the null capability: the same mapping shape as a real tagger
// with all three sequences empty.
type NoopTagger struct{}

// NewNoopTagger returns the null tagger.
func NewNoopTagger() *NoopTagger { return &NoopTagger{} }

// Tag implements evidence.EntityTagger.
func (*NoopTagger) Tag(_ string) map[evidence.EntityKind][]string {
	return evidence.EmptyEntities()
}

// honorifics mark the start of a person name run.
var honorifics = map[string]struct{}{
	"Mr": {}, "Mrs": {}, "Ms": {}, "Dr": {}, "Prof": {}, "Sir": {},
}

// orgSuffixes mark the end of an organization name run.
var orgSuffixes = map[string]struct{}{
	"Inc": {}, "Corp": {}, "Ltd": {}, "LLC": {}, "Co": {}, "Plc": {},
	"Bank": {}, "Group": {}, "Holdings": {}, "Labs": {}, "Systems": {},
	"Technologies": {}, "Industries": {}, "Partners": {}, "Associates": {},
}

// defaultLocations is the built-in location gazetteer.  Operators extend it
// via entity.extra_locations.
var defaultLocations = []string{
	"London", "Paris", "Berlin", "Madrid", "Rome", "Vienna", "Zurich",
	"Moscow", "Tokyo", "Beijing", "Shanghai", "Seoul", "Delhi", "Mumbai",
	"Bangalore", "Singapore", "Dubai", "Sydney", "Toronto", "Chicago",
	"Boston", "Seattle", "Austin", "Dallas", "Houston", "Miami",
	"New York", "Los Angeles", "San Francisco", "Hong Kong", "New Delhi",
	"India", "China", "Japan", "Germany", "France", "Spain", "Italy",
	"Russia", "Brazil", "Canada", "Australia", "Singapore", "Switzerland",
	"America", "England", "Europe", "Asia", "Africa",
}

// LexiconTagger is a deterministic heuristic tagger: capitalized token runs
// are classified by honorific prefix, organization suffix, and a location
// gazetteer.  It is read-only after construction and safe for concurrent use.
type LexiconTagger struct {
	locations map[string]struct{}
}

// NewLexiconTagger builds the tagger with the built-in gazetteer plus any
// extra locations from configuration.
func NewLexiconTagger(extraLocations []string) *LexiconTagger {
	locs := make(map[string]struct{}, len(defaultLocations)+len(extraLocations))
	for _, l := range defaultLocations {
		locs[l] = struct{}{}
	}
	for _, l := range extraLocations {
		l = strings.TrimSpace(l)
		if l != "" {
			locs[l] = struct{}{}
		}
	}
	return &LexiconTagger{locations: locs}
}

// Tag implements evidence.EntityTagger.  All three kinds are always present
// in the returned map.
func (t *LexiconTagger) Tag(text string) map[evidence.EntityKind][]string {
	out := evidence.EmptyEntities()

	for _, run := range capitalizedRuns(text) {
		kind, name := t.classify(run)
		if kind == "" {
			continue
		}
		out[kind] = append(out[kind], name)
	}

	return out
}

// classify assigns a capitalized run to an entity kind, or "" to drop it.
func (t *LexiconTagger) classify(run []string) (evidence.EntityKind, string) {
	joined := strings.Join(run, " ")

	// Gazetteer lookup first: multi-word place names like "New York" would
	// otherwise fall through to the person heuristic.
	if _, ok := t.locations[joined]; ok {
		return evidence.EntityLocation, joined
	}

	if _, ok := orgSuffixes[run[len(run)-1]]; ok && len(run) >= 2 {
		return evidence.EntityOrganization, joined
	}

	if _, ok := honorifics[strings.TrimSuffix(run[0], ".")]; ok && len(run) >= 2 {
		return evidence.EntityPerson, strings.Join(run[1:], " ")
	}

	// A bare multi-word capitalized run reads as a person name.  Single
	// capitalized tokens are dropped: sentence starts are too noisy.
	if len(run) >= 2 {
		return evidence.EntityPerson, joined
	}

	return "", ""
}

// capitalizedRuns splits text into runs of consecutive capitalized tokens.
func capitalizedRuns(text string) [][]string {
	var runs [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}

	for _, tok := range strings.Fields(text) {
		word := strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && r != '.'
		})
		if isCapitalized(word) {
			current = append(current, word)
			// Sentence punctuation ends the run even mid-name.
			if strings.HasSuffix(tok, ".") || strings.HasSuffix(tok, ",") ||
				strings.HasSuffix(tok, "!") || strings.HasSuffix(tok, "?") {
				if _, honorific := honorifics[strings.TrimSuffix(word, ".")]; !honorific {
					flush()
				}
			}
			continue
		}
		flush()
	}
	flush()

	return runs
}

func isCapitalized(word string) bool {
	runes := []rune(strings.TrimSuffix(word, "."))
	if len(runes) == 0 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Ensure interface compliance at compile time.
var (
	_ evidence.EntityTagger = (*NoopTagger)(nil)
	_ evidence.EntityTagger = (*LexiconTagger)(nil)
)
