// Package evidence implements the text-forensics evidence model: the pattern
// library of independent recognizers, the named-entity contract, and the
// extractor that assembles per-text evidence bundles.
package evidence

// EntityKind identifies a named-entity category.  The pipeline recognizes
// exactly three kinds; anything else a tagger produces is discarded.
type EntityKind string

const (
	EntityPerson       EntityKind = "person"
	EntityOrganization EntityKind = "organization"
	EntityLocation     EntityKind = "location"
)

// EntityKinds lists the supported kinds in canonical order.
func EntityKinds() []EntityKind {
	return []EntityKind{EntityPerson, EntityOrganization, EntityLocation}
}

// Bundle is the structured evidence extracted from a single text.  Every
// field is always present: slices are empty rather than nil and the entity
// map always carries all three kinds, so callers never branch on missing
// keys.  A Bundle is created fresh per request and never mutated after the
// extractor returns it.
type Bundle struct {
	Emails   []string                `json:"emails"`
	Phones   []string                `json:"phones"`
	IPs      []string                `json:"ips"`
	URLs     []string                `json:"urls"`
	Money    []string                `json:"money"`
	Dates    []string                `json:"dates"`
	Entities map[EntityKind][]string `json:"entities"`
}

// NewBundle returns a Bundle with every field initialised empty.
func NewBundle() *Bundle {
	return &Bundle{
		Emails:   []string{},
		Phones:   []string{},
		IPs:      []string{},
		URLs:     []string{},
		Money:    []string{},
		Dates:    []string{},
		Entities: EmptyEntities(),
	}
}

// EmptyEntities returns the canonical empty entity mapping: all three kinds
// present, all sequences empty.
func EmptyEntities() map[EntityKind][]string {
	return map[EntityKind][]string{
		EntityPerson:       {},
		EntityOrganization: {},
		EntityLocation:     {},
	}
}

// EntityCount returns the total number of tagged entities across all kinds.
func (b *Bundle) EntityCount() int {
	n := 0
	for _, names := range b.Entities {
		n += len(names)
	}
	return n
}

// PriorityScore is the triage heuristic: the count of high-value evidence
// hits (emails + phones + monetary amounts).  It is derived, never stored.
func (b *Bundle) PriorityScore() int {
	return len(b.Emails) + len(b.Phones) + len(b.Money)
}
