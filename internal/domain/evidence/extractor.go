package evidence

import (
	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
)

// EntityTagger is the capability contract for named-entity recognition.
// Implementations return a mapping restricted to exactly the three supported
// kinds; a null implementation returns the same shape with all sequences
// empty, so callers never special-case an absent tagger.
type EntityTagger interface {
	Tag(text string) map[EntityKind][]string
}

// Extractor runs the pattern library and the entity tagger over the same
// input, independently, and assembles the evidence bundle.  There is no
// cross-validation between evidence types: a date match is never checked
// against an email match for overlap.  Extraction is deterministic for a
// fixed tagger configuration.
type Extractor struct {
	library *Library
	tagger  EntityTagger
	logger  logging.Logger
}

// NewExtractor constructs an Extractor.  tagger may be nil, in which case
// entity sequences stay empty.
func NewExtractor(library *Library, tagger EntityTagger, logger logging.Logger) *Extractor {
	if library == nil {
		library = NewLibrary()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Extractor{
		library: library,
		tagger:  tagger,
		logger:  logger.Named("extractor"),
	}
}

// Extract scans text with all six recognizers plus the entity tagger and
// returns a fully-populated Bundle.  Every field is present even when empty.
func (e *Extractor) Extract(text string) *Bundle {
	bundle := NewBundle()

	hits := e.library.Scan(text)
	bundle.Emails = hits[ClassEmail]
	bundle.Phones = hits[ClassPhone]
	bundle.IPs = hits[ClassIP]
	bundle.URLs = hits[ClassURL]
	bundle.Money = hits[ClassMoney]
	bundle.Dates = hits[ClassDate]

	if e.tagger != nil {
		tagged := e.tagger.Tag(text)
		// Only the three supported kinds survive; a tagger that emits other
		// kinds has them dropped here.
		for _, kind := range EntityKinds() {
			if names, ok := tagged[kind]; ok && names != nil {
				bundle.Entities[kind] = names
			}
		}
	}

	e.logger.Debug("evidence extracted",
		logging.Int("emails", len(bundle.Emails)),
		logging.Int("phones", len(bundle.Phones)),
		logging.Int("ips", len(bundle.IPs)),
		logging.Int("urls", len(bundle.URLs)),
		logging.Int("money", len(bundle.Money)),
		logging.Int("dates", len(bundle.Dates)),
		logging.Int("entities", bundle.EntityCount()),
	)

	return bundle
}
