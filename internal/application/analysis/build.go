package analysis

import (
	"github.com/casetrace/casetrace/internal/config"
	"github.com/casetrace/casetrace/internal/domain/evidence"
	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
	appprom "github.com/casetrace/casetrace/internal/infrastructure/monitoring/prometheus"
	"github.com/casetrace/casetrace/internal/intelligence/ner"
	"github.com/casetrace/casetrace/internal/intelligence/ocr"
	"github.com/casetrace/casetrace/internal/intelligence/textclass"
)

// BuildService assembles the full pipeline from configuration: recognizer
// capabilities are probed, the classifier is trained from the corpus, and
// every degraded capability is logged and reflected in the component gauges.
// Capability failures are never fatal; the service starts with whatever
// tiers are available.
func BuildService(cfg *config.Config, logger logging.Logger, metrics *appprom.AppMetrics) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	var tagger evidence.EntityTagger
	taggerActive := cfg.Entity.Enabled
	if taggerActive {
		tagger = ner.NewLexiconTagger(cfg.Entity.ExtraLocations)
	} else {
		tagger = ner.NewNoopTagger()
		logger.Info("entity tagging disabled by configuration")
	}

	extractor := evidence.NewExtractor(evidence.NewLibrary(), tagger, logger)

	classifier := textclass.NewClassifier(logger)
	if path := cfg.Classifier.TrainingDataPath; path != "" {
		if samples, err := textclass.LoadSamples(path); err != nil {
			logger.Warn("training corpus unavailable, classifier stays in fallback mode",
				logging.String("path", path),
				logging.Err(err),
			)
		} else if err := classifier.Train(samples); err != nil {
			logger.Warn("classifier training failed, staying in fallback mode",
				logging.Err(err),
			)
		}
	} else {
		logger.Info("no training corpus configured, classifier uses fallback rules")
	}

	engine := ocr.NewEngine(cfg.OCR, logger)
	router := NewContentRouter(engine, logger)

	if metrics != nil {
		metrics.ComponentUp.WithLabelValues("entity_tagger").Set(boolGauge(taggerActive))
		metrics.ComponentUp.WithLabelValues("classifier_model").Set(boolGauge(classifier.Trained()))
		metrics.ComponentUp.WithLabelValues("ocr").Set(boolGauge(engine.Available()))
	}

	return NewService(Deps{
		Extractor:    extractor,
		Classifier:   classifier,
		Router:       router,
		TaggerActive: taggerActive,
		Metrics:      metrics,
		Logger:       logger,
	})
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
