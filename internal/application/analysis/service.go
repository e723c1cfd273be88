package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casetrace/casetrace/internal/domain/evidence"
	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
	appprom "github.com/casetrace/casetrace/internal/infrastructure/monitoring/prometheus"
	"github.com/casetrace/casetrace/internal/intelligence/textclass"
	apperrors "github.com/casetrace/casetrace/pkg/errors"
)

// Input sources for metrics and logs.
const (
	SourceText = "text"
	SourceFile = "file"
)

// Result is the full outcome of analyzing one text.
type Result struct {
	RequestID      string               `json:"request_id"`
	Evidence       *evidence.Bundle     `json:"evidence"`
	Classification textclass.Prediction `json:"classification"`
	PriorityScore  int                  `json:"priority_score"`
	Summary        string               `json:"summary"`
}

// Health describes the pipeline's capability state.  The service is healthy
// whenever it is running; the booleans tell operators which optional tiers
// are active.
type Health struct {
	Status           string `json:"status"`
	ModelLoaded      bool   `json:"model_loaded"`
	ClassifierLoaded bool   `json:"classifier_loaded"`
	OCRAvailable     bool   `json:"ocr_available"`
}

// Deps collects the service's collaborators.  Metrics and Logger may be nil.
type Deps struct {
	Extractor    *evidence.Extractor
	Classifier   *textclass.Classifier
	Router       *ContentRouter
	TaggerActive bool
	Metrics      *appprom.AppMetrics
	Logger       logging.Logger
}

// Service is the analysis pipeline facade: validate, route, extract,
// classify, score, summarize.  It is stateless per request and safe for
// concurrent use once constructed.
type Service struct {
	extractor    *evidence.Extractor
	classifier   *textclass.Classifier
	router       *ContentRouter
	taggerActive bool
	metrics      *appprom.AppMetrics
	logger       logging.Logger
}

// NewService constructs the pipeline from its dependencies.
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		extractor:    deps.Extractor,
		classifier:   deps.Classifier,
		router:       deps.Router,
		taggerActive: deps.TaggerActive,
		metrics:      deps.Metrics,
		logger:       logger.Named("analysis"),
	}
}

// AnalyzeText runs the pipeline over raw text.  Blank input, whitespace
// included, is rejected before any extraction work happens.
func (s *Service) AnalyzeText(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		s.countRequest(SourceText, "rejected")
		return nil, apperrors.EmptyInput()
	}
	return s.analyze(ctx, SourceText, text), nil
}

// AnalyzeFile routes the payload to a text source and runs the pipeline on
// the recovered text.  Rejections from routing surface unchanged.
func (s *Service) AnalyzeFile(ctx context.Context, filename string, data []byte) (*Result, error) {
	text, reason, err := s.router.ExtractText(ctx, filename, data)
	if err != nil {
		s.countRequest(SourceFile, "rejected")
		if s.metrics != nil && reason != "" {
			s.metrics.RoutingRejectsTotal.WithLabelValues(reason).Inc()
		}
		return nil, err
	}
	return s.analyze(ctx, SourceFile, text), nil
}

// Health reports the capability state of the pipeline tiers.
func (s *Service) Health() Health {
	return Health{
		Status:           "ok",
		ModelLoaded:      s.taggerActive,
		ClassifierLoaded: s.classifier.Trained(),
		OCRAvailable:     s.router.OCRAvailable(),
	}
}

// analyze is the shared pipeline body.  By the time it runs, text is known
// to be non-blank, so it cannot fail: classification always produces a label
// and extraction always produces a bundle.
func (s *Service) analyze(_ context.Context, source, text string) *Result {
	start := time.Now()
	requestID := uuid.NewString()

	bundle := s.extractor.Extract(text)
	prediction := s.classifier.Classify(text)
	priority := bundle.PriorityScore()

	result := &Result{
		RequestID:      requestID,
		Evidence:       bundle,
		Classification: prediction,
		PriorityScore:  priority,
		Summary: fmt.Sprintf("Found %d named entities and %d high-value hits",
			bundle.EntityCount(), priority),
	}

	s.observe(source, bundle, prediction, priority, time.Since(start))

	s.logger.Info("analysis complete",
		logging.String("request_id", requestID),
		logging.String("source", source),
		logging.String("label", prediction.Label),
		logging.String("mode", string(prediction.Mode)),
		logging.Int("priority", priority),
		logging.Duration("elapsed", time.Since(start)),
	)

	return result
}

func (s *Service) countRequest(source, status string) {
	if s.metrics != nil {
		s.metrics.AnalysisRequestsTotal.WithLabelValues(source, status).Inc()
	}
}

func (s *Service) observe(source string, bundle *evidence.Bundle, pred textclass.Prediction, priority int, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}

	s.metrics.AnalysisRequestsTotal.WithLabelValues(source, "ok").Inc()
	s.metrics.AnalysisDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	s.metrics.ClassificationsTotal.WithLabelValues(pred.Label, string(pred.Mode)).Inc()
	s.metrics.PriorityScore.Observe(float64(priority))

	hits := map[string]int{
		string(evidence.ClassEmail): len(bundle.Emails),
		string(evidence.ClassPhone): len(bundle.Phones),
		string(evidence.ClassIP):    len(bundle.IPs),
		string(evidence.ClassURL):   len(bundle.URLs),
		string(evidence.ClassMoney): len(bundle.Money),
		string(evidence.ClassDate):  len(bundle.Dates),
	}
	for class, n := range hits {
		if n > 0 {
			s.metrics.EvidenceHitsTotal.WithLabelValues(class).Add(float64(n))
		}
	}
}
