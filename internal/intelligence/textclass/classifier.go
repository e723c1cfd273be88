package textclass

import (
	"fmt"
	"sort"

	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
)

// Mode records which path produced a prediction.
type Mode string

const (
	ModeModel Mode = "model"
	ModeRules Mode = "rules"
)

// Prediction is the outcome of classifying one text.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Mode       Mode    `json:"mode"`
}

// Classifier is the two-tier threat classifier.  In the trained state it
// predicts with the TF-IDF naive Bayes model and degrades to the keyword
// decision list per call when inference fails; in the untrained state every
// call goes straight to the decision list.  Training happens at most once,
// before the classifier is shared; after that the classifier is read-only
// and safe for concurrent use.
type Classifier struct {
	vectorizer *Vectorizer
	model      *MultinomialNB
	trained    bool
	logger     logging.Logger
}

// NewClassifier returns an untrained classifier.
func NewClassifier(logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Classifier{
		vectorizer: NewVectorizer(),
		model:      NewMultinomialNB(),
		logger:     logger.Named("classifier"),
	}
}

// Train fits the vectorizer and the model on the labelled corpus.  Training
// is deterministic: the same samples in the same order always produce an
// identical model.  On error the classifier stays untrained and usable via
// the fallback rules.
func (c *Classifier) Train(samples []Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("textclass: no training samples")
	}

	docs := make([]string, len(samples))
	for i, s := range samples {
		docs[i] = s.Text
	}

	if err := c.vectorizer.Fit(docs); err != nil {
		return err
	}

	labelSet := make(map[string]struct{})
	for _, s := range samples {
		labelSet[s.Label] = struct{}{}
	}
	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	labelIndex := make(map[string]int, len(labels))
	for i, label := range labels {
		labelIndex[label] = i
	}

	x := make([][]float64, len(samples))
	y := make([]int, len(samples))
	for i, s := range samples {
		x[i] = c.vectorizer.Transform(s.Text)
		y[i] = labelIndex[s.Label]
	}

	if err := c.model.Fit(x, y, labels); err != nil {
		return err
	}

	c.trained = true
	c.logger.Info("classifier trained",
		logging.Int("samples", len(samples)),
		logging.Int("labels", len(labels)),
		logging.Int("vocabulary", c.vectorizer.VocabularySize()),
	)
	return nil
}

// Trained reports whether the model tier is available.
func (c *Classifier) Trained() bool { return c.trained }

// Classify returns a prediction for text.  It never fails: any model-tier
// error or panic is absorbed and the decision list answers instead.
func (c *Classifier) Classify(text string) Prediction {
	if c.trained {
		if pred, ok := c.predictWithModel(text); ok {
			return pred
		}
	}

	label, confidence := classifyByRules(text)
	return Prediction{Label: label, Confidence: confidence, Mode: ModeRules}
}

// predictWithModel runs the trained tier, converting panics into a fallback
// signal rather than letting them escape the request.
func (c *Classifier) predictWithModel(text string) (pred Prediction, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("model inference panicked, using fallback rules",
				logging.Any("panic", r))
			ok = false
		}
	}()

	label, confidence, err := c.model.Predict(c.vectorizer.Transform(text))
	if err != nil {
		c.logger.Warn("model inference failed, using fallback rules",
			logging.Err(err))
		return Prediction{}, false
	}

	return Prediction{Label: label, Confidence: confidence, Mode: ModeModel}, true
}
