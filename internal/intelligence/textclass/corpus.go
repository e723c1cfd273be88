// Package textclass implements threat-category classification for case
// texts.  A TF-IDF multinomial naive Bayes model is trained once at startup
// from a labelled corpus; an ordered keyword decision list serves as the
// always-available fallback when the model is untrained or fails at
// inference time.
package textclass

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Canonical threat labels.  The model itself trains on whatever labels the
// corpus carries; these constants name the ones the fallback rules emit.
const (
	LabelFraud      = "Fraud"
	LabelHarassment = "Harassment"
	LabelMalware    = "Malware"
	LabelNormal     = "Normal"
)

// Sample is one labelled training document.
type Sample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// LoadSamples reads a JSON training corpus from path.  The file is a flat
// array of {"text": ..., "label": ...} objects.  Samples with a blank text
// or label are rejected rather than silently dropped: a corrupt corpus
// should fail startup, not degrade the model.
func LoadSamples(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("textclass: failed to read training corpus %q: %w", path, err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("textclass: failed to parse training corpus %q: %w", path, err)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("textclass: training corpus %q is empty", path)
	}

	for i, s := range samples {
		if strings.TrimSpace(s.Text) == "" {
			return nil, fmt.Errorf("textclass: sample %d in %q has empty text", i, path)
		}
		if strings.TrimSpace(s.Label) == "" {
			return nil, fmt.Errorf("textclass: sample %d in %q has empty label", i, path)
		}
	}

	return samples, nil
}
