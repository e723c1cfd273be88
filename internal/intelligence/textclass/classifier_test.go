package textclass

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingSamples() []Sample {
	return []Sample{
		{Text: "verify your bank account to release the payment", Label: LabelFraud},
		{Text: "unauthorized transfer detected confirm your password", Label: LabelFraud},
		{Text: "wire the payment to the new account immediately", Label: LabelFraud},
		{Text: "i will hurt you if you come back here", Label: LabelHarassment},
		{Text: "this is a threat i will attack you", Label: LabelHarassment},
		{Text: "watch your back i will harm you", Label: LabelHarassment},
		{Text: "the trojan beacons to the c2 server", Label: LabelMalware},
		{Text: "ransomware encrypted the files and dropped a backdoor", Label: LabelMalware},
		{Text: "the exploit installs malware on the host", Label: LabelMalware},
		{Text: "the meeting is scheduled for thursday morning", Label: LabelNormal},
		{Text: "thanks for lunch let us catch up next week", Label: LabelNormal},
		{Text: "the report is attached let me know about changes", Label: LabelNormal},
	}
}

func TestUntrainedClassifierUsesRules(t *testing.T) {
	c := NewClassifier(nil)

	require.False(t, c.Trained())

	pred := c.Classify("please verify your bank account")
	assert.Equal(t, LabelFraud, pred.Label)
	assert.Equal(t, 0.6, pred.Confidence)
	assert.Equal(t, ModeRules, pred.Mode)
}

func TestRuleOrderIsFraudFirst(t *testing.T) {
	c := NewClassifier(nil)

	// Mentions both fraud and malware vocabulary; the first rule wins.
	pred := c.Classify("the malware asked for a bank transfer")
	assert.Equal(t, LabelFraud, pred.Label)
	assert.Equal(t, 0.6, pred.Confidence)
}

func TestRuleConfidencesPerCategory(t *testing.T) {
	c := NewClassifier(nil)

	cases := []struct {
		text       string
		label      string
		confidence float64
	}{
		{"they will verify the account", LabelFraud, 0.6},
		{"i will hurt you", LabelHarassment, 0.7},
		{"a trojan was found", LabelMalware, 0.8},
		{"lovely weather today", LabelNormal, 0.6},
	}
	for _, tc := range cases {
		pred := c.Classify(tc.text)
		assert.Equal(t, tc.label, pred.Label, tc.text)
		assert.Equal(t, tc.confidence, pred.Confidence, tc.text)
		assert.Equal(t, ModeRules, pred.Mode, tc.text)
	}
}

func TestRuleMatchingIsCaseInsensitive(t *testing.T) {
	c := NewClassifier(nil)

	pred := c.Classify("RANSOM note left on the desk")
	assert.Equal(t, LabelMalware, pred.Label)
}

func TestTrainedClassifierUsesModel(t *testing.T) {
	c := NewClassifier(nil)
	require.NoError(t, c.Train(trainingSamples()))
	require.True(t, c.Trained())

	pred := c.Classify("unauthorized transfer from your bank account detected")
	assert.Equal(t, LabelFraud, pred.Label)
	assert.Equal(t, ModeModel, pred.Mode)
	assert.Greater(t, pred.Confidence, 0.0)
	assert.LessOrEqual(t, pred.Confidence, 1.0)
}

func TestTrainingIsDeterministic(t *testing.T) {
	texts := []string{
		"verify the bank transfer now",
		"the trojan dropped a backdoor",
		"see you at the meeting",
	}

	a := NewClassifier(nil)
	b := NewClassifier(nil)
	require.NoError(t, a.Train(trainingSamples()))
	require.NoError(t, b.Train(trainingSamples()))

	for _, text := range texts {
		predA := a.Classify(text)
		predB := b.Classify(text)
		assert.Equal(t, predA.Label, predB.Label, text)
		assert.Equal(t, predA.Confidence, predB.Confidence, text)
	}
}

func TestTrainOnEmptyCorpusFails(t *testing.T) {
	c := NewClassifier(nil)

	assert.Error(t, c.Train(nil))
	assert.False(t, c.Trained())
}

func TestLoadSamples(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.json")
	payload := `[{"text": "verify the account", "label": "Fraud"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	samples, err := LoadSamples(path)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "Fraud", samples[0].Label)
}

func TestLoadSamplesRejectsBadCorpora(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.json")
	_, err := LoadSamples(missing)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0o644))
	_, err = LoadSamples(empty)
	assert.Error(t, err)

	blank := filepath.Join(dir, "blank.json")
	require.NoError(t, os.WriteFile(blank, []byte(`[{"text": " ", "label": "Fraud"}]`), 0o644))
	_, err = LoadSamples(blank)
	assert.Error(t, err)
}
