package textclass

import "strings"

// fallbackRule is one entry of the keyword decision list.  A rule fires when
// any of its keywords occurs as a substring of the lowercased input.
type fallbackRule struct {
	label      string
	confidence float64
	keywords   []string
}

// fallbackRules is evaluated strictly in order and the first match wins, so
// a text mentioning both a bank transfer and malware is classified as Fraud.
// The order and confidences are part of the service contract; reordering
// changes results for mixed-signal texts.
var fallbackRules = []fallbackRule{
	{
		label:      LabelFraud,
		confidence: 0.6,
		keywords: []string{
			"transfer", "account", "withdraw", "payment",
			"bank", "credit card", "password", "verify",
		},
	},
	{
		label:      LabelHarassment,
		confidence: 0.7,
		keywords:   []string{"kill", "hurt", "threat", "attack", "harm"},
	},
	{
		label:      LabelMalware,
		confidence: 0.8,
		keywords: []string{
			"malware", "c2", "exploit", "ransom",
			"virus", "trojan", "backdoor",
		},
	},
}

// classifyByRules runs the decision list over text.  It never fails and
// never returns an empty label: texts matching no rule are Normal with
// confidence 0.6.
func classifyByRules(text string) (label string, confidence float64) {
	lowered := strings.ToLower(text)

	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.label, rule.confidence
			}
		}
	}

	return LabelNormal, 0.6
}
