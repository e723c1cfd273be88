package textclass

import (
	"fmt"
	"math"
)

// laplaceAlpha is the additive smoothing constant for feature likelihoods.
const laplaceAlpha = 1.0

// MultinomialNB is a multinomial naive Bayes model over non-negative feature
// vectors.  It is fitted once and read-only afterwards, so a shared instance
// is safe for concurrent prediction.
type MultinomialNB struct {
	labels         []string
	classLogPrior  []float64
	featureLogProb [][]float64
}

// NewMultinomialNB returns an unfitted model.
func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{}
}

// Fit estimates class priors and smoothed feature likelihoods from the
// training matrix.  labels gives the class name for each distinct target
// index in y; rows of x and entries of y correspond pairwise.
func (nb *MultinomialNB) Fit(x [][]float64, y []int, labels []string) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("textclass: invalid training matrix: %d rows, %d targets", len(x), len(y))
	}
	if len(labels) < 1 {
		return fmt.Errorf("textclass: no class labels")
	}

	numClasses := len(labels)
	numFeatures := len(x[0])

	classCount := make([]float64, numClasses)
	featureSum := make([][]float64, numClasses)
	for c := range featureSum {
		featureSum[c] = make([]float64, numFeatures)
	}

	for i, row := range x {
		c := y[i]
		if c < 0 || c >= numClasses {
			return fmt.Errorf("textclass: target %d out of range for %d classes", c, numClasses)
		}
		classCount[c]++
		for j, val := range row {
			featureSum[c][j] += val
		}
	}

	nb.labels = labels
	nb.classLogPrior = make([]float64, numClasses)
	nb.featureLogProb = make([][]float64, numClasses)

	total := float64(len(x))
	for c := 0; c < numClasses; c++ {
		if classCount[c] == 0 {
			return fmt.Errorf("textclass: class %q has no training samples", labels[c])
		}
		nb.classLogPrior[c] = math.Log(classCount[c] / total)

		var classTotal float64
		for _, val := range featureSum[c] {
			classTotal += val
		}

		nb.featureLogProb[c] = make([]float64, numFeatures)
		denom := classTotal + laplaceAlpha*float64(numFeatures)
		for j, val := range featureSum[c] {
			nb.featureLogProb[c][j] = math.Log((val + laplaceAlpha) / denom)
		}
	}

	return nil
}

// Labels returns the class names in target-index order.
func (nb *MultinomialNB) Labels() []string { return nb.labels }

// Predict returns the most probable class for vec together with its
// posterior probability.  The posterior is computed by normalizing the joint
// log-likelihoods in a numerically stable way.
func (nb *MultinomialNB) Predict(vec []float64) (label string, confidence float64, err error) {
	if nb.labels == nil {
		return "", 0, fmt.Errorf("textclass: model is not fitted")
	}

	joint := make([]float64, len(nb.labels))
	for c := range nb.labels {
		score := nb.classLogPrior[c]
		flp := nb.featureLogProb[c]
		if len(vec) != len(flp) {
			return "", 0, fmt.Errorf("textclass: feature vector has %d dims, model expects %d", len(vec), len(flp))
		}
		for j, val := range vec {
			if val != 0 {
				score += val * flp[j]
			}
		}
		joint[c] = score
	}

	best := 0
	for c := 1; c < len(joint); c++ {
		if joint[c] > joint[best] {
			best = c
		}
	}

	// Softmax shifted by the max to avoid underflow.
	var sum float64
	for _, score := range joint {
		sum += math.Exp(score - joint[best])
	}

	return nb.labels[best], 1 / sum, nil
}
