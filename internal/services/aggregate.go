package services

import (
	"glossa/internal/models"
)

// MergeHypotheses combines a ranker's hypothesis mapping with its single
// best-tag answer, guaranteeing the best tag appears with non-zero weight.
// A best tag the ranker left out of its top-K is inserted at full confidence:
// the definite answer is trusted as-is, no probability is inferred for it.
// Existing entries are never re-weighted or removed, so the result holds at
// most one entry more than the input.
func MergeHypotheses(bestTag *models.Tag, hypotheses map[models.Tag]float64) map[models.Tag]float64 {
	merged := make(map[models.Tag]float64, len(hypotheses)+1)
	for tag, p := range hypotheses {
		merged[tag] = p
	}
	if bestTag != nil {
		if _, ok := merged[*bestTag]; !ok {
			merged[*bestTag] = models.BestTagProbability
		}
	}
	return merged
}
