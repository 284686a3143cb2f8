package match

import "fmt"

// Disposition is the outcome of one resolution attempt.
type Disposition string

const (
	AutoAccept   Disposition = "auto_accept"
	ManualReview Disposition = "manual_review"
	Reject       Disposition = "reject"
)

// Thresholds hold the run-level score cutoffs. AutoAccept must be at least
// Review. RejectBelow is parsed and carried for compatibility with older
// run configurations but has no effect on classification; the two
// thresholds above fully determine the disposition.
type Thresholds struct {
	AutoAccept  float64
	Review      float64
	RejectBelow float64
}

// Validate reports whether the threshold pair is usable.
func (t Thresholds) Validate() error {
	if t.AutoAccept < 0 || t.AutoAccept > 100 {
		return fmt.Errorf("auto-accept threshold %v outside [0, 100]", t.AutoAccept)
	}
	if t.Review < 0 || t.Review > 100 {
		return fmt.Errorf("review threshold %v outside [0, 100]", t.Review)
	}
	if t.AutoAccept < t.Review {
		return fmt.Errorf("auto-accept threshold %v below review threshold %v", t.AutoAccept, t.Review)
	}
	return nil
}

// Classify maps a similarity score to exactly one disposition.
func (t Thresholds) Classify(score float64) Disposition {
	switch {
	case score >= t.AutoAccept:
		return AutoAccept
	case score >= t.Review:
		return ManualReview
	default:
		return Reject
	}
}
