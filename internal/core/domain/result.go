package domain

// DocumentCategory is one of the required document classes
type DocumentCategory string

// Required document categories
const (
	CategoryDrivingLicense DocumentCategory = "DRIVING_LICENSE"
	CategoryPAN            DocumentCategory = "PAN"
	CategoryNationalID     DocumentCategory = "NATIONAL_ID"
)

// Categories returns the required categories in their fixed evaluation order
func Categories() []DocumentCategory {
	return []DocumentCategory{CategoryDrivingLicense, CategoryPAN, CategoryNationalID}
}

// ReasonMissingData is the verdict reason recorded when either the provider
// reference number or the stored document image is absent for a category.
const ReasonMissingData = "missing data or image"

// DocumentVerificationResult is the verdict for one category
type DocumentVerificationResult struct {
	Category DocumentCategory `json:"category"`
	Passed   bool             `json:"passed"`
	Reason   string           `json:"reason,omitempty"`
}

// AggregateOutcome combines the three per category verdicts into the session
// level decision
type AggregateOutcome struct {
	AllPassed   bool                         `json:"allPassed"`
	PerCategory map[DocumentCategory]bool    `json:"perCategory"`
	Results     []DocumentVerificationResult `json:"results"`
}

// Aggregate computes the outcome from per category verdicts. The decision is
// a logical AND over all verdicts; order of results does not matter.
func Aggregate(results []DocumentVerificationResult) AggregateOutcome {
	out := AggregateOutcome{
		AllPassed:   true,
		PerCategory: make(map[DocumentCategory]bool, len(results)),
		Results:     results,
	}
	for _, r := range results {
		out.PerCategory[r.Category] = r.Passed
		if !r.Passed {
			out.AllPassed = false
		}
	}
	return out
}

// FailureReasons returns the human readable reasons of every failing verdict
func (o AggregateOutcome) FailureReasons() []string {
	var reasons []string
	for _, r := range o.Results {
		if !r.Passed {
			reasons = append(reasons, string(r.Category)+": "+r.Reason)
		}
	}
	return reasons
}

// Status maps the outcome to the durable user verification status
func (o AggregateOutcome) Status() VerificationStatus {
	if o.AllPassed {
		return StatusVerified
	}
	return StatusPartial
}
