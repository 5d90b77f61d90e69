package models

// Outcome labels derived from the verification block.
const (
	LabelUp      = "up"
	LabelDown    = "down"
	LabelNeutral = "neutral"
)

// TrainingRow is one labeled example: the predictive fields as of the basis
// day plus the label computed from the target day's realized change.
type TrainingRow struct {
	Symbol     string              `json:"symbol"`
	BasisDate  string              `json:"basisDate"`
	TargetDate string              `json:"targetDate"`
	Label      string              `json:"label"`
	ChangePct  float64             `json:"changePct"`
	Features   map[string]*float64 `json:"features"`
}
