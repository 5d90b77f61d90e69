package models

// Rule is one screening predicate over a FeatureVector: either feature-vs-
// constant (Value set) or feature-vs-feature (Compare set).
type Rule struct {
	Field   string   `json:"field" validate:"required"`
	Op      string   `json:"op" validate:"required,oneof=gt gte lt lte eq"`
	Value   *float64 `json:"value,omitempty"`
	Compare string   `json:"compare,omitempty"`
}

// RuleResult reports one evaluated rule. A rule whose operand is null never
// matches; Missing marks that case so callers can distinguish it from a plain
// false.
type RuleResult struct {
	Rule    Rule `json:"rule"`
	Matched bool `json:"matched"`
	Missing bool `json:"missing"`
}

// ScreenReport is the screener verdict for one feature vector.
type ScreenReport struct {
	Symbol     string       `json:"symbol,omitempty"`
	BasisDate  string       `json:"basisDate"`
	AllMatched bool         `json:"allMatched"`
	Results    []RuleResult `json:"results"`
}
