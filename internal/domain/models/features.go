package models

// ActualData is the verification block: the target day's realized bar and its
// change versus the basis close. Present in historical mode only, never mixed
// into predictive fields. Downstream labelers read ChangePct.
type ActualData struct {
	Date      string  `json:"date"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"changePct"`
}

// FeatureVector is the flat named output of the assembler. Every field is a
// number, a 0/1 flag stored as a number, or null (nil) when history was too
// short; NaN and Inf never appear. Boolean-style fields are 0/1 so screeners
// and ML consumers treat all fields uniformly.
type FeatureVector struct {
	Symbol     string              `json:"symbol,omitempty"`
	Mode       Mode                `json:"mode"`
	BasisDate  string              `json:"basisDate"`
	TargetDate string              `json:"targetDate,omitempty"`
	Features   map[string]*float64 `json:"features"`
	Actual     *ActualData         `json:"actualData,omitempty"`
}

// Get returns a named feature value. ok is false when the field is absent or
// null.
func (v *FeatureVector) Get(name string) (float64, bool) {
	p, present := v.Features[name]
	if !present || p == nil {
		return 0, false
	}
	return *p, true
}
