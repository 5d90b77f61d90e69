package models

// Requests for the feature HTTP endpoints. Defined in domain for consistency
// and reuse. Bars always arrive in the request body: the engine fetches
// nothing itself.

type HistoricalFeaturesRequest struct {
	Symbol     string      `json:"symbol" validate:"required"`
	TargetDate string      `json:"targetDate" validate:"required,datetime=2006-01-02"`
	Bars       PriceSeries `json:"bars" validate:"required,min=4"`
}

type FutureFeaturesRequest struct {
	Symbol string      `json:"symbol" validate:"required"`
	Bars   PriceSeries `json:"bars" validate:"required,min=4"`
}

type IntradayFeaturesRequest struct {
	Symbol string      `json:"symbol" validate:"required"`
	Bars   PriceSeries `json:"bars" validate:"required,min=4"`
}

type ScreenRequest struct {
	Symbol string      `json:"symbol" validate:"required"`
	Bars   PriceSeries `json:"bars" validate:"required,min=4"`
	Rules  []Rule      `json:"rules" validate:"required,min=1,dive"`
}

type TrainingRowsRequest struct {
	Symbol   string      `json:"symbol" validate:"required"`
	Bars     PriceSeries `json:"bars" validate:"required,min=5"`
	FromDate string      `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate   string      `json:"toDate" validate:"required,datetime=2006-01-02"`
	// NeutralBandPct widens the neutral label band; rows with |changePct|
	// at or below it are labeled neutral.
	NeutralBandPct float64 `json:"neutralBandPct" default:"0.5" validate:"gte=0,lte=20"`
	// Persist stores the rows through the configured sinks when true.
	Persist bool `json:"persist"`
}
