package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type ChartRequest struct {
	Period string `query:"period" json:"period" default:"ytd" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 5y ytd max"`
}

type ProjectionRequest struct {
	InitialInvestment  float64 `json:"initial_investment" default:"100000" validate:"gte=0"`
	MonthlyInvestment  float64 `json:"monthly_investment" default:"5000" validate:"gte=0"`
	NumYears           int     `json:"num_years" default:"20" validate:"gte=1,lte=100"`
	AnnualInterestRate float64 `json:"annual_interest_rate" default:"7" validate:"gt=-100,lte=100"`
	OngoingChargesRate float64 `json:"ongoing_charges_rate" default:"0.07" validate:"gte=0,lte=100"`
}
