package models

// ProjectionParams are the investment projection inputs after rate
// normalization (rates as fractions, not percent).
type ProjectionParams struct {
	InitialInvestment  float64
	MonthlyInvestment  float64
	NumYears           int
	AnnualInterestRate float64
	OngoingChargesRate float64
}

// ProjectionResult holds the yearly sampled projection series. All three
// slices have NumYears+1 entries, index 0 being the starting state.
type ProjectionResult struct {
	Years         []int     `json:"years"`
	MoneyInvested []float64 `json:"money_invested"`
	Value         []float64 `json:"value"`
	Profit        []float64 `json:"profit"`
	Currency      string    `json:"currency"`
}
