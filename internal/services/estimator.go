package services

import "walkaway/internal/models"

// Market and cost constants for the Fort Wayne baseline.
const (
	BaselinePerSqFt = 135.0

	CommissionRate  = 0.055
	ClosingBest     = 0.015
	ClosingWorst    = 0.03
	ConcessionBest  = 0.005
	ConcessionWorst = 0.02

	SpreadNormal    = 0.06
	SpreadNeedsWork = 0.08
)

var conditionMultiplier = map[models.Condition]float64{
	models.ConditionNeedsWork: 0.92,
	models.ConditionAverage:   1.00,
	models.ConditionUpdated:   1.06,
	models.ConditionRenovated: 1.10,
}

// Estimate prices a home and derives the walkaway range.
//
// The low net pairs the low sale price with the worst-case cost rates and the
// high net pairs the high sale price with the best-case rates. Results keep
// full float precision; callers round for display only. A zero square footage
// yields a zero sale range, so callers gate display on SquareFeet > 0.
func Estimate(in models.PropertyInput) models.PriceEstimate {
	mult, ok := conditionMultiplier[in.Condition]
	if !ok {
		mult = 1.0
	}

	base := in.SquareFeet * BaselinePerSqFt
	adjusted := base * mult

	spread := SpreadNormal
	if in.Condition == models.ConditionNeedsWork {
		spread = SpreadNeedsWork
	}
	saleLow := adjusted * (1 - spread)
	saleHigh := adjusted * (1 + spread)

	commissionLow := saleLow * CommissionRate
	commissionHigh := saleHigh * CommissionRate
	closingLow := saleLow * ClosingWorst
	closingHigh := saleHigh * ClosingBest

	var concessionLow, concessionHigh float64
	if in.IncludeConcessions {
		concessionLow = saleLow * ConcessionWorst
		concessionHigh = saleHigh * ConcessionBest
	}

	return models.PriceEstimate{
		SaleLow:  saleLow,
		SaleHigh: saleHigh,
		NetLow:   saleLow - commissionLow - closingLow - concessionLow - in.MortgagePayoff,
		NetHigh:  saleHigh - commissionHigh - closingHigh - concessionHigh - in.MortgagePayoff,
	}
}
