package models

import "time"

// Condition is the seller's self-reported state of the home.
type Condition string

const (
	ConditionNeedsWork Condition = "needs_work"
	ConditionAverage   Condition = "average"
	ConditionUpdated   Condition = "updated"
	ConditionRenovated Condition = "renovated"
)

// ParseCondition maps the wire value to a Condition. Unknown values report false.
func ParseCondition(s string) (Condition, bool) {
	switch c := Condition(s); c {
	case ConditionNeedsWork, ConditionAverage, ConditionUpdated, ConditionRenovated:
		return c, true
	}
	return ConditionAverage, false
}

// Timeline is how soon the lead expects to sell.
type Timeline string

const (
	TimelineCurious     Timeline = "curious"
	TimelineThreeToSix  Timeline = "3_6"
	TimelineZeroToThree Timeline = "0_3"
)

// ParseTimeline maps the wire value to a Timeline. Unknown values report false.
func ParseTimeline(s string) (Timeline, bool) {
	switch t := Timeline(s); t {
	case TimelineCurious, TimelineThreeToSix, TimelineZeroToThree:
		return t, true
	}
	return Timeline(s), false
}

// PropertyInput is what the calculator needs to price a home.
type PropertyInput struct {
	SquareFeet         float64   `json:"sqft"`
	Condition          Condition `json:"condition"`
	IncludeConcessions bool      `json:"concessions"`
	MortgagePayoff     float64   `json:"mortgagePayoff"`
}

// PriceEstimate holds full-precision ranges. Nothing here is rounded.
type PriceEstimate struct {
	SaleLow  float64 `json:"lowSale"`
	SaleHigh float64 `json:"highSale"`
	NetLow   float64 `json:"netLow"`
	NetHigh  float64 `json:"netHigh"`
}

// LeadRecord is one submitted lead, written once to the ledger.
type LeadRecord struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Beds    string `json:"beds"`
	Baths   string `json:"baths"`

	SquareFeet         float64   `json:"sqft"`
	Condition          Condition `json:"condition"`
	Timeline           Timeline  `json:"timeline"`
	MortgagePayoff     float64   `json:"mortgagePayoff"`
	IncludeConcessions bool      `json:"concessions"`

	// Estimate is copied from the client at submission time, never recomputed.
	Estimate PriceEstimate `json:"estimate"`

	SubmittedAt time.Time `json:"submitted_at"`
}

// Property returns the calculator inputs carried by the lead.
func (l LeadRecord) Property() PropertyInput {
	return PropertyInput{
		SquareFeet:         l.SquareFeet,
		Condition:          l.Condition,
		IncludeConcessions: l.IncludeConcessions,
		MortgagePayoff:     l.MortgagePayoff,
	}
}
