package services

import (
	"walkaway/internal/models"
	"walkaway/internal/utils"
)

// LedgerColumns names the ledger row positions. The ledger is a plain row
// append, so column identity is positional: changing this order needs a
// migration of the existing sheet or table.
var LedgerColumns = []string{
	"timestamp",
	"name",
	"email",
	"phone",
	"address",
	"beds",
	"baths",
	"sqft",
	"condition",
	"timeline",
	"mortgagePayoff",
	"concessions",
	"lowSale",
	"highSale",
	"netLow",
	"netHigh",
}

const ledgerTimeLayout = "2006-01-02T15:04:05.000Z"

// LedgerRow serializes a lead in LedgerColumns order. Money columns are
// rounded to whole units; concessions is written as "yes" or "no".
func LedgerRow(lead models.LeadRecord) []any {
	concessions := "no"
	if lead.IncludeConcessions {
		concessions = "yes"
	}
	return []any{
		lead.SubmittedAt.UTC().Format(ledgerTimeLayout),
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Address,
		lead.Beds,
		lead.Baths,
		lead.SquareFeet,
		string(lead.Condition),
		string(lead.Timeline),
		lead.MortgagePayoff,
		concessions,
		utils.RoundWhole(lead.Estimate.SaleLow),
		utils.RoundWhole(lead.Estimate.SaleHigh),
		utils.RoundWhole(lead.Estimate.NetLow),
		utils.RoundWhole(lead.Estimate.NetHigh),
	}
}
