package services

import (
	"fmt"
	"html"
	"strings"

	"walkaway/internal/models"
	"walkaway/internal/utils"
)

const (
	emptyField      = "—"
	homePlaceholder = "your home"
	optOutLine      = "Reply STOP to opt out."
)

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyField
	}
	return s
}

func netRange(lead models.LeadRecord) string {
	return utils.FormatRange(lead.Estimate.NetLow, lead.Estimate.NetHigh)
}

func emailSubject(lead models.LeadRecord) string {
	return "New Lead: " + lead.Name
}

func emailHTML(lead models.LeadRecord) string {
	row := func(label, value string) string {
		return fmt.Sprintf(`
      <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 8px; font-weight: bold;">%s:</td>
        <td style="padding: 8px;">%s</td>
      </tr>`, label, html.EscapeString(orDash(value)))
	}
	sqft := ""
	if lead.SquareFeet > 0 {
		sqft = fmt.Sprintf("%g", lead.SquareFeet)
	}

	var b strings.Builder
	b.WriteString(`
    <h2>New Walkaway Lead</h2>
    <table style="width: 100%; border-collapse: collapse;">`)
	b.WriteString(row("Name", lead.Name))
	b.WriteString(row("Email", lead.Email))
	b.WriteString(row("Phone", lead.Phone))
	b.WriteString(row("Address", lead.Address))
	b.WriteString(row("Sq Ft", sqft))
	fmt.Fprintf(&b, `
      <tr style="background-color: #f9f9f9;">
        <td style="padding: 8px; font-weight: bold;">Net Range:</td>
        <td style="padding: 8px; font-weight: bold; color: #2d5016;">%s</td>
      </tr>
    </table>
`, html.EscapeString(netRange(lead)))
	return b.String()
}

func smsText(lead models.LeadRecord) string {
	place := strings.TrimSpace(lead.Address)
	if place == "" {
		place = homePlaceholder
	}
	return fmt.Sprintf("Thanks for checking your walkaway number! Estimated net for %s: %s. We'll be in touch soon.\n%s",
		place, netRange(lead), optOutLine)
}

func operatorSummary(lead models.LeadRecord) string {
	lines := []string{
		"New walkaway lead",
		"Name: " + orDash(lead.Name),
		"Email: " + orDash(lead.Email),
		"Phone: " + orDash(lead.Phone),
		"Address: " + orDash(lead.Address),
		fmt.Sprintf("Sq Ft: %g (%s)", lead.SquareFeet, orDash(string(lead.Condition))),
		"Timeline: " + orDash(string(lead.Timeline)),
		"Sale: " + utils.FormatRange(lead.Estimate.SaleLow, lead.Estimate.SaleHigh),
		"Net: " + netRange(lead),
	}
	return strings.Join(lines, "\n")
}
