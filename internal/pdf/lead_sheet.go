package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"walkaway/internal/models"
	"walkaway/internal/utils"
)

// Generator renders a lead into a PDF document.
type Generator interface {
	LeadSheet(lead models.LeadRecord) ([]byte, error)
}

// LeadSheetGenerator renders the one-page lead sheet attached to operator email.
type LeadSheetGenerator struct {
	FontPath string // optional TTF; core Helvetica is used when empty
	fontName string
}

func NewLeadSheetGenerator(fontPath string) *LeadSheetGenerator {
	g := &LeadSheetGenerator{FontPath: fontPath, fontName: "Helvetica"}
	if fontPath != "" {
		g.fontName = "LeadSans"
	}
	return g
}

func (g *LeadSheetGenerator) LeadSheet(lead models.LeadRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("Walkaway lead: "+lead.Name, true)
	pdf.SetAuthor("Walkaway Calculator", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr, err := g.setupFont(pdf)
	if err != nil {
		return nil, err
	}
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr("Walkaway Lead"), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 7, tr("Submitted "+lead.SubmittedAt.UTC().Format("Jan 2, 2006 15:04 MST")), "", 1, "C", false, 0, "")
	g.hr(pdf)

	g.sectionTitle(pdf, tr("Contact"))
	g.kvLine(pdf, tr, "Name", lead.Name)
	g.kvLine(pdf, tr, "Email", lead.Email)
	g.kvLine(pdf, tr, "Phone", lead.Phone)
	g.hr(pdf)

	concessions := "no"
	if lead.IncludeConcessions {
		concessions = "yes"
	}
	g.sectionTitle(pdf, tr("Property"))
	g.kvLine(pdf, tr, "Address", lead.Address)
	g.kvLine(pdf, tr, "Beds / Baths", strings.TrimSpace(lead.Beds+" / "+lead.Baths))
	g.kvLine(pdf, tr, "Square feet", fmt.Sprintf("%g", lead.SquareFeet))
	g.kvLine(pdf, tr, "Condition", string(lead.Condition))
	g.kvLine(pdf, tr, "Timeline", string(lead.Timeline))
	g.kvLine(pdf, tr, "Mortgage payoff", utils.FormatMoney(lead.MortgagePayoff))
	g.kvLine(pdf, tr, "Concessions", concessions)
	g.hr(pdf)

	g.sectionTitle(pdf, tr("Estimate"))
	g.kvLine(pdf, tr, "Sale price", utils.FormatRange(lead.Estimate.SaleLow, lead.Estimate.SaleHigh))
	g.kvLine(pdf, tr, "Walkaway", utils.FormatRange(lead.Estimate.NetLow, lead.Estimate.NetHigh))

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 9)
	pdf.MultiCell(0, 5, tr("Estimate only. Low end pairs the low sale price with worst-case costs; "+
		"high end pairs the high sale price with best-case costs."), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render lead sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// setupFont registers the font and returns the text translator for it. The
// TTF is read directly so absolute paths are not joined onto gofpdf's font dir.
func (g *LeadSheetGenerator) setupFont(pdf *gofpdf.Fpdf) (func(string) string, error) {
	if g.FontPath == "" {
		return pdf.UnicodeTranslatorFromDescriptor(""), nil
	}
	ttf, err := os.ReadFile(g.FontPath)
	if err != nil {
		return nil, fmt.Errorf("read lead sheet font: %w", err)
	}
	pdf.AddUTF8FontFromBytes(g.fontName, "", ttf)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", ttf)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load lead sheet font: %w", err)
	}
	return func(s string) string { return s }, nil
}

func (g *LeadSheetGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *LeadSheetGenerator) kvLine(pdf *gofpdf.Fpdf, tr func(string) string, key, val string) {
	if strings.TrimSpace(val) == "" || val == "/" {
		val = "—"
	}
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, tr(key+":"), "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(val), "", 1, "L", false, 0, "")
}

func (g *LeadSheetGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 196, y)
	pdf.SetY(y + 2)
}
