package pdf

import (
	"bytes"
	"go/build"
	"os"
	"path/filepath"
	"testing"
	"time"

	"walkaway/internal/models"
)

func TestLeadSheet(t *testing.T) {
	lead := models.LeadRecord{
		Name:        "Jane Seller",
		Email:       "jane@example.com",
		Phone:       "260-555-1234",
		SquareFeet:  1650,
		Condition:   models.ConditionAverage,
		Timeline:    models.TimelineZeroToThree,
		Estimate:    models.PriceEstimate{SaleLow: 209385, SaleHigh: 236115, NetLow: 191587.275, NetHigh: 219586.95},
		SubmittedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
	}
	out, err := NewLeadSheetGenerator("").LeadSheet(lead)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", out[:min(len(out), 8)])
	}
}

func TestLeadSheet_MissingFont(t *testing.T) {
	_, err := NewLeadSheetGenerator("/nonexistent/font.ttf").LeadSheet(models.LeadRecord{Name: "x"})
	if err == nil {
		t.Fatal("expected error for missing font file")
	}
}

// dejaVuFont copies the TTF shipped with the gofpdf module to an absolute
// temp path, or skips when the module cache is not available.
func dejaVuFont(t *testing.T) string {
	t.Helper()
	cache := os.Getenv("GOMODCACHE")
	if cache == "" {
		cache = filepath.Join(build.Default.GOPATH, "pkg", "mod")
	}
	src := filepath.Join(cache, "github.com", "jung-kurt", "gofpdf@v1.16.2", "font", "DejaVuSansCondensed.ttf")
	ttf, err := os.ReadFile(src)
	if err != nil {
		t.Skipf("gofpdf font not in module cache: %v", err)
	}
	dst := filepath.Join(t.TempDir(), "DejaVuSansCondensed.ttf")
	if err := os.WriteFile(dst, ttf, 0o600); err != nil {
		t.Fatalf("copy font: %v", err)
	}
	return dst
}

func TestLeadSheet_AbsoluteFontPath(t *testing.T) {
	font := dejaVuFont(t)
	if !filepath.IsAbs(font) {
		t.Fatalf("expected absolute path, got %q", font)
	}
	lead := models.LeadRecord{
		Name:        "Zoë Ångström",
		Address:     "12 Rue de l’Église",
		SquareFeet:  1650,
		Estimate:    models.PriceEstimate{SaleLow: 209385, SaleHigh: 236115, NetLow: 191587.275, NetHigh: 219586.95},
		SubmittedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
	}
	out, err := NewLeadSheetGenerator(font).LeadSheet(lead)
	if err != nil {
		t.Fatalf("render with %s: %v", font, err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatal("expected PDF output")
	}
}
