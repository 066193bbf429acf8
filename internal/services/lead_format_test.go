package services

import (
	"strings"
	"testing"
)

func TestSMSText(t *testing.T) {
	lead := validLead()
	got := smsText(lead)
	want := "Thanks for checking your walkaway number! Estimated net for 123 Main St: $191,587 – $219,587. We'll be in touch soon.\nReply STOP to opt out."
	if got != want {
		t.Fatalf("expected %q got %q", want, got)
	}

	lead.Address = " "
	if got := smsText(lead); !strings.Contains(got, "Estimated net for your home:") {
		t.Fatalf("expected placeholder address, got %q", got)
	}
}

func TestEmailHTML(t *testing.T) {
	lead := validLead()
	lead.Name = "<b>Jane</b>"
	lead.Address = ""

	body := emailHTML(lead)
	if strings.Contains(body, "<b>Jane</b>") {
		t.Fatal("lead fields must be escaped")
	}
	if !strings.Contains(body, "&lt;b&gt;Jane&lt;/b&gt;") {
		t.Fatalf("expected escaped name in body: %s", body)
	}
	if !strings.Contains(body, "—") {
		t.Fatal("expected dash for empty address")
	}
	if !strings.Contains(body, "$191,587 – $219,587") {
		t.Fatalf("expected net range in body: %s", body)
	}
	if emailSubject(lead) != "New Lead: <b>Jane</b>" {
		t.Fatalf("unexpected subject %q", emailSubject(lead))
	}
}

func TestOperatorSummary(t *testing.T) {
	got := operatorSummary(validLead())
	for _, want := range []string{
		"Name: Jane Seller",
		"Sq Ft: 1650 (average)",
		"Timeline: 3_6",
		"Sale: $209,385 – $236,115",
		"Net: $191,587 – $219,587",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}
