package model_test

import (
	"testing"

	"github.com/shahbhavya7/Ace-360/internal/model"
)

// ── ParseDemandLevel ───────────────────────────────────────────────────────

func TestParseDemandLevel_CanonicalValues(t *testing.T) {
	valid := []string{"High", "Medium", "Low"}
	for _, s := range valid {
		got, err := model.ParseDemandLevel(s)
		if err != nil {
			t.Errorf("ParseDemandLevel(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseDemandLevel(%q) = %q, want %q", s, got, s)
		}
	}
}

// The completion API drifts in casing — every variant must normalise to the
// canonical constant.
func TestParseDemandLevel_CaseInsensitive(t *testing.T) {
	cases := []struct {
		in   string
		want model.DemandLevel
	}{
		{"high", model.DemandHigh},
		{"HIGH", model.DemandHigh},
		{"hIgH", model.DemandHigh},
		{"medium", model.DemandMedium},
		{"MEDIUM", model.DemandMedium},
		{"low", model.DemandLow},
		{"LOW", model.DemandLow},
	}
	for _, c := range cases {
		got, err := model.ParseDemandLevel(c.in)
		if err != nil {
			t.Errorf("ParseDemandLevel(%q) returned unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseDemandLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseDemandLevel_InvalidValues(t *testing.T) {
	invalid := []string{"", "Very High", "Hi", "Medium ", " Low", "0"}
	for _, s := range invalid {
		if _, err := model.ParseDemandLevel(s); err == nil {
			t.Errorf("ParseDemandLevel(%q) expected error, got nil", s)
		}
	}
}

// ── ParseMarketOutlook ─────────────────────────────────────────────────────

func TestParseMarketOutlook_CanonicalValues(t *testing.T) {
	valid := []string{"Positive", "Neutral", "Negative"}
	for _, s := range valid {
		got, err := model.ParseMarketOutlook(s)
		if err != nil {
			t.Errorf("ParseMarketOutlook(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseMarketOutlook(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseMarketOutlook_CaseInsensitive(t *testing.T) {
	cases := []struct {
		in   string
		want model.MarketOutlook
	}{
		{"positive", model.OutlookPositive},
		{"POSITIVE", model.OutlookPositive},
		{"neutral", model.OutlookNeutral},
		{"negative", model.OutlookNegative},
		{"NeGaTiVe", model.OutlookNegative},
	}
	for _, c := range cases {
		got, err := model.ParseMarketOutlook(c.in)
		if err != nil {
			t.Errorf("ParseMarketOutlook(%q) returned unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseMarketOutlook(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseMarketOutlook_InvalidValues(t *testing.T) {
	invalid := []string{"", "Bullish", "Positive Outlook", "Neutral-ish"}
	for _, s := range invalid {
		if _, err := model.ParseMarketOutlook(s); err == nil {
			t.Errorf("ParseMarketOutlook(%q) expected error, got nil", s)
		}
	}
}
