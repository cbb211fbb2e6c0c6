// Enumerated insight fields and their canonical casing.
//
// The completion service is asked for exactly "High" | "Medium" | "Low" and
// "Positive" | "Neutral" | "Negative", but in practice it drifts ("HIGH",
// "positive"). Parsing is therefore case-insensitive and always normalises
// to the canonical constant; unknown values are rejected.
package model

import (
	"fmt"
	"strings"
)

// DemandLevel mirrors the demand_level column of industry_insights.
type DemandLevel string

const (
	DemandHigh   DemandLevel = "High"
	DemandMedium DemandLevel = "Medium"
	DemandLow    DemandLevel = "Low"
)

// MarketOutlook mirrors the market_outlook column of industry_insights.
type MarketOutlook string

const (
	OutlookPositive MarketOutlook = "Positive"
	OutlookNeutral  MarketOutlook = "Neutral"
	OutlookNegative MarketOutlook = "Negative"
)

// ParseDemandLevel converts a raw string to a canonical DemandLevel,
// returning an error for unknown values.
func ParseDemandLevel(s string) (DemandLevel, error) {
	for _, d := range []DemandLevel{DemandHigh, DemandMedium, DemandLow} {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown demand level %q", s)
}

// ParseMarketOutlook converts a raw string to a canonical MarketOutlook,
// returning an error for unknown values.
func ParseMarketOutlook(s string) (MarketOutlook, error) {
	for _, o := range []MarketOutlook{OutlookPositive, OutlookNeutral, OutlookNegative} {
		if strings.EqualFold(s, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown market outlook %q", s)
}
