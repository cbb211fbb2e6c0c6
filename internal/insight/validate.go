package insight

import (
	"encoding/json"
	"fmt"

	"github.com/shahbhavya7/Ace-360/internal/model"
)

// ParseInsight decodes sanitised completion text against the insight schema.
// Checks run in order — structural decode, field presence and type, enum
// membership — and fail on the first violation with a *MalformedError.
//
// It never corrects semantics: a salary range with min > max or a median
// outside [min, max] passes through unchanged, matching what the generator
// is trusted (and prompted) to produce.
func ParseInsight(candidate string) (*model.GeneratedInsight, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, &MalformedError{Reason: ReasonNotParseable}
	}

	ranges, err := salaryRanges(doc)
	if err != nil {
		return nil, err
	}

	growth, err := number(doc, "growthRate")
	if err != nil {
		return nil, err
	}

	demandRaw, err := str(doc, "demandLevel")
	if err != nil {
		return nil, err
	}
	demand, err := model.ParseDemandLevel(demandRaw)
	if err != nil {
		return nil, &MalformedError{Reason: ReasonInvalidEnum, Field: "demandLevel", Value: demandRaw}
	}

	outlookRaw, err := str(doc, "marketOutlook")
	if err != nil {
		return nil, err
	}
	outlook, err := model.ParseMarketOutlook(outlookRaw)
	if err != nil {
		return nil, &MalformedError{Reason: ReasonInvalidEnum, Field: "marketOutlook", Value: outlookRaw}
	}

	topSkills, err := stringList(doc, "topSkills")
	if err != nil {
		return nil, err
	}
	keyTrends, err := stringList(doc, "keyTrends")
	if err != nil {
		return nil, err
	}
	recommended, err := stringList(doc, "recommendedSkills")
	if err != nil {
		return nil, err
	}

	return &model.GeneratedInsight{
		SalaryRanges:      ranges,
		GrowthRate:        growth,
		DemandLevel:       demand,
		MarketOutlook:     outlook,
		TopSkills:         topSkills,
		KeyTrends:         keyTrends,
		RecommendedSkills: recommended,
	}, nil
}

// ─── Field extractors ────────────────────────────────────────────────────────
//
// encoding/json decodes every JSON number as float64 and every string as
// string, so a single type assertion per field covers the type check.

func number(doc map[string]any, field string) (float64, error) {
	v, ok := doc[field]
	if !ok {
		return 0, &MalformedError{Reason: ReasonSchemaMismatch, Field: field}
	}
	n, ok := v.(float64)
	if !ok {
		return 0, &MalformedError{Reason: ReasonSchemaMismatch, Field: field}
	}
	return n, nil
}

func str(doc map[string]any, field string) (string, error) {
	v, ok := doc[field]
	if !ok {
		return "", &MalformedError{Reason: ReasonSchemaMismatch, Field: field}
	}
	s, ok := v.(string)
	if !ok {
		return "", &MalformedError{Reason: ReasonSchemaMismatch, Field: field}
	}
	return s, nil
}

func stringList(doc map[string]any, field string) ([]string, error) {
	v, ok := doc[field]
	if !ok {
		return nil, &MalformedError{Reason: ReasonSchemaMismatch, Field: field}
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &MalformedError{Reason: ReasonSchemaMismatch, Field: field}
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &MalformedError{
				Reason: ReasonSchemaMismatch,
				Field:  fmt.Sprintf("%s[%d]", field, i),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func salaryRanges(doc map[string]any) ([]model.SalaryRange, error) {
	v, ok := doc["salaryRanges"]
	if !ok {
		return nil, &MalformedError{Reason: ReasonSchemaMismatch, Field: "salaryRanges"}
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &MalformedError{Reason: ReasonSchemaMismatch, Field: "salaryRanges"}
	}

	out := make([]model.SalaryRange, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedError{
				Reason: ReasonSchemaMismatch,
				Field:  fmt.Sprintf("salaryRanges[%d]", i),
			}
		}

		var r model.SalaryRange
		var err error
		if r.Role, err = rangeStr(entry, i, "role"); err != nil {
			return nil, err
		}
		if r.Min, err = rangeNumber(entry, i, "min"); err != nil {
			return nil, err
		}
		if r.Max, err = rangeNumber(entry, i, "max"); err != nil {
			return nil, err
		}
		if r.Median, err = rangeNumber(entry, i, "median"); err != nil {
			return nil, err
		}
		if r.Location, err = rangeStr(entry, i, "location"); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func rangeNumber(entry map[string]any, i int, key string) (float64, error) {
	n, err := number(entry, key)
	if err != nil {
		return 0, &MalformedError{
			Reason: ReasonSchemaMismatch,
			Field:  fmt.Sprintf("salaryRanges[%d].%s", i, key),
		}
	}
	return n, nil
}

func rangeStr(entry map[string]any, i int, key string) (string, error) {
	s, err := str(entry, key)
	if err != nil {
		return "", &MalformedError{
			Reason: ReasonSchemaMismatch,
			Field:  fmt.Sprintf("salaryRanges[%d].%s", i, key),
		}
	}
	return s, nil
}
