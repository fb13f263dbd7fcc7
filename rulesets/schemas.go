package rulesets

import (
	"github.com/dealkit/dealkit/pkg/schema"
	"github.com/dealkit/dealkit/pkg/validator"
)

// Currencies supported for cashback payouts.
var Currencies = []string{"USD", "EUR", "GBP"}

// ProfileSchema validates and normalizes the account profile payload.
// Email is trimmed and lowercased; unknown keys are stripped so arbitrary
// client fields never reach the persistence layer.
func ProfileSchema() *schema.Schema {
	return schema.MustNew("user.profile", map[string]schema.Field{
		"name": {
			Type:       schema.String,
			Required:   true,
			MinLen:     schema.Len(2),
			MaxLen:     schema.Len(80),
			Transforms: []schema.Transform{schema.Trim},
		},
		"email": {
			Type:       schema.String,
			Required:   true,
			Format:     schema.FormatEmail,
			Transforms: []schema.Transform{schema.Trim, schema.Lower},
		},
		"currency": {
			Type:    schema.String,
			Enum:    Currencies,
			Default: "USD",
		},
		"newsletter": {
			Type:    schema.Bool,
			Default: false,
		},
		"address": {
			Type: schema.Object,
			Fields: map[string]schema.Field{
				"street": {Type: schema.String, Transforms: []schema.Transform{schema.Trim}},
				"city":   {Type: schema.String, Required: true, Transforms: []schema.Transform{schema.Trim}},
				"zip":    {Type: schema.String, Pattern: `^[0-9A-Za-z -]{3,10}$`},
				"country": {
					Type:       schema.String,
					Default:    "US",
					Transforms: []schema.Transform{schema.Upper},
				},
			},
		},
		"interests": {
			Type:   schema.Array,
			MaxLen: schema.Len(10),
			Elem:   &schema.Field{Type: schema.String, Transforms: []schema.Transform{schema.Trim, schema.Lower}},
		},
	})
}

// PaginationSchema validates list-endpoint query parameters, including the
// date-window relation: an end date before the start date is reported as a
// violation on endDate.
func PaginationSchema() *schema.Schema {
	return schema.MustNew("pagination", map[string]schema.Field{
		"page":      {Type: schema.Int, Min: schema.Num(1), Default: int64(1)},
		"perPage":   {Type: schema.Int, Min: schema.Num(1), Max: schema.Num(100), Default: int64(20)},
		"sort":      {Type: schema.String, Enum: []string{"newest", "oldest", "popular"}, Default: "newest"},
		"startDate": {Type: schema.String, Format: schema.FormatDate, Transforms: []schema.Transform{schema.Trim}},
		"endDate":   {Type: schema.String, Format: schema.FormatDate, Transforms: []schema.Transform{schema.Trim}},
	}, schema.WithCrossCheck(dateWindow))
}

func dateWindow(payload map[string]any) (string, string, bool) {
	rawStart, okStart := payload["startDate"].(string)
	rawEnd, okEnd := payload["endDate"].(string)
	if !okStart || !okEnd {
		return "", "", true
	}

	start, errStart := validator.ParseISODate(rawStart)
	end, errEnd := validator.ParseISODate(rawEnd)
	if errStart != nil || errEnd != nil {
		// Format violations are already attributed per field.
		return "", "", true
	}

	if end.Before(start) {
		return "endDate", "End date must not be before start date", false
	}
	return "", "", true
}
