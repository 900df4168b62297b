package catalog

import (
	"strconv"

	"cardcomposer/internal/models"
)

// Payload is the upstream nomenclature shape. Numeric fields are pointers so
// an empty form field is omitted from the JSON entirely, never sent as 0 or
// null. The all-strings form model is converted here and nowhere else.
type Payload struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	DescriptionShort string   `json:"description_short,omitempty"`
	DescriptionLong  string   `json:"description_long,omitempty"`
	Code             string   `json:"code,omitempty"`
	Unit             *int64   `json:"unit,omitempty"`
	Category         *int64   `json:"category,omitempty"`
	CashbackType     string   `json:"cashback_type,omitempty"`
	SeoTitle         string   `json:"seo_title,omitempty"`
	SeoDescription   string   `json:"seo_description,omitempty"`
	SeoKeywords      []string `json:"seo_keywords,omitempty"`
	GlobalCategoryID *int64   `json:"global_category_id,omitempty"`
	MarketplacePrice *float64 `json:"marketplace_price,omitempty"`
	ChattingPercent  *float64 `json:"chatting_percent,omitempty"`
	Address          string   `json:"address,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

func BuildPayload(values models.FormValues, keywords []string) *Payload {
	return &Payload{
		Name:             values.Name,
		Type:             values.Type,
		DescriptionShort: values.DescriptionShort,
		DescriptionLong:  values.DescriptionLong,
		Code:             values.Code,
		Unit:             intField(values.Unit),
		Category:         intField(values.Category),
		CashbackType:     values.CashbackType,
		SeoTitle:         values.SeoTitle,
		SeoDescription:   values.SeoDescription,
		SeoKeywords:      keywords,
		GlobalCategoryID: intField(values.GlobalCategoryID),
		MarketplacePrice: floatField(values.MarketplacePrice),
		ChattingPercent:  floatField(values.ChattingPercent),
		Address:          values.Address,
		Latitude:         floatField(values.Latitude),
		Longitude:        floatField(values.Longitude),
	}
}

// intField parses a numeric form string. Empty or unparsable text means the
// field is left out of the payload.
func intField(s string) *int64 {
	if s == "" {
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}

	return &n
}

func floatField(s string) *float64 {
	if s == "" {
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}

	return &f
}
