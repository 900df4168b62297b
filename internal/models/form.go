package models

import (
	"encoding/json"
	"strconv"
)

// FormValues is the product card as the operator edits it. Every field is a
// string, including prices, percents and coordinates: the form only ever holds
// user-editable text, and conversion to numbers happens at payload-build time.
type FormValues struct {
	Name             string `json:"name" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=product service digital"`
	DescriptionShort string `json:"description_short" validate:"omitempty"`
	DescriptionLong  string `json:"description_long" validate:"omitempty"`
	Code             string `json:"code" validate:"omitempty"`
	Unit             string `json:"unit" validate:"omitempty"`
	Category         string `json:"category" validate:"omitempty"`
	GlobalCategoryID string `json:"global_category_id" validate:"omitempty"`
	CashbackType     string `json:"cashback_type" validate:"omitempty"`
	MarketplacePrice string `json:"marketplace_price" validate:"omitempty"`
	SeoTitle         string `json:"seo_title" validate:"omitempty"`
	SeoDescription   string `json:"seo_description" validate:"omitempty"`
	ChattingPercent  string `json:"chatting_percent" validate:"omitempty"`
	Address          string `json:"address" validate:"omitempty"`
	Latitude         string `json:"latitude" validate:"omitempty"`
	Longitude        string `json:"longitude" validate:"omitempty"`
}

// FieldNames lists the wire-level field keys in card order.
var FieldNames = []string{
	"name",
	"type",
	"description_short",
	"description_long",
	"code",
	"unit",
	"category",
	"global_category_id",
	"cashback_type",
	"marketplace_price",
	"seo_title",
	"seo_description",
	"chatting_percent",
	"address",
	"latitude",
	"longitude",
}

func DefaultValues() FormValues {
	return FormValues{
		Name:             "",
		Type:             "product",
		DescriptionShort: "",
		DescriptionLong:  "",
		Code:             "",
		Unit:             "116",
		Category:         "2477",
		CashbackType:     "lcard_cashback",
		MarketplacePrice: "",
		ChattingPercent:  "4",
		GlobalCategoryID: "127",
		SeoTitle:         "",
		SeoDescription:   "",
		Address:          "",
		Latitude:         "",
		Longitude:        "",
	}
}

// Get returns the value for a wire-level field key.
func (f *FormValues) Get(key string) (string, bool) {
	p, ok := f.fieldPtr(key)
	if !ok {
		return "", false
	}

	return *p, true
}

// Set assigns the value for a wire-level field key. Unknown keys are rejected
// so stale drafts and foreign payload shapes cannot grow the model.
func (f *FormValues) Set(key, value string) bool {
	p, ok := f.fieldPtr(key)
	if !ok {
		return false
	}

	*p = value

	return true
}

func (f *FormValues) fieldPtr(key string) (*string, bool) {
	switch key {
	case "name":
		return &f.Name, true
	case "type":
		return &f.Type, true
	case "description_short":
		return &f.DescriptionShort, true
	case "description_long":
		return &f.DescriptionLong, true
	case "code":
		return &f.Code, true
	case "unit":
		return &f.Unit, true
	case "category":
		return &f.Category, true
	case "global_category_id":
		return &f.GlobalCategoryID, true
	case "cashback_type":
		return &f.CashbackType, true
	case "marketplace_price":
		return &f.MarketplacePrice, true
	case "seo_title":
		return &f.SeoTitle, true
	case "seo_description":
		return &f.SeoDescription, true
	case "chatting_percent":
		return &f.ChattingPercent, true
	case "address":
		return &f.Address, true
	case "latitude":
		return &f.Latitude, true
	case "longitude":
		return &f.Longitude, true
	}

	return nil, false
}

// MergeDraft overlays draft fields onto the defaults. Missing or nil entries
// keep the default, everything else is coerced to its string form, so a draft
// written by an older client with numeric values still restores cleanly.
func MergeDraft(fields map[string]any) FormValues {
	merged := DefaultValues()

	for key, raw := range fields {
		if raw == nil {
			continue
		}

		merged.Set(key, CoerceString(raw))
	}

	return merged
}

// CoerceString renders a JSON-decoded value as the text the form would hold.
func CoerceString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}

		return string(b)
	}
}
