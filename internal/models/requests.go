package models

type UpdateFieldsRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

type AddKeywordRequest struct {
	Keyword string `json:"keyword" validate:"required"`
}

type PrettifyRequest struct {
	Field string `json:"field" validate:"required,oneof=description_short description_long"`
}

type AddressQueryRequest struct {
	Query string `json:"query"`
}

type AddressSuggestion struct {
	Value string `json:"value"`
	Lat   string `json:"lat"`
	Lon   string `json:"lon"`
}

type AddressSuggestionsResponse struct {
	Suggestions []AddressSuggestion `json:"suggestions"`
}

// CompletenessCheck is one row of the card completeness report.
type CompletenessCheck struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Filled bool   `json:"filled"`
}

type Completeness struct {
	Filled int                 `json:"filled"`
	Total  int                 `json:"total"`
	Checks []CompletenessCheck `json:"checks"`
}

// SessionState is the full view of one editing session returned to the UI.
type SessionState struct {
	ID            string            `json:"id"`
	Values        FormValues        `json:"values"`
	Keywords      []string          `json:"keywords"`
	Status        SubmitStatus      `json:"status"`
	ErrorMessage  string            `json:"error_message,omitempty"`
	AssistBusy    map[AssistOp]bool `json:"assist_busy"`
	CategoryLabel string            `json:"category_label,omitempty"`
	SeoTitleLen   int               `json:"seo_title_len"`
	SeoDescLen    int               `json:"seo_description_len"`
	Completeness  Completeness      `json:"completeness"`
}
