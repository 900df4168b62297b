package handlers

import (
	"net/http"

	"cardcomposer/internal/address"
	appErrors "cardcomposer/internal/errors"
	"cardcomposer/internal/models"
	"cardcomposer/internal/utils"
	"cardcomposer/internal/utils/response"
)

// AddressHandler proxies address autocomplete lookups for the UI. The wire
// shape is kept flat ({suggestions} / {error}) because the address widget
// consumes it directly.
type AddressHandler struct {
	client address.Client
}

func NewAddressHandler(client address.Client) *AddressHandler {
	return &AddressHandler{client: client}
}

func (h *AddressHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddressQueryRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.WriteJson(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		suggestions, err := h.client.Search(r.Context(), req.Query)
		if err != nil {

			status := http.StatusInternalServerError
			if appErr, ok := appErrors.IsAppError(err); ok {
				status = appErr.StatusCode
			}

			response.WriteJson(w, status, map[string]string{"error": err.Error()})

			return
		}

		response.WriteJson(w, http.StatusOK, models.AddressSuggestionsResponse{Suggestions: suggestions})

	}
}
