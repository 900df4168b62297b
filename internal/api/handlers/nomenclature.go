package handlers

import (
	"io"
	"net/http"
	"strings"

	"cardcomposer/internal/api/middleware"
	"cardcomposer/internal/catalog"
	"cardcomposer/internal/utils/response"
)

// NomenclatureHandler is the raw passthrough to the upstream catalog API, for
// clients that build their own payloads. Successful upstream bodies are
// returned verbatim.
type NomenclatureHandler struct {
	client catalog.Client
}

func NewNomenclatureHandler(client catalog.Client) *NomenclatureHandler {
	return &NomenclatureHandler{client: client}
}

func (h *NomenclatureHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			response.WriteJson(w, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
			return
		}

		defer r.Body.Close()

		respBody, status, err := h.client.Forward(r.Context(), body)
		if err != nil {
			logger.Error("Catalog forward failed", "error", err.Error())
			response.WriteJson(w, http.StatusBadGateway, map[string]string{"error": err.Error()})

			return
		}

		if status < 200 || status >= 300 {

			msg := strings.TrimSpace(string(respBody))
			if msg == "" {
				msg = http.StatusText(status)
			}

			response.WriteJson(w, status, map[string]string{"error": msg})

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(respBody)

	}
}
