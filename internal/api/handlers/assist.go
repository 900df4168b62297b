package handlers

import (
	"net/http"

	"cardcomposer/internal/api/middleware"
	"cardcomposer/internal/form"
	"cardcomposer/internal/models"
	"cardcomposer/internal/utils"
	"cardcomposer/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

type AssistHandler struct {
	manager   *form.Manager
	validator *validator.Validate
}

func NewAssistHandler(manager *form.Manager) *AssistHandler {
	return &AssistHandler{manager: manager, validator: utils.NewValidator()}
}

func (h *AssistHandler) GenerateAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := session.GenerateAll(r.Context()); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Generate-all applied", "session_id", session.ID())
		response.Success(w, http.StatusOK, session.State())

	}
}

func (h *AssistHandler) GenerateSEO() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := session.GenerateSEO(r.Context()); err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("SEO generation applied", "session_id", session.ID())
		response.Success(w, http.StatusOK, session.State())

	}
}

func (h *AssistHandler) Prettify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.PrettifyRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.APIResponse{Success: false})
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			var validationErrs validator.ValidationErrors
			if ok := asValidationErrors(err, &validationErrs); ok {
				response.ValidationError(w, validationErrs)
				return
			}

			response.Error(w, err)

			return
		}

		if err := session.Prettify(r.Context(), req.Field); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session.State())

	}
}
