package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"cardcomposer/internal/api/middleware"
	"cardcomposer/internal/form"
	"cardcomposer/internal/models"
	"cardcomposer/internal/utils"
	"cardcomposer/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

type SessionHandler struct {
	manager   *form.Manager
	validator *validator.Validate
}

func NewSessionHandler(manager *form.Manager) *SessionHandler {
	return &SessionHandler{manager: manager, validator: utils.NewValidator()}
}

// OpenSession starts a new editing session, or resumes one when the client
// sends the id it was handed before. Resuming is what restores the draft.
func (h *SessionHandler) OpenSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		// The body is optional: absent means a brand-new session.
		var req struct {
			ID string `json:"id"`
		}

		if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				response.WriteJson(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
				return
			}
		}

		session := h.manager.Open(r.Context(), req.ID)

		logger.Info("Session opened", "session_id", session.ID())
		response.Success(w, http.StatusCreated, session.State())

	}
}

func (h *SessionHandler) GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session.State())

	}
}

func (h *SessionHandler) UpdateFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateFieldsRequest
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

		if err := session.ApplyFields(req.Fields); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, session.State())

	}
}

func (h *SessionHandler) AddKeyword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AddKeywordRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.APIResponse{Success: false})
			return
		}

		session.AddKeyword(req.Keyword)

		response.Success(w, http.StatusOK, session.State())

	}
}

func (h *SessionHandler) RemoveKeyword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		session.RemoveKeyword(r.PathValue("keyword"))

		response.Success(w, http.StatusOK, session.State())

	}
}

// Submit drives the submission state machine. The outcome lives in the
// returned state, not the HTTP status: a rejected card is still a handled
// request.
func (h *SessionHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		session.Submit(r.Context())

		state := session.State()
		logger.Info("Submission finished", "session_id", session.ID(), "status", string(state.Status))

		response.Success(w, http.StatusOK, state)

	}
}

// ClearSession resets the card to defaults and deletes the draft.
func (h *SessionHandler) ClearSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		session, err := h.manager.Get(r.PathValue("id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		session.Reset(r.Context())

		response.Success(w, http.StatusOK, session.State())

	}
}

// CloseSession drops the session from the registry. The draft survives, so
// the client can resume with the same id later.
func (h *SessionHandler) CloseSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.manager.Remove(r.PathValue("id")); err != nil {
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)

	}
}
