package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cardcomposer/internal/ai"
	"cardcomposer/internal/api/handlers"
	"cardcomposer/internal/catalog"
	"cardcomposer/internal/draft"
	"cardcomposer/internal/form"
	"cardcomposer/internal/models"
	"cardcomposer/internal/testutils"
	"cardcomposer/internal/utils/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	err   error
	calls int
}

func (s *stubCatalog) Create(ctx context.Context, payload *catalog.Payload) error {
	s.calls++
	return s.err
}

func (s *stubCatalog) Forward(ctx context.Context, body []byte) ([]byte, int, error) {
	return []byte(`[]`), http.StatusOK, nil
}

type stubAssist struct{}

func (s *stubAssist) GenerateAll(ctx context.Context, name string) (*ai.GeneratedFields, error) {
	return &ai.GeneratedFields{DescriptionShort: "Сгенерировано"}, nil
}

func (s *stubAssist) GenerateSEO(ctx context.Context, name, descriptionShort string) (*ai.GeneratedSEO, error) {
	return &ai.GeneratedSEO{SeoTitle: "SEO"}, nil
}

func (s *stubAssist) Prettify(ctx context.Context, text string) (string, error) {
	return "Улучшено", nil
}

func newHandlerFixture(cat catalog.Client) (*handlers.SessionHandler, *form.Manager) {
	manager := form.NewManager(draft.NewMemoryStore(), cat, &stubAssist{}, 30*time.Millisecond)
	return handlers.NewSessionHandler(manager), manager
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) models.SessionState {
	t.Helper()

	var resp struct {
		Success bool                `json:"success"`
		Data    models.SessionState `json:"data"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	return resp.Data
}

func TestOpenSession(t *testing.T) {

	t.Run("Success - Fresh Session With Defaults", func(t *testing.T) {
		// Arrange
		handler, _ := newHandlerFixture(&stubCatalog{})
		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/sessions", nil, nil)
		rec := httptest.NewRecorder()

		// Act
		handler.OpenSession().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusCreated, rec.Code)

		state := decodeState(t, rec)
		assert.NotEmpty(t, state.ID)
		assert.Equal(t, models.DefaultValues(), state.Values)
		assert.Equal(t, models.StatusIdle, state.Status)
		assert.Equal(t, "Электроника", state.CategoryLabel)
		assert.Equal(t, 6, state.Completeness.Total)
		assert.Equal(t, 0, state.Completeness.Filled)
	})

	t.Run("Success - Resume Restores Draft", func(t *testing.T) {
		// Arrange
		store := draft.NewMemoryStore()
		require.NoError(t, store.Save(context.Background(), "resume-1", map[string]any{"name": "Тест"}, []string{"ключ"}))

		manager := form.NewManager(store, &stubCatalog{}, &stubAssist{}, 30*time.Millisecond)
		handler := handlers.NewSessionHandler(manager)

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{"id":"resume-1"}`), nil)
		rec := httptest.NewRecorder()

		// Act
		handler.OpenSession().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusCreated, rec.Code)

		state := decodeState(t, rec)
		assert.Equal(t, "resume-1", state.ID)
		assert.Equal(t, "Тест", state.Values.Name)
		assert.Equal(t, []string{"ключ"}, state.Keywords)
	})
}

func TestUpdateFields(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler, manager := newHandlerFixture(&stubCatalog{})
		session := manager.Open(context.Background(), "")
		defer session.Close()

		body := strings.NewReader(`{"fields": {"name": "Чайник", "marketplace_price": "1990"}}`)
		req := testutils.CreateTestRequest(http.MethodPatch, "/api/v1/sessions/"+session.ID()+"/fields", body, map[string]string{"id": session.ID()})
		rec := httptest.NewRecorder()

		// Act
		handler.UpdateFields().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)

		state := decodeState(t, rec)
		assert.Equal(t, "Чайник", state.Values.Name)
		assert.Equal(t, 2, state.Completeness.Filled, "name and price now count as filled")
	})

	t.Run("Failure - Unknown Field", func(t *testing.T) {
		// Arrange
		handler, manager := newHandlerFixture(&stubCatalog{})
		session := manager.Open(context.Background(), "")
		defer session.Close()

		body := strings.NewReader(`{"fields": {"totally_new_field": "x"}}`)
		req := testutils.CreateTestRequest(http.MethodPatch, "/api/v1/sessions/"+session.ID()+"/fields", body, map[string]string{"id": session.ID()})
		rec := httptest.NewRecorder()

		// Act
		handler.UpdateFields().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Failure - Unknown Session", func(t *testing.T) {
		// Arrange
		handler, _ := newHandlerFixture(&stubCatalog{})

		body := strings.NewReader(`{"fields": {"name": "Чайник"}}`)
		req := testutils.CreateTestRequest(http.MethodPatch, "/api/v1/sessions/nope/fields", body, map[string]string{"id": "nope"})
		rec := httptest.NewRecorder()

		// Act
		handler.UpdateFields().ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubmitHandler(t *testing.T) {

	t.Run("Validation Failure Reported In State", func(t *testing.T) {
		// Arrange
		cat := &stubCatalog{}
		handler, manager := newHandlerFixture(cat)
		session := manager.Open(context.Background(), "")
		defer session.Close()

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/sessions/"+session.ID()+"/submit", nil, map[string]string{"id": session.ID()})
		rec := httptest.NewRecorder()

		// Act
		handler.Submit().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code, "a rejected card is still a handled request")

		state := decodeState(t, rec)
		assert.Equal(t, models.StatusError, state.Status)
		assert.Contains(t, state.ErrorMessage, "name")
		assert.Equal(t, 0, cat.calls)
	})

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cat := &stubCatalog{}
		handler, manager := newHandlerFixture(cat)
		session := manager.Open(context.Background(), "")
		defer session.Close()

		require.NoError(t, session.ApplyFields(map[string]string{"name": "Чайник"}))

		req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/sessions/"+session.ID()+"/submit", nil, map[string]string{"id": session.ID()})
		rec := httptest.NewRecorder()

		// Act
		handler.Submit().ServeHTTP(rec, req)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)

		state := decodeState(t, rec)
		assert.Equal(t, models.StatusSuccess, state.Status)
		assert.Equal(t, 1, cat.calls)
	})
}

func TestKeywordHandlers(t *testing.T) {
	// Arrange
	handler, manager := newHandlerFixture(&stubCatalog{})
	session := manager.Open(context.Background(), "")
	defer session.Close()

	addReq := testutils.CreateTestRequest(http.MethodPost, "/api/v1/sessions/"+session.ID()+"/keywords",
		strings.NewReader(`{"keyword": "чайник"}`), map[string]string{"id": session.ID()})
	addRec := httptest.NewRecorder()

	// Act
	handler.AddKeyword().ServeHTTP(addRec, addReq)

	// Assert
	require.Equal(t, http.StatusOK, addRec.Code)
	assert.Equal(t, []string{"чайник"}, decodeState(t, addRec).Keywords)

	// Act: remove it again
	delReq := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/sessions/"+session.ID()+"/keywords/чайник",
		nil, map[string]string{"id": session.ID(), "keyword": "чайник"})
	delRec := httptest.NewRecorder()

	handler.RemoveKeyword().ServeHTTP(delRec, delReq)

	// Assert
	require.Equal(t, http.StatusOK, delRec.Code)
	assert.Empty(t, decodeState(t, delRec).Keywords)
}

func TestClearSession(t *testing.T) {
	// Arrange
	handler, manager := newHandlerFixture(&stubCatalog{})
	session := manager.Open(context.Background(), "")
	defer session.Close()

	require.NoError(t, session.ApplyFields(map[string]string{"name": "Чайник"}))
	session.AddKeyword("чайник")

	req := testutils.CreateTestRequest(http.MethodPost, "/api/v1/sessions/"+session.ID()+"/clear", nil, map[string]string{"id": session.ID()})
	rec := httptest.NewRecorder()

	// Act
	handler.ClearSession().ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	state := decodeState(t, rec)
	assert.Equal(t, models.DefaultValues(), state.Values)
	assert.Empty(t, state.Keywords)
	assert.Equal(t, models.StatusIdle, state.Status)
}

func TestCloseSession(t *testing.T) {
	// Arrange
	handler, manager := newHandlerFixture(&stubCatalog{})
	session := manager.Open(context.Background(), "")

	req := testutils.CreateTestRequest(http.MethodDelete, "/api/v1/sessions/"+session.ID(), nil, map[string]string{"id": session.ID()})
	rec := httptest.NewRecorder()

	// Act
	handler.CloseSession().ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := manager.Get(session.ID())
	assert.Error(t, err)
}

func TestGetSessionNotFound(t *testing.T) {
	// Arrange
	handler, _ := newHandlerFixture(&stubCatalog{})
	req := testutils.CreateTestRequest(http.MethodGet, "/api/v1/sessions/missing", nil, map[string]string{"id": "missing"})
	rec := httptest.NewRecorder()

	// Act
	handler.GetSession().ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}
