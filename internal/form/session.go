// Package form owns the editing session: the validated form model, the SEO
// keyword list, draft autosave and restore, the submission status machine and
// the AI assist busy flags.
package form

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cardcomposer/internal/catalog"
	"cardcomposer/internal/draft"
	appErrors "cardcomposer/internal/errors"
	"cardcomposer/internal/metrics"
	"cardcomposer/internal/models"
	"cardcomposer/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// saveTimeout bounds the background draft write once the debounce fires.
const saveTimeout = 3 * time.Second

// Session is one operator's card-editing session. All state behind the mutex;
// the session moves through uninitialized -> draft loaded (one-shot) ->
// steady-state, and never back.
type Session struct {
	id string

	mu          sync.Mutex
	values      models.FormValues
	keywords    []string
	status      models.SubmitStatus
	errMsg      string
	draftLoaded bool
	assistBusy  map[models.AssistOp]bool

	store     draft.Store
	catalog   catalog.Client
	assist    AssistService
	validate  *validator.Validate
	scheduler *saveScheduler
}

func newSession(id string, store draft.Store, catalogClient catalog.Client, assist AssistService, validate *validator.Validate, saveDelay time.Duration) *Session {
	return &Session{
		id:         id,
		values:     models.DefaultValues(),
		status:     models.StatusIdle,
		assistBusy: make(map[models.AssistOp]bool),
		store:      store,
		catalog:    catalogClient,
		assist:     assist,
		validate:   validate,
		scheduler:  newSaveScheduler(saveDelay),
	}
}

func (s *Session) ID() string {
	return s.id
}

// RestoreDraft merges a persisted draft into the form model. It runs at most
// once per session; autosave stays disarmed until it has run, so an early
// save can never overwrite a draft with pristine defaults.
func (s *Session) RestoreDraft(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draftLoaded {
		return
	}

	s.draftLoaded = true

	d, ok := s.store.Load(ctx, s.id)
	if !ok {
		return
	}

	if d.Fields != nil {
		s.values = models.MergeDraft(d.Fields)

		if err := s.validate.Struct(s.values); err != nil {
			slog.Debug("restored draft does not validate yet",
				slog.String("session", s.id),
				slog.String("fields", strings.Join(utils.FailedFields(err), ", ")))
		}
	}

	if len(d.Keywords) > 0 {
		s.keywords = append([]string(nil), d.Keywords...)
	}

	slog.Info("draft restored", slog.String("session", s.id), slog.Int("keywords", len(s.keywords)))
}

// ApplyFields updates form fields from the client and arms the autosave.
func (s *Session) ApplyFields(changes map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range changes {
		if _, ok := s.values.Get(key); !ok {
			return appErrors.BadRequestError("Unknown form field: " + key)
		}
	}

	for key, value := range changes {
		s.values.Set(key, value)
	}

	s.scheduleSaveLocked()

	return nil
}

// AddKeyword appends a trimmed keyword. Empty input and duplicates are
// silently dropped.
func (s *Session) AddKeyword(keyword string) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.Contains(s.keywords, keyword) {
		return
	}

	s.keywords = append(s.keywords, keyword)
	s.scheduleSaveLocked()
}

func (s *Session) RemoveKeyword(keyword string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keywords = lo.Without(s.keywords, keyword)
	s.scheduleSaveLocked()
}

// Submit validates the model and posts it to the catalog. On validation
// failure the status turns error with the offending field keys and nothing
// touches the network or the draft slot. On success the draft is cleared and
// the pending autosave is cancelled, so a timer armed by a last-second edit
// cannot write the draft back.
func (s *Session) Submit(ctx context.Context) {
	s.mu.Lock()

	if err := s.validate.Struct(s.values); err != nil {
		fields := utils.FailedFields(err)
		s.status = models.StatusError
		s.errMsg = "Ошибка валидации: " + strings.Join(fields, ", ")
		s.mu.Unlock()

		metrics.SubmissionObserved("validation_error")

		return
	}

	s.status = models.StatusLoading
	s.errMsg = ""
	values := s.values
	keywords := append([]string(nil), s.keywords...)
	s.mu.Unlock()

	payload := catalog.BuildPayload(values, keywords)
	err := s.catalog.Create(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.status = models.StatusError
		s.errMsg = submitErrorMessage(err)

		metrics.SubmissionObserved("error")
		slog.Error("card submission failed", slog.String("session", s.id), slog.String("error", err.Error()))

		return
	}

	s.scheduler.Cancel()

	if err := s.store.Clear(ctx, s.id); err != nil {
		// Best-effort: a stale draft only means an extra restore next time.
		slog.Warn("failed to clear draft after submit", slog.String("session", s.id), slog.String("error", err.Error()))
	}

	s.status = models.StatusSuccess

	metrics.SubmissionObserved("success")
	slog.Info("card submitted", slog.String("session", s.id))
}

// Reset returns the session to its initial state: default values, no
// keywords, idle status, no error, no persisted draft. The pending autosave
// is cancelled so the cleared state cannot be resurrected by a late timer.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.Cancel()

	s.values = models.DefaultValues()
	s.keywords = nil
	s.status = models.StatusIdle
	s.errMsg = ""

	if err := s.store.Clear(ctx, s.id); err != nil {
		slog.Debug("draft clear failed", slog.String("session", s.id), slog.String("error", err.Error()))
	}
}

// Close tears the session down, cancelling any pending autosave.
func (s *Session) Close() {
	s.scheduler.Stop()
}

// State snapshots the session for the API layer.
func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	busy := make(map[models.AssistOp]bool, len(models.AssistOps))
	for _, op := range models.AssistOps {
		busy[op] = s.assistBusy[op]
	}

	return models.SessionState{
		ID:            s.id,
		Values:        s.values,
		Keywords:      append([]string{}, s.keywords...),
		Status:        s.status,
		ErrorMessage:  s.errMsg,
		AssistBusy:    busy,
		CategoryLabel: models.OptionLabel(models.CategoryOptions, s.values.Category),
		SeoTitleLen:   len([]rune(s.values.SeoTitle)),
		SeoDescLen:    len([]rune(s.values.SeoDescription)),
		Completeness:  completeness(s.values),
	}
}

// scheduleSaveLocked arms the trailing-edge autosave. Callers hold s.mu. The
// snapshot is taken when the timer fires, so a burst of edits persists the
// state after the last one.
func (s *Session) scheduleSaveLocked() {
	if !s.draftLoaded {
		return
	}

	s.scheduler.Schedule(s.saveNow)
}

func (s *Session) saveNow() {
	s.mu.Lock()
	fields := models.DraftFields(s.values)
	keywords := append([]string(nil), s.keywords...)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.store.Save(ctx, s.id, fields, keywords); err != nil {
		// Persistence is best-effort; the operator never sees this.
		slog.Debug("draft save failed", slog.String("session", s.id), slog.String("error", err.Error()))

		return
	}

	metrics.DraftSaved()
}

func submitErrorMessage(err error) string {
	if appErr, ok := appErrors.IsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}

	return "Неизвестная ошибка"
}
