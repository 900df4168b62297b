package form

import (
	"context"
	"log/slog"

	"cardcomposer/internal/ai"
	appErrors "cardcomposer/internal/errors"
	"cardcomposer/internal/metrics"
	"cardcomposer/internal/models"

	"github.com/samber/lo"
)

// AssistService is what the session needs from the AI layer.
type AssistService interface {
	GenerateAll(ctx context.Context, name string) (*ai.GeneratedFields, error)
	GenerateSEO(ctx context.Context, name, descriptionShort string) (*ai.GeneratedSEO, error)
	Prettify(ctx context.Context, text string) (string, error)
}

// GenerateAll fills every generatable field from the product name. Only the
// fields present in the result are applied; human-readable category, unit and
// global-category names are mapped to their ids, unknown names are ignored.
func (s *Session) GenerateAll(ctx context.Context) error {
	s.mu.Lock()

	name := s.values.Name
	if name == "" {
		s.mu.Unlock()
		return appErrors.ValidationError("Заполните название товара")
	}

	if err := s.markBusyLocked(models.OpAll); err != nil {
		s.mu.Unlock()
		return err
	}

	s.mu.Unlock()
	defer s.clearBusy(models.OpAll)

	result, err := s.assist.GenerateAll(ctx, name)
	if err != nil {
		metrics.AssistObserved(string(models.OpAll), "error")
		slog.Error("generate-all failed", slog.String("session", s.id), slog.String("error", err.Error()))

		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if result.DescriptionShort != "" {
		s.values.DescriptionShort = result.DescriptionShort
	}
	if result.DescriptionLong != "" {
		s.values.DescriptionLong = result.DescriptionLong
	}
	if result.Code != "" {
		s.values.Code = result.Code
	}
	if result.MarketplacePrice != "" {
		s.values.MarketplacePrice = string(result.MarketplacePrice)
	}
	if result.SeoTitle != "" {
		s.values.SeoTitle = result.SeoTitle
	}
	if result.SeoDescription != "" {
		s.values.SeoDescription = result.SeoDescription
	}
	if len(result.SeoKeywords) > 0 {
		s.keywords = lo.Uniq(result.SeoKeywords)
	}
	if id, ok := models.CategoryNameToID[result.CategoryName]; ok {
		s.values.Category = id
	}
	if id, ok := models.UnitNameToID[result.UnitName]; ok {
		s.values.Unit = id
	}
	if id, ok := models.GlobalCategoryNameToID[result.GlobalCategoryName]; ok {
		s.values.GlobalCategoryID = id
	}

	s.scheduleSaveLocked()

	metrics.AssistObserved(string(models.OpAll), "success")

	return nil
}

// GenerateSEO fills the SEO title and description and replaces the keyword
// list when the result carries one.
func (s *Session) GenerateSEO(ctx context.Context) error {
	s.mu.Lock()

	name := s.values.Name
	if name == "" {
		s.mu.Unlock()
		return appErrors.ValidationError("Заполните название товара")
	}

	descriptionShort := s.values.DescriptionShort

	if err := s.markBusyLocked(models.OpSEO); err != nil {
		s.mu.Unlock()
		return err
	}

	s.mu.Unlock()
	defer s.clearBusy(models.OpSEO)

	result, err := s.assist.GenerateSEO(ctx, name, descriptionShort)
	if err != nil {
		metrics.AssistObserved(string(models.OpSEO), "error")
		slog.Error("generate-seo failed", slog.String("session", s.id), slog.String("error", err.Error()))

		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if result.SeoTitle != "" {
		s.values.SeoTitle = result.SeoTitle
	}
	if result.SeoDescription != "" {
		s.values.SeoDescription = result.SeoDescription
	}
	if len(result.SeoKeywords) > 0 {
		s.keywords = lo.Uniq(result.SeoKeywords)
	}

	s.scheduleSaveLocked()

	metrics.AssistObserved(string(models.OpSEO), "success")

	return nil
}

// Prettify rewrites one description field. The target must hold non-empty
// text; on any failure the field keeps its current value.
func (s *Session) Prettify(ctx context.Context, field string) error {

	op, ok := models.PrettifyOp(field)
	if !ok {
		return appErrors.BadRequestError("Field cannot be prettified: " + field)
	}

	s.mu.Lock()

	text, _ := s.values.Get(field)
	if text == "" {
		s.mu.Unlock()
		return appErrors.ValidationError("Заполните поле перед улучшением")
	}

	if err := s.markBusyLocked(op); err != nil {
		s.mu.Unlock()
		return err
	}

	s.mu.Unlock()
	defer s.clearBusy(op)

	result, err := s.assist.Prettify(ctx, text)
	if err != nil {
		metrics.AssistObserved(string(op), "error")
		slog.Error("prettify failed",
			slog.String("session", s.id),
			slog.String("field", field),
			slog.String("error", err.Error()))

		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values.Set(field, result)
	s.scheduleSaveLocked()

	metrics.AssistObserved(string(op), "success")

	return nil
}

// AssistBusy reports whether the given operation is currently running.
func (s *Session) AssistBusy(op models.AssistOp) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.assistBusy[op]
}

func (s *Session) markBusyLocked(op models.AssistOp) error {
	if s.assistBusy[op] {
		return appErrors.ConflictError("Operation already in progress: " + string(op))
	}

	s.assistBusy[op] = true

	return nil
}

// clearBusy runs on every exit path of an assist operation.
func (s *Session) clearBusy(op models.AssistOp) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assistBusy[op] = false
}
