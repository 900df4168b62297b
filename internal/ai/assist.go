package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	appErrors "cardcomposer/internal/errors"

	"github.com/microcosm-cc/bluemonday"
)

// FlexString decodes a JSON string or number into text, since the model does
// not always quote numeric answers like prices.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}

	return fmt.Errorf("value %s is neither string nor number", string(data))
}

// GeneratedFields is the sparse result of the generate-all operation. Absent
// fields leave the current form value untouched.
type GeneratedFields struct {
	DescriptionShort   string     `json:"description_short"`
	DescriptionLong    string     `json:"description_long"`
	Code               string     `json:"code"`
	MarketplacePrice   FlexString `json:"marketplace_price"`
	SeoTitle           string     `json:"seo_title"`
	SeoDescription     string     `json:"seo_description"`
	SeoKeywords        []string   `json:"seo_keywords"`
	CategoryName       string     `json:"category_name"`
	UnitName           string     `json:"unit_name"`
	GlobalCategoryName string     `json:"global_category_name"`
}

type GeneratedSEO struct {
	SeoTitle       string   `json:"seo_title"`
	SeoDescription string   `json:"seo_description"`
	SeoKeywords    []string `json:"seo_keywords"`
}

// Service runs the enrichment operations on top of a Completer. All returned
// text is stripped of HTML before it can reach a form field.
type Service struct {
	completer Completer
	sanitizer *bluemonday.Policy
}

func NewService(completer Completer) *Service {
	return &Service{
		completer: completer,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *Service) GenerateAll(ctx context.Context, name string) (*GeneratedFields, error) {

	prompt := fmt.Sprintf(`Ты помогаешь заполнить карточку товара для маркетплейса.
Товар: "%s"
Ответь строго в формате JSON без markdown:
{
  "description_short": "краткое описание 1-2 предложения",
  "description_long": "подробное описание 3-5 предложений с преимуществами",
  "code": "артикул из букв и цифр",
  "marketplace_price": "рекомендуемая рыночная цена в рублях, только число",
  "seo_title": "SEO заголовок, СТРОГО не более 60 символов",
  "seo_description": "SEO описание, СТРОГО от 150 до 160 символов",
  "seo_keywords": ["ключ1", "ключ2", "ключ3", "ключ4", "ключ5"],
  "category_name": "подходящая категория из: Электроника, Одежда, Дом и сад, Спорт, Красота",
  "unit_name": "единица измерения из: шт., кг, л, м",
  "global_category_name": "глобальная категория из: Товары для дома, Электроника и техника, Одежда и обувь, Красота и здоровье, Детские товары, Спорт и отдых, Продукты питания, Автотовары, Цифровые товары, Услуги"
}`, name)

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var fields GeneratedFields
	if err := parseJSON(text, &fields); err != nil {
		return nil, err
	}

	fields.DescriptionShort = s.clean(fields.DescriptionShort)
	fields.DescriptionLong = s.clean(fields.DescriptionLong)
	fields.SeoTitle = s.clean(fields.SeoTitle)
	fields.SeoDescription = s.clean(fields.SeoDescription)

	return &fields, nil
}

func (s *Service) GenerateSEO(ctx context.Context, name, descriptionShort string) (*GeneratedSEO, error) {

	prompt := fmt.Sprintf(`Сгенерируй SEO для товара "%s".
Краткое описание: "%s"
ВАЖНО: seo_title СТРОГО не более 60 символов, seo_description СТРОГО от 150 до 160 символов.
Формат JSON без markdown:
{
  "seo_title": "...",
  "seo_description": "...",
  "seo_keywords": ["...","...","...","...","..."]
}`, name, descriptionShort)

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var seo GeneratedSEO
	if err := parseJSON(text, &seo); err != nil {
		return nil, err
	}

	seo.SeoTitle = s.clean(seo.SeoTitle)
	seo.SeoDescription = s.clean(seo.SeoDescription)

	return &seo, nil
}

func (s *Service) Prettify(ctx context.Context, text string) (string, error) {

	prompt := fmt.Sprintf("Улучши этот текст для карточки товара. Сделай его более привлекательным и читабельным. Верни только текст без кавычек и markdown:\n\n%s", text)

	result, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	return s.clean(result), nil
}

func (s *Service) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}

// parseJSON strips surrounding code-fence markers and decodes the remainder.
// Anything that still is not valid JSON is a hard failure for the operation.
func parseJSON(text string, dest any) error {

	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		return appErrors.ParseError("AI response is not valid JSON").WithError(err)
	}

	return nil
}
