package form

import "cardcomposer/internal/models"

// completeness mirrors the card-completeness widget: six key fields, each
// either filled or not.
func completeness(values models.FormValues) models.Completeness {

	checks := []models.CompletenessCheck{
		{Key: "name", Label: "Название", Filled: values.Name != ""},
		{Key: "marketplace_price", Label: "Цена", Filled: values.MarketplacePrice != ""},
		{Key: "description_short", Label: "Кр. описание", Filled: values.DescriptionShort != ""},
		{Key: "description_long", Label: "Подр. описание", Filled: values.DescriptionLong != ""},
		{Key: "code", Label: "Артикул", Filled: values.Code != ""},
		{Key: "category", Label: "Категория", Filled: values.Category != ""},
	}

	filled := 0
	for _, c := range checks {
		if c.Filled {
			filled++
		}
	}

	return models.Completeness{
		Filled: filled,
		Total:  len(checks),
		Checks: checks,
	}
}
