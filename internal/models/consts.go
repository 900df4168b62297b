package models

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var CategoryOptions = []Option{
	{Value: "2477", Label: "Электроника"},
	{Value: "2478", Label: "Одежда"},
	{Value: "2479", Label: "Дом и сад"},
	{Value: "2480", Label: "Спорт"},
	{Value: "2481", Label: "Красота"},
}

var UnitOptions = []Option{
	{Value: "116", Label: "шт."},
	{Value: "117", Label: "кг"},
	{Value: "118", Label: "л"},
	{Value: "119", Label: "м"},
}

var CashbackOptions = []Option{
	{Value: "lcard_cashback", Label: "L-Card кэшбэк"},
	{Value: "percent", Label: "Процент"},
	{Value: "fixed", Label: "Фиксированный"},
}

var GlobalCategoryOptions = []Option{
	{Value: "127", Label: "Товары для дома"},
	{Value: "128", Label: "Электроника и техника"},
	{Value: "129", Label: "Одежда и обувь"},
	{Value: "130", Label: "Красота и здоровье"},
	{Value: "131", Label: "Детские товары"},
	{Value: "132", Label: "Спорт и отдых"},
	{Value: "133", Label: "Продукты питания"},
	{Value: "134", Label: "Автотовары"},
	{Value: "135", Label: "Цифровые товары"},
	{Value: "136", Label: "Услуги"},
}

var TypeLabels = map[string]string{
	"product": "Товар",
	"service": "Услуга",
	"digital": "Цифровой товар",
}

var UnitLabels = map[string]string{
	"116": "шт.",
	"117": "кг",
	"118": "л",
	"119": "м",
}

var CashbackLabels = map[string]string{
	"lcard_cashback": "L-Card кэшбэк",
	"percent":        "Процент",
	"fixed":          "Фиксированный",
}

// Name-to-id lookups used when the AI assistant answers with human-readable
// names. Unknown names are ignored by the caller and leave the selection as is.
var CategoryNameToID = map[string]string{
	"Электроника": "2477",
	"Одежда":      "2478",
	"Дом и сад":   "2479",
	"Спорт":       "2480",
	"Красота":     "2481",
}

var UnitNameToID = map[string]string{
	"шт.": "116",
	"кг":  "117",
	"л":   "118",
	"м":   "119",
}

var GlobalCategoryNameToID = map[string]string{
	"Товары для дома":        "127",
	"Электроника и техника":  "128",
	"Одежда и обувь":         "129",
	"Красота и здоровье":     "130",
	"Детские товары":         "131",
	"Спорт и отдых":          "132",
	"Продукты питания":       "133",
	"Автотовары":             "134",
	"Цифровые товары":        "135",
	"Услуги":                 "136",
}

// OptionLabel returns the label for a value in an option list.
func OptionLabel(options []Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}

	return ""
}
