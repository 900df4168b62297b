package models

// Draft is the persisted snapshot of in-progress edits. Fields is kept loosely
// typed on purpose: whatever shape an earlier client wrote, restore coerces it
// back into the all-strings form model instead of failing the load.
type Draft struct {
	Fields   map[string]any `json:"fields"`
	Keywords []string       `json:"keywords"`
}

// DraftFields converts current form values into the persisted fields shape.
func DraftFields(values FormValues) map[string]any {
	fields := make(map[string]any, len(FieldNames))

	for _, key := range FieldNames {
		v, _ := values.Get(key)
		fields[key] = v
	}

	return fields
}
