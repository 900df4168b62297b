package models

// SubmitStatus tracks the card submission state machine.
type SubmitStatus string

const (
	StatusIdle    SubmitStatus = "idle"
	StatusLoading SubmitStatus = "loading"
	StatusSuccess SubmitStatus = "success"
	StatusError   SubmitStatus = "error"
)

// AssistOp identifies an AI assist operation. The set is fixed so busy-flag
// handling stays exhaustive instead of an open string-keyed map.
type AssistOp string

const (
	OpAll              AssistOp = "all"
	OpSEO              AssistOp = "seo"
	OpDescriptionShort AssistOp = "description_short"
	OpDescriptionLong  AssistOp = "description_long"
)

// AssistOps lists every operation, for building complete busy-flag views.
var AssistOps = []AssistOp{OpAll, OpSEO, OpDescriptionShort, OpDescriptionLong}

// PrettifyOp maps a prettify target field to its assist operation.
func PrettifyOp(field string) (AssistOp, bool) {
	switch field {
	case "description_short":
		return OpDescriptionShort, true
	case "description_long":
		return OpDescriptionLong, true
	}

	return "", false
}
