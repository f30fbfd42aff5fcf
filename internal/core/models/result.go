package models

// Sentinel values used when the service omits a field. Normalization
// guarantees a Result never carries empty strings or nil slices into the
// presentation layer.
const (
	UnknownDisease     = "unknown"
	NoDiagnosisMessage = "No diagnosis available."
)

// Result is the fully-populated diagnosis shape handed to presentation.
// Every field is always set after normalization, regardless of which parts
// of the raw payload were present.
type Result struct {
	PredictedDisease string
	ConfidenceScore  int // 0-100
	AssistantMessage string
	SuggestedActions []string
	UserInfo         Profile
}

// ChatReply is the normalized shape of a text-only exchange.
type ChatReply struct {
	Message          string
	SuggestedActions []string
}
