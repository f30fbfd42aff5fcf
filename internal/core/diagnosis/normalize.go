package diagnosis

import (
	"math"

	"github.com/dermassist/dermassist/internal/core/models"
)

// rawResponse mirrors the service's success payload. Every field may be
// absent; normalization fills the gaps so presentation never sees a hole.
type rawResponse struct {
	Diagnosis        *rawDiagnosis `json:"diagnosis"`
	ChatResponse     *rawChat      `json:"chat_response"`
	SuggestedActions []string      `json:"suggested_actions"`
	SessionID        string        `json:"session_id"`
	Status           string        `json:"status"`
	Message          string        `json:"message"`
	Text             string        `json:"text"`
}

type rawDiagnosis struct {
	PredictedDisease string  `json:"predicted_disease"`
	ConfidenceScore  float64 `json:"confidence_score"`
	ChatbotResponse  string  `json:"chatbot_response"`
}

type rawChat struct {
	ChatbotResponse string `json:"chatbot_response"`
}

// errorResponse mirrors the service's failure payload.
type errorResponse struct {
	Message string `json:"message"`
}

// normalizeResult converts a raw payload into a fully-populated Result.
// Missing fields take their documented defaults; the confidence score is
// rounded to the nearest integer with negatives floored to zero.
func normalizeResult(raw rawResponse, profile models.Profile) *models.Result {
	res := &models.Result{
		PredictedDisease: models.UnknownDisease,
		AssistantMessage: models.NoDiagnosisMessage,
		SuggestedActions: []string{},
		UserInfo:         profile,
	}

	if d := raw.Diagnosis; d != nil {
		if d.PredictedDisease != "" {
			res.PredictedDisease = d.PredictedDisease
		}
		if d.ConfidenceScore > 0 {
			score := int(math.Round(d.ConfidenceScore))
			if score > 100 {
				score = 100
			}
			res.ConfidenceScore = score
		}
		if d.ChatbotResponse != "" {
			res.AssistantMessage = d.ChatbotResponse
		}
	}
	if len(raw.SuggestedActions) > 0 {
		res.SuggestedActions = raw.SuggestedActions
	}
	return res
}

// normalizeChat converts a raw payload from a text-only exchange.
func normalizeChat(raw rawResponse) *models.ChatReply {
	reply := &models.ChatReply{
		Message:          models.NoDiagnosisMessage,
		SuggestedActions: []string{},
	}
	switch {
	case raw.ChatResponse != nil && raw.ChatResponse.ChatbotResponse != "":
		reply.Message = raw.ChatResponse.ChatbotResponse
	case raw.Text != "":
		reply.Message = raw.Text
	}
	if len(raw.SuggestedActions) > 0 {
		reply.SuggestedActions = raw.SuggestedActions
	}
	return reply
}
