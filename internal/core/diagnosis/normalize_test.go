package diagnosis

import (
	"reflect"
	"testing"

	"github.com/dermassist/dermassist/internal/core/models"
)

func TestNormalizeResult_EmptyPayloadGetsAllDefaults(t *testing.T) {
	profile := models.Profile{Name: "Ana", Age: 31}
	res := normalizeResult(rawResponse{}, profile)

	if res.PredictedDisease != models.UnknownDisease {
		t.Errorf("PredictedDisease = %q, want %q", res.PredictedDisease, models.UnknownDisease)
	}
	if res.ConfidenceScore != 0 {
		t.Errorf("ConfidenceScore = %d, want 0", res.ConfidenceScore)
	}
	if res.AssistantMessage != models.NoDiagnosisMessage {
		t.Errorf("AssistantMessage = %q, want default sentinel", res.AssistantMessage)
	}
	if res.SuggestedActions == nil || len(res.SuggestedActions) != 0 {
		t.Errorf("SuggestedActions = %#v, want empty non-nil slice", res.SuggestedActions)
	}
	if res.UserInfo != profile {
		t.Errorf("UserInfo = %+v, want submitted profile", res.UserInfo)
	}
}

func TestNormalizeResult_ConfidenceRounding(t *testing.T) {
	cases := []struct {
		name string
		diag *rawDiagnosis
		want int
	}{
		{"rounds up", &rawDiagnosis{ConfidenceScore: 72.6}, 73},
		{"rounds down", &rawDiagnosis{ConfidenceScore: 87.4}, 87},
		{"negative floors to zero", &rawDiagnosis{ConfidenceScore: -5}, 0},
		{"missing defaults to zero", nil, 0},
		{"clamped at hundred", &rawDiagnosis{ConfidenceScore: 150.2}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := normalizeResult(rawResponse{Diagnosis: tc.diag}, models.Profile{})
			if res.ConfidenceScore != tc.want {
				t.Errorf("ConfidenceScore = %d, want %d", res.ConfidenceScore, tc.want)
			}
		})
	}
}

func TestNormalizeResult_FullPayload(t *testing.T) {
	raw := rawResponse{
		Diagnosis: &rawDiagnosis{
			PredictedDisease: "eczema",
			ConfidenceScore:  87.4,
			ChatbotResponse:  "Likely eczema",
		},
		SuggestedActions: []string{"see a dermatologist"},
	}
	profile := models.Profile{Name: "Ana", Age: 31}

	res := normalizeResult(raw, profile)
	want := &models.Result{
		PredictedDisease: "eczema",
		ConfidenceScore:  87,
		AssistantMessage: "Likely eczema",
		SuggestedActions: []string{"see a dermatologist"},
		UserInfo:         profile,
	}
	if !reflect.DeepEqual(res, want) {
		t.Errorf("normalizeResult() = %+v, want %+v", res, want)
	}
}

func TestNormalizeChat(t *testing.T) {
	t.Run("prefers chat_response", func(t *testing.T) {
		raw := rawResponse{
			ChatResponse:     &rawChat{ChatbotResponse: "Use a gentle moisturizer."},
			Text:             "ignored",
			SuggestedActions: []string{"more_details"},
		}
		reply := normalizeChat(raw)
		if reply.Message != "Use a gentle moisturizer." {
			t.Errorf("Message = %q", reply.Message)
		}
		if len(reply.SuggestedActions) != 1 || reply.SuggestedActions[0] != "more_details" {
			t.Errorf("SuggestedActions = %#v", reply.SuggestedActions)
		}
	})

	t.Run("falls back to text field", func(t *testing.T) {
		reply := normalizeChat(rawResponse{Text: "I specialize only in skin health."})
		if reply.Message != "I specialize only in skin health." {
			t.Errorf("Message = %q", reply.Message)
		}
	})

	t.Run("empty payload gets sentinel", func(t *testing.T) {
		reply := normalizeChat(rawResponse{})
		if reply.Message != models.NoDiagnosisMessage {
			t.Errorf("Message = %q, want sentinel", reply.Message)
		}
		if reply.SuggestedActions == nil {
			t.Error("SuggestedActions is nil, want empty slice")
		}
	})
}
