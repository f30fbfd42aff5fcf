package tui

import (
	"strings"
	"testing"

	"github.com/dermassist/dermassist/internal/core/diagnosis"
	"github.com/dermassist/dermassist/internal/core/models"
)

func TestParseAge(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"31", 31},
		{"", 0},
		{"not a number", 0},
		{"-4", 0},
	}
	for _, tc := range cases {
		if got := parseAge(tc.in); got != tc.want {
			t.Errorf("parseAge(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestValidateAge(t *testing.T) {
	if err := validateAge(""); err != nil {
		t.Errorf("empty age should be allowed: %v", err)
	}
	if err := validateAge("45"); err != nil {
		t.Errorf("validateAge(45) = %v", err)
	}
	for _, bad := range []string{"-1", "121", "abc"} {
		if err := validateAge(bad); err == nil {
			t.Errorf("validateAge(%q) = nil, want error", bad)
		}
	}
}

func TestRenderResult_ShowsAllFields(t *testing.T) {
	res := &models.Result{
		PredictedDisease: "eczema",
		ConfidenceScore:  87,
		AssistantMessage: "Likely eczema",
		SuggestedActions: []string{"see a dermatologist"},
		UserInfo:         models.Profile{Name: "Ana", Age: 31},
	}

	out := renderResult(res, 80)
	for _, want := range []string{"eczema", "87% confidence", "Likely eczema", "see a dermatologist", "Ana"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered result missing %q:\n%s", want, out)
		}
	}
}

func TestStatusRelay_DropsWhenNoChannel(t *testing.T) {
	relay := &statusRelay{}
	// Must not block or panic without an active submission channel.
	relay.send(diagnosis.Status{Phase: diagnosis.PhaseSubmitting, Percent: 10})

	ch := make(chan diagnosis.Status, 4)
	relay.set(ch)
	relay.send(diagnosis.Status{Phase: diagnosis.PhaseSubmitting, Percent: 20})

	got := <-ch
	if got.Percent != 20 {
		t.Errorf("Percent = %d, want 20", got.Percent)
	}

	relay.set(nil)
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after relay.set(nil)")
	}
}
