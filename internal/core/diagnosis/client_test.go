package diagnosis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dermassist/dermassist/internal/core/models"
)

func TestChat_SendsFieldsWithoutImagePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not a multipart request: %v", err)
		}
		if _, _, err := r.FormFile("image"); err == nil {
			t.Error("unexpected image part in chat request")
		}
		if r.FormValue("message") != "is eczema contagious?" {
			t.Errorf("message = %q", r.FormValue("message"))
		}
		if r.FormValue("session_id") != "sess-9" {
			t.Errorf("session_id = %q", r.FormValue("session_id"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"chat_response": {"chatbot_response": "No, eczema is not contagious."},
			"suggested_actions": ["learn_more"]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	reply, err := c.Chat(context.Background(), "is eczema contagious?", "sess-9", models.Profile{Name: "Ana", Age: 31})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply.Message != "No, eczema is not contagious." {
		t.Errorf("Message = %q", reply.Message)
	}
	if len(reply.SuggestedActions) != 1 || reply.SuggestedActions[0] != "learn_more" {
		t.Errorf("SuggestedActions = %#v", reply.SuggestedActions)
	}
}

func TestDiagnose_OmitsSessionFieldWhenUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not a multipart request: %v", err)
		}
		if _, ok := r.MultipartForm.Value["session_id"]; ok {
			t.Error("session_id field present, want omitted")
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	in := SubmitInput{Image: []byte("img"), ImageName: "a.png", Symptoms: "rash", Profile: models.Profile{Name: "Ana"}}
	if _, err := c.Diagnose(context.Background(), in, nil); err != nil {
		t.Fatalf("Diagnose() error = %v", err)
	}
}

func TestDiagnose_UndecodableSuccessBodyIsSubmissionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	in := SubmitInput{Image: []byte("img"), ImageName: "a.png", Symptoms: "rash"}
	_, err := c.Diagnose(context.Background(), in, nil)

	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SubmissionError", err)
	}
	if se.Message != FallbackErrorMessage {
		t.Errorf("Message = %q, want fallback", se.Message)
	}
}

func TestDiagnose_ErrorBodyWithoutMessageUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail": "upstream exploded"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	in := SubmitInput{Image: []byte("img"), ImageName: "a.png", Symptoms: "rash"}
	_, err := c.Diagnose(context.Background(), in, nil)

	var se *SubmissionError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SubmissionError", err)
	}
	if se.Message != FallbackErrorMessage {
		t.Errorf("Message = %q, want fallback", se.Message)
	}
	if se.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d", se.StatusCode)
	}
}
