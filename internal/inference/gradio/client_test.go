package gradio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/biolens-ai/bioradar/internal/domain"
)

func testInput() *domain.BiomarkerInput {
	return &domain.BiomarkerInput{
		Albumin: 4.5, Creatinine: 1.5, Glucose: 160, CRP: 2.5, MCV: 150,
		RDW: 15, ALP: 146, WBC: 10.5, Lymphocytes: 38,
		Age: 30, Gender: domain.GenderMale, Height: 123, Weight: 60,
	}
}

func TestClient_Generate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gradio_api/call/respond", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("submit method = %s, want POST", r.Method)
		}
		var req struct {
			Data []any `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Data) != 13 {
			t.Errorf("len(data) = %d, want 13", len(req.Data))
		}
		if req.Data[10] != "Male" {
			t.Errorf("data[10] = %v, want Male", req.Data[10])
		}
		json.NewEncoder(w).Encode(map[string]string{"event_id": "ev-1"})
	})
	mux.HandleFunc("/gradio_api/call/respond/ev-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("event: complete\ndata: [\"# Health Report\\nNormal Ranges\"]\n\n"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, "respond", 5)
	text, err := client.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.HasPrefix(text, "# Health Report") {
		t.Errorf("Generate() = %q", text)
	}
}

func TestClient_GenerateErrorEvent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/gradio_api/call/respond", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"event_id": "ev-2"})
	})
	mux.HandleFunc("/gradio_api/call/respond/ev-2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("event: error\ndata: \"queue is full\"\n\n"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, "respond", 5)
	_, err := client.Generate(context.Background(), testInput())
	if err == nil {
		t.Fatal("Generate() expected error")
	}
	if !strings.Contains(err.Error(), "queue is full") {
		t.Errorf("error = %v, want queue detail", err)
	}
}

func TestClient_GenerateSubmitFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "space is sleeping", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "respond", 5)
	_, err := client.Generate(context.Background(), testInput())
	if err == nil {
		t.Fatal("Generate() expected error")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("error = %v, want status detail", err)
	}
}
