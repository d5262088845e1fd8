package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStripDataURLHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"data:image/jpeg;base64,Zm9vYmFy", "Zm9vYmFy"},
		{"data:image/png;base64,Zm9vYmFy", "Zm9vYmFy"},
		{"Zm9vYmFy", "Zm9vYmFy"},
	}
	for _, c := range cases {
		if got := StripDataURLHeader(c.in); got != c.want {
			t.Fatalf("StripDataURLHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNewGeminiNamer_NilWithoutKey(t *testing.T) {
	if n := NewGeminiNamer(""); n != nil {
		t.Fatalf("expected nil namer without an API key")
	}
}

func TestSuggestName_SendsImageAndPrompt(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Coca-Cola 2L\n"}]}}]}`))
	}))
	defer srv.Close()

	n := NewGeminiNamer("test-key")
	n.baseURL = srv.URL
	n.client = srv.Client()

	name, err := n.SuggestName(context.Background(), "data:image/jpeg;base64,Zm9vYmFy")
	if err != nil {
		t.Fatalf("suggest name: %v", err)
	}
	if name != "Coca-Cola 2L" {
		t.Fatalf("expected trimmed suggestion, got %q", name)
	}

	if len(got.Contents) != 1 || len(got.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected request shape: %+v", got)
	}
	if got.Contents[0].Parts[0].InlineData == nil || got.Contents[0].Parts[0].InlineData.Data != "Zm9vYmFy" {
		t.Fatalf("expected stripped base64 payload, got %+v", got.Contents[0].Parts[0])
	}
	if !strings.Contains(got.Contents[0].Parts[1].Text, "supermercado") {
		t.Fatalf("expected portuguese prompt, got %q", got.Contents[0].Parts[1].Text)
	}
}

func TestSuggestName_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewGeminiNamer("test-key")
	n.baseURL = srv.URL
	n.client = srv.Client()

	if _, err := n.SuggestName(context.Background(), "Zm9v"); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}

func TestSuggestName_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	n := NewGeminiNamer("test-key")
	n.baseURL = srv.URL
	n.client = srv.Client()

	if _, err := n.SuggestName(context.Background(), "Zm9v"); err == nil {
		t.Fatalf("expected error on empty candidates")
	}
}
