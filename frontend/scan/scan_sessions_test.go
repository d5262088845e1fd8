package scan

import (
	"testing"
	"time"
)

func TestResolve_FirstDecodeWins(t *testing.T) {
	s := NewSessions(time.Minute)
	id := s.Open()

	if !s.Resolve(id, Result{Code: "7891000100103"}) {
		t.Fatalf("first decode should resolve the session")
	}
	if s.Resolve(id, Result{Code: "7894900011517"}) {
		t.Fatalf("second decode should be dropped")
	}

	got, ok := s.Peek(id)
	if !ok || got.Code != "7891000100103" {
		t.Fatalf("expected first code kept, got %+v ok=%v", got, ok)
	}
}

func TestResolve_UnknownSessionIgnored(t *testing.T) {
	s := NewSessions(time.Minute)
	if s.Resolve("nope", Result{Code: "123"}) {
		t.Fatalf("unknown session should be dropped")
	}
}

func TestResolve_EmptyCodeRejected(t *testing.T) {
	s := NewSessions(time.Minute)
	id := s.Open()
	if s.Resolve(id, Result{}) {
		t.Fatalf("empty code should be rejected")
	}
	if _, ok := s.Peek(id); ok {
		t.Fatalf("session should stay unresolved")
	}
}

func TestTake_ConsumesSession(t *testing.T) {
	s := NewSessions(time.Minute)
	id := s.Open()
	s.Resolve(id, Result{Code: "123", Image: "data:image/jpeg;base64,Zm9v"})

	got, ok := s.Take(id)
	if !ok || got.Code != "123" || got.Image == "" {
		t.Fatalf("expected resolved result, got %+v ok=%v", got, ok)
	}
	if _, ok := s.Take(id); ok {
		t.Fatalf("second take should fail")
	}
	if s.Resolve(id, Result{Code: "456"}) {
		t.Fatalf("late decode after take should be dropped")
	}
}

func TestTake_OpenSessionNotConsumable(t *testing.T) {
	s := NewSessions(time.Minute)
	id := s.Open()
	if _, ok := s.Take(id); ok {
		t.Fatalf("unresolved session should not be consumable")
	}
	if !s.Resolve(id, Result{Code: "123"}) {
		t.Fatalf("session should still accept its first decode")
	}
}

func TestExpiredSessionsPurged(t *testing.T) {
	s := NewSessions(time.Minute)
	current := time.Unix(1700000000, 0)
	s.now = func() time.Time { return current }

	id := s.Open()
	current = current.Add(2 * time.Minute)

	if s.Resolve(id, Result{Code: "123"}) {
		t.Fatalf("expired session should be dropped")
	}
}

func TestClose_DropsInAnyState(t *testing.T) {
	s := NewSessions(time.Minute)
	id := s.Open()
	s.Resolve(id, Result{Code: "123"})
	s.Close(id)
	if _, ok := s.Peek(id); ok {
		t.Fatalf("closed session should be gone")
	}
}

func TestSampleCodes(t *testing.T) {
	codes := SampleCodes()
	if len(codes) != 4 {
		t.Fatalf("expected 4 sample codes, got %d", len(codes))
	}
	if codes[len(codes)-1] != "SAMPLE-QR-CODE" {
		t.Fatalf("expected QR sample last, got %q", codes[len(codes)-1])
	}
}
