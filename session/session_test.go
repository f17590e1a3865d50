package session

import "testing"

func TestCompressionThresholdValidation(t *testing.T) {
	s := New()
	if s.CompressionEnabled() {
		t.Fatalf("expected compression disabled initially")
	}
	if err := s.SetCompressionThreshold(-1); err == nil {
		t.Fatalf("expected error for negative threshold")
	}
	if err := s.SetCompressionThreshold(256); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.CompressionEnabled() {
		t.Fatalf("expected compression enabled after setting threshold")
	}
	if s.CompressionThreshold() != 256 {
		t.Fatalf("got %d want 256", s.CompressionThreshold())
	}
}

func TestFakenameInputValidation(t *testing.T) {
	s := New()
	if err := s.SetFakenameInput(""); err == nil {
		t.Fatalf("expected error for empty fakename")
	}
	if err := s.SetFakenameInput("x"); err == nil {
		t.Fatalf("expected error for single-character fakename")
	}
	if err := s.SetFakenameInput("Steve"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.GetPreference("FakenameInput")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Steve" {
		t.Fatalf("got %q want Steve", got)
	}
}

func TestGetPreferenceMissing(t *testing.T) {
	s := New()
	if _, err := s.GetPreference("NeverSet"); err == nil {
		t.Fatalf("expected error for unset preference")
	}
}

func TestWaitShutdown(t *testing.T) {
	s := New()
	done := make(chan struct{})
	go func() {
		s.WaitShutdown()
		close(done)
	}()
	s.Shutdown()
	<-done
	if !s.IsShutdown() {
		t.Fatalf("expected shutdown")
	}
}
