package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	t.Parallel()

	sr := newStatusRecorder(httptest.NewRecorder())

	if got := sr.status(); got != http.StatusOK {
		t.Errorf("status() = %d, want %d", got, http.StatusOK)
	}
	if sr.committed() {
		t.Error("committed() = true before any write")
	}
}

func TestStatusRecorder_FirstHeaderWins(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sr := newStatusRecorder(rec)

	sr.WriteHeader(http.StatusConflict)
	sr.WriteHeader(http.StatusInternalServerError)

	if got := sr.status(); got != http.StatusConflict {
		t.Errorf("status() = %d, want %d", got, http.StatusConflict)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("recorder code = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestStatusRecorder_WriteCommitsAndCounts(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sr := newStatusRecorder(rec)

	_, _ = sr.Write([]byte("Board: sprint1\n"))
	_, _ = sr.Write([]byte("Status: OPEN\n"))

	if !sr.committed() {
		t.Error("committed() = false after Write")
	}
	if sr.bytes != 28 {
		t.Errorf("bytes = %d, want 28", sr.bytes)
	}
	if rec.Body.String() != "Board: sprint1\nStatus: OPEN\n" {
		t.Errorf("body = %q", rec.Body.String())
	}

	// A late WriteHeader after the body is ignored.
	sr.WriteHeader(http.StatusTeapot)
	if got := sr.status(); got != http.StatusOK {
		t.Errorf("status() = %d, want %d", got, http.StatusOK)
	}
}

func TestStatusRecorder_ResponseControllerReachesUnderlyingWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sr := newStatusRecorder(rec)

	if err := http.NewResponseController(sr).Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !rec.Flushed {
		t.Error("underlying recorder was not flushed")
	}
}
