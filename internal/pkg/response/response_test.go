package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestErrorWritesJSONBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "bad input")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "bad input" {
		t.Fatalf("error = %q, want %q", body.Error, "bad input")
	}
}

func TestAttachmentSetsHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, "text/markdown; charset=utf-8", "interview-feedback.md", []byte("# hi"))

	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="interview-feedback.md"` {
		t.Fatalf("content disposition = %q", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "4" {
		t.Fatalf("content length = %q", got)
	}
	if rec.Body.String() != "# hi" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
