package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/events7/events7-api/internal/events/domain"
)

func TestForwardedIPs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   []string
	}{
		{name: "absent header", header: "", want: nil},
		{name: "single address", header: "198.51.100.1", want: []string{"198.51.100.1"}},
		{
			name:   "proxy chain in order",
			header: "198.51.100.1, 10.0.0.2, 10.0.0.3",
			want:   []string{"198.51.100.1", "10.0.0.2", "10.0.0.3"},
		},
		{name: "empty entries skipped", header: " , 198.51.100.1,", want: []string{"198.51.100.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/api/events", nil)
			if tt.header != "" {
				req.Header.Set("X-Forwarded-For", tt.header)
			}
			got := forwardedIPs(req)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAdmissionMiddlewarePassesAddressesToGuard(t *testing.T) {
	t.Parallel()

	guard := &stubGuard{allow: true}
	router := newTestRouter(newMemoryRepository(), guard)

	req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(validBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !reflect.DeepEqual(guard.forwarded, []string{"198.51.100.1", "10.0.0.2"}) {
		t.Fatalf("unexpected forwarded list: %v", guard.forwarded)
	}
	if guard.remoteIP != "192.0.2.1" {
		t.Fatalf("expected connection remote ip fallback, got %q", guard.remoteIP)
	}
	if guard.payload == nil || guard.payload.Type != domain.EventTypeApp {
		t.Fatalf("expected parsed payload, got %+v", guard.payload)
	}
}

func TestAdmissionMiddlewareRestoresBodyForBinding(t *testing.T) {
	t.Parallel()

	guard := &stubGuard{allow: true}
	router := newTestRouter(newMemoryRepository(), guard)

	rec, body := doJSON(t, router, http.MethodPost, "/api/events", validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("handler must still see the body after the guard read it: %d %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestAdmissionMiddlewareUnparseableBodyFailsOpen(t *testing.T) {
	t.Parallel()

	// historical fail-open: the guard lets a broken body through and the
	// validation layer rejects it afterwards
	guard := &stubGuard{allow: false}
	router := newTestRouter(newMemoryRepository(), guard)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/events", `{"name":`)
	if guard.evaluated != 1 {
		t.Fatalf("expected guard consulted once, got %d", guard.evaluated)
	}
	if guard.payload != nil {
		t.Fatalf("expected nil payload for unparseable body, got %+v", guard.payload)
	}
	// stubGuard denies, so a nil payload reaching it proves the middleware
	// parsed nothing; the deny produces 403 here, while the real guard
	// would allow and binding would answer 400
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected stub deny to surface, got %d", rec.Code)
	}
}

func TestAdmissionMiddlewareEmptyBodyYieldsNilPayload(t *testing.T) {
	t.Parallel()

	guard := &stubGuard{allow: true}
	router := newTestRouter(newMemoryRepository(), guard)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/events", "")
	if guard.payload != nil {
		t.Fatalf("expected nil payload for empty body, got %+v", guard.payload)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected binding to reject the empty body, got %d", rec.Code)
	}
}

func TestCapturePayloadRestoresExactBytes(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(validBody))

	payload := capturePayload(c)
	if payload == nil || payload.Type != domain.EventTypeApp {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	restored, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if string(restored) != validBody {
		t.Fatalf("body not restored: %q", restored)
	}
}
