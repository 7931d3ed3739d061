package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/events7/events7-api/internal/admission"
	"github.com/events7/events7-api/pkg/metrics"
)

// AdmissionGuard is the decision interface consulted before event creation.
type AdmissionGuard interface {
	Evaluate(ctx context.Context, payload *admission.Payload, forwarded []string, remoteIP string) bool
}

// AdmissionMiddleware consults the guard before the create handler runs.
// Denials stop the request with 403 before any persistence I/O.
func AdmissionMiddleware(guard AdmissionGuard, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := capturePayload(c)

		allowed := guard.Evaluate(c.Request.Context(), payload, forwardedIPs(c.Request), c.RemoteIP())
		if m != nil {
			m.ObserveAdmission(allowed)
		}
		if !allowed {
			writeForbidden(c)
			return
		}
		c.Next()
	}
}

// capturePayload reads the body for the guard and restores it for the
// handler's binding. An unreadable or unparseable body yields nil; the guard
// treats that as pass-through and binding rejects it afterwards.
func capturePayload(c *gin.Context) *admission.Payload {
	if c.Request.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Request.Body = io.NopCloser(bytes.NewReader(nil))
		return nil
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	if len(raw) == 0 {
		return nil
	}
	var payload admission.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return &payload
}

// forwardedIPs returns the proxy-reported client addresses in order.
func forwardedIPs(r *http.Request) []string {
	header := r.Header.Get("X-Forwarded-For")
	if header == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	ips := make([]string, 0, len(parts))
	for _, p := range parts {
		if ip := strings.TrimSpace(p); ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}
