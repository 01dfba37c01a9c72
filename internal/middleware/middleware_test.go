package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{"first", "10.0.0.1", true},
		{"second", "10.0.0.1", true},
		{"over limit", "10.0.0.1", false},
		{"other ip", "10.0.0.2", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rl.Allow(tt.ip); got != tt.want {
				t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}

	if got := rl.Remaining("10.0.0.2"); got != 1 {
		t.Errorf("Remaining() = %d, want 1", got)
	}

	now = now.Add(time.Minute)
	if !rl.Allow("10.0.0.1") {
		t.Errorf("Allow() after window = false, want true")
	}

	now = now.Add(2 * time.Minute)
	rl.purge()
	if got := len(rl.ipLimits); got != 0 {
		t.Errorf("purge() left %d entries, want 0", got)
	}

	rl.Allow("10.0.0.3")
	rl.Reset()
	if got := rl.Remaining("10.0.0.3"); got != 2 {
		t.Errorf("Remaining() after Reset = %d, want 2", got)
	}
	rl.Stop()
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := []int{http.StatusOK, http.StatusTooManyRequests}
	for i, want := range codes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("request %d status = %d, want %d", i, w.Code, want)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := w.Header().Get(HeaderRequestID)
		if id == "" || w.Body.String() != id {
			t.Errorf("request id header = %q, body = %q, want equal non-empty", id, w.Body.String())
		}
	})

	t.Run("keeps caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		r.ServeHTTP(w, req)
		if got := w.Header().Get(HeaderRequestID); got != "abc-123" {
			t.Errorf("request id header = %q, want %q", got, "abc-123")
		}
	})
}
