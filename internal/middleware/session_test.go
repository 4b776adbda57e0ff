package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/session"
)

func newSessionRouter(mgr *session.Manager) *gin.Engine {
	r := gin.New()
	r.Use(Resolve(mgr))
	r.GET("/whoami", func(c *gin.Context) {
		s := MustSession(c)
		if s == nil {
			return
		}
		c.JSON(http.StatusOK, gin.H{"session_id": s.ID})
	})
	return r
}

func TestResolve_MintsSessionWhenAbsent(t *testing.T) {
	mgr := session.NewManager(time.Minute)
	defer mgr.Close()
	r := newSessionRouter(mgr)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	id := w.Header().Get(SessionHeader)
	if id == "" {
		t.Fatal("no session ID echoed on response")
	}
	if _, ok := mgr.Get(id); !ok {
		t.Error("echoed session ID not registered")
	}
}

func TestResolve_ReusesSessionFromHeader(t *testing.T) {
	mgr := session.NewManager(time.Minute)
	defer mgr.Close()
	r := newSessionRouter(mgr)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	id := first.Header().Get(SessionHeader)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, id)
	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)

	if got := second.Header().Get(SessionHeader); got != id {
		t.Errorf("session ID changed across requests: %q → %q", id, got)
	}
	if mgr.Len() != 1 {
		t.Errorf("manager holds %d sessions, want 1", mgr.Len())
	}
}

func TestResolve_UnknownIDMintsFresh(t *testing.T) {
	mgr := session.NewManager(time.Minute)
	defer mgr.Close()
	r := newSessionRouter(mgr)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(SessionHeader, "not-a-session")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	got := w.Header().Get(SessionHeader)
	if got == "" || got == "not-a-session" {
		t.Errorf("expected fresh session ID, got %q", got)
	}
}

func TestResolve_ReusesSessionFromCookie(t *testing.T) {
	mgr := session.NewManager(time.Minute)
	defer mgr.Close()
	r := newSessionRouter(mgr)

	s := mgr.Create()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "geoai_session", Value: s.ID})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(SessionHeader); got != s.ID {
		t.Errorf("cookie session not reused: %q", got)
	}
}
