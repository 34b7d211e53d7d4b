package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

func TestClient_ValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/validate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc" {
			t.Fatalf("authorization header not forwarded, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"email":"doc@example.com","role":"DOCTOR","valid":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	result, err := c.Validate(context.Background(), "Bearer abc")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !result.Valid || result.Email != "doc@example.com" || result.Role != domain.RoleDoctor {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestClient_UnauthorizedIsCleanInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	result, err := c.Validate(context.Background(), "Bearer bad")
	if err != nil {
		t.Fatalf("401 should not be a transport error: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
}

func TestClient_UnexpectedStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.Validate(context.Background(), "Bearer abc"); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestClient_UndecodableBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if _, err := c.Validate(context.Background(), "Bearer abc"); err == nil {
		t.Fatalf("expected error on undecodable body")
	}
}

func TestClient_TimeoutIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"valid":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 20*time.Millisecond)
	if _, err := c.Validate(context.Background(), "Bearer abc"); err == nil {
		t.Fatalf("expected error on timeout")
	}
}

func TestClient_UnreachableAuthorityIsError(t *testing.T) {
	// Port chosen from a closed listener so the connection is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url, time.Second)
	if _, err := c.Validate(context.Background(), "Bearer abc"); err == nil {
		t.Fatalf("expected error when authority is down")
	}
}
