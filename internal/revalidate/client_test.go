package revalidate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFireSuccess(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/api/revalidate" {
			t.Errorf("path = %s, want /api/revalidate", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sekret" {
			t.Errorf("auth header = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "sekret")
	if err := c.Fire(context.Background(), []string{"/produk"}, []string{"products"}); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

// TestFireRetriesServerError: a 5xx is retried and a later success wins.
func TestFireRetriesServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if err := c.Fire(context.Background(), nil, nil); err != nil {
		t.Fatalf("Fire failed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

// TestFireClientErrorNotRetried: retrying an invalid request cannot help.
func TestFireClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if err := c.Fire(context.Background(), nil, nil); err == nil {
		t.Fatal("Fire should surface the 4xx")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", calls)
	}
}

func TestFireDisabledWithoutBaseURL(t *testing.T) {
	c := New("", "token")
	if err := c.Fire(context.Background(), []string{"/produk"}, nil); err != nil {
		t.Fatalf("disabled client should no-op, got %v", err)
	}
}
