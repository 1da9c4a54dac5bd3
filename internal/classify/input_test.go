package classify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testResolver() *Resolver {
	return NewResolver(5*time.Second, "test-agent", 1<<20)
}

func TestResolver_PlainTextPassesThrough(t *testing.T) {
	got, err := testResolver().Resolve(context.Background(), "  Drinking water cures everything.  ")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "Drinking water cures everything." {
		t.Errorf("Unexpected text: %q", got)
	}
}

func TestResolver_FetchesURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("Expected User-Agent test-agent, got %s", r.Header.Get("User-Agent"))
		}
		fmt.Fprint(w, `<html><body><p>Article body text.</p></body></html>`)
	}))
	defer server.Close()

	got, err := testResolver().Resolve(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "Article body text." {
		t.Errorf("Unexpected text: %q", got)
	}
}

func TestResolver_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := testResolver().Resolve(context.Background(), server.URL); err == nil {
		t.Errorf("Expected an error for a 404 response")
	}
}
