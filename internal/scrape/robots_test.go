package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_DisallowedPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := NewRobotsChecker("test-agent", 5*time.Second)

	if checker.Allowed(context.Background(), server.URL+"/private/page") {
		t.Errorf("Expected /private/ to be disallowed")
	}
	if !checker.Allowed(context.Background(), server.URL+"/public/page") {
		t.Errorf("Expected /public/ to be allowed")
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	checker := NewRobotsChecker("test-agent", time.Second)

	if !checker.Allowed(context.Background(), "http://127.0.0.1:1/page") {
		t.Errorf("Unreachable robots.txt must allow the fetch")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var requests int32
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, "User-agent: *\nAllow: /\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	checker := NewRobotsChecker("test-agent", 5*time.Second)
	checker.Allowed(context.Background(), server.URL+"/one")
	checker.Allowed(context.Background(), server.URL+"/two")

	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Errorf("Expected 1 robots.txt fetch, got %d", got)
	}
}
