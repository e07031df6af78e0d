package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte("<rss></rss>"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.URL, "test-agent/1.0", 5*time.Second)

	data, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if string(data) != "<rss></rss>" {
		t.Errorf("Expected feed body, got '%s'", data)
	}
	if gotUserAgent != "test-agent/1.0" {
		t.Errorf("Expected User-Agent header to be set, got '%s'", gotUserAgent)
	}
}

func TestHTTPFetcher_Fetch_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.URL, "test-agent/1.0", 5*time.Second)

	_, err := fetcher.Fetch(context.Background())
	if err == nil {
		t.Error("Expected error for 500 response")
	}
}

func TestHTTPFetcher_Fetch_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.URL, "test-agent/1.0", 5*time.Second)

	_, err := fetcher.Fetch(context.Background())
	if err == nil {
		t.Error("Expected error for empty response body")
	}
}

func TestHTTPFetcher_Fetch_Unreachable(t *testing.T) {
	fetcher := NewHTTPFetcher("http://127.0.0.1:1", "test-agent/1.0", time.Second)

	_, err := fetcher.Fetch(context.Background())
	if err == nil {
		t.Error("Expected error for unreachable server")
	}
}
