package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return NewClient(url, "test-key", 60000, 2*time.Second, nil)
}

func TestCreateJobSendsAuthenticatedPost(t *testing.T) {
	var gotMethod, gotPath, gotKey, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		fmt.Fprint(w, `{"id": 1}`)
	}))
	defer srv.Close()

	payload := map[string]any{
		"company_name": "KLS",
		"hidden":       false,
		"scrape_date":  "2023-01-15",
		"title":        "Engineer",
	}
	if err := newTestClient(srv.URL).CreateJob(context.Background(), payload); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/api/jobs" {
		t.Errorf("path = %s, want /api/jobs", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("X-API-Key = %q, want test-key", gotKey)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["company_name"] != "KLS" || gotBody["title"] != "Engineer" {
		t.Errorf("body = %v", gotBody)
	}
	if gotBody["hidden"] != false {
		t.Errorf("hidden = %v, want false", gotBody["hidden"])
	}
}

func TestCreateJobNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":"scrape_date is required"}`)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).CreateJob(context.Background(), map[string]any{})
	if err == nil {
		t.Fatal("CreateJob: want error on 422")
	}
	if !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "scrape_date is required") {
		t.Errorf("error = %v, want status and response body", err)
	}
}

func TestCreateJobTruncatesLongErrorBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, strings.Repeat("x", 5000))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).CreateJob(context.Background(), map[string]any{})
	if err == nil {
		t.Fatal("want error")
	}
	if len(err.Error()) > 400 {
		t.Errorf("error string is %d bytes, body was not truncated", len(err.Error()))
	}
}

func TestCreateJobNonJSONSuccessBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "created")
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).CreateJob(context.Background(), map[string]any{}); err == nil {
		t.Error("want error for non-JSON 2xx body")
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL + "/").CreateJob(context.Background(), map[string]any{}); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if gotPath != "/api/jobs" {
		t.Errorf("path = %s, want /api/jobs", gotPath)
	}
}
