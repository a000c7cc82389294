package searchapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flightsnap-service/pkg/logger"
)

func TestClient_Fetch(t *testing.T) {
	var gotQuery, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"search_id":"abc","_results":0,"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/v2/search?fly_from=PRG&fly_to=BCN", "secret", 30, logger.NewNopLogger())
	client.now = func() time.Time { return time.Date(2024, 4, 20, 15, 30, 0, 0, time.UTC) }

	payload, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotKey != "secret" {
		t.Errorf("apikey header = %q, want secret", gotKey)
	}
	for _, want := range []string{"fly_from=PRG", "fly_to=BCN", "date_from=20%2F04%2F2024", "date_to=20%2F05%2F2024"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}

	if payload.Body != `{"search_id":"abc","_results":0,"data":[]}` {
		t.Errorf("Body = %q", payload.Body)
	}
	if strings.Contains(payload.URL, "secret") {
		t.Errorf("URL leaks the api key: %s", payload.URL)
	}
	if !payload.RangeStart.Equal(time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("RangeStart = %v", payload.RangeStart)
	}
	if !payload.RangeEnd.Equal(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("RangeEnd = %v", payload.RangeEnd)
	}
	if !payload.FetchedAt.Equal(time.Date(2024, 4, 20, 15, 30, 0, 0, time.UTC)) {
		t.Errorf("FetchedAt = %v", payload.FetchedAt)
	}
}

func TestClient_FetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 7, logger.NewNopLogger())
	_, err := client.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error for 403")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error = %v, want status and body", err)
	}
}

func TestClient_FetchCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "", 7, logger.NewNopLogger())
	if _, err := client.Fetch(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
