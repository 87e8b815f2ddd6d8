package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/timegridlabs/timegrid/pkg/cache"
	"github.com/timegridlabs/timegrid/pkg/pipeline"
)

const testSchedule = `
[[entry]]
title = "Standup"
start = 2026-03-02T09:00:00Z
end = 2026-03-02T09:30:00Z
`

func testServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week.toml")
	if err := os.WriteFile(path, []byte(testSchedule), 0644); err != nil {
		t.Fatalf("writing schedule fixture: %v", err)
	}

	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	base := pipeline.Options{
		Schedule: path,
		From:     "2026-03-02",
		Till:     "2026-03-02",
	}
	return New(runner, base, nil)
}

func get(t *testing.T, s *Server, url string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	body, _ := io.ReadAll(rec.Result().Body)
	return rec.Code, body
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	status, body := get(t, s, "/health")
	if status != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", status)
	}
	if string(body) != `{"status":"ok"}` {
		t.Errorf("body = %s", body)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	s := testServer(t)
	status, body := get(t, s, "/api/layout?from=2026-03-02&till=2026-03-02")
	if status != http.StatusOK {
		t.Fatalf("GET /api/layout status = %d, body = %s", status, body)
	}

	var out struct {
		TotalWidth float64 `json:"total_width"`
		Days       []struct {
			Date  string `json:"date"`
			Cards []struct {
				Title string `json:"title"`
			} `json:"cards"`
		} `json:"days"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(out.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(out.Days))
	}
	if len(out.Days[0].Cards) != 1 || out.Days[0].Cards[0].Title != "Standup" {
		t.Errorf("cards = %+v, want one Standup card", out.Days[0].Cards)
	}
}

func TestLayoutEndpointHourBracket(t *testing.T) {
	s := testServer(t)

	status, _ := get(t, s, "/api/layout?from_hour=8&to_hour=18")
	if status != http.StatusOK {
		t.Errorf("valid bracket status = %d, want 200", status)
	}

	status, body := get(t, s, "/api/layout?from_hour=18&to_hour=8")
	if status != http.StatusBadRequest {
		t.Errorf("inverted bracket status = %d, want 400", status)
	}
	var errOut struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errOut); err != nil {
		t.Fatalf("error response is not valid JSON: %v", err)
	}
	if errOut.Error.Code != "INVALID_HOURS" {
		t.Errorf("error code = %s, want INVALID_HOURS", errOut.Error.Code)
	}
}

func TestLayoutEndpointBadDate(t *testing.T) {
	s := testServer(t)
	status, _ := get(t, s, "/api/layout?from=tomorrow")
	if status != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", status)
	}
}

func TestLayoutEndpointMissingSchedule(t *testing.T) {
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	s := New(runner, pipeline.Options{Schedule: "/does/not/exist.toml"}, nil)

	status, _ := get(t, s, "/api/layout")
	if status != http.StatusNotFound {
		t.Errorf("missing schedule status = %d, want 404", status)
	}
}
