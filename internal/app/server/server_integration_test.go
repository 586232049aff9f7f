package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ats/internal/app/server"
	"ats/internal/platform/config"
)

type responseEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *responseError  `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newTestApp(t *testing.T) *server.App {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if strings.TrimSpace(dbURL) == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		Environment:        "test",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPass:      "ChangeMe123!",
		SeedSampleData:     false,
		RunMigrations:      true,
		RunSeed:            true,
		MigrationsDir:      "../../../migrations",
		ExportDir:          t.TempDir(),
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		MetricsEnabled:     true,
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *server.App, method, path, token string, body any) (int, responseEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "198.51.100.10:4321"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	app.Router.ServeHTTP(recorder, req)

	var env responseEnvelope
	if len(recorder.Body.Bytes()) > 0 && strings.Contains(recorder.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(recorder.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode response body %q: %v", recorder.Body.String(), err)
		}
	}
	return recorder.Code, env
}

func loginAdmin(t *testing.T, app *server.App) string {
	t.Helper()
	status, env := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "admin@test.local",
		"password": "ChangeMe123!",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d", status)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("expected token in login response, got %s", env.Data)
	}
	return data.Token
}

func TestCandidateVerificationJourney(t *testing.T) {
	app := newTestApp(t)
	defer app.Close()

	token := loginAdmin(t, app)
	name := fmt.Sprintf("Journey Candidate %d", time.Now().UnixNano())

	status, env := doJSON(t, app, http.MethodPost, "/api/v1/candidates", token, map[string]any{
		"name":   name,
		"city":   "Lahore",
		"status": "active",
		"workExperiences": []map[string]any{
			{"employerName": "Systems Ltd", "jobTitle": "Engineer", "startDate": "2020-01-01T00:00:00Z"},
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for create, got %d: %s", status, env.Data)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil || created.ID == "" {
		t.Fatalf("expected created candidate id, got %s", env.Data)
	}

	status, env = doJSON(t, app, http.MethodPut,
		"/api/v1/candidates/"+created.ID+"/verifications/city", token,
		map[string]any{"value": "Karachi", "verify": true})
	if status != http.StatusOK {
		t.Fatalf("expected 200 for set value, got %d", status)
	}
	var record struct {
		Status     string `json:"status"`
		VerifiedBy string `json:"verifiedBy"`
	}
	if err := json.Unmarshal(env.Data, &record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record.Status != "verified" {
		t.Fatalf("expected verified record, got %q", record.Status)
	}
	if record.VerifiedBy == "" {
		t.Fatal("expected verifiedBy from the logged-in user")
	}

	status, env = doJSON(t, app, http.MethodGet, "/api/v1/candidates/"+created.ID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for get, got %d", status)
	}
	var fetched struct {
		City string `json:"city"`
	}
	if err := json.Unmarshal(env.Data, &fetched); err != nil {
		t.Fatalf("failed to decode candidate: %v", err)
	}
	if fetched.City != "Karachi" {
		t.Fatalf("expected the inline edit to land on the candidate, city %q", fetched.City)
	}

	status, env = doJSON(t, app, http.MethodGet,
		"/api/v1/candidates/"+created.ID+"/verifications/city/history", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 for history, got %d", status)
	}
	var entries []map[string]any
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}

	status, env = doJSON(t, app, http.MethodPost, "/api/v1/candidates/search", token, map[string]any{
		"basicInfoSearch": name,
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 for search, got %d", status)
	}
	var result struct {
		Total      int `json:"total"`
		Candidates []struct {
			ID string `json:"id"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode search result: %v", err)
	}
	if result.Total != 1 || len(result.Candidates) != 1 || result.Candidates[0].ID != created.ID {
		t.Fatalf("expected the created candidate back from search, got %+v", result)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	app := newTestApp(t)
	defer app.Close()

	status, _ := doJSON(t, app, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected healthy process, got %d", status)
	}
	status, _ = doJSON(t, app, http.MethodGet, "/readyz", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected ready database, got %d", status)
	}
}
