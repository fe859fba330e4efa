package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/codedash/internal/api"
	"github.com/ziadkadry99/codedash/internal/cache"
	"github.com/ziadkadry99/codedash/internal/db"
	"github.com/ziadkadry99/codedash/internal/loader"
	"github.com/ziadkadry99/codedash/internal/notify"
	"github.com/ziadkadry99/codedash/internal/search"
	"github.com/ziadkadry99/codedash/internal/sections"
)

// fakeBackend serves the analysis API shape the gateway synchronizes from.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":"f1","name":"main.go","path":"cmd/main.go","complexity":4}]}`))
	})
	mux.HandleFunc("/classes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"classes extraction failed"}`))
	})
	mux.HandleFunc("/functions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[]}`))
	})
	mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"id":"s1","name":"orders"}]}`))
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"kind":"files","name":"main.go"}]}`))
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"files":1,"classes":0,"functions":0,"services":1}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	backend := fakeBackend(t)

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	client := api.New(backend.URL, 0, 0)
	notices := notify.NewChannel()
	ldr := loader.New(client, cache.New(nil), notices)
	controller := sections.NewController(ldr, sections.NewAnalytics(), sections.NewStore(database))
	recent := search.NewStore(database, 5)
	coordinator := search.NewCoordinator(client, recent, notices, 5*time.Millisecond, 2)

	return New(Config{Port: 0, AllowAll: true}, ldr, controller, coordinator, recent, client, notices)
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decoding %s %s response: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec
}

func TestHealthz(t *testing.T) {
	s := setupTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGetResourcesLazyLoads(t *testing.T) {
	s := setupTestServer(t)

	var resp collectionResponse
	rec := doJSON(t, s.Router(), http.MethodGet, "/api/resources/files", "", &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "f1" {
		t.Errorf("items = %+v, want the backend's file", resp.Items)
	}
}

func TestGetResourcesUnknownKind(t *testing.T) {
	s := setupTestServer(t)
	rec := doJSON(t, s.Router(), http.MethodGet, "/api/resources/gadgets", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestActivateSectionFlow(t *testing.T) {
	s := setupTestServer(t)

	var resp map[string]sections.ID
	rec := doJSON(t, s.Router(), http.MethodPost, "/api/sections/activate", `{"id":"services"}`, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if resp["current"] != sections.Services {
		t.Errorf("current = %q, want services", resp["current"])
	}

	// Activation of a data section triggered its load.
	var coll collectionResponse
	doJSON(t, s.Router(), http.MethodGet, "/api/resources/services", "", &coll)
	if len(coll.Items) != 1 || coll.Items[0].Name != "orders" {
		t.Errorf("services = %+v", coll.Items)
	}

	// Back out to the starting section.
	doJSON(t, s.Router(), http.MethodPost, "/api/sections/back", "", &resp)
	if resp["current"] != sections.Overview {
		t.Errorf("current after back = %q, want overview", resp["current"])
	}
}

func TestActivateUnknownSection(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s.Router(), http.MethodPost, "/api/sections/activate", `{"id":"nonsense"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp map[string]sections.ID
	doJSON(t, s.Router(), http.MethodGet, "/api/sections/current", "", &resp)
	if resp["current"] != sections.Overview {
		t.Errorf("current = %q, want unchanged overview", resp["current"])
	}
}

func TestSearchRoundTrip(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s.Router(), http.MethodPost, "/api/search", `{"q":"main","flush":true}`, nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	deadline := time.Now().Add(2 * time.Second)
	var state searchStateResponse
	for time.Now().Before(deadline) {
		doJSON(t, s.Router(), http.MethodGet, "/api/search", "", &state)
		if state.State == string(search.StateLoaded) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if state.State != string(search.StateLoaded) {
		t.Fatalf("search state = %q, want loaded", state.State)
	}
	if len(state.Results) != 1 || state.Results[0].Name != "main.go" {
		t.Errorf("results = %+v", state.Results)
	}

	// The executed term lands in the recent list.
	var recent map[string][]string
	doJSON(t, s.Router(), http.MethodGet, "/api/search/recent", "", &recent)
	if terms := recent["terms"]; len(terms) != 1 || terms[0] != "main" {
		t.Errorf("recent terms = %v, want [main]", terms)
	}
}

func TestStatsProxy(t *testing.T) {
	s := setupTestServer(t)

	var stats struct {
		Files    int `json:"files"`
		Services int `json:"services"`
	}
	rec := doJSON(t, s.Router(), http.MethodGet, "/api/stats", "", &stats)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stats.Files != 1 || stats.Services != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRefreshReloadsCurrentSection(t *testing.T) {
	s := setupTestServer(t)

	// Move to a data section and let it load.
	doJSON(t, s.Router(), http.MethodPost, "/api/sections/activate", `{"id":"files"}`, nil)

	rec := doJSON(t, s.Router(), http.MethodPost, "/api/refresh", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var coll collectionResponse
	doJSON(t, s.Router(), http.MethodGet, "/api/resources/files", "", &coll)
	if len(coll.Items) != 1 {
		t.Errorf("files after refresh = %+v", coll.Items)
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	s := setupTestServer(t)

	// Load files, then activate complexity to compute the aggregates.
	doJSON(t, s.Router(), http.MethodPost, "/api/sections/activate", `{"id":"files"}`, nil)
	doJSON(t, s.Router(), http.MethodPost, "/api/sections/activate", `{"id":"complexity"}`, nil)

	var summary sections.ComplexitySummary
	doJSON(t, s.Router(), http.MethodGet, "/api/analytics/complexity", "", &summary)
	if summary.Total != 1 || summary.Low != 1 {
		t.Errorf("summary = %+v", summary)
	}

	doJSON(t, s.Router(), http.MethodPost, "/api/sections/activate", `{"id":"domains"}`, nil)
	var domains []sections.DomainCount
	doJSON(t, s.Router(), http.MethodGet, "/api/analytics/domains", "", &domains)
	if len(domains) != 1 || domains[0].Domain != "cmd" {
		t.Errorf("domains = %+v", domains)
	}
}
