package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voice-dashboard/internal/audit"
	"voice-dashboard/internal/auth"
	"voice-dashboard/internal/calls"
	"voice-dashboard/internal/config"
	"voice-dashboard/internal/store"
	"voice-dashboard/internal/voice"

	"github.com/gin-gonic/gin"
)

type testEnv struct {
	router    *gin.Engine
	store     *store.MemStore
	auditRepo *audit.MemoryRepo
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemStore()
	auditRepo := audit.NewMemoryRepo()
	auditSvc := audit.NewService(auditRepo)

	manager, err := auth.NewManager(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	h := Handlers{
		Calls: calls.NewService(st, voice.NewSimulatedProvider(), auditSvc),
		Auth:  auth.NewService(st, manager, auditSvc),
		Store: st,
		Audit: auditSvc,
	}

	r := gin.New()
	api := r.Group("/api")
	api.GET("/calls", h.ListCalls)
	api.POST("/calls", h.StartCall)
	api.POST("/calls/:callId/end", h.EndCall)
	api.POST("/calls/:callId/mute", h.MuteCall)
	api.POST("/config", h.SaveConfig)
	api.GET("/config", h.GetConfig)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/me", auth.RequireAccessToken(manager), h.Me)

	return testEnv{router: r, store: st, auditRepo: auditRepo}
}

func (e testEnv) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestListCalls_EmptyHistory(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/calls", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", w.Body.String())
	}
}

func TestCallLifecycle_EndToEnd(t *testing.T) {
	env := newTestEnv(t)

	// Start.
	w := env.do(t, http.MethodPost, "/api/calls", `{"agentId":"a1","apiKey":"k1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	callID, _ := body["callId"].(string)
	if callID == "" || body["status"] != "created" {
		t.Fatalf("unexpected start response: %v", body)
	}

	// History shows the created record.
	w = env.do(t, http.MethodGet, "/api/calls", "")
	var records []store.CallRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(records) != 1 || records[0].CallID != callID || records[0].Status != store.CallStatusCreated {
		t.Fatalf("unexpected history: %+v", records)
	}

	// End.
	w = env.do(t, http.MethodPost, "/api/calls/"+callID+"/end", "")
	if w.Code != http.StatusOK {
		t.Fatalf("end: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body = decode(t, w)
	if body["status"] != "ended" || body["callId"] != callID {
		t.Fatalf("unexpected end response: %v", body)
	}

	// History shows a completed record with a well-formed duration.
	w = env.do(t, http.MethodGet, "/api/calls", "")
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	rec := records[0]
	if rec.Status != store.CallStatusCompleted {
		t.Fatalf("expected completed, got %s", rec.Status)
	}
	if rec.EndTime == nil {
		t.Fatalf("expected end time set")
	}
	if !durationShape(rec.Duration) {
		t.Fatalf("malformed duration %q", rec.Duration)
	}

	// Both lifecycle steps are audited.
	events := env.auditRepo.Events()
	if len(events) != 2 || events[0].Type != audit.EventTypeCallStarted || events[1].Type != audit.EventTypeCallEnded {
		t.Fatalf("unexpected audit trail: %+v", events)
	}
}

// durationShape checks the "m:ss" display format.
func durationShape(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return false
	}
	for _, p := range parts {
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

func TestEndCall_BackdatedStartYieldsNonZeroDuration(t *testing.T) {
	env := newTestEnv(t)

	start := time.Now().Add(-187 * time.Second)
	if _, err := env.store.CreateCallRecord(context.Background(), store.NewCallRecord{
		CallID:    "call_backdated",
		AgentID:   "a1",
		AgentName: "Customer Support Agent",
		Status:    store.CallStatusCreated,
		Duration:  "0:00",
		StartTime: start,
		Timestamp: "Today at 2:00 PM",
	}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	w := env.do(t, http.MethodPost, "/api/calls/call_backdated/end", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	rec, err := env.store.GetCallRecordByCallID(context.Background(), "call_backdated")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Duration == "0:00" || !strings.HasPrefix(rec.Duration, "3:") {
		t.Fatalf("expected ~3:07 duration, got %q", rec.Duration)
	}
}

func TestStartCall_MissingAPIKey(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/calls", `{"agentId":"a1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	// No record may be created on a rejected start.
	recs, _ := env.store.GetAllCallRecords(context.Background())
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestEndCall_UnknownCallID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/calls/call_missing/end", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if decode(t, w)["message"] != "Call not found" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestMuteCall_AcknowledgesWithoutPersisting(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/calls", `{"agentId":"a1","apiKey":"k1"}`)
	callID := decode(t, w)["callId"].(string)
	before, _ := env.store.GetCallRecordByCallID(context.Background(), callID)

	w = env.do(t, http.MethodPost, "/api/calls/"+callID+"/mute", `{"muted":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "success" || body["callId"] != callID || body["muted"] != true {
		t.Fatalf("unexpected mute response: %v", body)
	}

	// Documented behavior: mute is not modeled on CallRecord.
	after, _ := env.store.GetCallRecordByCallID(context.Background(), callID)
	if before != after {
		t.Fatalf("mute changed stored state: %+v vs %+v", before, after)
	}
}

func TestSaveConfig_ValidatesAndPersists(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/config", `{"agentId":"a1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing apiKey, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/config", `{"agentId":"a1","apiKey":"k1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["status"] != "success" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	cfg, err := env.store.GetAPIConfig(context.Background())
	if err != nil {
		t.Fatalf("expected stored config, got %v", err)
	}
	if cfg.AgentID != "a1" || cfg.APIKey != "k1" || !cfg.IsActive {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	events := env.auditRepo.Events()
	if len(events) != 1 || events[0].Type != audit.EventTypeConfigSaved {
		t.Fatalf("expected config_saved audit event, got %+v", events)
	}
}

func TestGetConfig_RedactsAPIKey(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/config", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any save, got %d", w.Code)
	}

	env.do(t, http.MethodPost, "/api/config", `{"agentId":"a1","apiKey":"top-secret"}`)

	w = env.do(t, http.MethodGet, "/api/config", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "top-secret") {
		t.Fatalf("api key leaked: %s", w.Body.String())
	}
	body := decode(t, w)
	if body["agentId"] != "a1" || body["isActive"] != true {
		t.Fatalf("unexpected config body: %v", body)
	}
}

func TestAuthFlow_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"hunter2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"other"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"hunter2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	access, _ := decode(t, w)["access_token"].(string)
	if access == "" {
		t.Fatalf("expected access token")
	}

	w = env.do(t, http.MethodGet, "/api/auth/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer "+access)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["username"] != "alice" {
		t.Fatalf("unexpected identity: %v", body)
	}
}
