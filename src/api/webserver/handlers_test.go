package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/truthlens/truthlens/src/api/config"
	"github.com/truthlens/truthlens/src/api/data"
	"github.com/truthlens/truthlens/src/api/types"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		VerifyStrategy: "keyword",
		PasswordScheme: "sha256",
		AllowOrigins:   []string{"*"},
		RateLimit:      100,
		RateWindow:     time.Minute,
		// no NewsAPIKey: the fetcher stays in demo mode and never
		// touches the network
	}
}

func newTestRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := data.MustDB("", filepath.Join(t.TempDir(), "users.db"))
	if err := db.AutoMigrate(&types.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(cfg, db, nil)
}

func doJSON(router *gin.Engine, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid response JSON %q: %v", w.Body.String(), err)
	}
	return m
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := decode(t, w); body["status"] != "ok" {
		t.Fatalf("body = %v, want status ok", body)
	}
}

func TestVerifyMissingClaim(t *testing.T) {
	router := newTestRouter(t, testConfig())

	for _, body := range []string{"{}", `{"claim":""}`, `{"claim":"   "}`} {
		w := doJSON(router, http.MethodPost, "/verify", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, w.Code)
		}
		if resp := decode(t, w); resp["error"] != "No claim provided" {
			t.Fatalf("body %s: response = %v", body, resp)
		}
	}
}

func TestVerifyMalformedBody(t *testing.T) {
	router := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodPost, "/verify", "not json", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestVerifyDemoMode(t *testing.T) {
	router := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodPost, "/verify", `{"claim":"the sky is blue"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var res types.VerificationResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Verification != types.VerdictLikelyFalse {
		t.Fatalf("verification = %q, want %q", res.Verification, types.VerdictLikelyFalse)
	}
	if res.Confidence != 65.0 {
		t.Fatalf("confidence = %v, want 65.0", res.Confidence)
	}
	if res.ArticlesAnalyzed != 3 || len(res.Sources) != 3 {
		t.Fatalf("expected the 3 demo sources, got %+v", res)
	}
	if res.Statement != "the sky is blue" {
		t.Fatalf("statement = %q", res.Statement)
	}
}

func TestRegisterValidationAndDuplicate(t *testing.T) {
	router := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodPost, "/register", `{"name":"","email":"","password":""}`, nil)
	if resp := decode(t, w); resp["success"] != false || resp["message"] != "All fields are required" {
		t.Fatalf("empty fields response = %v", resp)
	}

	payload := `{"name":"Alice","email":"alice@example.com","password":"pw"}`
	w = doJSON(router, http.MethodPost, "/register", payload, nil)
	if resp := decode(t, w); resp["success"] != true {
		t.Fatalf("first register = %v", resp)
	}

	w = doJSON(router, http.MethodPost, "/register", payload, nil)
	if resp := decode(t, w); resp["success"] != false || resp["message"] != "Email already exists" {
		t.Fatalf("duplicate register = %v", resp)
	}
}

func TestLoginFlows(t *testing.T) {
	router := newTestRouter(t, testConfig())

	doJSON(router, http.MethodPost, "/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret"}`, nil)

	w := doJSON(router, http.MethodPost, "/login", `{"email":"nobody@example.com","password":"secret"}`, nil)
	if resp := decode(t, w); resp["success"] != false {
		t.Fatalf("unknown user login = %v", resp)
	}

	w = doJSON(router, http.MethodPost, "/login", `{"email":"bob@example.com","password":"wrong"}`, nil)
	if resp := decode(t, w); resp["success"] != false {
		t.Fatalf("wrong password login = %v", resp)
	}

	w = doJSON(router, http.MethodPost, "/login", `{"email":"bob@example.com","password":"secret"}`, nil)
	resp := decode(t, w)
	if resp["success"] != true {
		t.Fatalf("valid login = %v", resp)
	}
	user, ok := resp["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("login response missing user object: %v", resp)
	}
	if user["email"] != "bob@example.com" || user["subscription"] != "Free" || user["usage_count"] != float64(5) {
		t.Fatalf("user payload = %v", user)
	}

	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("login response missing token: %v", resp)
	}

	// the issued token must open the profile route
	w = doJSON(router, http.MethodGet, "/me", "", http.Header{"Authorization": {"Bearer " + token}})
	if w.Code != http.StatusOK {
		t.Fatalf("/me with token status = %d: %s", w.Code, w.Body.String())
	}
	if profile := decode(t, w); profile["email"] != "bob@example.com" {
		t.Fatalf("/me profile = %v", profile)
	}

	w = doJSON(router, http.MethodGet, "/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("/me without token status = %d, want 401", w.Code)
	}
}

func TestRateLimitTripsAfterBudget(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 2
	cfg.RateWindow = time.Minute
	router := newTestRouter(t, cfg)

	body := `{"claim":"the sky is blue"}`
	for i := 0; i < 2; i++ {
		if w := doJSON(router, http.MethodPost, "/verify", body, nil); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}
	if w := doJSON(router, http.MethodPost, "/verify", body, nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", w.Code)
	}
}
