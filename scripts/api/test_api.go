// Minimal end-to-end smoke test for a running TruthLens API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

var baseURL = getenv("API_URL", "http://localhost:8080")

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	email := fmt.Sprintf("smoke-%s@example.com", uuid.NewString()[:8])

	health()
	register(email)
	registerDuplicate(email)
	token := login(email)
	profile(token)
	verifyClaim()

	fmt.Println("✓ all endpoints passed")
}

func health() {
	var resp struct{ Status string }
	doJSON("GET", "/health", nil, &resp, http.StatusOK)
	if resp.Status != "ok" {
		log.Fatalf("health: status %q", resp.Status)
	}
}

func register(email string) {
	var resp struct{ Success bool }
	doJSON("POST", "/register", map[string]any{
		"name": "Smoke Tester", "email": email, "password": "smoke-pass",
	}, &resp, http.StatusOK)
	if !resp.Success {
		log.Fatalf("register: expected success")
	}
}

func registerDuplicate(email string) {
	var resp struct {
		Success bool
		Message string
	}
	doJSON("POST", "/register", map[string]any{
		"name": "Smoke Tester", "email": email, "password": "smoke-pass",
	}, &resp, http.StatusOK)
	if resp.Success || resp.Message != "Email already exists" {
		log.Fatalf("register duplicate: got %+v", resp)
	}
}

func login(email string) string {
	var resp struct {
		Success bool
		Token   string
		User    struct {
			Subscription string
			UsageCount   int `json:"usage_count"`
		}
	}
	doJSON("POST", "/login", map[string]any{
		"email": email, "password": "smoke-pass",
	}, &resp, http.StatusOK)
	if !resp.Success || resp.Token == "" {
		log.Fatalf("login: got %+v", resp)
	}
	if resp.User.Subscription != "Free" {
		log.Fatalf("login: subscription %q", resp.User.Subscription)
	}
	return resp.Token
}

func profile(token string) {
	req, _ := http.NewRequest("GET", baseURL+"/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := httpc.Do(req)
	if err != nil {
		log.Fatalf("profile: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("profile: status %d", resp.StatusCode)
	}
}

func verifyClaim() {
	var resp struct {
		Verification     string
		Confidence       float64
		ArticlesAnalyzed int `json:"articles_analyzed"`
	}
	doJSON("POST", "/verify", map[string]any{
		"claim": "the sky is blue",
	}, &resp, http.StatusOK)
	if resp.Verification == "" || resp.ArticlesAnalyzed == 0 {
		log.Fatalf("verify: got %+v", resp)
	}

	// missing claim must be a 400, not a scored result
	doJSON("POST", "/verify", map[string]any{}, &struct{}{}, http.StatusBadRequest)
}

var httpc = &http.Client{Timeout: 30 * time.Second}

func doJSON(method, path string, payload any, out any, wantStatus int) {
	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	}
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: status %d, want %d", method, path, resp.StatusCode, wantStatus)
	}
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
}
