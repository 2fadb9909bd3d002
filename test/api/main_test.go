// Package api_test exercises the running API end to end. It expects a live
// server (API_URL, default http://localhost:3001) with the bootstrap admin
// seeded; without one the suite skips.
package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	baseURL         = "http://localhost:3001/api"
	adminEmail      = "admin@school.edu"
	adminPassword   = "admin123"
	authToken       string
	serverAvailable bool
)

type testResponse struct {
	Code int
	Body []byte
}

func (r testResponse) Map(t *testing.T) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		t.Fatalf("failed to decode response %q: %v", r.Body, err)
	}
	return m
}

func (r testResponse) Slice(t *testing.T) []interface{} {
	t.Helper()
	var s []interface{}
	if err := json.Unmarshal(r.Body, &s); err != nil {
		t.Fatalf("failed to decode response %q: %v", r.Body, err)
	}
	return s
}

func (r testResponse) ErrorMessage() string {
	var m map[string]interface{}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return ""
	}
	msg, _ := m["error"].(string)
	return msg
}

func makeRequest(method, path string, body interface{}, token string) testResponse {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return testResponse{Code: 0, Body: []byte(err.Error())}
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return testResponse{Code: 0, Body: []byte(err.Error())}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return testResponse{Code: 0, Body: []byte(err.Error())}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return testResponse{Code: resp.StatusCode, Body: []byte(err.Error())}
	}
	return testResponse{Code: resp.StatusCode, Body: respBody}
}

func requireServer(t *testing.T) {
	t.Helper()
	if !serverAvailable {
		t.Skip("API server not available; set API_URL to run integration tests")
	}
}

func checkAPIServer(root string) bool {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(root + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func login(email, password string) (string, testResponse) {
	resp := makeRequest(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	if resp.Code != http.StatusOK {
		return "", resp
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", resp
	}
	return body.Token, resp
}

func TestMain(m *testing.M) {
	if url := os.Getenv("API_URL"); url != "" {
		baseURL = url + "/api"
	}
	if email := os.Getenv("ADMIN_BOOTSTRAP_EMAIL"); email != "" {
		adminEmail = email
	}
	if password := os.Getenv("ADMIN_BOOTSTRAP_PASSWORD"); password != "" {
		adminPassword = password
	}

	root := baseURL[:len(baseURL)-len("/api")]
	if checkAPIServer(root) {
		token, resp := login(adminEmail, adminPassword)
		if token == "" {
			fmt.Printf("admin login failed: HTTP %d %s\n", resp.Code, resp.Body)
			os.Exit(1)
		}
		authToken = token
		serverAvailable = true
	}

	os.Exit(m.Run())
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@school.edu", prefix, time.Now().UnixNano())
}
