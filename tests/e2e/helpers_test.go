package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

// E2E=1のときだけ動かす（起動済みのAPI＋シード済みDBが前提）。
func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	if os.Getenv("E2E") == "" {
		t.Skip("set E2E=1 (and BASE_URL) to run e2e tests against a running server")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New failed: %v", err)
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active"`
}

type AuthLoginResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresAt   string  `json:"expires_at"`
	User        UserDTO `json:"user"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecodeError(t *testing.T, body []byte) ErrorResponse {
	t.Helper()
	var v ErrorResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeLogin(t *testing.T, body []byte) AuthLoginResponse {
	t.Helper()
	var v AuthLoginResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(AuthLoginResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func login(t *testing.T, c *TestClient, ctx context.Context, email string, password string) string {
	t.Helper()

	req := LoginRequest{Email: email, Password: password}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal(LoginRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", b)
	requireStatus(t, resp, http.StatusOK, body)

	out := mustDecodeLogin(t, body)
	if strings.TrimSpace(out.AccessToken) == "" {
		t.Fatalf("access token is empty: body=%s", string(body))
	}
	return out.AccessToken
}

// シードの管理者でログインしてaccess_tokenを取得
func adminLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()
	return login(t, c, ctx, "admin@breizhsport.fr", "Admin123!")
}

// e2e用の使い捨てユーザーを作ってログインする
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context, address string) (string, string) {
	t.Helper()

	email := "e2e-" + time.Now().Format("20060102-150405.000000000") + "@example.com"
	reg := RegisterRequest{
		FirstName: "E2E",
		LastName:  "Testeur",
		Email:     email,
		Password:  "password123",
		Address:   address,
	}
	b, err := json.Marshal(reg)
	if err != nil {
		t.Fatalf("json.Marshal(RegisterRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/register", "", b)
	requireStatus(t, resp, http.StatusCreated, body)

	return login(t, c, ctx, email, "password123"), email
}
