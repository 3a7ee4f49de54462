package auth

import (
	"JobBoard-backend/internal/model"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// MockOAuth2Server stands in for Google's token and userinfo endpoints
type MockOAuth2Server struct {
	Server           *httptest.Server
	Config           *oauth2.Config
	MockInfoEndpoint string

	mu        sync.Mutex
	users     map[string]model.GoogleUserInfo
	codes     map[string]string // auth code -> gid
	tokens    map[string]string // access token -> gid
	exchanged map[string]bool
}

// NewMockOAuth2Server starts a server that knows the given Google users
func NewMockOAuth2Server(users []model.GoogleUserInfo) *MockOAuth2Server {
	m := &MockOAuth2Server{
		users:     make(map[string]model.GoogleUserInfo),
		codes:     make(map[string]string),
		tokens:    make(map[string]string),
		exchanged: make(map[string]bool),
	}
	for _, u := range users {
		m.users[u.GID] = u
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", m.handleToken)
	mux.HandleFunc("/userinfo", m.handleUserInfo)
	m.Server = httptest.NewServer(mux)

	m.Config = &oauth2.Config{
		ClientID:     "mock-client-id",
		ClientSecret: "mock-client-secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:   m.Server.URL + "/auth",
			TokenURL:  m.Server.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: "http://localhost/callback",
	}
	m.MockInfoEndpoint = m.Server.URL + "/userinfo"
	return m
}

// Close shuts the server down
func (m *MockOAuth2Server) Close() {
	m.Server.Close()
}

// GetAuthCode issues a one-time code for a known user
func (m *MockOAuth2Server) GetAuthCode(gid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[gid]; !ok {
		return "", fmt.Errorf("unknown google user %q", gid)
	}
	code := "code-" + uuid.NewString()
	m.codes[code] = gid
	return code, nil
}

// IsUserTokenExchanged reports whether a code for gid was traded for a token
func (m *MockOAuth2Server) IsUserTokenExchanged(gid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchanged[gid]
}

func (m *MockOAuth2Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	gid, ok := m.codes[r.FormValue("code")]
	if ok {
		delete(m.codes, r.FormValue("code"))
		m.exchanged[gid] = true
	}
	var token string
	if ok {
		token = "token-" + uuid.NewString()
		m.tokens[token] = gid
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (m *MockOAuth2Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	m.mu.Lock()
	gid, ok := m.tokens[token]
	user := m.users[gid]
	m.mu.Unlock()

	if !ok {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
