package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/manav/nyaya/internal/advice"
	"github.com/manav/nyaya/internal/auth"
	"github.com/manav/nyaya/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	srv := New(Options{
		Store:    st,
		Issuer:   auth.NewIssuer("test-secret"),
		Chain:    advice.NewChain(time.Minute, advice.NewOfflineProvider()),
		DevOAuth: true,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func postJSON(t *testing.T, url string, body any, token string) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return out
}

func registerAndLogin(t *testing.T, ts *httptest.Server, email string) string {
	t.Helper()
	resp := postJSON(t, ts.URL+"/auth/register", map[string]string{"email": email, "password": "pw123"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/auth/login", map[string]string{"email": email, "password": "pw123"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	token := registerAndLogin(t, ts, "flow@example.com")
	if token == "" {
		t.Fatal("expected token")
	}

	// duplicate registration rejected
	resp := postJSON(t, ts.URL+"/auth/register", map[string]string{"email": "flow@example.com", "password": "x"}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	// wrong password rejected
	resp = postJSON(t, ts.URL+"/auth/login", map[string]string{"email": "flow@example.com", "password": "wrong"}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChatRequiresAuth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/chat", map[string]string{"question": "how do I file an FIR"}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/chat", map[string]string{"question": "how do I file an FIR"}, "garbage-token")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Unauthorized" {
		t.Errorf("error = %v, want Unauthorized", body["error"])
	}
}

func TestChatAnswersAndPersists(t *testing.T) {
	ts, st := newTestServer(t)
	token := registerAndLogin(t, ts, "chat@example.com")

	resp := postJSON(t, ts.URL+"/chat", map[string]string{
		"question": "what are my rights if police arrest me",
		"language": "en",
	}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	answer, _ := body["answer"].(string)
	if answer == "" {
		t.Fatal("empty answer")
	}

	chats, err := st.Chats(store.ChatFilter{})
	if err != nil {
		t.Fatalf("Chats failed: %v", err)
	}
	if len(chats) != 1 {
		t.Fatalf("persisted %d chats, want 1", len(chats))
	}
	if chats[0].Question != "what are my rights if police arrest me" {
		t.Errorf("persisted question = %q", chats[0].Question)
	}
}

func TestChatEmptyQuestion(t *testing.T) {
	ts, _ := newTestServer(t)
	token := registerAndLogin(t, ts, "empty@example.com")

	resp := postJSON(t, ts.URL+"/chat", map[string]string{"question": "   "}, token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChatIdentityQuestionAnsweredByPolicy(t *testing.T) {
	ts, _ := newTestServer(t)
	token := registerAndLogin(t, ts, "ident@example.com")

	resp := postJSON(t, ts.URL+"/chat", map[string]string{"question": "who are you"}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["source"] != "policy" {
		t.Errorf("source = %v, want policy", body["source"])
	}
	if !strings.Contains(body["answer"].(string), "legal information") {
		t.Errorf("answer = %v", body["answer"])
	}
}

func TestGenerateForm(t *testing.T) {
	ts, st := newTestServer(t)
	token := registerAndLogin(t, ts, "form@example.com")

	resp := postJSON(t, ts.URL+"/generate_form", map[string]any{
		"form_type": "FIR",
		"responses": map[string]string{"name": "Asha Rao"},
	}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	formText, _ := body["form"].(string)
	if !strings.Contains(formText, "First Information Report") {
		t.Errorf("form text missing title:\n%s", formText)
	}
	if !strings.Contains(formText, "Asha Rao") {
		t.Error("form text missing filled response")
	}

	saved, _ := st.Forms(store.FormFilter{FormType: "FIR"})
	if len(saved) != 1 {
		t.Errorf("persisted %d forms, want 1", len(saved))
	}
}

func TestGenerateFormUnknownType(t *testing.T) {
	ts, _ := newTestServer(t)
	token := registerAndLogin(t, ts, "unknown@example.com")

	resp := postJSON(t, ts.URL+"/generate_form", map[string]any{"form_type": "BOGUS"}, token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestGenerateFormPDFHeaders(t *testing.T) {
	ts, _ := newTestServer(t)
	token := registerAndLogin(t, ts, "pdf@example.com")

	resp := postJSON(t, ts.URL+"/generate_form_pdf", map[string]any{
		"form_type": "RTI",
		"responses": map[string]string{"name": "Asha Rao"},
	}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	disposition := resp.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "RTI_Nyaya.pdf") {
		t.Errorf("Content-Disposition = %q", disposition)
	}
}

func TestLanguagesAndFormTypes(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/languages")
	if err != nil {
		t.Fatalf("languages failed: %v", err)
	}
	body := decodeBody(t, resp)
	langs, _ := body["languages"].([]any)
	if len(langs) != 3 {
		t.Errorf("got %d languages, want 3", len(langs))
	}

	resp, err = http.Get(ts.URL + "/form_types")
	if err != nil {
		t.Fatalf("form_types failed: %v", err)
	}
	body = decodeBody(t, resp)
	types, _ := body["form_types"].([]any)
	if len(types) != 4 {
		t.Errorf("got %d form types, want 4", len(types))
	}
}

func TestDataEndpointsFilter(t *testing.T) {
	ts, st := newTestServer(t)

	now := time.Now().UTC()
	st.InsertChat("eviction question", "tenancy law answer", "en", now)
	st.InsertChat("RTI sawal", "RTI jawab", "hi", now)
	st.InsertForm("RTI", "RIGHT TO INFORMATION", map[string]string{}, now)

	resp, err := http.Get(ts.URL + "/data/chats?language=hi")
	if err != nil {
		t.Fatalf("data/chats failed: %v", err)
	}
	body := decodeBody(t, resp)
	chats, _ := body["chats"].([]any)
	if len(chats) != 1 {
		t.Errorf("got %d hindi chats, want 1", len(chats))
	}

	resp, err = http.Get(ts.URL + "/data/forms?form_type=FIR")
	if err != nil {
		t.Fatalf("data/forms failed: %v", err)
	}
	body = decodeBody(t, resp)
	forms, _ := body["forms"].([]any)
	if len(forms) != 0 {
		t.Errorf("got %d FIR forms, want 0", len(forms))
	}
}

func TestOAuthDev(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/auth/oauth/dev", map[string]string{"email": "oauth@example.com"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token issued")
	}

	// returned token works against an authenticated endpoint
	resp = postJSON(t, ts.URL+"/chat", map[string]string{"question": "bail rights after arrest"}, token)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("chat with oauth token status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestOAuthDevDisabled(t *testing.T) {
	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer st.Close()

	srv := New(Options{
		Store:  st,
		Issuer: auth.NewIssuer("s"),
		Chain:  advice.NewChain(time.Minute, advice.NewOfflineProvider()),
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/auth/oauth/dev", map[string]string{"email": "x@example.com"}, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestOAuthStartPopup(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/auth/oauth/dev/start?email=popup@example.com")
	if err != nil {
		t.Fatalf("oauth start failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	page := buf.String()
	if !strings.Contains(page, "oauth_token") {
		t.Error("popup page missing oauth_token message")
	}
	if !strings.Contains(page, "popup@example.com") {
		t.Error("popup page missing email")
	}
}

func TestOAuthStartUnknownProvider(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/auth/oauth/facebook/start")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestVerifyEndpoint(t *testing.T) {
	ts, st := newTestServer(t)

	// register creates a verification token then auto-verifies, so
	// build an unverified user directly
	id, err := st.CreateUser("verify@example.com", "hash", "tok-verify")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	resp, err := http.Get(ts.URL + "/auth/verify?token=tok-verify")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	body := decodeBody(t, resp)
	if body["message"] != "Email verified successfully" {
		t.Errorf("message = %v", body["message"])
	}

	u, _ := st.GetUserByEmail("verify@example.com")
	if u == nil || u.ID != id || !u.IsVerified {
		t.Errorf("user not verified: %+v", u)
	}

	resp, _ = http.Get(ts.URL + "/auth/verify?token=tok-verify")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("consumed token status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp, _ = http.Get(fmt.Sprintf("%s/auth/verify", ts.URL))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing token status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}
