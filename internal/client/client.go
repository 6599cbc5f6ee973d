package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/manav/nyaya/internal/history"
	"github.com/manav/nyaya/internal/notify"
	"github.com/manav/nyaya/internal/session"
)

// Client bundles the dispatcher with the session holder, the local
// history log, and the status reporter, and exposes the API operations
// the UI layer invokes.
type Client struct {
	state    *State
	session  *session.Holder
	history  *history.Store
	notifier *notify.Notifier
}

func New(state *State, sess *session.Holder, hist *history.Store, notifier *notify.Notifier) *Client {
	return &Client{
		state:    state,
		session:  sess,
		history:  hist,
		notifier: notifier,
	}
}

// State exposes the shared connection state, mainly for status display.
func (c *Client) State() *State { return c.state }

// Session exposes the token holder.
func (c *Client) Session() *session.Holder { return c.session }

// CheckConnection runs an explicit resolver scan and reports the
// outcome to the user.
func (c *Client) CheckConnection(ctx context.Context) bool {
	c.state.Resolve(ctx)
	if c.state.ConnState() == StateConnected {
		c.notifier.Success("Successfully connected to server!")
		return true
	}
	c.notifier.Error("Failed to connect to server. Please check if the backend is running.")
	return false
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, authenticated bool) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	header := http.Header{"Content-Type": []string{"application/json"}}
	if authenticated {
		header.Set("Authorization", "Bearer "+c.session.Token())
	}
	return c.state.Dispatch(ctx, path, RequestOptions{
		Method: http.MethodPost,
		Header: header,
		Body:   body,
	})
}

// decodeJSON reads the response and applies the error standardization:
// any non-2xx status, or any JSON body carrying a non-empty error
// field, is an ApplicationError.
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(data, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ApplicationError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}
	if envelope.Error != "" {
		return &ApplicationError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Register creates an account. The token is not stored; the user logs
// in afterwards.
func (c *Client) Register(ctx context.Context, email, password string) error {
	resp, err := c.postJSON(ctx, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		c.notifier.Error(fmt.Sprintf("Register failed: %v", err))
		return err
	}
	if err := decodeJSON(resp, nil); err != nil {
		c.notifier.Error(fmt.Sprintf("Register failed: %v", err))
		return err
	}
	c.notifier.Success("Registered successfully. You can now login.")
	return nil
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	resp, err := c.postJSON(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		c.notifier.Error(fmt.Sprintf("Login failed: %v", err))
		return err
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		c.notifier.Error(fmt.Sprintf("Login failed: %v", err))
		return err
	}
	if out.Token == "" {
		err := fmt.Errorf("no token returned")
		c.notifier.Error(fmt.Sprintf("Login failed: %v", err))
		return err
	}
	c.session.SetToken(out.Token, email)
	c.notifier.Success("Logged in successfully.")
	return nil
}

// DevLogin obtains a token from the development OAuth shortcut.
func (c *Client) DevLogin(ctx context.Context, email string) error {
	resp, err := c.postJSON(ctx, "/auth/oauth/dev", map[string]string{"email": email}, false)
	if err != nil {
		c.notifier.Error(fmt.Sprintf("Dev login failed: %v", err))
		return err
	}
	var out struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		c.notifier.Error(fmt.Sprintf("Dev login failed: %v", err))
		return err
	}
	if out.Token == "" {
		err := fmt.Errorf("no token returned")
		c.notifier.Error(fmt.Sprintf("Dev login failed: %v", err))
		return err
	}
	c.session.SetToken(out.Token, email)
	c.notifier.Success("Dev login success.")
	return nil
}

// Logout clears the stored session.
func (c *Client) Logout() {
	c.session.Clear()
	c.notifier.Info("Logged out.")
}

// Chat sends one legal question and returns the answer. The exchange is
// appended to the local history on success. Without a token no network
// call is made at all.
func (c *Client) Chat(ctx context.Context, question, language string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		c.notifier.Error("Please enter a question")
		return "", fmt.Errorf("question is required")
	}
	if c.session.Token() == "" {
		c.notifier.Warning("Please login first to use chat")
		return "", ErrUnauthorized
	}

	resp, err := c.postJSON(ctx, "/chat", map[string]string{
		"question": question,
		"language": language,
	}, true)
	if err != nil {
		c.notifier.Error(fmt.Sprintf("Chat failed: %v", err))
		return "", err
	}
	var out struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		c.notifier.Error(fmt.Sprintf("Chat failed: %v", err))
		return "", err
	}

	c.history.Append(question, out.Answer, language)
	return out.Answer, nil
}

// GenerateForm produces the templated document text for the given form
// type and responses.
func (c *Client) GenerateForm(ctx context.Context, formType string, responses map[string]string) (string, error) {
	if len(responses) == 0 {
		c.notifier.Warning("Please fill in at least one field")
		return "", fmt.Errorf("at least one field is required")
	}
	if c.session.Token() == "" {
		c.notifier.Warning("Please login first to generate forms")
		return "", ErrUnauthorized
	}

	resp, err := c.postJSON(ctx, "/generate_form", map[string]any{
		"form_type": formType,
		"responses": responses,
	}, true)
	if err != nil {
		c.notifier.Error(fmt.Sprintf("Error generating form: %v", err))
		return "", err
	}
	var out struct {
		Form string `json:"form"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		c.notifier.Error(fmt.Sprintf("Error generating form: %v", err))
		return "", err
	}
	c.notifier.Success("Form generated successfully!")
	return out.Form, nil
}

// GenerateFormPDF downloads the rendered document as a PDF into dir and
// returns the written file path.
func (c *Client) GenerateFormPDF(ctx context.Context, formType string, responses map[string]string, dir string) (string, error) {
	if c.session.Token() == "" {
		c.notifier.Warning("Please login first to generate PDF")
		return "", ErrUnauthorized
	}

	resp, err := c.postJSON(ctx, "/generate_form_pdf", map[string]any{
		"form_type": formType,
		"responses": responses,
	}, true)
	if err != nil {
		c.notifier.Error(fmt.Sprintf("Failed to download PDF: %v", err))
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 ||
		!strings.HasPrefix(resp.Header.Get("Content-Type"), "application/pdf") {
		err := decodeJSON(resp, nil)
		if err == nil {
			err = &ApplicationError{StatusCode: resp.StatusCode, Message: "unexpected response"}
		}
		c.notifier.Error(fmt.Sprintf("Failed to download PDF: %v", err))
		return "", err
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.notifier.Error(fmt.Sprintf("Failed to download PDF: %v", err))
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_Nyaya.pdf", formType))
	if err := os.WriteFile(path, data, 0644); err != nil {
		c.notifier.Error(fmt.Sprintf("Failed to save PDF: %v", err))
		return "", err
	}
	c.notifier.Success("PDF downloaded.")
	return path, nil
}

// Language describes one supported answer language.
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native"`
}

// Languages fetches the backend's supported languages.
func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	resp, err := c.state.Dispatch(ctx, "/languages", RequestOptions{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	var out struct {
		Languages []Language `json:"languages"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return out.Languages, nil
}

// FormTypeInfo describes one document kind the backend can generate.
type FormTypeInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FormTypes fetches the backend's supported document kinds. The local
// catalog in internal/forms remains the source of truth for field
// schemas; this call is for listing what the connected backend offers.
func (c *Client) FormTypes(ctx context.Context) ([]FormTypeInfo, error) {
	resp, err := c.state.Dispatch(ctx, "/form_types", RequestOptions{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	var out struct {
		FormTypes []FormTypeInfo `json:"form_types"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return nil, err
	}
	return out.FormTypes, nil
}
