package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/manav/nyaya/internal/forms"
	"github.com/manav/nyaya/internal/logger"
	"github.com/manav/nyaya/internal/pdf"
	"github.com/manav/nyaya/internal/policy"
	"github.com/manav/nyaya/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Nyaya Legal Aid API",
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	language := req.Language
	if language == "" {
		language = "en"
	}

	if claims := claimsFrom(r); claims != nil {
		logger.Debug("chat question from %s", claims.Email)
	}

	// Identity and non-legal questions are answered by policy without
	// spending a model call.
	var answer, source string
	if policy.IsIdentityQuestion(question) || !policy.IsLegalQuestion(question) {
		answer, source = policy.Apply("", question, language), "policy"
	} else {
		var err error
		answer, source, err = s.chain.Advise(r.Context(), question, language)
		if err != nil {
			logger.Warn("no provider could answer: %v", err)
			writeError(w, http.StatusBadGateway, "No answer available from Legal AI services")
			return
		}
		answer = policy.Apply(answer, question, language)
	}

	timestamp := time.Now().UTC()
	if err := s.store.InsertChat(question, answer, language, timestamp); err != nil {
		logger.Error("failed to persist chat: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"answer":    answer,
		"question":  question,
		"language":  language,
		"timestamp": timestamp.Format(time.RFC3339),
		"source":    source,
	})
}

func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	formType, responses, ok := decodeFormRequest(w, r)
	if !ok {
		return
	}

	formText, err := forms.Render(formType, responses, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown form type: %s", formType))
		return
	}

	timestamp := time.Now().UTC()
	if err := s.store.InsertForm(formType, formText, responses, timestamp); err != nil {
		logger.Error("failed to persist form: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"form":      formText,
		"form_type": formType,
		"timestamp": timestamp.Format(time.RFC3339),
	})
}

func (s *Server) handleGenerateFormPDF(w http.ResponseWriter, r *http.Request) {
	formType, responses, ok := decodeFormRequest(w, r)
	if !ok {
		return
	}

	formText, err := forms.Render(formType, responses, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown form type: %s", formType))
		return
	}

	data, err := pdf.Render(formText)
	if err != nil {
		logger.Error("pdf rendering failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	if err := s.store.InsertForm(formType, formText, responses, time.Now().UTC()); err != nil {
		logger.Error("failed to persist form: %v", err)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_Nyaya.pdf"`, formType))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func decodeFormRequest(w http.ResponseWriter, r *http.Request) (string, map[string]string, bool) {
	var req struct {
		FormType  string            `json:"form_type"`
		Responses map[string]string `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return "", nil, false
	}
	if req.FormType == "" {
		writeError(w, http.StatusBadRequest, "Form type is required")
		return "", nil, false
	}
	if req.Responses == nil {
		req.Responses = map[string]string{}
	}
	return req.FormType, req.Responses, true
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": []map[string]string{
			{"code": "en", "name": "English", "native": "English"},
			{"code": "hi", "name": "Hindi", "native": "हिंदी"},
			{"code": "mr", "name": "Marathi", "native": "मराठी"},
		},
	})
}

func (s *Server) handleFormTypes(w http.ResponseWriter, r *http.Request) {
	types := forms.Types()
	out := make([]map[string]string, 0, len(types))
	for _, t := range types {
		out = append(out, map[string]string{
			"id":          t.Code,
			"name":        t.Title,
			"description": t.Description,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"form_types": out})
}

func (s *Server) handleChats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	chats, err := s.store.Chats(store.ChatFilter{
		Start:    q.Get("start"),
		End:      q.Get("end"),
		Language: q.Get("language"),
		Query:    q.Get("q"),
	})
	if err != nil {
		logger.Error("failed to fetch chats: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch chats")
		return
	}
	if chats == nil {
		chats = []store.Chat{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"chats": chats})
}

func (s *Server) handleForms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := s.store.Forms(store.FormFilter{
		Start:    q.Get("start"),
		End:      q.Get("end"),
		FormType: q.Get("form_type"),
		Query:    q.Get("q"),
	})
	if err != nil {
		logger.Error("failed to fetch forms: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch forms")
		return
	}
	if results == nil {
		results = []store.Form{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"forms": results})
}
