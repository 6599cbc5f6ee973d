// Package policy enforces the legal-only answering rules: a fixed
// identity reply, refusal of non-legal questions, and suppression of
// model self-identification in answers.
package policy

import "strings"

var identityTriggers = []string{
	"who are you",
	"what are you",
	"who is this",
	"identify yourself",
	"what is your name",
	"are you a bot",
}

var legalKeywords = []string{
	"law", "legal", "rights", "police", "court", "complaint", "fir", "appeal", "rti", "eviction",
	"divorce", "custody", "contract", "agreement", "charge", "arrest", "evidence", "bail", "sue", "lawsuit",
}

var identityLeakPatterns = []string{
	"i am chatgpt", "i am gpt", "i am a language model", "i am an ai", "i am ai", "i am a chatbot",
	"this is chatgpt", "chatgpt", "openai", "this is gemini", "this is gemma", "i am an llm",
}

var answerKeywords = []string{
	"law", "legal", "court", "police", "rights", "complaint", "fir", "appeal", "contract",
}

// IsIdentityQuestion reports whether the user is asking who the
// assistant is.
func IsIdentityQuestion(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, trigger := range identityTriggers {
		if strings.Contains(t, trigger) {
			return true
		}
	}
	return false
}

// IsLegalQuestion heuristically detects legal intent. Short
// identity-style questions are never legal questions.
func IsLegalQuestion(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if len(strings.Fields(t)) <= 5 && IsIdentityQuestion(t) {
		return false
	}
	for _, k := range legalKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

func identityReply(language string) string {
	if strings.HasPrefix(language, "hi") {
		return "मैं कानूनी जानकारी में विशेषज्ञता वाला एक एआई सहायक हूं।"
	}
	return "I am an AI assistant specializing in legal information."
}

func refusalReply(language string) string {
	if strings.HasPrefix(language, "hi") {
		return "मैं केवल कानूनी जानकारी प्रदान कर सकता/सकती हूँ। कृपया एक कानूनी प्रश्न पूछें।"
	}
	return "I can only provide legal knowledge. Please ask a legal question."
}

// Apply post-processes a model answer for one user question:
// identity questions get the fixed identity reply, non-legal questions
// are refused, answers that claim another identity are replaced, and
// answers without legal content are refused.
func Apply(answer, question, language string) string {
	if IsIdentityQuestion(question) {
		return identityReply(language)
	}
	if !IsLegalQuestion(question) {
		return refusalReply(language)
	}

	ans := strings.TrimSpace(answer)
	lower := strings.ToLower(ans)

	for _, pat := range identityLeakPatterns {
		if strings.Contains(lower, pat) {
			return identityReply(language)
		}
	}

	hasLegalContent := false
	for _, k := range answerKeywords {
		if strings.Contains(lower, k) {
			hasLegalContent = true
			break
		}
	}
	if !hasLegalContent {
		if strings.HasPrefix(language, "hi") {
			return refusalReply(language)
		}
		return "My function is to provide information on legal topics. Please frame your question accordingly."
	}

	return ans
}
