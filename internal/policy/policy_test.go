package policy

import (
	"strings"
	"testing"
)

func TestIdentityQuestionGetsFixedReply(t *testing.T) {
	got := Apply("irrelevant model output", "Who are you?", "en")
	if got != "I am an AI assistant specializing in legal information." {
		t.Fatalf("unexpected identity reply: %q", got)
	}
}

func TestIdentityQuestionHindi(t *testing.T) {
	got := Apply("", "who are you", "hi")
	if !strings.Contains(got, "एआई सहायक") {
		t.Fatalf("expected hindi identity reply, got %q", got)
	}
}

func TestNonLegalQuestionIsRefused(t *testing.T) {
	got := Apply("Pasta needs 10 minutes of boiling.", "How do I cook pasta?", "en")
	if got != "I can only provide legal knowledge. Please ask a legal question." {
		t.Fatalf("expected refusal, got %q", got)
	}
}

func TestIdentityLeakIsSuppressed(t *testing.T) {
	got := Apply("As ChatGPT, I think the law says you may appeal.", "Can I appeal a court order?", "en")
	if got != "I am an AI assistant specializing in legal information." {
		t.Fatalf("expected identity replacement, got %q", got)
	}
}

func TestLegalAnswerPassesThrough(t *testing.T) {
	answer := "Under tenancy law you are entitled to 30 days notice before eviction."
	got := Apply(answer, "Can my landlord evict me without notice?", "en")
	if got != answer {
		t.Fatalf("expected answer untouched, got %q", got)
	}
}

func TestAnswerWithoutLegalContentIsRefused(t *testing.T) {
	got := Apply("Maybe. Hard to say.", "Can I sue my builder?", "en")
	if !strings.Contains(got, "legal topics") {
		t.Fatalf("expected content refusal, got %q", got)
	}
}

func TestShortIdentityQuestionIsNotLegal(t *testing.T) {
	if IsLegalQuestion("who are you") {
		t.Fatalf("identity question must not count as legal")
	}
	if !IsLegalQuestion("what are my rights if police arrest me without a warrant") {
		t.Fatalf("expected legal question detected")
	}
}
