package pdf

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderProducesPDF(t *testing.T) {
	out, err := Render("FIRST INFORMATION REPORT\n" + strings.Repeat("=", 80) + "\n\nName: _________________")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header: %q", out[:min(8, len(out))])
	}
}

func TestRenderLongLines(t *testing.T) {
	long := strings.Repeat("word ", 100)
	if _, err := Render(long); err != nil {
		t.Fatalf("Render failed on long line: %v", err)
	}
}

func TestWrap(t *testing.T) {
	chunks := wrap("alpha beta gamma", 10)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(chunks), chunks)
	}
	if chunks[0] != "alpha beta" || chunks[1] != "gamma" {
		t.Errorf("unexpected chunks: %v", chunks)
	}

	unbroken := wrap(strings.Repeat("x", 25), 10)
	if len(unbroken) != 3 {
		t.Errorf("unbroken string: got %d chunks, want 3", len(unbroken))
	}

	short := wrap("short", 10)
	if len(short) != 1 || short[0] != "short" {
		t.Errorf("short line mangled: %v", short)
	}
}
