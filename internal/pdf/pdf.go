// Package pdf renders generated form text as a PDF document.
package pdf

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	marginMM  = 15
	fontSize  = 10
	lineWidth = 110
)

// Render lays the form text out on A4 pages and returns the PDF bytes.
// Long lines are wrapped at a fixed column so preformatted rules and
// underscores keep their shape.
func Render(formText string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(true, marginMM)
	doc.AddPage()
	doc.SetFont("Helvetica", "", fontSize)

	lineHeight := doc.PointConvert(fontSize) * 1.3
	for _, line := range strings.Split(formText, "\n") {
		for _, chunk := range wrap(line, lineWidth) {
			doc.CellFormat(0, lineHeight, chunk, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrap splits a line into chunks of at most width runes, breaking on
// spaces where possible.
func wrap(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > 0; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, string(runes[:cut]))
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
