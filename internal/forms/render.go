package forms

import (
	"fmt"
	"strings"
	"time"
)

const ruleWidth = 80

// Render produces the plain-text document for a form type from the
// user's field responses. Unfilled fields render as blank lines to be
// completed by hand.
func Render(formType string, responses map[string]string, now time.Time) (string, error) {
	title, err := Title(formType)
	if err != nil {
		return "", err
	}
	sections, err := FieldsFor(formType)
	if err != nil {
		return "", err
	}

	rule := strings.Repeat("=", ruleWidth)
	var lines []string
	lines = append(lines, rule)
	lines = append(lines, center(title, ruleWidth))
	lines = append(lines, rule)
	lines = append(lines, fmt.Sprintf("Generated on: %s", now.Format("January 2, 2006 at 3:04 PM")))
	lines = append(lines, "")

	for _, section := range sections {
		lines = append(lines, fmt.Sprintf("--- %s ---", titleCase(section.Name)))
		lines = append(lines, "")
		for _, f := range section.Fields {
			value := responses[f.Key]
			if value == "" {
				value = "_________________"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", f.Label, value))
			lines = append(lines, "")
		}
	}

	lines = append(lines, "")
	lines = append(lines, rule)
	lines = append(lines, "IMPORTANT NOTES:")
	lines = append(lines, "• This is a computer-generated form for reference purposes")
	lines = append(lines, "• Please verify all information before submission")
	lines = append(lines, "• Consult with a legal professional for final review")
	lines = append(lines, "• Keep copies of all supporting documents")
	lines = append(lines, rule)

	return strings.Join(lines, "\n"), nil
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func titleCase(sectionName string) string {
	words := strings.Split(sectionName, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
