package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav/nyaya/internal/forms"
)

var (
	formPDF bool
	formOut string
)

var formCmd = &cobra.Command{
	Use:   "form [form-type]",
	Short: "Generate a legal document",
	Long: `Generate a legal document by answering the template's questions
interactively. Without an argument the available form types are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			// Prefer the connected backend's listing; fall back to the
			// built-in catalog when offline.
			c, _ := newClient()
			if remote, err := c.FormTypes(cmd.Context()); err == nil {
				for _, t := range remote {
					fmt.Printf("%-10s %s: %s\n", t.ID, t.Name, t.Description)
				}
				return nil
			}
			for _, t := range forms.Types() {
				fmt.Printf("%-10s %s: %s\n", t.Code, t.Title, t.Description)
			}
			return nil
		}

		formType := strings.ToUpper(args[0])
		sections, err := forms.FieldsFor(formType)
		if err != nil {
			return err
		}

		responses, err := promptResponses(sections)
		if err != nil {
			return err
		}

		c, _ := newClient()
		if formPDF {
			dir := formOut
			if dir == "" {
				dir = "."
			}
			path, err := c.GenerateFormPDF(cmd.Context(), formType, responses, dir)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", path)
			return nil
		}

		text, err := c.GenerateForm(cmd.Context(), formType, responses)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

// promptResponses walks the template sections asking for each field.
// Empty answers leave the field blank on the generated document.
func promptResponses(sections []forms.Section) (map[string]string, error) {
	reader := bufio.NewReader(os.Stdin)
	responses := make(map[string]string)
	for _, section := range sections {
		fmt.Printf("\n%s\n", strings.ReplaceAll(section.Name, "_", " "))
		for _, f := range section.Fields {
			fmt.Printf("  %s: ", f.Label)
			line, err := reader.ReadString('\n')
			if err != nil {
				return nil, fmt.Errorf("failed to read input: %w", err)
			}
			if v := strings.TrimSpace(line); v != "" {
				responses[f.Key] = v
			}
		}
	}
	return responses, nil
}

func init() {
	formCmd.Flags().BoolVar(&formPDF, "pdf", false, "Download the document as a PDF")
	formCmd.Flags().StringVar(&formOut, "out", "", "Directory to save the PDF into")
	rootCmd.AddCommand(formCmd)
}
