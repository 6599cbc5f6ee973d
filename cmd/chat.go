package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask a legal question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := newClient()
		question := strings.Join(args, " ")

		answer, err := c.Chat(cmd.Context(), question, answerLanguage())
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
