package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manav/nyaya/internal/config"
	"github.com/manav/nyaya/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past questions and answers",
	Run: func(cmd *cobra.Command, args []string) {
		hist := history.NewStore(filepath.Join(config.ConfigDir(), "history.json"))
		entries := hist.LoadAll()
		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return
		}
		for _, e := range entries {
			fmt.Printf("[%s] (%s)\n", e.Timestamp.Format("2006-01-02 15:04"), e.Language)
			fmt.Printf("Q: %s\n", e.Question)
			fmt.Printf("A: %s\n\n", e.Answer)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
