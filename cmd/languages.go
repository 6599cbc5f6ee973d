package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the answer languages the backend supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := newClient()
		langs, err := c.Languages(cmd.Context())
		if err != nil {
			return err
		}
		for _, l := range langs {
			fmt.Printf("%-4s %s (%s)\n", l.Code, l.Name, l.Native)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
