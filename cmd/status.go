package cmd

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/cobra"

	"github.com/manav/nyaya/internal/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection and process diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := newClient()
		state := c.State()

		state.Resolve(cmd.Context())
		fmt.Printf("Backend:    %s\n", describeConn(state))
		fmt.Printf("Origin:     %s\n", originLabel(state.ActiveOrigin()))

		email := c.Session().Email()
		if email == "" {
			fmt.Println("Account:    not logged in")
		} else {
			fmt.Printf("Account:    %s\n", email)
		}

		proc, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			return nil
		}
		if mem, err := proc.MemoryInfo(); err == nil {
			fmt.Printf("Memory:     %.1f MB\n", float64(mem.RSS)/1024/1024)
		}
		if created, err := proc.CreateTime(); err == nil {
			fmt.Printf("Started:    %d (unix ms)\n", created)
		}
		return nil
	},
}

func describeConn(state *client.State) string {
	switch state.ConnState() {
	case client.StateConnected:
		return "connected"
	case client.StateChecking:
		return "checking"
	default:
		return "disconnected"
	}
}

func originLabel(origin string) string {
	if origin == "" {
		return "(same origin)"
	}
	return origin
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
