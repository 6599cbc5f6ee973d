package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword()
		if err != nil {
			return err
		}
		c, _ := newClient()
		return c.Register(cmd.Context(), args[0], password)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword()
		if err != nil {
			return err
		}
		c, _ := newClient()
		return c.Login(cmd.Context(), args[0], password)
	},
}

var devLoginCmd = &cobra.Command{
	Use:   "dev-login <email>",
	Short: "Log in through the passwordless dev OAuth endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := newClient()
		return c.DevLogin(cmd.Context(), args[0])
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		c, _ := newClient()
		c.Logout()
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Run: func(cmd *cobra.Command, args []string) {
		c, _ := newClient()
		email := c.Session().Email()
		if email == "" {
			fmt.Println("not logged in")
			return
		}
		fmt.Println(email)
	},
}

func readPassword() (string, error) {
	fmt.Print("Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, devLoginCmd, logoutCmd, whoamiCmd)
}
