package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manav/nyaya/internal/client"
	"github.com/manav/nyaya/internal/config"
	"github.com/manav/nyaya/internal/history"
	"github.com/manav/nyaya/internal/logger"
	"github.com/manav/nyaya/internal/notify"
	"github.com/manav/nyaya/internal/session"
)

var (
	logLevel    string
	apiOverride string
	language    string
)

var rootCmd = &cobra.Command{
	Use:   "nyaya",
	Short: "Nyaya legal-assistance client and backend",
	Long: `Nyaya connects people with legal information: ask legal questions,
generate ready-to-file documents (FIR, RTI, complaints, appeals), and
run the backing API server.

Commands:
  nyaya serve      Run the backend API server
  nyaya chat       Ask a legal question
  nyaya form       Generate a legal document
  nyaya history    Show past questions and answers
  nyaya status     Show connection and process diagnostics`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)

		cfg, err := config.Load()
		if err == nil && cfg.Logging.File != "" {
			logger.EnableFile(cfg.Logging.File)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&apiOverride, "api", "",
		"Backend origin to try first, e.g. http://127.0.0.1:5000")
	rootCmd.PersistentFlags().StringVar(&language, "language", "",
		"Answer language code (en, hi, mr)")
}

// newClient assembles the API client from config plus flags.
func newClient() (*client.Client, *notify.Notifier) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	notifier := notify.New(notify.NewTerminalSink())

	override := apiOverride
	if override == "" {
		override = cfg.API.BaseURL
	}
	state := client.NewState(client.Options{
		Override:   override,
		SameOrigin: cfg.API.SameOrigin,
		Host:       cfg.API.Host,
	}, notifier)

	sess := session.NewHolder(filepath.Join(config.ConfigDir(), "session.json"))
	hist := history.NewStore(filepath.Join(config.ConfigDir(), "history.json"))

	return client.New(state, sess, hist, notifier), notifier
}

// answerLanguage resolves the language flag against config.
func answerLanguage() string {
	if language != "" {
		return language
	}
	cfg, err := config.Load()
	if err == nil && cfg.Language != "" {
		return cfg.Language
	}
	return "en"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
