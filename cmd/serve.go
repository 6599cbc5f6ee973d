package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/manav/nyaya/internal/advice"
	"github.com/manav/nyaya/internal/auth"
	"github.com/manav/nyaya/internal/config"
	"github.com/manav/nyaya/internal/logger"
	"github.com/manav/nyaya/internal/mailer"
	"github.com/manav/nyaya/internal/server"
	"github.com/manav/nyaya/internal/store"
)

var (
	servePort     int
	serveDBPath   string
	serveDevOAuth bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default 5000)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "SQLite database path")
	serveCmd.Flags().BoolVar(&serveDevOAuth, "dev-oauth", false, "Enable the passwordless dev OAuth endpoint")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	applyServerEnv(cfg)

	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	dbPath := cfg.Server.DBPath
	if serveDBPath != "" {
		dbPath = serveDBPath
	}
	secret := cfg.Server.JWTSecret
	if secret == "" {
		return fmt.Errorf("jwt secret not configured: set JWT_SECRET or server.jwt_secret in %s", config.ConfigPath())
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	srv := server.New(server.Options{
		Store:    st,
		Issuer:   auth.NewIssuer(secret),
		Chain:    buildAdviceChain(cfg),
		Mailer:   buildMailer(cfg),
		BaseURL:  cfg.Server.BaseURL,
		DevOAuth: serveDevOAuth || cfg.Server.DevOAuth,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx, port)
}

// applyServerEnv layers environment variables over the file config.
func applyServerEnv(cfg *config.Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Server.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
	if v := os.Getenv("APP_BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Advice.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Advice.OpenAIBaseURL = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Advice.AnthropicAPIKey = v
	}
	if v := os.Getenv("LEGAL_AI_URL"); v != "" {
		cfg.Advice.RemoteURL = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Mail.Port = p
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.Mail.User = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		cfg.Mail.Pass = v
	}
}

// buildAdviceChain assembles providers in failover order: configured
// hosted models first, then the remote legal AI, then the offline
// knowledge base which always answers.
func buildAdviceChain(cfg *config.Config) *advice.Chain {
	var providers []advice.Provider

	if cfg.Advice.OpenAIAPIKey != "" {
		p, err := advice.NewOpenAIProvider(advice.OpenAIConfig{
			APIKey:  cfg.Advice.OpenAIAPIKey,
			BaseURL: cfg.Advice.OpenAIBaseURL,
			Model:   cfg.Advice.OpenAIModel,
		})
		if err != nil {
			logger.Warn("openai provider disabled: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if cfg.Advice.AnthropicAPIKey != "" {
		p, err := advice.NewAnthropicProvider(cfg.Advice.AnthropicAPIKey, cfg.Advice.AnthropicModel)
		if err != nil {
			logger.Warn("anthropic provider disabled: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	if cfg.Advice.RemoteURL != "" {
		p, err := advice.NewRemoteProvider(cfg.Advice.RemoteURL)
		if err != nil {
			logger.Warn("remote provider disabled: %v", err)
		} else {
			providers = append(providers, p)
		}
	}
	providers = append(providers, advice.NewOfflineProvider())

	return advice.NewChain(2*time.Minute, providers...)
}

func buildMailer(cfg *config.Config) *mailer.Mailer {
	return mailer.New(mailer.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.User,
		Password: cfg.Mail.Pass,
		From:     cfg.Mail.From,
	})
}
