package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	API      APIConfig     `yaml:"api,omitempty"`
	Language string        `yaml:"language,omitempty"`
	Server   ServerConfig  `yaml:"server,omitempty"`
	Advice   AdviceConfig  `yaml:"advice,omitempty"`
	Mail     MailConfig    `yaml:"mail,omitempty"`
	Logging  LoggingConfig `yaml:"logging"`
}

// APIConfig controls how the client locates the backend.
type APIConfig struct {
	// BaseURL is an explicit backend origin. When set it is probed
	// ahead of every other candidate.
	BaseURL string `yaml:"base_url,omitempty"`
	// SameOrigin is the origin the hosting page was served from. The
	// empty candidate in the probe list resolves against it.
	SameOrigin string `yaml:"same_origin,omitempty"`
	// Host is a LAN hostname to try on the well-known port when it is
	// not localhost.
	Host string `yaml:"host,omitempty"`
}

type ServerConfig struct {
	Port      int    `yaml:"port,omitempty"`
	DBPath    string `yaml:"db_path,omitempty"`
	JWTSecret string `yaml:"jwt_secret,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	DevOAuth  bool   `yaml:"dev_oauth,omitempty"`
}

type AdviceConfig struct {
	OpenAIAPIKey    string `yaml:"openai_api_key,omitempty"`
	OpenAIBaseURL   string `yaml:"openai_base_url,omitempty"`
	OpenAIModel     string `yaml:"openai_model,omitempty"`
	AnthropicAPIKey string `yaml:"anthropic_api_key,omitempty"`
	AnthropicModel  string `yaml:"anthropic_model,omitempty"`
	RemoteURL       string `yaml:"remote_url,omitempty"`
}

type MailConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
	User string `yaml:"user,omitempty"`
	Pass string `yaml:"pass,omitempty"`
	From string `yaml:"from,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Language: "en",
		Server: ServerConfig{
			Port:   5000,
			DBPath: filepath.Join(ConfigDir(), "nyaya.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigDir() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".nyaya")
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".nyaya.yaml")
}

func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}
