package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides, also read from .env / .env.local.
const (
	EnvDataDir = "SYNTAXSHEET_DATA_DIR"
	EnvAddress = "SYNTAXSHEET_ADDRESS"
)

// Config holds the application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
	Window WindowConfig `yaml:"window"`
	Render RenderConfig `yaml:"render"`
	Search SearchConfig `yaml:"search"`
}

// DataConfig holds the location of the language definitions.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string   `yaml:"address"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	SessionTTL      Duration `yaml:"session_ttl"` // how long a page's selection is remembered after it disconnects
}

// WindowConfig holds settings for the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Debug  bool   `yaml:"debug"` // enables the webview developer tools
}

// RenderConfig holds presentation settings.
type RenderConfig struct {
	Highlight bool        `yaml:"highlight"`
	Style     string      `yaml:"style"` // chroma style name
	TabWidth  int         `yaml:"tab_width"`
	Theme     ThemeConfig `yaml:"theme"`
}

// ThemeConfig holds the static styles of the code area.
type ThemeConfig struct {
	Font        string         `yaml:"font"`
	FontSize    int            `yaml:"font_size"`
	Background  string         `yaml:"background"`
	Foreground  string         `yaml:"foreground"`
	Title       TagStyleConfig `yaml:"title"`
	Explanation TagStyleConfig `yaml:"explanation"`
	Code        TagStyleConfig `yaml:"code"`
}

// TagStyleConfig is the style of one block tag.
type TagStyleConfig struct {
	Color string `yaml:"color"`
	Bold  bool   `yaml:"bold"`
}

// SearchConfig holds settings for the example search index.
type SearchConfig struct {
	DBPath string `yaml:"db_path"`
	Limit  int    `yaml:"limit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: "./languages",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
		},
		Server: ServerConfig{
			Address:         "localhost:1921",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			ShutdownTimeout: Duration(5 * time.Second),
			SessionTTL:      Duration(30 * time.Minute),
		},
		Window: WindowConfig{
			Title:  "Language Syntax Cheat Sheet",
			Width:  1200,
			Height: 800,
		},
		Render: RenderConfig{
			Highlight: false,
			Style:     "monokai",
			TabWidth:  4,
			Theme: ThemeConfig{
				Font:        "Consolas",
				FontSize:    10,
				Background:  "#1e1e1e",
				Foreground:  "#ffffff",
				Title:       TagStyleConfig{Color: "#ffcc00", Bold: true},
				Explanation: TagStyleConfig{Color: "#cccccc"},
				Code:        TagStyleConfig{Color: "#ffffff"},
			},
		},
		Search: SearchConfig{
			DBPath: ":memory:",
			Limit:  50,
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it is created with default values.
// An existing file is merged over the defaults but never rewritten, to keep user comments.
// Environment variables (and .env files next to the working directory) override the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	loadEnvFiles()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles reads .env.local then .env; neither overrides variables already set.
func loadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv(EnvAddress); v != "" {
		cfg.Server.Address = v
	}
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	for name, color := range map[string]string{
		"background":  c.Render.Theme.Background,
		"foreground":  c.Render.Theme.Foreground,
		"title":       c.Render.Theme.Title.Color,
		"explanation": c.Render.Theme.Explanation.Color,
		"code":        c.Render.Theme.Code.Color,
	} {
		if !hexColor.MatchString(color) {
			return fmt.Errorf("invalid theme color for %s: '%s' (expected #rgb or #rrggbb)", name, color)
		}
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# SyntaxSheet Configuration
# -------------------------
# Duration units: ns, us (or µs), ms, s, m, h, d (day)
# Environment overrides: ` + EnvDataDir + `, ` + EnvAddress + `

`)
	data = append(header, data...)

	reStyle := regexp.MustCompile(`(?m)^(\s+)style:`)
	data = reStyle.ReplaceAll(data, []byte("${1}# Any chroma style, e.g. monokai, dracula, github\n${1}style:"))

	reHighlight := regexp.MustCompile(`(?m)^(\s+)highlight:`)
	data = reHighlight.ReplaceAll(data, []byte("${1}# Colour example code (python, javascript, java, go)\n${1}highlight:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
