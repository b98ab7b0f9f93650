// Package config loads the application configuration from a YAML file with
// environment-variable overrides for secrets. A missing config file is not an
// error; defaults plus environment are enough to run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"shortsmith/internal/ports/adapters/gemini"
	"shortsmith/internal/types"
)

type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Tools    ToolsConfig    `yaml:"tools"`
	Render   RenderConfig   `yaml:"render"`
	Captions CaptionsConfig `yaml:"captions"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type PathsConfig struct {
	WorkDir        string `yaml:"work_dir"`
	OutDir         string `yaml:"out_dir"`
	RecordsDB      string `yaml:"records_db"`
	CredentialsDir string `yaml:"credentials_dir"`
}

type ToolsConfig struct {
	FFmpeg       string `yaml:"ffmpeg"`
	FFprobe      string `yaml:"ffprobe"`
	YtDlp        string `yaml:"yt_dlp"`
	WhisperBin   string `yaml:"whisper_bin"`
	WhisperModel string `yaml:"whisper_model"`
}

type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type CaptionsConfig struct {
	Enabled bool               `yaml:"enabled"`
	Style   types.CaptionStyle `yaml:"style"`
}

type GeminiConfig struct {
	APIKey       string   `yaml:"api_key"`
	Model        string   `yaml:"model"`
	BaseURL      string   `yaml:"base_url"`
	AllowedHosts []string `yaml:"allowed_hosts"`
	// Required turns a metadata failure into a pipeline failure instead of a
	// degraded completion.
	Required bool `yaml:"required"`
}

type YouTubeConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CategoryID   string `yaml:"category_id"`
	Privacy      string `yaml:"privacy"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	Dir     string `yaml:"dir"`
	Console bool   `yaml:"console"`
}

// Load reads the YAML file at path when it exists, then applies environment
// overrides and defaults. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// fall through to env + defaults
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnv lets environment variables override file values. Secrets are
// expected here rather than in the file.
func (c *Config) applyEnv() {
	overlay(&c.Gemini.APIKey, "GEMINI_API_KEY")
	overlay(&c.Gemini.Model, "GEMINI_MODEL")
	overlay(&c.Gemini.BaseURL, "GEMINI_BASE_URL")
	if v := os.Getenv("GEMINI_ALLOWED_HOSTS"); v != "" {
		c.Gemini.AllowedHosts = splitHosts(v)
	}
	overlay(&c.YouTube.ClientID, "YOUTUBE_CLIENT_ID")
	overlay(&c.YouTube.ClientSecret, "YOUTUBE_CLIENT_SECRET")
}

func (c *Config) applyDefaults() {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&c.Paths.WorkDir, ".cache")
	def(&c.Paths.OutDir, "out")
	def(&c.Paths.RecordsDB, "shortsmith.db")
	def(&c.Paths.CredentialsDir, ".credentials")
	def(&c.Tools.FFmpeg, "ffmpeg")
	def(&c.Tools.FFprobe, "ffprobe")
	def(&c.Tools.YtDlp, "yt-dlp")
	def(&c.Tools.WhisperBin, "whisper-cli")
	def(&c.YouTube.CategoryID, "22")
	def(&c.YouTube.Privacy, "public")
	def(&c.Logging.Level, "info")
	if c.Render.Width == 0 {
		c.Render.Width = 1080
	}
	if c.Render.Height == 0 {
		c.Render.Height = 1920
	}
}

// Validate checks everything needed before a pipeline run starts.
func (c Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render dimensions must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Tools.WhisperModel == "" {
		return errors.New("whisper model path is required")
	}
	if c.Gemini.Required && c.Gemini.APIKey == "" {
		return errors.New("gemini.required is set but GEMINI_API_KEY is missing")
	}
	return gemini.ValidateBaseURL(c.Gemini.BaseURL, c.Gemini.AllowedHosts)
}

// ValidatePublish checks the extra requirements of the publish command.
func (c Config) ValidatePublish() error {
	if c.YouTube.ClientID == "" || c.YouTube.ClientSecret == "" {
		return errors.New("YOUTUBE_CLIENT_ID and YOUTUBE_CLIENT_SECRET are required to publish")
	}
	return nil
}

// CaptionStyle returns the configured style, or nil when captions are off.
func (c Config) CaptionStyle() *types.CaptionStyle {
	if !c.Captions.Enabled {
		return nil
	}
	style := c.Captions.Style
	return &style
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitHosts(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
