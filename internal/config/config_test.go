package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Render.Width != 1080 || cfg.Render.Height != 1920 {
		t.Fatalf("expected vertical defaults, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" || cfg.Tools.YtDlp != "yt-dlp" {
		t.Fatalf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.YouTube.CategoryID != "22" || cfg.YouTube.Privacy != "public" {
		t.Fatalf("unexpected youtube defaults: %+v", cfg.YouTube)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("missing file must fall back to defaults, got %v", err)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
paths:
  out_dir: /srv/clips
render:
  width: 720
  height: 1280
captions:
  enabled: true
  style:
    font_size: 56
    position: top
gemini:
  model: gemini-pro
  required: true
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Paths.OutDir != "/srv/clips" {
		t.Fatalf("out_dir = %q", cfg.Paths.OutDir)
	}
	if cfg.Render.Width != 720 || cfg.Render.Height != 1280 {
		t.Fatalf("render = %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if !cfg.Gemini.Required || cfg.Gemini.Model != "gemini-pro" {
		t.Fatalf("gemini = %+v", cfg.Gemini)
	}
	style := cfg.CaptionStyle()
	if style == nil || style.FontSize != 56 || style.Position != "top" {
		t.Fatalf("caption style = %+v", style)
	}
	// Defaults still fill what the file left out.
	if cfg.Paths.WorkDir != ".cache" {
		t.Fatalf("work_dir = %q", cfg.Paths.WorkDir)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
gemini:
  api_key: from-file
youtube:
  client_id: file-id
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("YOUTUBE_CLIENT_ID", "env-id")
	t.Setenv("GEMINI_ALLOWED_HOSTS", "example.com, other.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gemini.APIKey != "from-env" {
		t.Fatalf("api key = %q", cfg.Gemini.APIKey)
	}
	if cfg.YouTube.ClientID != "env-id" {
		t.Fatalf("client id = %q", cfg.YouTube.ClientID)
	}
	if len(cfg.Gemini.AllowedHosts) != 2 || cfg.Gemini.AllowedHosts[1] != "other.com" {
		t.Fatalf("allowed hosts = %v", cfg.Gemini.AllowedHosts)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg, _ := Load("")
		cfg.Tools.WhisperModel = "/models/ggml-base.en.bin"
		return cfg
	}

	t.Run("ok", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Fatalf("expected valid config, got %v", err)
		}
	})

	t.Run("missing whisper model", func(t *testing.T) {
		cfg := base()
		cfg.Tools.WhisperModel = ""
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("required metadata without api key", func(t *testing.T) {
		cfg := base()
		cfg.Gemini.Required = true
		cfg.Gemini.APIKey = ""
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error")
		}
		cfg.Gemini.APIKey = "key"
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected valid config, got %v", err)
		}
	})

	t.Run("bad gemini base url", func(t *testing.T) {
		cfg := base()
		cfg.Gemini.BaseURL = "http://attacker.example"
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("publish needs oauth client", func(t *testing.T) {
		cfg := base()
		err := cfg.ValidatePublish()
		if err == nil || !strings.Contains(err.Error(), "YOUTUBE_CLIENT_ID") {
			t.Fatalf("expected oauth client error, got %v", err)
		}
		cfg.YouTube.ClientID = "id"
		cfg.YouTube.ClientSecret = "secret"
		if err := cfg.ValidatePublish(); err != nil {
			t.Fatalf("expected valid publish config, got %v", err)
		}
	})
}
