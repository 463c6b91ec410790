package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/raft/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %s, want 5m0s", result)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := Default()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"General.Name", cfg.General.Name, "raft"},
		{"General.DataDir", cfg.General.DataDir, "/home/tester/.raft"},
		{"General.LogLevel", cfg.General.LogLevel, "warn"},
		{"General.LogFormat", cfg.General.LogFormat, "text"},
		{"REPL.Prompt", cfg.REPL.Prompt, "Raft> "},
		{"REPL.MaxOutputLines", cfg.REPL.MaxOutputLines, 500},
		{"History.Path", cfg.History.Path, "/home/tester/.raft/history.db"},
		{"History.Retention", cfg.History.Retention.Duration, 720 * time.Hour},
		{"History.ListLimit", cfg.History.ListLimit, 20},
		{"Backend.ModuleName", cfg.Backend.ModuleName, "Module"},
		{"Backend.Externs", len(cfg.Backend.Externs), len(DefaultExterns())},
		{"Watch.Debounce", cfg.Watch.Debounce.Duration, 200 * time.Millisecond},
		{"Highlight.Style", cfg.Highlight.Style, "monokai"},
		{"Highlight.Formatter", cfg.Highlight.Formatter, "terminal256"},
		{"LogFilePath", cfg.LogFilePath(), "/home/tester/.raft/raft.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/raft.toml")
	if err == nil {
		t.Fatal("Load() expected error for non-existent file")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Load() error code = %v, want NOT_FOUND", mdwerror.GetCode(err))
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "raft.toml")

	configContent := `
[general]
data_dir = "` + tmpDir + `"
log_level = "debug"

[repl]
prompt = ">> "

[backend]
module_name = "demo"

[[backend.externs]]
name = "clamp"
params = 3

[watch]
debounce = "1s"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.REPL.Prompt != ">> " {
		t.Errorf("REPL.Prompt = %q, want >> ", cfg.REPL.Prompt)
	}
	if cfg.Backend.ModuleName != "demo" {
		t.Errorf("Backend.ModuleName = %v, want demo", cfg.Backend.ModuleName)
	}
	if len(cfg.Backend.Externs) != 1 || cfg.Backend.Externs[0].Name != "clamp" || cfg.Backend.Externs[0].Params != 3 {
		t.Errorf("Backend.Externs = %+v", cfg.Backend.Externs)
	}
	if cfg.Watch.Debounce.Duration != time.Second {
		t.Errorf("Watch.Debounce = %v, want 1s", cfg.Watch.Debounce)
	}

	// Defaults for missing values
	if cfg.History.Path != filepath.Join(tmpDir, "history.db") {
		t.Errorf("History.Path = %v", cfg.History.Path)
	}
	if cfg.Highlight.Style != "monokai" {
		t.Errorf("Highlight.Style = %v, want monokai (default)", cfg.Highlight.Style)
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "raft.yaml")

	configContent := `
general:
  log_format: json
history:
  retention: 48h
  list_limit: 5
highlight:
  style: dracula
backend:
  externs:
    - name: printd
      params: 1
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogFormat != "json" {
		t.Errorf("General.LogFormat = %v, want json", cfg.General.LogFormat)
	}
	if cfg.History.Retention.Duration != 48*time.Hour {
		t.Errorf("History.Retention = %v, want 48h", cfg.History.Retention)
	}
	if cfg.History.ListLimit != 5 {
		t.Errorf("History.ListLimit = %v, want 5", cfg.History.ListLimit)
	}
	if cfg.Highlight.Style != "dracula" {
		t.Errorf("Highlight.Style = %v, want dracula", cfg.Highlight.Style)
	}
	if len(cfg.Backend.Externs) != 1 {
		t.Errorf("Backend.Externs = %+v, want one entry", cfg.Backend.Externs)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    mdwerror.Code
	}{
		{"syntax", "[general\nname = 1", mdwerror.CodeConfigError},
		{"bad level", "[general]\nlog_level = \"loud\"", mdwerror.CodeInvalidConfig},
		{"bad format", "[general]\nlog_format = \"xml\"", mdwerror.CodeInvalidConfig},
		{"extern without name", "[[backend.externs]]\nparams = 1", mdwerror.CodeInvalidConfig},
		{"duplicate extern", "[[backend.externs]]\nname = \"f\"\n[[backend.externs]]\nname = \"f\"", mdwerror.CodeInvalidConfig},
		{"negative params", "[[backend.externs]]\nname = \"f\"\nparams = -1", mdwerror.CodeInvalidConfig},
		{"reserved extern name", "[[backend.externs]]\nname = \"var\"\nparams = 1", mdwerror.CodeInvalidConfig},
		{"extern name starts with digit", "[[backend.externs]]\nname = \"1x\"\nparams = 1", mdwerror.CodeInvalidConfig},
		{"extern name with symbol", "[[backend.externs]]\nname = \"log-2\"\nparams = 1", mdwerror.CodeInvalidConfig},
		{"bad duration", "[watch]\ndebounce = \"soon\"", mdwerror.CodeConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "raft.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Load() error = %v (code %v), want code %v", err, mdwerror.GetCode(err), tt.code)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.toml")
	if err := os.WriteFile(configPath, []byte("[repl]\nprompt = \"env> \"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RAFT_CONFIG", configPath)
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.REPL.Prompt != "env> " {
		t.Errorf("REPL.Prompt = %q, want env> ", cfg.REPL.Prompt)
	}
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv("RAFT_CONFIG", "")
	t.Setenv("HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(originalWd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.REPL.Prompt != "Raft> " {
		t.Errorf("expected defaults, got prompt %q", cfg.REPL.Prompt)
	}
}

func TestEncode(t *testing.T) {
	cfg := Default()

	var tomlBuf bytes.Buffer
	if err := cfg.Encode(&tomlBuf, "toml"); err != nil {
		t.Fatalf("Encode(toml) error = %v", err)
	}
	if !strings.Contains(tomlBuf.String(), `debounce = "200ms"`) {
		t.Errorf("TOML output missing debounce:\n%s", tomlBuf.String())
	}

	var yamlBuf bytes.Buffer
	if err := cfg.Encode(&yamlBuf, "yaml"); err != nil {
		t.Fatalf("Encode(yaml) error = %v", err)
	}
	if !strings.Contains(yamlBuf.String(), "debounce: 200ms") {
		t.Errorf("YAML output missing debounce:\n%s", yamlBuf.String())
	}

	if err := cfg.Encode(&bytes.Buffer{}, "ini"); err == nil {
		t.Error("Encode(ini) expected error")
	}

	// Round trip through a file
	path := filepath.Join(t.TempDir(), "roundtrip.toml")
	if err := os.WriteFile(path, tomlBuf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load(encoded) error = %v", err)
	}
	if back.Watch.Debounce != cfg.Watch.Debounce || len(back.Backend.Externs) != len(cfg.Backend.Externs) {
		t.Errorf("round trip mismatch: %+v vs %+v", back, cfg)
	}
}
