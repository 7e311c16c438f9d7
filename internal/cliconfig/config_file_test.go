package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal, falseVal := true, false

	tests := []struct {
		name     string
		fc       FileConfig
		changed  map[string]bool
		initial  Config
		expected Config
	}{
		{
			name: "applies every key",
			fc: FileConfig{
				Volume:       "/mnt/sd",
				Input:        "/a.bin",
				Output:       "/b.bin",
				Algorithm:    "blake3",
				MaxBuffer:    "64MiB",
				Sync:         &trueVal,
				Verify:       &trueVal,
				ExpectDigest: "00",
				Report:       "/r.json",
				LogLevel:     "warn",
			},
			changed: map[string]bool{},
			expected: Config{
				Volume:       "/mnt/sd",
				Input:        "/a.bin",
				Output:       "/b.bin",
				Algorithm:    "blake3",
				MaxBuffer:    "64MiB",
				Sync:         true,
				Verify:       true,
				ExpectDigest: "00",
				Report:       "/r.json",
				LogLevel:     "warn",
			},
		},
		{
			name:     "empty values keep current config",
			fc:       FileConfig{},
			changed:  map[string]bool{},
			initial:  Config{Volume: "/keep", Verify: true},
			expected: Config{Volume: "/keep", Verify: true},
		},
		{
			name:     "explicit false overrides",
			fc:       FileConfig{Verify: &falseVal},
			changed:  map[string]bool{},
			initial:  Config{Verify: true},
			expected: Config{Verify: false},
		},
		{
			name:     "changed flags win",
			fc:       FileConfig{Volume: "/file", Sync: &trueVal},
			changed:  map[string]bool{"volume": true, "sync": true},
			initial:  Config{Volume: "/cli"},
			expected: Config{Volume: "/cli"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			if err := ApplyFileConfig(&cfg, tt.fc, tt.changed); err != nil {
				t.Fatalf("ApplyFileConfig() error = %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
volume = "/mnt/sd"
input = "/testfile.bin"
algorithm = "blake3"
max_buffer = "256MiB"
verify = true
`
	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.Volume != "/mnt/sd" {
		t.Errorf("Volume = %v, want /mnt/sd", fc.Volume)
	}
	if fc.Algorithm != "blake3" {
		t.Errorf("Algorithm = %v, want blake3", fc.Algorithm)
	}
	if fc.MaxBuffer != "256MiB" {
		t.Errorf("MaxBuffer = %v, want 256MiB", fc.MaxBuffer)
	}
	if fc.Verify == nil || !*fc.Verify {
		t.Errorf("Verify = %v, want true", fc.Verify)
	}
	if fc.Sync != nil {
		t.Errorf("Sync = %v, want nil when absent", *fc.Sync)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	if _, err := LoadFileConfig("/nonexistent/path/config.toml"); err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.toml")
	if err := os.WriteFile(configPath, []byte("volume = \"/x\"\nthis is not valid toml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFileConfig(configPath); err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if path != "" && !strings.Contains(path, ".volbench") {
		t.Errorf("DefaultConfigPath() = %v, should contain .volbench", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")
	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}
	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
