package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestLoadOrCreateConfigMissingCreatesDefault(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "config", "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	// Ensure missing
	if _, err := os.Stat(configPath); err == nil {
		t.Fatalf("expected config file to be missing")
	}

	created, err := LoadOrCreateConfig()
	if err != nil {
		t.Fatalf("LoadOrCreateConfig() error: %v", err)
	}
	if !created {
		t.Fatalf("LoadOrCreateConfig() created=false, want true")
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	var got Config
	if _, err := toml.DecodeFile(configPath, &got); err != nil {
		t.Fatalf("decode created config: %v", err)
	}
	if got.Server.Host != "127.0.0.1" {
		t.Fatalf("default server host = %q, want %q", got.Server.Host, "127.0.0.1")
	}
	if got.Server.Port != 8888 {
		t.Fatalf("default server port = %d, want %d", got.Server.Port, 8888)
	}
	if got.Editor.LeavePolicy != LeavePolicyCommit {
		t.Fatalf("default leave policy = %q, want %q", got.Editor.LeavePolicy, LeavePolicyCommit)
	}
	if got.Editor.EndpointHitRadius != 12 || got.Editor.LineHitRadius != 10 {
		t.Fatalf("default hit radii = %v/%v, want 12/10", got.Editor.EndpointHitRadius, got.Editor.LineHitRadius)
	}
	if got.ClipDefaults.Duration != 5 || got.ClipDefaults.Fps != 15 {
		t.Fatalf("default clip = %vs@%dfps, want 5s@15fps", got.ClipDefaults.Duration, got.ClipDefaults.Fps)
	}
	if got.Queue.Provider != QueueProviderMemory {
		t.Fatalf("default queue provider = %q, want %q", got.Queue.Provider, QueueProviderMemory)
	}
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "deep", "nest", "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	oldConf := Conf
	t.Cleanup(func() { Conf = oldConf })
	Conf = defaultConfig()
	Conf.Server.Port = 9999
	Conf.Editor.LeavePolicy = LeavePolicyCancel

	if err := SaveConfig(); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	if _, err := os.Stat(filepath.Dir(configPath)); err != nil {
		t.Fatalf("expected parent directories to exist: %v", err)
	}

	var got Config
	if _, err := toml.DecodeFile(configPath, &got); err != nil {
		t.Fatalf("decode saved config: %v", err)
	}
	if got.Server.Port != 9999 {
		t.Fatalf("saved server port = %d, want %d", got.Server.Port, 9999)
	}
	if got.Editor.LeavePolicy != LeavePolicyCancel {
		t.Fatalf("saved leave policy = %q, want %q", got.Editor.LeavePolicy, LeavePolicyCancel)
	}
}
