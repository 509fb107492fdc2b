package core

import (
	"flag"
	"testing"
)

func TestParseConfig_Defaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Backend != "file" {
		t.Fatalf("backend = %q, want file", cfg.Backend)
	}
	if cfg.SaveDir != "saves" {
		t.Fatalf("save dir = %q, want saves", cfg.SaveDir)
	}
	if cfg.Slot != 0 || cfg.Delete {
		t.Fatalf("cfg = %+v, want list mode by default", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-backend", "sqlite", "-db", "x.db", "-slot", "3", "-delete"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Backend != "sqlite" || cfg.DatabasePath != "x.db" {
		t.Fatalf("cfg = %+v, want sqlite backend at x.db", cfg)
	}
	if cfg.Slot != 3 || !cfg.Delete {
		t.Fatalf("cfg = %+v, want delete of slot 3", cfg)
	}
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	if _, err := openStore(Config{Backend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
