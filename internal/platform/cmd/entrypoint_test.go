package cmd

import (
	"context"
	"flag"
	"testing"
)

func TestParseConfig_NilTarget(t *testing.T) {
	if err := ParseConfig[struct{}](nil); err == nil {
		t.Fatal("expected error for nil config target")
	}
}

func TestParseArgs(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	value := fs.String("value", "", "")
	if err := ParseArgs(fs, []string{"-value", "x"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if *value != "x" {
		t.Fatalf("value = %q, want x", *value)
	}
}

func TestParseArgs_NilFlagSet(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected error for nil flag set")
	}
}

func TestRunWithTelemetry(t *testing.T) {
	ran := false
	err := RunWithTelemetry(context.Background(), ServiceCore, func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ran {
		t.Fatal("run function must be invoked")
	}
}

func TestRunWithTelemetry_RequiresService(t *testing.T) {
	err := RunWithTelemetry(context.Background(), " ", func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for blank service name")
	}
}
