package pflagx

import (
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
)

func TestLevelP(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	lvl := FlagSetExt(fs).LevelP("log-level", "L", slog.LevelWarn, "log level")
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if lvl.Level() != slog.LevelWarn {
		t.Fatalf("default level = %v, want WARN", lvl.Level())
	}
	if err := fs.Parse([]string{"-L", "debug"}); err != nil {
		t.Fatal(err)
	}
	if lvl.Level() != slog.LevelDebug {
		t.Fatalf("level = %v, want DEBUG", lvl.Level())
	}
}

func TestParseEnv(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	records := fs.Int("records", 10, "")
	batch := fs.Int("batch-size", 1, "")
	mode := fs.String("mode", "a", "")
	if err := fs.Parse([]string{"--mode", "cli"}); err != nil {
		t.Fatal(err)
	}
	err := FlagSetExt(fs).ParseEnv("APP_", []string{
		"APP_RECORDS=42",
		"APP_BATCH_SIZE=7",
		"APP_MODE=env",
		"APP_UNKNOWN=1",
		"OTHER_RECORDS=1",
		"malformed",
	})
	if err != nil {
		t.Fatal(err)
	}
	if *records != 42 || *batch != 7 {
		t.Fatalf("records=%d batch=%d", *records, *batch)
	}
	if *mode != "cli" {
		t.Fatalf("command line value overridden: %q", *mode)
	}
}

func TestParseEnvInvalid(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("records", 10, "")
	if err := FlagSetExt(fs).ParseEnv("APP_", []string{"APP_RECORDS=x"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestEnvName(t *testing.T) {
	if got := EnvName("APP_", "free-list-cap"); got != "APP_FREE_LIST_CAP" {
		t.Fatalf("got %q", got)
	}
}
