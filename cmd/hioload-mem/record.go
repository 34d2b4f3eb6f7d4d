package main

import (
	"fmt"

	"github.com/momentics/hioload-mem/record"
	"github.com/spf13/pflag"
)

func generateFlags(fs *pflag.FlagSet) func(env *cmdEnv) error {
	return func(env *cmdEnv) error {
		if len(env.args) != 0 {
			return fmt.Errorf("%w: unexpected arguments", errUsage)
		}
		buf, err := record.Encode(record.Generate())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(env.stdout, "%s\n", buf)
		return err
	}
}

func toJSONFlags(fs *pflag.FlagSet) func(env *cmdEnv) error {
	var (
		id        = fs.Uint64("id", 0, "data point id")
		value     = fs.Float64("value", 0, "data point value")
		timestamp = fs.String("timestamp", "", "data point timestamp (RFC 3339)")
	)
	return func(env *cmdEnv) error {
		if len(env.args) != 0 {
			return fmt.Errorf("%w: unexpected arguments", errUsage)
		}
		for _, name := range []string{"id", "value", "timestamp"} {
			if !fs.Changed(name) {
				return fmt.Errorf("%w: --%s is required", errUsage, name)
			}
		}
		buf, err := record.Encode(record.DataPoint{
			ID:        *id,
			Value:     *value,
			Timestamp: *timestamp,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(env.stdout, "%s\n", buf)
		return err
	}
}

func fromJSONFlags(fs *pflag.FlagSet) func(env *cmdEnv) error {
	return func(env *cmdEnv) error {
		if len(env.args) != 1 {
			return fmt.Errorf("%w: expected 1 argument, got %d", errUsage, len(env.args))
		}
		p, err := record.Decode([]byte(env.args[0]))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(env.stdout, "ID: %d\nValue: %v\nTimestamp: %s\n", p.ID, p.Value, p.Timestamp)
		return err
	}
}
