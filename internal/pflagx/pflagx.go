// Package pflagx implements extensions to pflag.
package pflagx

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/spf13/pflag"
)

type FlagSet pflag.FlagSet

func FlagSetExt(fs *pflag.FlagSet) *FlagSet {
	return (*FlagSet)(fs)
}

func (fs *FlagSet) FlagSet() *pflag.FlagSet {
	return (*pflag.FlagSet)(fs)
}

// LevelP defines a slog level flag.
func (fs *FlagSet) LevelP(name, shorthand string, value slog.Level, usage string) *slog.LevelVar {
	level := new(slog.LevelVar)
	def := new(slog.LevelVar)
	def.Set(value)
	fs.FlagSet().TextVarP(level, name, shorthand, def, usage)
	return level
}

// EnvName returns the environment variable read for flag name.
func EnvName(prefix, name string) string {
	return prefix + strings.Map(func(r rune) rune {
		switch r {
		case '-':
			return '_'
		}
		return unicode.ToUpper(r)
	}, name)
}

// ParseEnv sets flags from PREFIX_FLAG_NAME variables in environ. Flags
// already set on the command line are left alone, and variables naming
// flags absent from fs are ignored so one prefix can serve several flag
// sets.
func (fs *FlagSet) ParseEnv(prefix string, environ []string) error {
	for _, env := range environ {
		k, v, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		s, ok := strings.CutPrefix(k, prefix)
		if !ok {
			continue
		}
		n := strings.Map(func(r rune) rune {
			switch r {
			case '_':
				return '-'
			}
			return unicode.ToLower(r)
		}, s)
		f := fs.FlagSet().Lookup(n)
		if f == nil || f.Changed {
			continue
		}
		if err := fs.FlagSet().Set(n, v); err != nil {
			return fmt.Errorf("env %s: flag --%s: invalid argument: %w", k, n, err)
		}
	}
	return nil
}
