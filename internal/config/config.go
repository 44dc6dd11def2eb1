// Package config defines the CLI surface: a single optional port,
// plus --help/--version, with no other persisted state.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is quizler's entire runtime configuration.
type Config struct {
	Port    int
	Verbose bool
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	return nil
}

// NewCommand builds the root cobra command. run is invoked once flags
// are parsed and validated.
func NewCommand(version string, run func(cmd *cobra.Command, cfg *Config) error) *cobra.Command {
	cfg := &Config{}

	v := viper.New()
	v.SetEnvPrefix("QUIZLER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "quizler",
		Short:         "Self-hosted real-time multiplayer quiz engine.",
		Args:          cobra.ExactArgs(0),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&cfg.Port, "port", "p", 80, "port to listen on (env: QUIZLER_PORT)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug-level logging (env: QUIZLER_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetVersionTemplate("quizler v{{.Version}}\n")

	return cmd
}
