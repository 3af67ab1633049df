// Package cmd holds the golox CLI's cobra commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freddie-nelson/golox/internal/config"
	"github.com/freddie-nelson/golox/internal/golox"
)

// Version is set by -ldflags at build time; it stays "0.1.0-dev" during
// `go run`/tests.
var Version = "0.1.0-dev"

var (
	traceFlag          bool
	configPathFlag     string
	dumpResolutionFlag bool
)

// rootCmd validates arguments directly rather than through cobra's own
// argument validation: zero args starts the REPL, one arg runs a script,
// more than one prints the usage line and exits 64.
var rootCmd = &cobra.Command{
	Use:     "golox [script]",
	Short:   "golox is a tree-walking interpreter for Lox",
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			fmt.Fprintln(os.Stderr, "Usage: golox [script]")
			os.Exit(golox.ExitUsage)
		}

		cfg := config.Default()
		if loaded, err := loadConfig(configPathFlag); err == nil {
			cfg = loaded
		}
		if traceFlag {
			cfg.TraceCalls = true
		}

		rt := golox.New(cfg, os.Stdout, os.Stderr, os.Stdin)
		rt.SetDumpResolution(dumpResolutionFlag)

		os.Exit(rt.Run(args))
		return nil
	},
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(".golox.yaml"); err == nil {
		return config.Load(".golox.yaml")
	}
	return config.Default(), nil
}

func init() {
	rootCmd.Flags().BoolVar(&traceFlag, "trace", false, "trace statement/call execution to stderr")
	rootCmd.Flags().StringVar(&configPathFlag, "config", "", "path to a .golox.yaml config file")
	rootCmd.Flags().BoolVar(&dumpResolutionFlag, "dump-resolution", false, "dump the resolver's variable distance map as JSON")
}

// Execute runs the root command, returning an error for cobra's own
// usage/parsing failures (unknown flags etc). Successful runs terminate
// via os.Exit inside RunE with the interpreter's own exit code.
func Execute() error {
	return rootCmd.Execute()
}
