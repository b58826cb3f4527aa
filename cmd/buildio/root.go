package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/buildio/pkg/buildio"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buildio",
	Short: "Package archive and fetch tooling for buildio-based builds",
	Long: `buildio is a companion tool for the buildio I/O library. It can unpack
compressed package tarballs into a build directory and fetch a manifest of
packages, dependencies first, from a package host.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newUnpackCommand())
	rootCmd.AddCommand(newFetchCommand())
}

// newLogger builds the CLI logger from the --log-level flag.
func newLogger() zerolog.Logger {
	level, err := buildio.LogLevelFromString(logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return buildio.NewLogger(os.Stderr, level)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number of buildio`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("buildio version %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
