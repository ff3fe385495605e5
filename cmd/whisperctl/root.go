package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tureus/whisper/internal/clog"
)

var (
	baseDir  string
	logLevel string
	log      *clog.Logger
)

// persistentFlags is built with pflag directly, then attached to the root
// command's flag set, matching the leaf-command pflag usage elsewhere in
// the examined corpus.
func persistentFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("whisperctl", pflag.ExitOnError)
	fs.StringVar(&baseDir, "base-dir", ".", "base directory metric paths are resolved under")
	fs.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	return fs
}

var rootCmd = &cobra.Command{
	Use:   "whisperctl",
	Short: "create, write, inspect and dump Whisper time-series files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := clog.New(logLevel)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().AddFlagSet(persistentFlags())

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(listenCmd)
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
