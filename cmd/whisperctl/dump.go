package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tureus/whisper/whisper"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <metric>",
	Short: "dump every archive slot of a metric's Whisper file in raw physical order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(baseDir, whisper.NamedPoint{MetricName: args[0]}.RelPath())
		wf, err := whisper.Open(path)
		if err != nil {
			return err
		}
		defer wf.Close()

		return wf.Dump(os.Stdout)
	},
}
