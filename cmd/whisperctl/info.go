package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tureus/whisper/whisper"
)

var infoCmd = &cobra.Command{
	Use:   "info <metric>",
	Short: "print the header and archive layout of a metric's Whisper file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(baseDir, whisper.NamedPoint{MetricName: args[0]}.RelPath())
		wf, err := whisper.Open(path)
		if err != nil {
			return err
		}
		defer wf.Close()

		h := wf.Header()
		fmt.Printf("path: %s\n", wf.Path())
		fmt.Printf("aggregation: %s\n", h.Aggregation)
		fmt.Printf("maxRetention: %d\n", h.MaxRetention)
		fmt.Printf("xFilesFactor: %g\n", h.XFilesFactor)
		for i, a := range wf.Archives() {
			fmt.Printf("archive %d: secondsPerPoint=%d points=%d retention=%d\n",
				i, a.SecondsPerPoint, a.Points, a.Retention())
		}
		return nil
	},
}
