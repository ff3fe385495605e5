package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tureus/whisper/whisper"
)

var (
	createAggregation string
	createXFF         float32
)

var createCmd = &cobra.Command{
	Use:   "create <metric> <retention-spec>...",
	Short: "create a new Whisper file for a metric from one or more retention specs",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		metric := args[0]
		schema, err := whisper.NewSchema(args[1:]...)
		if err != nil {
			return err
		}

		agg := whisper.Average
		if createAggregation == "sum" {
			agg = whisper.Sum
		}

		path := filepath.Join(baseDir, whisper.NamedPoint{MetricName: metric}.RelPath())
		wf, err := whisper.Create(path, schema, agg, createXFF)
		if err != nil {
			return err
		}
		defer wf.Close()

		log.Infof("created %s (%d archives)", path, wf.Header().ArchiveCount())
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createAggregation, "aggregation", "average", "average or sum")
	createCmd.Flags().Float32Var(&createXFF, "xff", 0.5, "x-files-factor in [0,1]")
}
