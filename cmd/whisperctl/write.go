package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tureus/whisper/whisper"
)

var writeDefaultSpecs []string

var writeCmd = &cobra.Command{
	Use:   "write <metric> <timestamp> <value>",
	Short: "write a single point through a WhisperCache, creating the file from --default-spec if needed",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return err
		}

		schema, err := whisper.NewSchema(writeDefaultSpecs...)
		if err != nil {
			return err
		}

		cache, err := whisper.NewCache(whisper.DefaultCacheConfig(baseDir, schema, 128), log)
		if err != nil {
			return err
		}
		defer cache.Close()

		np := whisper.NamedPoint{
			MetricName: args[0],
			Point:      whisper.Point{Timestamp: uint32(ts), Value: value},
		}
		written, err := cache.Write(np)
		if err != nil {
			return err
		}
		if !written {
			log.Warnf("point for %s at %d was outside the retention window and was dropped", np.MetricName, np.Point.Timestamp)
		}
		return nil
	},
}

func init() {
	writeCmd.Flags().StringSliceVar(&writeDefaultSpecs, "default-spec", []string{"1s:1d", "1m:30d", "1h:1y"},
		"retention specs used to create the file if it does not yet exist")
}
