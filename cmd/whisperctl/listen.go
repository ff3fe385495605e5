package main

import (
	"bufio"
	"bytes"
	"net"

	"github.com/spf13/cobra"

	"github.com/tureus/whisper/whisper"
)

var (
	listenAddr  string
	listenSpecs []string
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "accept Carbon plaintext line-protocol datagrams over UDP and write them through a WhisperCache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := whisper.NewSchema(listenSpecs...)
		if err != nil {
			return err
		}
		cache, err := whisper.NewCache(whisper.DefaultCacheConfig(baseDir, schema, 256), log)
		if err != nil {
			return err
		}
		defer cache.Close()

		udpAddr, err := net.ResolveUDPAddr("udp", listenAddr)
		if err != nil {
			return err
		}
		conn, err := net.ListenUDP("udp", udpAddr)
		if err != nil {
			return err
		}
		defer conn.Close()
		log.Infof("listening for datagrams on %s", listenAddr)

		buf := make([]byte, 65507)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				log.Errorf("read: %v", err)
				continue
			}
			handleDatagram(buf[:n], cache)
		}
	},
}

func handleDatagram(payload []byte, cache *whisper.WhisperCache) {
	scanner := bufio.NewScanner(bytes.NewReader(payload))
	for scanner.Scan() {
		np, err := whisper.ParseDatagramLine(scanner.Text())
		if err != nil {
			log.Warnf("discarding malformed datagram: %v", err)
			continue
		}
		if _, err := cache.Write(np); err != nil {
			log.Errorf("writing %s: %v", np.MetricName, err)
		}
	}
}

func init() {
	listenCmd.Flags().StringVar(&listenAddr, "addr", ":2003", "UDP address to accept line-protocol datagrams on")
	listenCmd.Flags().StringSliceVar(&listenSpecs, "default-spec", []string{"1s:1d", "1m:30d", "1h:1y"},
		"retention specs used to create a metric's file the first time it is written")
}
