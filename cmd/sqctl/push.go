package main

import (
	"fmt"
	"io"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"

	"github.com/yanet-platform/shmqueue/common/go/logging"
	"github.com/yanet-platform/shmqueue/frame"
	"github.com/yanet-platform/shmqueue/queue"
)

func pushCmd() *cobra.Command {
	var (
		capacity = 32 * datasize.MB
		framing  = frame.Scan
		data     string
	)

	cmd := &cobra.Command{
		Use:   "push <path>",
		Short: "Append one message to a page, reading the payload from --data or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			log, _, err := logging.Init(&cfg.Logging)
			if err != nil {
				return err
			}
			defer log.Sync()

			var payload []byte
			if cmd.Flags().Changed("data") {
				payload = []byte(data)
			} else {
				payload, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read payload from stdin: %w", err)
				}
			}

			q, err := queue.Open(path, capacity, framing)
			if err != nil {
				return err
			}
			defer q.Close()

			n, err := q.Push(payload)
			if err != nil {
				return fmt.Errorf("push to %s: %w", path, err)
			}

			log.Infow("pushed message", "path", path, "payload_bytes", len(payload), "frame_bytes", n)
			fmt.Println(n)
			return nil
		},
	}

	cmd.Flags().Var(&byteSizeValue{&capacity}, "capacity", "page buffer capacity, used when creating the page")
	cmd.Flags().Var(&framingValue{&framing}, "framing", `framing variant: "scan" or "length-prefixed"`)
	cmd.Flags().StringVar(&data, "data", "", "message payload (defaults to reading all of stdin)")

	return cmd
}
