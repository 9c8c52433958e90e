package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yanet-platform/shmqueue/common/go/logging"
	"github.com/yanet-platform/shmqueue/common/go/xcmd"
	"github.com/yanet-platform/shmqueue/frame"
	"github.com/yanet-platform/shmqueue/queue"
)

func drainCmd() *cobra.Command {
	var (
		capacity = 32 * datasize.MB
		framing  = frame.Scan
		cursor   int
	)

	cmd := &cobra.Command{
		Use:   "drain <path>",
		Short: "Pop messages from a cursor until the page reports EMPTY or FINISHED",
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

			q, err := queue.Open(path, capacity, framing)
			if err != nil {
				return err
			}
			defer q.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			wg, ctx := errgroup.WithContext(ctx)
			wg.Go(func() error {
				return xcmd.WaitInterrupted(ctx)
			})
			wg.Go(func() error {
				defer cancel()
				return drain(ctx, q, &cursor, log)
			})

			if err := wg.Wait(); err != nil {
				var interrupted xcmd.Interrupted
				if errors.As(err, &interrupted) {
					fmt.Fprintf(os.Stderr, "cursor=%d\n", cursor)
					return nil
				}
				// The drain loop cancels ctx when it stops on its own,
				// which is how WaitInterrupted returns; not a failure.
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().Var(&byteSizeValue{&capacity}, "capacity", "page buffer capacity")
	cmd.Flags().Var(&framingValue{&framing}, "framing", `framing variant: "scan" or "length-prefixed"`)
	cmd.Flags().IntVar(&cursor, "cursor", 0, "byte cursor to start draining from")

	return cmd
}

func drain(ctx context.Context, q *queue.Queue, cursor *int, log interface {
	Infow(string, ...any)
}) error {
	for {
		result, err := q.Pop(ctx, *cursor)
		if err != nil {
			return err
		}

		switch result.Status {
		case queue.StatusSuccess:
			os.Stdout.Write(result.Data)
			os.Stdout.Write([]byte{'\n'})
			*cursor += q.Framing().FrameSize(result.Len)
		case queue.StatusEmpty:
			fmt.Fprintf(os.Stderr, "cursor=%d\n", *cursor)
			return nil
		case queue.StatusFinished:
			log.Infow("page finished", "path", q.Path(), "cursor", *cursor)
			return nil
		case queue.StatusError:
			return fmt.Errorf("drain %s: read error at cursor %d", q.Path(), *cursor)
		}
	}
}
