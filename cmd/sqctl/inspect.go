package main

import (
	"fmt"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"

	"github.com/yanet-platform/shmqueue/page"
)

func inspectCmd() *cobra.Command {
	var capacity = 32 * datasize.MB

	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Print a page's header fields without mutating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			p, err := page.Open(path, page.Config{Capacity: capacity})
			if err != nil {
				return err
			}
			defer p.Close()

			hdr := p.Header()
			word := hdr.WriteIdxLock.Load()

			fmt.Printf("path:                 %s\n", p.Path())
			fmt.Printf("capacity:             %s\n", capacity.HumanReadable())
			fmt.Printf("is_ready:             %d\n", hdr.IsReady.Load())
			fmt.Printf("write_idx_lock:       %#x\n", word)
			fmt.Printf("  offset:             %d\n", page.Offset(word))
			fmt.Printf("  writers in flight:  %d\n", page.Writers(word))
			fmt.Printf("last_safe_write_idx:  %d\n", hdr.LastSafeWriteIdx.Load())

			if page.Writers(word) > 0 {
				fmt.Println("warning: writers in flight — a crashed writer can pin this permanently")
			}

			return nil
		},
	}

	cmd.Flags().Var(&byteSizeValue{&capacity}, "capacity", "page buffer capacity the page was created with")

	return cmd
}
