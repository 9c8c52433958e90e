// Command sqctl is an administrative client for shared-memory queue
// pages: it pushes and drains messages and inspects page headers, all
// through the same page/queue/frame packages any real producer or
// consumer would use. It is not part of the queue protocol itself.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanet-platform/shmqueue/common/go/xcmd"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "sqctl",
	Short: "Operate shared-memory queue pages",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")
	rootCmd.AddCommand(pushCmd())
	rootCmd.AddCommand(drainCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(lsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var interrupted xcmd.Interrupted
		if errors.As(err, &interrupted) {
			return
		}

		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
