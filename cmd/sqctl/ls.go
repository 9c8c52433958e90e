package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

func lsCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "ls <dir>",
		Short: "List candidate page files under a directory matching --pattern",
		Long: "List candidate page files under a directory matching --pattern.\n" +
			"Each listed file is an independent page; ls does not chain or relate them " +
			"to each other, it only helps an operator find page files to push/pop/inspect.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			g, err := glob.Compile(pattern)
			if err != nil {
				return fmt.Errorf("invalid --pattern %q: %w", pattern, err)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("failed to read %q: %w", dir, err)
			}

			for _, entry := range entries {
				if entry.IsDir() || !g.Match(entry.Name()) {
					continue
				}

				info, err := entry.Info()
				if err != nil {
					continue
				}

				fmt.Printf("%s\t%d\n", filepath.Join(dir, entry.Name()), info.Size())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "*.page", "glob pattern page file names must match")

	return cmd
}
