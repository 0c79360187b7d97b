package cli

import (
	"fmt"

	"github.com/cogform/cogform/internal/fsutil"
	"github.com/spf13/cobra"
)

func newExamplesCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List example cogform documents (*.json) under a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := fsutil.FindFilesByExtension(path, ".json")
			if err != nil {
				return exitErrorf(1, "%v", err)
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no example documents found under %s\n", path)
				return nil
			}
			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "examples", "directory to search for example documents")
	return cmd
}
