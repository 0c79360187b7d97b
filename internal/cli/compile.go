package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cogform/cogform/internal/facade"
	"github.com/cogform/cogform/internal/schema"
	"github.com/spf13/cobra"
)

func readDocument(path string) (*schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc schema.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &doc, nil
}

func newCompileCommand(f *facade.Facade) *cobra.Command {
	var (
		outPath  string
		optimize string
		stats    bool
	)

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a cogform document into an executable graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := readDocument(path)
			if err != nil {
				return exitErrorf(1, "%v", err)
			}

			g, result, err := f.Compile(doc, optimize)
			if err != nil {
				return exitErrorf(1, "%v", err)
			}
			if !result.Valid {
				for _, e := range result.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "error [%s] %s\n", e.Kind, e.Message)
				}
				return exitErrorf(1, "%s failed validation", path)
			}

			if outPath != "" {
				if err := f.SaveGraph(doc.Metadata.ID, outPath); err != nil {
					return exitErrorf(1, "%v", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "compiled %s -> %s\n", path, outPath)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "compiled %s (%d nodes, %d relations)\n", path, g.NodeCount(), g.RelationCount())
			}

			if stats {
				data, err := json.MarshalIndent(g.Complexity, "", "  ")
				if err != nil {
					return exitErrorf(1, "marshal complexity: %v", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the compiled graph to this path as JSON")
	cmd.Flags().StringVar(&optimize, "optimize", "", "optimization mode: speed, memory, or balanced")
	cmd.Flags().BoolVar(&stats, "stats", false, "print compiled graph complexity statistics")
	return cmd
}
