package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cogform/cogform/internal/facade"
	"github.com/spf13/cobra"
)

func newInfoCommand(f *facade.Facade) *cobra.Command {
	var (
		showGraph        bool
		showDependencies bool
	)

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print metadata, validation summary, and analysis for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := readDocument(path)
			if err != nil {
				return exitErrorf(1, "%v", err)
			}

			analysis, result, err := f.Analyze(doc)
			if err != nil {
				return exitErrorf(1, "%v", err)
			}
			if !result.Valid {
				for _, e := range result.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "error [%s] %s\n", e.Kind, e.Message)
				}
				return exitErrorf(1, "%s failed validation", path)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nversion: %s\n", doc.Metadata.ID, doc.Metadata.Name, doc.Metadata.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "nodes: %d, relations: %d\n", result.Summary.NodeCount, result.Summary.RelationCount)
			fmt.Fprintf(cmd.OutOrStdout(), "entry points: %v\n", result.Summary.EntryPoints)
			fmt.Fprintf(cmd.OutOrStdout(), "exit points: %v\n", result.Summary.ExitPoints)
			fmt.Fprintf(cmd.OutOrStdout(), "complexity bucket: %s (max depth %d, avg branching %.2f, cycles %d)\n",
				analysis.Bucket, analysis.Complexity.MaxDepth, analysis.Complexity.AvgBranching, analysis.Complexity.CycleCount)

			if showDependencies {
				if len(doc.Metadata.Dependencies) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "dependencies: none")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "dependencies:")
					for _, dep := range doc.Metadata.Dependencies {
						fmt.Fprintf(cmd.OutOrStdout(), "  - %s@%s\n", dep.ID, dep.Version)
					}
				}
			}

			if showGraph {
				g, _, err := f.Compile(doc, "")
				if err != nil {
					return exitErrorf(1, "%v", err)
				}
				data, err := json.MarshalIndent(facade.ExportGraph(g), "", "  ")
				if err != nil {
					return exitErrorf(1, "marshal graph: %v", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showGraph, "graph", false, "print the full compiled graph as JSON")
	cmd.Flags().BoolVar(&showDependencies, "dependencies", false, "print the document's declared dependencies")
	return cmd
}
