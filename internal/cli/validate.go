package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cogform/cogform/internal/facade"
	"github.com/spf13/cobra"
)

func newValidateCommand(f *facade.Facade) *cobra.Command {
	var (
		verbose     bool
		warnAsError bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "validate <files...>",
		Short: "Validate one or more cogform documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := f.BatchValidate(args)

			if jsonOutput {
				data, err := json.MarshalIndent(results, "", "  ")
				if err != nil {
					return exitErrorf(1, "marshal results: %v", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}

			allValid := true
			for _, path := range args {
				result := results[path]
				failed := !result.Valid || (warnAsError && len(result.Warnings) > 0)
				if failed {
					allValid = false
				}
				if jsonOutput {
					continue
				}

				status := "VALID"
				if !result.Valid {
					status = "INVALID"
				} else if warnAsError && len(result.Warnings) > 0 {
					status = "INVALID (warnings treated as errors)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, status)
				if verbose || !result.Valid {
					for _, e := range result.Errors {
						fmt.Fprintf(cmd.OutOrStdout(), "  error [%s] %s\n", e.Kind, e.Message)
					}
				}
				if verbose {
					for _, w := range result.Warnings {
						fmt.Fprintf(cmd.OutOrStdout(), "  warning [%s] %s\n", w.Kind, w.Message)
					}
				}
			}

			if !allValid {
				return exitErrorf(1, "one or more documents failed validation")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print warnings in addition to errors")
	cmd.Flags().BoolVarP(&warnAsError, "warnings-as-errors", "w", false, "treat warnings as validation failures")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON instead of text")
	return cmd
}
