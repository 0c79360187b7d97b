// Command cogform is the cogform CLI/server entrypoint: it wires
// internal/config, internal/facade, internal/stream, internal/httpapi,
// and internal/cli together, following the teacher's cmd/cli thin-main
// convention (parse, build, delegate, translate error to exit code).
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cogform/cogform/internal/cli"
	"github.com/cogform/cogform/internal/config"
	"github.com/cogform/cogform/internal/facade"
	"github.com/cogform/cogform/internal/httpapi"
	"github.com/cogform/cogform/internal/stream"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings := config.Defaults()
	if cfgPath := os.Getenv("COGFORM_CONFIG"); cfgPath != "" {
		loaded, err := config.NewHCLLoader().Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cogform: load config: %v\n", err)
			return 1
		}
		settings = loaded
	}

	f := facade.New(nil)
	root := cli.NewRootCommand(f)
	root.AddCommand(newServeCommand(f, settings))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cogform: %v\n", err)
		return cli.ExitCode(err)
	}
	return 0
}

// newServeCommand adds the HTTP server subcommand: gin router plus an
// optional socket.io broadcaster for live trace-step streaming (spec §6
// HTTP surface, SPEC_FULL.md live streaming addendum).
func newServeCommand(f *facade.Facade, settings config.Settings) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cogform HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			broadcaster := stream.New()
			defer broadcaster.Close()
			f.WithBroadcaster(broadcaster)

			logger := slog.Default()
			router := httpapi.NewRouter(f, logger, "dev")

			addr := fmt.Sprintf(":%d", port)
			logger.Info("starting cogform server", "addr", addr)
			if err := http.ListenAndServe(addr, router); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", settings.HTTPPort, "HTTP listen port")
	return cmd
}
