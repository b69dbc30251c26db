package main

import (
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/launchpad/core/effect"
	"github.com/dmitrymomot/launchpad/core/prepare"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Prepare the application and serve it until interrupted",
		Long: `Run every startup step, bind the configured address and serve until
SIGINT or SIGTERM. A failing step stops startup and is reported with its
position and name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			sp, err := newPipeline(cfg, newRegistry())
			if err != nil {
				return err
			}
			sp.Append(prepare.Static[*AppConfig]("signals",
				effect.GracefulOnly(effect.OnSignal(os.Interrupt, syscall.SIGTERM))))

			ready, err := sp.PrepareStart(cmd.Context())
			if err != nil {
				return err
			}
			return ready.Launch(cmd.Context())
		},
	}
}
