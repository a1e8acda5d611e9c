package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/prosumption/app"
	"github.com/kilianp07/prosumption/config"
	"github.com/kilianp07/prosumption/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "prosumption",
	Short: "Energy balance prosumption analysis",
	Long: "Loads an hourly energy-balance export, derives wind, solar and consumption\n" +
		"series, scales renewable generation to consumption and reports the result.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	if _, err := svc.Run(ctx); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

// executeContext is used by tests.
func executeContext(ctx context.Context, args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
