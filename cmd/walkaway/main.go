package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"walkaway/internal/app"
	"walkaway/internal/config"
	"walkaway/internal/models"
	"walkaway/internal/services"
	"walkaway/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "walkaway",
		Short:        "Home walkaway calculator and lead capture service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newEstimateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var configPath, addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to YAML config (optional)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides config")
	return cmd
}

func newEstimateCmd() *cobra.Command {
	var (
		in        models.PropertyInput
		condition string
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the sale and walkaway ranges for a home",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !(in.SquareFeet > 0) {
				return fmt.Errorf("--sqft must be > 0")
			}
			c, ok := models.ParseCondition(condition)
			if !ok {
				return fmt.Errorf("unknown condition %q", condition)
			}
			in.Condition = c
			est := services.Estimate(in)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Estimated sale price: %s\n", utils.FormatRange(est.SaleLow, est.SaleHigh))
			fmt.Fprintf(out, "Estimated walkaway:   %s\n", utils.FormatRange(est.NetLow, est.NetHigh))
			return nil
		},
	}
	cmd.Flags().Float64Var(&in.SquareFeet, "sqft", 0, "finished square footage")
	cmd.Flags().StringVar(&condition, "condition", string(models.ConditionAverage), "needs_work | average | updated | renovated")
	cmd.Flags().BoolVar(&in.IncludeConcessions, "concessions", false, "include seller concessions")
	cmd.Flags().Float64Var(&in.MortgagePayoff, "payoff", 0, "mortgage payoff")
	return cmd
}
