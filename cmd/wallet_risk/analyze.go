package main

import (
	"fmt"

	"wallet_risk_analyzer/internal/app/service"
	"wallet_risk_analyzer/internal/domain/entity"
	"wallet_risk_analyzer/internal/infrastructure/terminal"
	"wallet_risk_analyzer/internal/infrastructure/walletloader"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <address>",
		Short: "Analyze one wallet with the live analysis service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.sync()

			session := a.newSession()
			defer session.Close()

			snap := session.Submit(cmd.Context(), args[0])
			fmt.Fprint(cmd.OutOrStdout(), terminal.RenderSnapshot(snap))
			if snap.State != entity.StateReady {
				return fmt.Errorf("analysis ended in state %s", snap.State)
			}
			return nil
		},
	}
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [address]",
		Short: "Show a synthesized demo report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.sync()

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			session := a.newSession()
			defer session.Close()

			fmt.Fprint(cmd.OutOrStdout(), terminal.RenderSnapshot(session.SubmitDemo(input)))
			return nil
		},
	}
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <wallets-file>",
		Short: "Analyze every wallet listed in a file, one address per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.sync()

			wallets, err := walletloader.NewWalletFileLoader(args[0], a.logger).GetWallets()
			if err != nil {
				return err
			}

			analyzer := service.NewBatchAnalyzer(a.client, a.logger,
				a.cfg.Performance.MaxConcurrentRoutines, a.cfg.Analysis.RequestTimeout())
			results, err := analyzer.AnalyzeAll(cmd.Context(), wallets)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), terminal.RenderBatch(results))
			return nil
		},
	}
}
