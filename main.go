package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/insightdelivered/trial-balance-converter/internal/config"
	"github.com/insightdelivered/trial-balance-converter/internal/logger"
)

const version = "2.0.0"

// app carries what every subcommand needs once flags and environment are read.
type app struct {
	v   *viper.Viper
	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "trial-balance-converter",
		Short: "Trial balance (Balance de Comprobación) PDF to Excel converter",
		Long: `Trial Balance PDF Converter
by Insight Delivered (QEA AutoLens)

Extracts the account rows of a "Balance de Comprobación" PDF into a
normalized table (CODIGO, NOMBRE, SALDO_ANTERIOR, CARGOS, ABONOS,
SALDO_ACTUAL) and a reconciliation summary, written as Excel or CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.Bool("log-pretty", true, "Human-readable console logs")
	pf.Int("date-pages", 3, "Number of leading pages searched for the statement date")
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogPretty, pf.Lookup("log-pretty"))
	_ = a.v.BindPFlag(config.KeyDateMaxPages, pf.Lookup("date-pages"))

	root.AddCommand(
		newConvertCmd(a),
		newServeCmd(a),
		newDumpCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version and exit",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("trial-balance-converter v%s\n", version)
			},
		},
	)
	return root
}
