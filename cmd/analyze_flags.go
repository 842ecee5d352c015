package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ascendlabs/symcheck/config"
)

// addAnalyzeFlags registers every flag the analyze command accepts.
func addAnalyzeFlags() error {
	analyzeCmd.Flags().StringP("config", "c", "", "path to a symcheck.json configuration file")
	analyzeCmd.Flags().StringSlice("source-unit", nil, "path to a JSON-serialized source unit to analyze (may be repeated); overrides the config file's sourceUnits")
	analyzeCmd.Flags().StringSlice("contract", nil, "restrict analysis to this contract name (may be repeated); overrides the config file's enabledContracts")
	analyzeCmd.Flags().String("report", "", "path to write the JSON diagnostics report to; overrides the config file's reportPath")
	analyzeCmd.Flags().Int("timeout", 0, "seconds after which the remaining source units are skipped (checked before each unit); overrides the config file's timeout")
	analyzeCmd.Flags().Bool("no-color", false, "do not echo colorized warnings to stdout as they are found; log output, the summary line and the report table are unchanged")

	return nil
}

// updateAnalysisConfigWithFlags overlays any flags the user explicitly set onto cfg.
func updateAnalysisConfigWithFlags(cmd *cobra.Command, cfg *config.AnalysisConfig) error {
	if cmd.Flags().Changed("source-unit") {
		units, err := cmd.Flags().GetStringSlice("source-unit")
		if err != nil {
			return err
		}
		cfg.SourceUnits = units
	}

	if cmd.Flags().Changed("contract") {
		contracts, err := cmd.Flags().GetStringSlice("contract")
		if err != nil {
			return err
		}
		cfg.EnabledContracts = contracts
	}

	if cmd.Flags().Changed("report") {
		report, err := cmd.Flags().GetString("report")
		if err != nil {
			return err
		}
		cfg.ReportPath = report
	}

	if cmd.Flags().Changed("timeout") {
		timeout, err := cmd.Flags().GetInt("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = timeout
	}

	return nil
}
