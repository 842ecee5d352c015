package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/checker"
	"github.com/ascendlabs/symcheck/cmd/exitcodes"
	"github.com/ascendlabs/symcheck/config"
	"github.com/ascendlabs/symcheck/diagnostics"
	"github.com/ascendlabs/symcheck/logging"
	"github.com/ascendlabs/symcheck/logging/formatters"
	"github.com/ascendlabs/symcheck/utils"
)

// analyzeCmd represents the command that runs the checker against one or more compiled source units.
var analyzeCmd = &cobra.Command{
	Use:           "analyze",
	Short:         "Symbolically check assert/require conditions and arithmetic safety goals",
	Long:          "analyze loads a checker configuration, reads every configured source unit, and reports every verification goal that the solver portfolio proved satisfiable",
	Args:          cobra.NoArgs,
	RunE:          cmdRunAnalyze,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	if err := addAnalyzeFlags(); err != nil {
		cmdLogger.Panic("Failed to initialize the analyze command", err)
	}
	rootCmd.AddCommand(analyzeCmd)
}

// cmdRunAnalyze navigates through the following possibilities:
// #1: --config was used and points to a readable file: read it.
// #2: --config was used and the file can't be read: error out.
// #3: --config was not used: fall back to the default configuration, then let --source-unit/--contract/--report
// flags populate it directly.
func cmdRunAnalyze(cmd *cobra.Command, args []string) error {
	var cfg *config.AnalysisConfig

	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the analyze command", err)
		return err
	}

	if configFlagUsed {
		cfg, err = config.ReadAnalysisConfigFromFile(configPath)
		if err != nil {
			cmdLogger.Error("Failed to run the analyze command", err)
			return err
		}
	} else {
		cfg = config.GetDefaultAnalysisConfig()
	}

	if err := updateAnalysisConfigWithFlags(cmd, cfg); err != nil {
		cmdLogger.Error("Failed to run the analyze command", err)
		return err
	}

	if err := cfg.Validate(); err != nil {
		cmdLogger.Error("Failed to run the analyze command", err)
		return err
	}

	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}

	logging.GlobalLogger = logging.NewLogger(cfg.Logging.Level, cfg.Logging.EnableConsoleLogging)
	if cfg.Logging.LogDirectory != "" {
		logFile, err := utils.CreateFile(cfg.Logging.LogDirectory, "symcheck.log")
		if err != nil {
			cmdLogger.Error("Failed to create the log file", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
		}
		logging.GlobalLogger.AddWriter(logFile, logging.STRUCTURED)
	}

	portfolio, err := cfg.Solvers.BuildPortfolio()
	if err != nil {
		cmdLogger.Error("Failed to build the solver portfolio", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeSolverError)
	}

	logger := logging.GlobalLogger.NewSubLogger("module", logging.CHECKER_SERVICE)
	sink := diagnostics.NewEventSink(logger)
	if !noColor {
		sink.Subscribe(func(w diagnostics.Warning) {
			fmt.Println(formatters.DiagnosticFormatter(nil, w.Message))
		})
	}
	report := diagnostics.NewReport(sink)

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Timeout)*time.Second)
		defer cancel()
	}

	checked := 0
	for _, path := range cfg.SourceUnits {
		if utils.CheckContextDone(ctx) {
			cmdLogger.Warn(fmt.Sprintf("Analysis timed out after %ds, skipping remaining source units", cfg.Timeout))
			break
		}

		unit, err := readSourceUnit(path)
		if err != nil {
			cmdLogger.Error("Failed to read source unit "+path, err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
		}
		unit = filterContracts(unit, cfg.EnabledContracts)

		c := checker.NewChecker(sink, portfolio, unit)
		c.Analyze(unit)
		checked += c.GoalsChecked()
	}

	fmt.Println(formatters.SummaryFormatter(checked, report.ViolationCount(), report.UnsupportedCount()))
	printReportTable(report)

	if cfg.ReportPath != "" {
		b, err := json.MarshalIndent(report, "", "\t")
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.ReportPath, b, 0644); err != nil {
			cmdLogger.Error("Failed to write the report", err)
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeGeneralError)
		}
	}

	if report.ViolationCount() > 0 {
		return exitcodes.NewErrorWithExitCode(fmt.Errorf("%d goal violation(s) found", report.ViolationCount()), exitcodes.ExitCodeViolationsFound)
	}

	return nil
}

// readSourceUnit reads and unmarshals a single JSON-serialized ast.SourceUnit from path.
func readSourceUnit(path string) (*ast.SourceUnit, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var unit ast.SourceUnit
	if err := json.Unmarshal(b, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

// filterContracts returns a shallow copy of unit whose Contracts are restricted to names, or unit itself if names
// is empty (meaning every contract in the unit is in scope).
func filterContracts(unit *ast.SourceUnit, names []string) *ast.SourceUnit {
	if len(names) == 0 {
		return unit
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	filtered := *unit
	filtered.Contracts = nil
	for _, contract := range unit.Contracts {
		if wanted[contract.Name] {
			filtered.Contracts = append(filtered.Contracts, contract)
		}
	}
	return &filtered
}

// printReportTable renders the report's entries as a table, so a terminal user gets a scannable summary in
// addition to the inline warnings streamed during analysis.
func printReportTable(report *diagnostics.Report) {
	if len(report.Entries) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Location", "Message"})
	for _, entry := range report.Entries {
		table.Append([]string{fmt.Sprintf("%d:%d", entry.Loc.Start, entry.Loc.Length), entry.Message})
	}
	table.Render()
}
