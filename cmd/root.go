package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ascendlabs/symcheck/logging"
)

// cmdLogger is the cmd package's sub-logger, scoped under logging.CLI_SERVICE so its output is grep-able
// separately from the diagnostic sink's checker-scoped output.
var cmdLogger = logging.GlobalLogger.NewSubLogger("module", logging.CLI_SERVICE)

var rootCmd = &cobra.Command{
	Use:   "symcheck",
	Short: "An SMT-based symbolic assertion checker",
	Long:  "symcheck is a symbolic bounded model checker that proves or falsifies assert/require conditions, arithmetic overflow, underflow, and division-by-zero goals against a compiled contract's AST",
}

func Execute() error {
	return rootCmd.Execute()
}
