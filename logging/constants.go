package logging

// These constants identify specialized formatting hooks used when routing structured log fields to console output.
const (
	// GOAL_OUTCOME identifies that a verification-goal outcome (§4.6) needs specialized console formatting.
	GOAL_OUTCOME = "goalOutcome"

	// ANALYSIS_SUMMARY identifies that an end-of-run diagnostic summary needs specialized console formatting.
	ANALYSIS_SUMMARY = "analysisSummary"
)

// These constants identify the various packages that may emit log output, used as the key for NewSubLogger.
const (
	// CHECKER_SERVICE identifies the checker package (statement traverser, encoder, goal emission).
	CHECKER_SERVICE = "checker"
	// SMT_SERVICE identifies the smt package (solver portfolio and backends).
	SMT_SERVICE = "smt"
	// CLI_SERVICE identifies the cmd package.
	CLI_SERVICE = "cli"
)
