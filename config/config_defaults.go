package config

import "github.com/rs/zerolog"

// GetDefaultAnalysisConfig obtains a default configuration for a checker run: a single null backend (so a run
// never fails for want of a solver), console logging at info level, and no source units (the caller must supply
// at least one before Validate will pass).
func GetDefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Solvers: SolverConfig{
			Backends: []BackendConfig{
				{Name: "null", Kind: BackendKindNull, Version: "0.0.0"},
			},
		},
		SourceUnits:      []string{},
		EnabledContracts: []string{},
		Logging: LoggingConfig{
			Level:                zerolog.InfoLevel,
			EnableConsoleLogging: true,
			LogDirectory:         "",
		},
		ReportPath: "",
		Timeout:    0,
	}
}
