package config

import (
	"encoding/json"
	"os"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ascendlabs/symcheck/smt"
)

// AnalysisConfig describes the configuration used by a single checker run: which solver backends make up the
// portfolio, which source units to analyze, and how the run should log its findings.
type AnalysisConfig struct {
	// Solvers describes the portfolio of SMT backends to query for every verification goal.
	Solvers SolverConfig `json:"solvers"`

	// SourceUnits lists the paths to JSON-serialized ast.SourceUnit files to analyze. Every file is analyzed
	// independently; a source unit's functions never see another source unit's state.
	SourceUnits []string `json:"sourceUnits"`

	// EnabledContracts optionally restricts analysis to the named contracts. An empty list means every contract
	// in every source unit is analyzed.
	EnabledContracts []string `json:"enabledContracts"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`

	// ReportPath, if non-empty, is where the JSON-serialized diagnostics.Report is written after the run.
	ReportPath string `json:"reportPath"`

	// Timeout, in seconds, is checked before each source unit is analyzed: once it has elapsed, the remaining
	// source units are skipped. A source unit whose analysis has already started runs to completion. A zero value
	// means no timeout; analysis runs until every configured source unit has been checked.
	Timeout int `json:"timeout"`
}

// SolverConfig describes the set of SMT backends a checker run will query in its smt.Portfolio.
type SolverConfig struct {
	// Backends lists one entry per portfolio member. An empty list is accepted and falls back to a single
	// NullBackend so a run never errors out for want of a solver.
	Backends []BackendConfig `json:"backends"`
}

// BackendKind names a supported smt.Backend implementation a BackendConfig can construct.
type BackendKind string

const (
	// BackendKindOracle constructs an smt.OracleBackend that shells out to an external solver binary.
	BackendKindOracle BackendKind = "oracle"
	// BackendKindNull constructs an smt.NullBackend, which always answers Unknown.
	BackendKindNull BackendKind = "null"
)

// BackendConfig describes a single portfolio member: which kind of smt.Backend to construct, its declared
// semantic version (used to gate array-theory queries per smt.Portfolio.Register), and, for oracle backends, the
// executable path and arguments used to invoke it.
type BackendConfig struct {
	// Name identifies this member in validation errors and, for oracle backends, in the errors its Check returns.
	Name string `json:"name"`

	// Kind selects which smt.Backend implementation to construct.
	Kind BackendKind `json:"kind"`

	// Version is the backend's declared SMT-LIB capability version, consulted by smt.Portfolio to decide whether
	// this member may be queried on array-sorted terms.
	Version string `json:"version"`

	// Path is the executable path used to invoke the solver. Only meaningful when Kind is BackendKindOracle.
	Path string `json:"path,omitempty"`

	// Args are extra command-line arguments passed to Path. Only meaningful when Kind is BackendKindOracle.
	Args []string `json:"args,omitempty"`
}

// LoggingConfig describes the configuration options used for logging.
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or
	// discarded. Increasing level values represent more severe logs.
	Level zerolog.Level `json:"level"`

	// EnableConsoleLogging describes whether console logging is enabled.
	EnableConsoleLogging bool `json:"enableConsoleLogging"`

	// LogDirectory describes the directory where structured log files will be outputted. If the string is empty,
	// no log files are kept.
	LogDirectory string `json:"logDirectory"`
}

// ReadAnalysisConfigFromFile reads a JSON-serialized AnalysisConfig from a provided file path, applying the
// defaults from GetDefaultAnalysisConfig to any field the file leaves unset.
func ReadAnalysisConfigFromFile(path string) (*AnalysisConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := GetDefaultAnalysisConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	return cfg, nil
}

// WriteToFile writes the AnalysisConfig to a provided file path in a JSON-serialized format.
func (c *AnalysisConfig) WriteToFile(path string) error {
	b, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate validates that the AnalysisConfig meets certain requirements.
func (c *AnalysisConfig) Validate() error {
	if len(c.SourceUnits) == 0 {
		return errors.Errorf("no source units specified for analysis")
	}

	if c.Timeout < 0 {
		return errors.Errorf("timeout must not be negative")
	}

	seenNames := make(map[string]bool)
	for _, b := range c.Solvers.Backends {
		if b.Name == "" {
			return errors.Errorf("solver backend must have a non-empty name")
		}
		if seenNames[b.Name] {
			return errors.Errorf("duplicate solver backend name %q", b.Name)
		}
		seenNames[b.Name] = true

		switch b.Kind {
		case BackendKindOracle:
			if b.Path == "" {
				return errors.Errorf("oracle backend %q must specify a path", b.Name)
			}
		case BackendKindNull:
			// no extra fields required
		default:
			return errors.Errorf("unrecognized solver backend kind %q for backend %q", b.Kind, b.Name)
		}

		if b.Version != "" {
			if _, err := semver.NewVersion(b.Version); err != nil {
				return errors.Wrapf(err, "malformed version for solver backend %q", b.Name)
			}
		}
	}

	return nil
}

// BuildPortfolio constructs a wired *smt.Portfolio from the configuration's declared backend list. A backend
// declared with an empty or malformed version is registered as version 0.0.0, below the portfolio's array-theory
// floor, so the portfolio leaves it out of array-sorted queries.
func (c *SolverConfig) BuildPortfolio() (*smt.Portfolio, error) {
	portfolio := smt.NewPortfolio()

	backends := c.Backends
	if len(backends) == 0 {
		backends = []BackendConfig{{Name: "null", Kind: BackendKindNull}}
	}

	for _, b := range backends {
		backend, err := b.build()
		if err != nil {
			return nil, err
		}

		version, err := semver.NewVersion(b.Version)
		if err != nil {
			version = semver.MustParse("0.0.0")
		}

		portfolio.Register(backend, version)
	}

	return portfolio, nil
}

func (b *BackendConfig) build() (smt.Backend, error) {
	switch b.Kind {
	case BackendKindOracle:
		return smt.NewOracleBackend(b.Name, b.Path, b.Args...), nil
	case BackendKindNull, "":
		return smt.NewNullBackend(), nil
	default:
		return nil, errors.Errorf("unrecognized solver backend kind %q for backend %q", b.Kind, b.Name)
	}
}
