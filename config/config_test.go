package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigHasOneNullBackend(t *testing.T) {
	cfg := GetDefaultAnalysisConfig()
	assert.Len(t, cfg.Solvers.Backends, 1)
	assert.Equal(t, BackendKindNull, cfg.Solvers.Backends[0].Kind)
}

func TestValidateRejectsEmptySourceUnits(t *testing.T) {
	cfg := GetDefaultAnalysisConfig()
	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidateRejectsDuplicateBackendNames(t *testing.T) {
	cfg := GetDefaultAnalysisConfig()
	cfg.SourceUnits = []string{"unit.json"}
	cfg.Solvers.Backends = append(cfg.Solvers.Backends, BackendConfig{Name: "null", Kind: BackendKindNull})

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidateRejectsOracleBackendWithoutPath(t *testing.T) {
	cfg := GetDefaultAnalysisConfig()
	cfg.SourceUnits = []string{"unit.json"}
	cfg.Solvers.Backends = []BackendConfig{{Name: "z3", Kind: BackendKindOracle}}

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := GetDefaultAnalysisConfig()
	cfg.SourceUnits = []string{"unit.json"}
	cfg.Solvers.Backends = []BackendConfig{
		{Name: "z3", Kind: BackendKindOracle, Path: "/usr/bin/z3", Args: []string{"-in"}, Version: "4.12.1"},
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsMalformedVersion(t *testing.T) {
	cfg := GetDefaultAnalysisConfig()
	cfg.SourceUnits = []string{"unit.json"}
	cfg.Solvers.Backends = []BackendConfig{
		{Name: "z3", Kind: BackendKindOracle, Path: "/usr/bin/z3", Version: "not-a-version"},
	}

	assert.Error(t, cfg.Validate())
}

func TestBuildPortfolioFallsBackToNullBackendWhenEmpty(t *testing.T) {
	sc := SolverConfig{}
	portfolio, err := sc.BuildPortfolio()
	assert.NoError(t, err)
	assert.NotNil(t, portfolio)
}

func TestBuildPortfolioRejectsUnrecognizedKind(t *testing.T) {
	sc := SolverConfig{Backends: []BackendConfig{{Name: "mystery", Kind: "mystery"}}}
	_, err := sc.BuildPortfolio()
	assert.Error(t, err)
}
