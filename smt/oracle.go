package smt

import (
	"bufio"
	"os/exec"
	"strings"

	"github.com/ascendlabs/symcheck/utils"
	"github.com/pkg/errors"
)

// OracleBackend drives an external SMT-LIB2-speaking solver process per query (§6's "file-based SMT-LIB2 oracle
// that takes a query string and returns the answer"). It shells out once per Check rather than holding a live
// pipe open, trading incrementality for the simplicity of using utils.RunCommandWithOutputAndError.
type OracleBackend struct {
	name string
	path string
	args []string

	scopes [][]*Term
}

// NewOracleBackend constructs an OracleBackend named name that invokes the executable at path (with args) for
// every query, feeding it SMT-LIB2 on stdin and parsing "sat"/"unsat"/"unknown" plus a get-value block from
// stdout.
func NewOracleBackend(name, path string, args ...string) *OracleBackend {
	return &OracleBackend{name: name, path: path, args: args, scopes: [][]*Term{nil}}
}

func (o *OracleBackend) Name() string { return o.name }

func (o *OracleBackend) Reset() { o.scopes = [][]*Term{nil} }

func (o *OracleBackend) Push() { o.scopes = append(o.scopes, nil) }

func (o *OracleBackend) Pop() {
	if len(o.scopes) <= 1 {
		panic("smt: OracleBackend.Pop called without a matching Push")
	}
	o.scopes = o.scopes[:len(o.scopes)-1]
}

func (o *OracleBackend) AddAssertion(t *Term) {
	top := len(o.scopes) - 1
	o.scopes[top] = append(o.scopes[top], t)
}

func (o *OracleBackend) Check(evalTerms []*Term) (CheckResult, []string, error) {
	script := o.buildScript(evalTerms)

	cmd := exec.Command(o.path, o.args...)
	cmd.Stdin = strings.NewReader(script)

	stdout, stderr, _, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil {
		return Error, nil, errors.Wrapf(err, "oracle backend %q failed: %s", o.name, strings.TrimSpace(string(stderr)))
	}

	return parseOracleOutput(string(stdout), len(evalTerms))
}

func (o *OracleBackend) buildScript(evalTerms []*Term) string {
	var sb strings.Builder
	sb.WriteString("(set-logic ALL)\n")
	for _, scope := range o.scopes {
		for _, a := range scope {
			sb.WriteString("(assert ")
			sb.WriteString(a.String())
			sb.WriteString(")\n")
		}
	}
	sb.WriteString("(check-sat)\n")
	for _, e := range evalTerms {
		sb.WriteString("(get-value (")
		sb.WriteString(e.String())
		sb.WriteString("))\n")
	}
	return sb.String()
}

// parseOracleOutput reads the solver's reply line by line: the first non-blank line is the sat/unsat/unknown
// verdict, and (when satisfiable) one get-value response per eval term follows, each rendered back as a raw
// string for the counter-example formatter to humanize.
func parseOracleOutput(output string, wantValues int) (CheckResult, []string, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))

	var verdict string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verdict = line
		break
	}

	switch verdict {
	case "unsat":
		return Unsatisfiable, nil, nil
	case "unknown":
		return Unknown, nil, nil
	case "sat":
		values := make([]string, 0, wantValues)
		for scanner.Scan() && len(values) < wantValues {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			values = append(values, extractGetValueResult(line))
		}
		return Satisfiable, values, nil
	default:
		return Error, nil, errors.Errorf("oracle backend: unrecognized check-sat response %q", verdict)
	}
}

// extractGetValueResult pulls the value out of a get-value response of the form "((<term> <value>))".
func extractGetValueResult(line string) string {
	line = strings.TrimPrefix(line, "(")
	line = strings.TrimSuffix(line, ")")
	line = strings.TrimPrefix(line, "(")
	line = strings.TrimSuffix(line, ")")
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return line
	}
	return strings.Join(parts[1:], " ")
}
