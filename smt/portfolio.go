package smt

import (
	"github.com/Masterminds/semver"
)

// arrayTheoryFloor is the minimum backend version this checker trusts to implement the extensional array theory
// (component D needs select/store for mapping reasoning). A member whose Version is below this floor is still
// multicast Reset/Push/Pop/AddAssertion calls, but is excluded from Check whenever the query touches an array
// sort, rather than trusting it to silently downgrade to an uninterpreted sort.
var arrayTheoryFloor = semver.MustParse("4.8.0")

// Member is one backend registered in a Portfolio, annotated with the version used to gate array-theory queries.
type Member struct {
	Backend Backend
	Version *semver.Version
}

// Portfolio is itself a Backend: it multicasts every mutating call to its registered members and reconciles their
// Check answers with the consensus policy from §4.1 — agreement wins outright; any two members disagreeing on
// SAT vs. UNSAT is Conflicting; if every member errors the result is Error; otherwise, if at least one member
// answered something other than Error, and there is no SAT/UNSAT disagreement, a non-Error non-Unknown answer
// wins over Unknown.
type Portfolio struct {
	members []Member
}

// NewPortfolio constructs an empty Portfolio. Members are added with Register.
func NewPortfolio() *Portfolio {
	return &Portfolio{}
}

// Register adds a backend to the portfolio, reporting version for the array-theory capability gate. Backends that
// never claim array support (e.g. NullBackend, CannedBackend) should register with arrayTheoryFloor itself so
// they are never excluded.
func (p *Portfolio) Register(b Backend, version *semver.Version) {
	p.members = append(p.members, Member{Backend: b, Version: version})
}

func (p *Portfolio) Name() string { return "portfolio" }

func (p *Portfolio) Reset() {
	for _, m := range p.members {
		m.Backend.Reset()
	}
}

func (p *Portfolio) Push() {
	for _, m := range p.members {
		m.Backend.Push()
	}
}

func (p *Portfolio) Pop() {
	for _, m := range p.members {
		m.Backend.Pop()
	}
}

func (p *Portfolio) AddAssertion(t *Term) {
	for _, m := range p.members {
		m.Backend.AddAssertion(t)
	}
}

// Check queries every eligible member and reconciles their answers per §4.1. evalTerms are only honored on the
// member whose answer the consensus ultimately adopts; if that member did not answer Satisfiable, evalTerms is
// empty in the result regardless of what other members would have returned for it.
func (p *Portfolio) Check(evalTerms []*Term) (CheckResult, []string, error) {
	needsArrays := anyArraySorted(evalTerms)

	var answers []portfolioAnswer
	for _, m := range p.members {
		if needsArrays && m.Version.LessThan(arrayTheoryFloor) {
			continue
		}
		result, model, err := m.Backend.Check(evalTerms)
		answers = append(answers, portfolioAnswer{member: m, result: result, model: model, err: err})
	}

	if len(answers) == 0 {
		return Unknown, nil, nil
	}

	sawSAT, sawUNSAT := false, false
	allError := true
	var chosen *portfolioAnswer

	for i := range answers {
		a := &answers[i]
		if a.err != nil || a.result == Error {
			continue
		}
		allError = false
		switch a.result {
		case Satisfiable:
			sawSAT = true
			if chosen == nil || chosen.result != Satisfiable {
				chosen = a
			}
		case Unsatisfiable:
			sawUNSAT = true
			if chosen == nil || chosen.result != Satisfiable && chosen.result != Unsatisfiable {
				chosen = a
			}
		case Unknown:
			if chosen == nil {
				chosen = a
			}
		}
	}

	if sawSAT && sawUNSAT {
		return Conflicting, nil, nil
	}
	if allError {
		return Error, nil, firstError(answers)
	}
	if chosen == nil {
		return Unknown, nil, nil
	}
	if chosen.result == Satisfiable {
		return Satisfiable, chosen.model, nil
	}
	return chosen.result, nil, nil
}

// portfolioAnswer is one member's answer to a single Check call, tracked for consensus reconciliation.
type portfolioAnswer struct {
	member Member
	result CheckResult
	model  []string
	err    error
}

func firstError(answers []portfolioAnswer) error {
	for _, a := range answers {
		if a.err != nil {
			return a.err
		}
	}
	return nil
}

func anyArraySorted(terms []*Term) bool {
	for _, t := range terms {
		if t != nil && t.Sort() == SortArray {
			return true
		}
	}
	return false
}
