package symbolic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/smt"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Snapshot is a decl-id -> SSA-index mapping, cheap to copy because the live variable set is small (§9: "a
// snapshot is a plain mapping (decl-id -> index). Reset is a mass overwrite").
type Snapshot map[int64]int

// Store is the symbolic value store for a single analysis run: it owns the backend/portfolio, every live
// Variable, the path-condition stack, and the per-root-function flags the diagnostic sink reads.
type Store struct {
	backend smt.Backend

	vars    map[int64]*Variable // declaration node ID -> symvar
	globals map[string]*Variable
	uninterp map[string]*smt.Term // source text -> recorded uninterpreted term, for counter-example naming

	pathConds    []*smt.Term
	pathCondTop  *smt.Term // cached conjunction of pathConds, refreshed on push/pop
	functionPath []int64   // stack of function declaration node IDs currently being inlined, for recursion detection

	LoopExecutionHappened   bool
	ArrayAssignmentHappened bool

	fresh int // counter feeding unique SMT identifiers for globals/uninterpreted terms
}

// NewStore constructs a Store backed by the given solver backend (typically a *smt.Portfolio).
func NewStore(backend smt.Backend) *Store {
	return &Store{
		backend:  backend,
		vars:     make(map[int64]*Variable),
		globals:  make(map[string]*Variable),
		uninterp: make(map[string]*smt.Term),
	}
}

// ResetForRootFunction discards all assertions/scopes in the backend and clears the declared variables (vars), the
// path-condition and inlining stacks, the per-root-function flags and the uninterpreted-term table (§5: "the solver
// state ... is only reset() between root functions"). Pseudo-globals (globals) are kept, so their SSA indices carry
// over from one root function to the next.
func (s *Store) ResetForRootFunction() {
	s.backend.Reset()
	s.vars = make(map[int64]*Variable)
	s.uninterp = make(map[string]*smt.Term)
	s.pathConds = nil
	s.pathCondTop = nil
	s.functionPath = nil
	s.LoopExecutionHappened = false
	s.ArrayAssignmentHappened = false
}

// ---- variable lookup/creation ----

// DeclareVariable creates (or returns the existing) symvar for decl, keyed by decl's node ID. unsupported mirrors
// newSymbolicVariable's return.
func (s *Store) DeclareVariable(decl *ast.VariableDeclaration, uniqueName string) (unsupported bool, v *Variable) {
	if existing, ok := s.vars[decl.GetID()]; ok {
		return false, existing
	}
	unsupported, v = newSymbolicVariable(decl.TypeDesc, uniqueName)
	s.vars[decl.GetID()] = v
	return unsupported, v
}

// Variable returns the symvar already declared for decl. It panics if none exists — per §7, "a variable known
// but missing from vars" is an internal invariant violation, not a recoverable condition.
func (s *Store) Variable(decl *ast.VariableDeclaration) *Variable {
	v, ok := s.vars[decl.GetID()]
	if !ok {
		panic("symbolic: variable referenced before being declared in the store")
	}
	return v
}

// HasVariable reports whether decl has an entry in the store without panicking.
func (s *Store) HasVariable(decl *ast.VariableDeclaration) bool {
	_, ok := s.vars[decl.GetID()]
	return ok
}

// Global lazily creates (on first use) a pseudo-global symvar named name with the given sort, per §4.4's
// "Identifier -> pseudo-global: lazily create a symvar in globals with the name; do not bump its index."
func (s *Store) Global(name string, sort smt.Sort) *Variable {
	if v, ok := s.globals[name]; ok {
		return v
	}
	// pseudo-globals like `now` carry no declared bounds; the sort alone (typically SortInt) is enough for the
	// encoder to build comparisons against them.
	v := &Variable{UniqueName: name, Sort: sort}
	s.globals[name] = v
	return v
}

// UninterpretedFunction returns the name used for an uninterpreted function's identity — e.g. a function-typed
// identifier's richIdentifier (§4.4). It is richIdentifier itself; no symvar is created or stored.
func (s *Store) UninterpretedFunction(richIdentifier string) string {
	return richIdentifier
}

// RecordUninterpreted associates sourceText (as it should appear in a counter-example) with term, per §4.4's
// index-access and abstract-call protocols ("recorded in uninterp").
func (s *Store) RecordUninterpreted(sourceText string, term *smt.Term) {
	s.uninterp[sourceText] = term
}

// NamedTerm pairs a counter-example display name with the term it evaluates.
type NamedTerm struct {
	Name string
	Term *smt.Term
}

// UninterpretedTerms returns the uninterp table's entries sorted by source text, for deterministic evaluation-list
// construction in checkCondition (§4.6).
func (s *Store) UninterpretedTerms() []NamedTerm {
	names := make([]string, 0, len(s.uninterp))
	for name := range s.uninterp {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]NamedTerm, len(names))
	for i, name := range names {
		result[i] = NamedTerm{Name: name, Term: s.uninterp[name]}
	}
	return result
}

// AllVariables returns every declared state/local variable's symvar, sorted by name for deterministic
// evaluation-list construction (§4.6 step 2) across runs and test assertions.
func (s *Store) AllVariables() []*Variable {
	vars := maps.Values(s.vars)
	slices.SortFunc(vars, func(a, b *Variable) int { return strings.Compare(a.UniqueName, b.UniqueName) })
	return vars
}

// AllGlobals returns every pseudo-global symvar registered so far, sorted by name for the same reason.
func (s *Store) AllGlobals() []*Variable {
	vars := maps.Values(s.globals)
	slices.SortFunc(vars, func(a, b *Variable) int { return strings.Compare(a.UniqueName, b.UniqueName) })
	return vars
}

// ---- SSA snapshot/merge support ----

// Snapshot captures every declared variable's current SSA index.
func (s *Store) Snapshot() Snapshot {
	snap := make(Snapshot, len(s.vars))
	for id, v := range s.vars {
		snap[id] = v.index
	}
	return snap
}

// RestoreSnapshot resets every declared variable's live pointer to what snap recorded, leaving each variable's
// high-water mark untouched so a later IncreaseIndex still allocates a fresh index rather than reissuing one
// already used by the branch/iteration being reset away from (§9, §3 invariant 1). Variables declared after snap
// was taken are left untouched (they did not exist at snapshot time).
func (s *Store) RestoreSnapshot(snap Snapshot) {
	for id, idx := range snap {
		if v, ok := s.vars[id]; ok {
			v.SetIndex(idx)
		}
	}
}

// ---- path condition stack ----

// PushPathCondition pushes cond onto the path-condition stack and refreshes the cached conjunction (§9: "keep it
// as an append-only vector of terms plus a cached conjunction top").
func (s *Store) PushPathCondition(cond *smt.Term) {
	s.pathConds = append(s.pathConds, cond)
	s.pathCondTop = smt.And(s.pathConds...)
}

// PopPathCondition discards the most recently pushed path condition.
func (s *Store) PopPathCondition() {
	if len(s.pathConds) == 0 {
		panic("symbolic: PopPathCondition called on an empty path-condition stack")
	}
	s.pathConds = s.pathConds[:len(s.pathConds)-1]
	if len(s.pathConds) == 0 {
		s.pathCondTop = nil
	} else {
		s.pathCondTop = smt.And(s.pathConds...)
	}
}

// PathCondition returns the current path condition (the conjunction of every pushed predicate), or the boolean
// constant true if the stack is empty.
func (s *Store) PathCondition() *smt.Term {
	if s.pathCondTop == nil {
		return smt.BoolConst(true)
	}
	return s.pathCondTop
}

// ---- function inlining recursion guard ----

// EnterFunction pushes declID onto the inlining call stack (§4.7 step 1).
func (s *Store) EnterFunction(declID int64) { s.functionPath = append(s.functionPath, declID) }

// ExitFunction pops the inlining call stack.
func (s *Store) ExitFunction() { s.functionPath = s.functionPath[:len(s.functionPath)-1] }

// OnFunctionPath reports whether declID is already being inlined somewhere up the call stack.
func (s *Store) OnFunctionPath(declID int64) bool {
	for _, id := range s.functionPath {
		if id == declID {
			return true
		}
	}
	return false
}

// InRootFunction reports whether the traverser is at the outermost (non-inlined) function.
func (s *Store) InRootFunction() bool { return len(s.functionPath) <= 1 }

// ---- solver plumbing ----

// Backend exposes the underlying solver backend for the checker package's goal-check protocol.
func (s *Store) Backend() smt.Backend { return s.backend }

// addAssertion asserts t unconditionally in the backend's current scope — used internally by setZero/setUnknown
// and by the checker package for the assignment protocol's equality assertions.
func (s *Store) addAssertion(t *smt.Term) { s.backend.AddAssertion(t) }

// AddAssertion exposes addAssertion to the checker package.
func (s *Store) AddAssertion(t *smt.Term) { s.addAssertion(t) }

// FreshName returns a unique identifier built from prefix, used when the checker package needs a synthetic symvar
// with no natural source-level name (e.g. an unnamed local declaration).
func (s *Store) FreshName(prefix string) string {
	s.fresh++
	return fmt.Sprintf("%s!anon%d", prefix, s.fresh)
}
