package ast

// Expression is any AST node that can appear where a value is expected. Every concrete expression type below also
// carries a TypeDescriptions field mirroring the front-end's own type annotation output, since the checker never
// re-derives types itself (§1: type-checking is an external collaborator's job).
type Expression interface {
	Node
	GetTypeDescriptions() *TypeDescription
}

// Literal is a numeric or boolean constant.
type Literal struct {
	base
	Kind     string           `json:"kind"` // "number" or "bool"
	Value    string           `json:"value"`
	TypeDesc *TypeDescription `json:"typeDescriptions"`
}

func (l *Literal) GetNodeType() string                    { return "Literal" }
func (l *Literal) GetTypeDescriptions() *TypeDescription  { return l.TypeDesc }

// IdentifierKind distinguishes what an Identifier node actually refers to, since the encoder (§4.4) dispatches on
// this rather than re-deriving it from scope-resolution logic the checker does not own.
type IdentifierKind string

const (
	// IdentifierKindVariable refers to a VariableDeclaration (state variable, local, or parameter).
	IdentifierKindVariable IdentifierKind = "variable"
	// IdentifierKindGlobal refers to a pseudo-global such as `now`. The callee of a `gasleft()` call is a
	// function-kind identifier, not a global one.
	IdentifierKindGlobal IdentifierKind = "global"
	// IdentifierKindFunction refers to a function-typed identifier (used for uninterpreted-function identity).
	IdentifierKindFunction IdentifierKind = "function"
)

// Identifier is a bare name reference: a variable read/write, a pseudo-global reference, or a function reference.
type Identifier struct {
	base
	Name                 string           `json:"name"`
	Kind                 IdentifierKind   `json:"identifierKind"`
	ReferencedDeclaration int64           `json:"referencedDeclaration"`
	TypeDesc             *TypeDescription `json:"typeDescriptions"`
}

func (i *Identifier) GetNodeType() string                   { return "Identifier" }
func (i *Identifier) GetTypeDescriptions() *TypeDescription { return i.TypeDesc }

// MemberAccess is `expression.memberName`, used by the checker only for magic/global member reads such as
// `msg.sender` or `block.timestamp` (§4.4).
type MemberAccess struct {
	base
	Expression Expression       `json:"-"`
	MemberName string           `json:"memberName"`
	TypeDesc   *TypeDescription `json:"typeDescriptions"`
}

func (m *MemberAccess) GetNodeType() string                   { return "MemberAccess" }
func (m *MemberAccess) GetTypeDescriptions() *TypeDescription { return m.TypeDesc }

// UnaryOperation is a prefix/postfix unary operator: `!`, `-`, `++`, `--`.
type UnaryOperation struct {
	base
	Operator      string           `json:"operator"`
	SubExpression Expression       `json:"-"`
	Prefix        bool             `json:"prefix"`
	TypeDesc      *TypeDescription `json:"typeDescriptions"`
}

func (u *UnaryOperation) GetNodeType() string                   { return "UnaryOperation" }
func (u *UnaryOperation) GetTypeDescriptions() *TypeDescription { return u.TypeDesc }

// BinaryOperation is a two-operand operator: arithmetic, comparison, or boolean.
type BinaryOperation struct {
	base
	Operator         string           `json:"operator"`
	LeftExpression   Expression       `json:"-"`
	RightExpression  Expression       `json:"-"`
	CommonType       *TypeDescription `json:"commonType"`
	TypeDesc         *TypeDescription `json:"typeDescriptions"`
}

func (b *BinaryOperation) GetNodeType() string                   { return "BinaryOperation" }
func (b *BinaryOperation) GetTypeDescriptions() *TypeDescription { return b.TypeDesc }

// Assignment is `lhs = rhs`. Only the plain `=` operator is modelled; any other value in Operator is unsupported
// (§4.4, "Compound assignments are unsupported").
type Assignment struct {
	base
	Operator     string           `json:"operator"`
	LeftHandSide Expression       `json:"-"`
	RightHandSide Expression      `json:"-"`
	TypeDesc     *TypeDescription `json:"typeDescriptions"`
}

func (a *Assignment) GetNodeType() string                   { return "Assignment" }
func (a *Assignment) GetTypeDescriptions() *TypeDescription { return a.TypeDesc }

// IndexAccess is `base[index]`, used both for mapping reads and as an l-value for mapping/array stores.
type IndexAccess struct {
	base
	BaseExpression  Expression       `json:"-"`
	IndexExpression Expression       `json:"-"`
	TypeDesc        *TypeDescription `json:"typeDescriptions"`
}

func (i *IndexAccess) GetNodeType() string                   { return "IndexAccess" }
func (i *IndexAccess) GetTypeDescriptions() *TypeDescription { return i.TypeDesc }

// FunctionCallKind distinguishes the callee dispatch categories of §4.7.
type FunctionCallKind string

const (
	FunctionCallKindFunctionCall FunctionCallKind = "functionCall"
	FunctionCallKindTypeConversion FunctionCallKind = "typeConversion"
)

// FunctionCall is a call expression; the callee's identity (via Expression) drives the dispatch of §4.7.
type FunctionCall struct {
	base
	Expression Expression       `json:"-"`
	Arguments  []Expression     `json:"-"`
	Kind       FunctionCallKind `json:"kind"`
	TypeDesc   *TypeDescription `json:"typeDescriptions"`
}

func (f *FunctionCall) GetNodeType() string                   { return "FunctionCall" }
func (f *FunctionCall) GetTypeDescriptions() *TypeDescription { return f.TypeDesc }

// TupleExpression is `(a, b, ...)`. Per §4.4 only the one-element case is supported (passthrough); anything longer
// is unsupported.
type TupleExpression struct {
	base
	Components []Expression     `json:"-"`
	TypeDesc   *TypeDescription `json:"typeDescriptions"`
}

func (t *TupleExpression) GetNodeType() string                   { return "TupleExpression" }
func (t *TupleExpression) GetTypeDescriptions() *TypeDescription { return t.TypeDesc }

// UnsupportedExpression is a catch-all for any expression kind the checker's Non-goals exclude, or that the
// front-end emits but this checker does not model at all. The encoder emits the "unsupported" warning and falls
// back to a fresh unknown symbolic value for it.
type UnsupportedExpression struct {
	base
	OriginalNodeType string           `json:"nodeType"`
	TypeDesc         *TypeDescription `json:"typeDescriptions"`
}

func (u *UnsupportedExpression) GetNodeType() string                   { return u.OriginalNodeType }
func (u *UnsupportedExpression) GetTypeDescriptions() *TypeDescription { return u.TypeDesc }
