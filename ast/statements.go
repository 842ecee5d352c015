package ast

// Statement is any AST node that can appear in a function body's statement list.
type Statement interface {
	Node
}

// Block is `{ stmt; stmt; ... }`.
type Block struct {
	base
	Statements []Statement `json:"-"`
}

func (b *Block) GetNodeType() string { return "Block" }

// ExpressionStatement wraps a bare expression used as a statement (assignments, calls to assert/require/etc).
type ExpressionStatement struct {
	base
	Expr Expression `json:"-"`
}

func (e *ExpressionStatement) GetNodeType() string { return "ExpressionStatement" }

// VariableDeclarationStatement is `T x = e;` (single-declarator) or `T x, T y = e;` (multi-declarator, unsupported
// per §4.5).
type VariableDeclarationStatement struct {
	base
	Declarations []*VariableDeclaration `json:"-"`
	InitialValue Expression             `json:"-"`
}

func (v *VariableDeclarationStatement) GetNodeType() string { return "VariableDeclarationStatement" }

// IfStatement is `if (cond) trueBody [else falseBody]`.
type IfStatement struct {
	base
	Condition Expression `json:"-"`
	TrueBody  Statement  `json:"-"`
	FalseBody Statement  `json:"-"` // nil if there is no else-branch
}

func (i *IfStatement) GetNodeType() string { return "IfStatement" }

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	base
	Condition Expression `json:"-"`
	Body      Statement  `json:"-"`
}

func (w *WhileStatement) GetNodeType() string { return "WhileStatement" }

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	base
	Condition Expression `json:"-"`
	Body      Statement  `json:"-"`
}

func (d *DoWhileStatement) GetNodeType() string { return "DoWhileStatement" }

// ForStatement is `for (init; cond; loopExpr) body`. Any of InitExpr/Condition/LoopExpr may be nil.
type ForStatement struct {
	base
	InitExpr  Statement            `json:"-"`
	Condition Expression           `json:"-"`
	LoopExpr  *ExpressionStatement `json:"-"`
	Body      Statement            `json:"-"`
}

func (f *ForStatement) GetNodeType() string { return "ForStatement" }

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	base
	Expr Expression `json:"-"` // nil for a bare `return;`
}

func (r *ReturnStatement) GetNodeType() string { return "ReturnStatement" }

// UnsupportedStatement is a catch-all for any statement kind the checker's Non-goals exclude (e.g. a construct
// tied to recursion, multi-return, or another excluded feature at the statement level). The traverser emits the
// "unsupported" warning and skips it without descending into children.
type UnsupportedStatement struct {
	base
	OriginalNodeType string `json:"nodeType"`
}

func (u *UnsupportedStatement) GetNodeType() string { return u.OriginalNodeType }
