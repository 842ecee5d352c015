package ast

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// nodeTypeProbe is unmarshalled first from any raw node to decide which concrete Go type to build, mirroring the
// teacher's own double-dispatch-by-nodeType approach to consuming a Solidity-shaped AST.
type nodeTypeProbe struct {
	NodeType string `json:"nodeType"`
}

func probeNodeType(data []byte) (string, error) {
	var p nodeTypeProbe
	if err := json.Unmarshal(data, &p); err != nil {
		return "", errors.WithStack(err)
	}
	return p.NodeType, nil
}

// unmarshalExpression dispatches a raw JSON node to the concrete Expression type named by its nodeType, falling
// back to UnsupportedExpression for anything unrecognized so the traversal can continue degraded rather than fail.
func unmarshalExpression(data []byte) (Expression, error) {
	if data == nil || string(data) == "null" {
		return nil, nil
	}
	nodeType, err := probeNodeType(data)
	if err != nil {
		return nil, err
	}

	switch nodeType {
	case "Literal":
		var aux struct {
			base
			Kind     string           `json:"kind"`
			Value    string           `json:"value"`
			TypeDesc *TypeDescription `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		return &Literal{base: aux.base, Kind: aux.Kind, Value: aux.Value, TypeDesc: aux.TypeDesc}, nil

	case "Identifier":
		var aux struct {
			base
			Name                  string           `json:"name"`
			Kind                  IdentifierKind   `json:"identifierKind"`
			ReferencedDeclaration int64            `json:"referencedDeclaration"`
			TypeDesc              *TypeDescription `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		if aux.Kind == "" {
			aux.Kind = IdentifierKindVariable
		}
		return &Identifier{base: aux.base, Name: aux.Name, Kind: aux.Kind, ReferencedDeclaration: aux.ReferencedDeclaration, TypeDesc: aux.TypeDesc}, nil

	case "MemberAccess":
		var aux struct {
			base
			Expression json.RawMessage  `json:"expression"`
			MemberName string           `json:"memberName"`
			TypeDesc   *TypeDescription `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		sub, err := unmarshalExpression(aux.Expression)
		if err != nil {
			return nil, err
		}
		return &MemberAccess{base: aux.base, Expression: sub, MemberName: aux.MemberName, TypeDesc: aux.TypeDesc}, nil

	case "UnaryOperation":
		var aux struct {
			base
			Operator      string           `json:"operator"`
			SubExpression json.RawMessage  `json:"subExpression"`
			Prefix        bool             `json:"prefix"`
			TypeDesc      *TypeDescription `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		sub, err := unmarshalExpression(aux.SubExpression)
		if err != nil {
			return nil, err
		}
		return &UnaryOperation{base: aux.base, Operator: aux.Operator, SubExpression: sub, Prefix: aux.Prefix, TypeDesc: aux.TypeDesc}, nil

	case "BinaryOperation":
		var aux struct {
			base
			Operator        string           `json:"operator"`
			LeftExpression  json.RawMessage  `json:"leftExpression"`
			RightExpression json.RawMessage  `json:"rightExpression"`
			CommonType      *TypeDescription `json:"commonType"`
			TypeDesc        *TypeDescription `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		left, err := unmarshalExpression(aux.LeftExpression)
		if err != nil {
			return nil, err
		}
		right, err := unmarshalExpression(aux.RightExpression)
		if err != nil {
			return nil, err
		}
		return &BinaryOperation{base: aux.base, Operator: aux.Operator, LeftExpression: left, RightExpression: right, CommonType: aux.CommonType, TypeDesc: aux.TypeDesc}, nil

	case "Assignment":
		var aux struct {
			base
			Operator      string           `json:"operator"`
			LeftHandSide  json.RawMessage  `json:"leftHandSide"`
			RightHandSide json.RawMessage  `json:"rightHandSide"`
			TypeDesc      *TypeDescription `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		lhs, err := unmarshalExpression(aux.LeftHandSide)
		if err != nil {
			return nil, err
		}
		rhs, err := unmarshalExpression(aux.RightHandSide)
		if err != nil {
			return nil, err
		}
		return &Assignment{base: aux.base, Operator: aux.Operator, LeftHandSide: lhs, RightHandSide: rhs, TypeDesc: aux.TypeDesc}, nil

	case "IndexAccess":
		var aux struct {
			base
			BaseExpression  json.RawMessage  `json:"baseExpression"`
			IndexExpression json.RawMessage  `json:"indexExpression"`
			TypeDesc        *TypeDescription `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		b, err := unmarshalExpression(aux.BaseExpression)
		if err != nil {
			return nil, err
		}
		i, err := unmarshalExpression(aux.IndexExpression)
		if err != nil {
			return nil, err
		}
		return &IndexAccess{base: aux.base, BaseExpression: b, IndexExpression: i, TypeDesc: aux.TypeDesc}, nil

	case "FunctionCall":
		var aux struct {
			base
			Expression json.RawMessage   `json:"expression"`
			Arguments  []json.RawMessage `json:"arguments"`
			Kind       FunctionCallKind  `json:"kind"`
			TypeDesc   *TypeDescription  `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		callee, err := unmarshalExpression(aux.Expression)
		if err != nil {
			return nil, err
		}
		args := make([]Expression, 0, len(aux.Arguments))
		for _, a := range aux.Arguments {
			arg, err := unmarshalExpression(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &FunctionCall{base: aux.base, Expression: callee, Arguments: args, Kind: aux.Kind, TypeDesc: aux.TypeDesc}, nil

	case "TupleExpression":
		var aux struct {
			base
			Components []json.RawMessage `json:"components"`
			TypeDesc   *TypeDescription  `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		comps := make([]Expression, 0, len(aux.Components))
		for _, c := range aux.Components {
			comp, err := unmarshalExpression(c)
			if err != nil {
				return nil, err
			}
			comps = append(comps, comp)
		}
		return &TupleExpression{base: aux.base, Components: comps, TypeDesc: aux.TypeDesc}, nil

	default:
		var aux struct {
			base
			TypeDesc *TypeDescription `json:"typeDescriptions"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		return &UnsupportedExpression{base: aux.base, OriginalNodeType: nodeType, TypeDesc: aux.TypeDesc}, nil
	}
}

// unmarshalStatement dispatches a raw JSON node to the concrete Statement type named by its nodeType, falling back
// to UnsupportedStatement for anything the checker's Non-goals exclude or that the front-end emits but this
// checker does not model.
func unmarshalStatement(data []byte) (Statement, error) {
	if data == nil || string(data) == "null" {
		return nil, nil
	}
	nodeType, err := probeNodeType(data)
	if err != nil {
		return nil, err
	}

	switch nodeType {
	case "Block":
		return unmarshalBlock(data)

	case "ExpressionStatement":
		var aux struct {
			base
			Expr json.RawMessage `json:"expression"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		expr, err := unmarshalExpression(aux.Expr)
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{base: aux.base, Expr: expr}, nil

	case "VariableDeclarationStatement":
		var aux struct {
			base
			Declarations []json.RawMessage `json:"declarations"`
			InitialValue json.RawMessage   `json:"initialValue"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		decls := make([]*VariableDeclaration, 0, len(aux.Declarations))
		for _, d := range aux.Declarations {
			if d == nil || string(d) == "null" {
				decls = append(decls, nil)
				continue
			}
			vd, err := unmarshalVariableDeclaration(d)
			if err != nil {
				return nil, err
			}
			decls = append(decls, vd)
		}
		initVal, err := unmarshalExpression(aux.InitialValue)
		if err != nil {
			return nil, err
		}
		return &VariableDeclarationStatement{base: aux.base, Declarations: decls, InitialValue: initVal}, nil

	case "IfStatement":
		var aux struct {
			base
			Condition json.RawMessage `json:"condition"`
			TrueBody  json.RawMessage `json:"trueBody"`
			FalseBody json.RawMessage `json:"falseBody"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		cond, err := unmarshalExpression(aux.Condition)
		if err != nil {
			return nil, err
		}
		trueBody, err := unmarshalStatement(aux.TrueBody)
		if err != nil {
			return nil, err
		}
		falseBody, err := unmarshalStatement(aux.FalseBody)
		if err != nil {
			return nil, err
		}
		return &IfStatement{base: aux.base, Condition: cond, TrueBody: trueBody, FalseBody: falseBody}, nil

	case "WhileStatement":
		var aux struct {
			base
			Condition json.RawMessage `json:"condition"`
			Body      json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		cond, err := unmarshalExpression(aux.Condition)
		if err != nil {
			return nil, err
		}
		body, err := unmarshalStatement(aux.Body)
		if err != nil {
			return nil, err
		}
		return &WhileStatement{base: aux.base, Condition: cond, Body: body}, nil

	case "DoWhileStatement":
		var aux struct {
			base
			Condition json.RawMessage `json:"condition"`
			Body      json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		cond, err := unmarshalExpression(aux.Condition)
		if err != nil {
			return nil, err
		}
		body, err := unmarshalStatement(aux.Body)
		if err != nil {
			return nil, err
		}
		return &DoWhileStatement{base: aux.base, Condition: cond, Body: body}, nil

	case "ForStatement":
		var aux struct {
			base
			InitExpr  json.RawMessage `json:"initializationExpression"`
			Condition json.RawMessage `json:"condition"`
			LoopExpr  json.RawMessage `json:"loopExpression"`
			Body      json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		initStmt, err := unmarshalStatement(aux.InitExpr)
		if err != nil {
			return nil, err
		}
		cond, err := unmarshalExpression(aux.Condition)
		if err != nil {
			return nil, err
		}
		loopStmt, err := unmarshalStatement(aux.LoopExpr)
		if err != nil {
			return nil, err
		}
		var loopExprStmt *ExpressionStatement
		if loopStmt != nil {
			loopExprStmt, _ = loopStmt.(*ExpressionStatement)
		}
		body, err := unmarshalStatement(aux.Body)
		if err != nil {
			return nil, err
		}
		return &ForStatement{base: aux.base, InitExpr: initStmt, Condition: cond, LoopExpr: loopExprStmt, Body: body}, nil

	case "Return":
		var aux struct {
			base
			Expr json.RawMessage `json:"expression"`
		}
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		expr, err := unmarshalExpression(aux.Expr)
		if err != nil {
			return nil, err
		}
		return &ReturnStatement{base: aux.base, Expr: expr}, nil

	default:
		var aux base
		if err := json.Unmarshal(data, &aux); err != nil {
			return nil, errors.WithStack(err)
		}
		return &UnsupportedStatement{base: aux, OriginalNodeType: nodeType}, nil
	}
}

func unmarshalBlock(data []byte) (*Block, error) {
	var aux struct {
		base
		Statements []json.RawMessage `json:"statements"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, errors.WithStack(err)
	}
	stmts := make([]Statement, 0, len(aux.Statements))
	for _, s := range aux.Statements {
		stmt, err := unmarshalStatement(s)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &Block{base: aux.base, Statements: stmts}, nil
}

func unmarshalVariableDeclaration(data []byte) (*VariableDeclaration, error) {
	var vd VariableDeclaration
	if err := json.Unmarshal(data, &vd); err != nil {
		return nil, errors.WithStack(err)
	}
	return &vd, nil
}

// UnmarshalJSON implements json.Unmarshaler for FunctionDefinition, manually decoding its Body (a Block) since
// Go's encoding/json cannot dispatch an interface-typed field on its own.
func (f *FunctionDefinition) UnmarshalJSON(data []byte) error {
	type alias FunctionDefinition
	aux := struct {
		alias
		Body json.RawMessage `json:"body"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return errors.WithStack(err)
	}
	*f = FunctionDefinition(aux.alias)

	if len(aux.Body) > 0 && string(aux.Body) != "null" {
		body, err := unmarshalBlock(aux.Body)
		if err != nil {
			return err
		}
		f.Body = body
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for ContractDefinition, dispatching each child node by nodeType into
// either the Functions or StateVars slice.
func (c *ContractDefinition) UnmarshalJSON(data []byte) error {
	type alias ContractDefinition
	aux := struct {
		alias
		Nodes []json.RawMessage `json:"nodes"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return errors.WithStack(err)
	}
	*c = ContractDefinition(aux.alias)

	for _, raw := range aux.Nodes {
		nodeType, err := probeNodeType(raw)
		if err != nil {
			return err
		}
		switch nodeType {
		case "FunctionDefinition":
			var fn FunctionDefinition
			if err := json.Unmarshal(raw, &fn); err != nil {
				return err
			}
			c.Functions = append(c.Functions, &fn)
		case "VariableDeclaration":
			vd, err := unmarshalVariableDeclaration(raw)
			if err != nil {
				return err
			}
			vd.StateVariable = true
			c.StateVars = append(c.StateVars, vd)
		default:
			// Contract-level nodes the checker has no use for (events, structs, modifiers, using-for, ...) are
			// silently ignored here; they never reach the traverser.
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for SourceUnit, dispatching each child node to ContractDefinition.
func (s *SourceUnit) UnmarshalJSON(data []byte) error {
	type alias SourceUnit
	aux := struct {
		alias
		Nodes []json.RawMessage `json:"nodes"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return errors.WithStack(err)
	}
	*s = SourceUnit(aux.alias)

	for _, raw := range aux.Nodes {
		nodeType, err := probeNodeType(raw)
		if err != nil {
			return err
		}
		if nodeType != "ContractDefinition" {
			continue
		}
		var contract ContractDefinition
		if err := json.Unmarshal(raw, &contract); err != nil {
			return err
		}
		s.Contracts = append(s.Contracts, &contract)
	}
	return nil
}
