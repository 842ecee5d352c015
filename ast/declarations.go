package ast

// VariableDeclaration is a state variable, local variable, or function parameter/return-parameter declaration.
// Its GetID() is the "variable declaration identity" the symbolic value store's `vars` table is keyed by.
type VariableDeclaration struct {
	base
	Name          string           `json:"name"`
	TypeDesc      *TypeDescription `json:"typeDescriptions"`
	StateVariable bool             `json:"stateVariable"`
	Constant      bool             `json:"constant"`
}

func (v *VariableDeclaration) GetNodeType() string { return "VariableDeclaration" }

// FunctionDefinition is a function (or public state-variable getter, modelled the same way) belonging to a
// ContractDefinition.
type FunctionDefinition struct {
	base
	Name             string                  `json:"name"`
	Parameters       []*VariableDeclaration  `json:"parameters"`
	ReturnParameters []*VariableDeclaration  `json:"returnParameters"`
	Body             *Block                  `json:"body"`
	TypeDesc         *TypeDescription        `json:"typeDescriptions"`
}

func (f *FunctionDefinition) GetNodeType() string { return "FunctionDefinition" }

// ContractDefinition is a contract, library, or interface declaration containing state variables and functions.
type ContractDefinition struct {
	base
	Name      string                  `json:"name"`
	Functions []*FunctionDefinition   `json:"-"`
	StateVars []*VariableDeclaration  `json:"-"`
}

func (c *ContractDefinition) GetNodeType() string { return "ContractDefinition" }

// SourceUnit is the root of a single compiled source file: the top-level input to analyze(sourceUnit).
type SourceUnit struct {
	base
	Contracts []*ContractDefinition `json:"-"`
}

func (s *SourceUnit) GetNodeType() string { return "SourceUnit" }
