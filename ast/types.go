package ast

// TypeKind identifies the broad category of a TypeDescription, driving the Source-type-to-sort mapping of §4.2.
type TypeKind string

const (
	TypeKindBool     TypeKind = "bool"
	TypeKindInt      TypeKind = "int"
	TypeKindUint     TypeKind = "uint"
	TypeKindAddress  TypeKind = "address"
	TypeKindMapping  TypeKind = "mapping"
	TypeKindFunction TypeKind = "function"
	TypeKindOther    TypeKind = "other"
)

// AddressBitWidth is the bit width the checker uses uniformly for the address type, per the Open Question resolved
// in §9: address arithmetic is treated as unsigned 160-bit everywhere in this checker.
const AddressBitWidth = 160

// TypeDescription describes a Source type annotation as attached to a declaration or expression node. It purposely
// carries only the information §4.2's sort-mapping table needs: front-ends emit a much richer type system (this
// checker's declared Non-goals name tuples/inline-arrays/multi-dimensional arrays as explicitly unsupported), and
// anything this struct cannot represent resolves to TypeKindOther, which the symbolic value store treats as
// unsupported and models with a fallback integer sort.
type TypeDescription struct {
	// Kind is the broad category used to select a sort.
	Kind TypeKind `json:"kind"`
	// BitWidth applies to TypeKindInt/TypeKindUint (ignored, and implicitly 160, for TypeKindAddress).
	BitWidth int `json:"bitWidth,omitempty"`
	// KeyType/ValueType apply to TypeKindMapping.
	KeyType   *TypeDescription `json:"keyType,omitempty"`
	ValueType *TypeDescription `json:"valueType,omitempty"`
	// Parameters/Returns apply to TypeKindFunction, mirroring the source signature's arity/domain/range.
	Parameters []*TypeDescription `json:"parameters,omitempty"`
	Returns    []*TypeDescription `json:"returns,omitempty"`
	// TypeString is the front-end's human-readable rendering of the type, kept for diagnostics and for computing a
	// richIdentifier for function types (§4.4, "Identifier → function type").
	TypeString string `json:"typeString,omitempty"`
}

// IsIntegerLike reports whether the type is modelled as a bounded integer sort (int_N, uint_N, or address).
func (t *TypeDescription) IsIntegerLike() bool {
	if t == nil {
		return false
	}
	return t.Kind == TypeKindInt || t.Kind == TypeKindUint || t.Kind == TypeKindAddress
}

// Signed reports whether the integer-like type is signed.
func (t *TypeDescription) Signed() bool {
	return t != nil && t.Kind == TypeKindInt
}

// Width returns the bit width to use for bounds computation: the declared width for int_N/uint_N, or the fixed
// 160 for address.
func (t *TypeDescription) Width() int {
	if t == nil {
		return 0
	}
	if t.Kind == TypeKindAddress {
		return AddressBitWidth
	}
	return t.BitWidth
}

// RichIdentifier returns a stable string identifying a function type for use as the key of the uninterpreted
// function created for it (§4.4, "Identifier → function type"). It is not required to be human readable, only
// stable and distinguishing across different function signatures.
func (t *TypeDescription) RichIdentifier() string {
	if t == nil {
		return "function()"
	}
	return "function:" + t.TypeString
}
