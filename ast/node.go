// Package ast defines the typed abstract syntax tree consumed by the checker. Parsing and type-checking of the
// Source language are an external collaborator's responsibility (§1 of the governing specification); this package
// only defines the Go shapes a front-end's JSON output is unmarshalled into, following the double-dispatch,
// nodeType-driven unmarshalling style of a typical Solidity-AST-consuming tool.
package ast

import (
	"regexp"
	"strconv"
)

// Node is the interface every AST node implements. GetID returns a value stable for the lifetime of the AST that
// uniquely identifies this node; it is used as the key for the declaration-identity maps (the symbolic store's
// `vars` and the checker's declaration index).
type Node interface {
	GetNodeType() string
	GetID() int64
	GetSrc() string
}

var srcRegex = regexp.MustCompile(`^(-?[0-9]+):(-?[0-9]+):(-?[0-9]+)$`)

// SrcLocation holds the parsed byte-offset/length/file-index triple a front-end encodes into a "start:length:file"
// source-mapping string.
type SrcLocation struct {
	Start  int
	Length int
	File   int
}

// ParseSrc parses a "start:length:file" source mapping string into its components. Any component that fails to
// parse is set to -1, mirroring the tolerant, regex-based approach of the front-end's own source map parser.
func ParseSrc(src string) SrcLocation {
	m := srcRegex.FindStringSubmatch(src)
	if len(m) != 4 {
		return SrcLocation{Start: -1, Length: -1, File: -1}
	}
	start, err1 := strconv.Atoi(m[1])
	length, err2 := strconv.Atoi(m[2])
	file, err3 := strconv.Atoi(m[3])
	if err1 != nil {
		start = -1
	}
	if err2 != nil {
		length = -1
	}
	if err3 != nil {
		file = -1
	}
	return SrcLocation{Start: start, Length: length, File: file}
}

// base is embedded by every concrete node type to provide the common Node fields.
type base struct {
	NodeType string `json:"nodeType"`
	ID       int64  `json:"id"`
	Src      string `json:"src"`
}

func (b base) GetNodeType() string { return b.NodeType }
func (b base) GetID() int64        { return b.ID }
func (b base) GetSrc() string      { return b.Src }
