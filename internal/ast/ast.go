// Package ast holds the flat node arena a parser fills from a token stream.
// Nodes and child lists live in two growable arrays and refer to each other
// by index.
package ast

import (
	"errors"
	"iter"

	"github.com/ian-shakespeare/tstm/pkg/array"
)

type NodeKind uint16

const (
	ROOT_NODE NodeKind = iota
	DECL_NODE
	IDENT_NODE
	INT_NODE
	FLOAT_NODE
	BOOL_NODE
	UNARY_NODE
	BINARY_NODE
	TERNARY_NODE
	CALL_NODE
	ACCESS_NODE
	ASSIGN_NODE

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	"root", "decl", "ident", "int", "float", "bool",
	"unary", "binary", "ternary", "call", "access", "assign",
}

func (k NodeKind) String() string {
	if k >= nodeKindCount {
		return "unknown"
	}
	return nodeKindNames[k]
}

// OpCode is stored in Node.Data for unary and binary nodes.
type OpCode uint32

const (
	OP_NEG OpCode = iota
	OP_NOT

	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_EQ
	OP_NEQ
	OP_AEQ
	OP_NAEQ
	OP_SEQ
	OP_NSEQ
	OP_LT
	OP_GT
	OP_LE
	OP_GE
	OP_AND
	OP_OR
	OP_XOR
	OP_LXOR
	OP_LAND
	OP_LOR
	OP_SHL
	OP_SHR
	OP_ROL
	OP_ROR
)

func (op OpCode) IsUnary() bool {
	return op <= OP_NOT
}

type Flag uint16

const (
	CONST_FLAG Flag = 1 << iota
	NULL_FLAG
)

type NodeID uint32

// InvalidID is returned where no node exists.
const InvalidID = NodeID(^uint32(0))

// maxChildren bounds Node.ChildLen.
const maxChildren = 0xFF

var (
	ErrUnknownNode   = errors.New("unknown node")
	ErrNonContiguous = errors.New("children must be added contiguously")
	ErrTooManyNodes  = errors.New("node has too many children")
)

type Node struct {
	Kind  NodeKind
	Flags Flag
	// FirstChild indexes the arena's child list.
	FirstChild uint32
	ChildLen   uint8
	// Data is an integer literal, an interned string offset or an OpCode.
	Data      uint32
	SourcePos uint32
}

func (n Node) Is(f Flag) bool {
	return n.Flags&f != 0
}

type Arena struct {
	nodes    *array.List[Node]
	children *array.List[NodeID]
}

func New(nodeCapacity, childCapacity int) *Arena {
	return &Arena{
		nodes:    array.NewList[Node](nodeCapacity),
		children: array.NewList[NodeID](childCapacity),
	}
}

func (a *Arena) Len() int {
	return a.nodes.Len()
}

func (a *Arena) AddNode(kind NodeKind, sourcePos uint32) NodeID {
	id := NodeID(a.nodes.Len())
	a.nodes.Push(Node{
		Kind:       kind,
		FirstChild: uint32(a.children.Len()),
		SourcePos:  sourcePos,
	})
	return id
}

// AddChild appends child to parent's child list. A node's children occupy
// one contiguous run, so once another node has received children parent can
// take no more.
func (a *Arena) AddChild(parent, child NodeID) error {
	p, ok := a.nodes.At(int(parent))
	if !ok {
		return ErrUnknownNode
	}
	if _, ok := a.nodes.At(int(child)); !ok {
		return ErrUnknownNode
	}

	switch {
	case p.ChildLen == 0:
		p.FirstChild = uint32(a.children.Len())
	case p.FirstChild+uint32(p.ChildLen) != uint32(a.children.Len()):
		return ErrNonContiguous
	case p.ChildLen == maxChildren:
		return ErrTooManyNodes
	}

	a.children.Push(child)
	p.ChildLen++
	a.nodes.Set(int(parent), p)
	return nil
}

func (a *Arena) Node(id NodeID) (Node, bool) {
	return a.nodes.At(int(id))
}

// Child returns the node id stored at position i of the child list, or
// InvalidID.
func (a *Arena) Child(i uint32) NodeID {
	id, ok := a.children.At(int(i))
	if !ok {
		return InvalidID
	}
	return id
}

func (a *Arena) Children(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		n, ok := a.Node(id)
		if !ok {
			return
		}
		for i := uint32(0); i < uint32(n.ChildLen); i++ {
			if !yield(a.Child(n.FirstChild + i)) {
				return
			}
		}
	}
}

func (a *Arena) SetData(id NodeID, data uint32) bool {
	n, ok := a.Node(id)
	if !ok {
		return false
	}
	n.Data = data
	return a.nodes.Set(int(id), n)
}

func (a *Arena) SetFlags(id NodeID, flags Flag) bool {
	n, ok := a.Node(id)
	if !ok {
		return false
	}
	n.Flags |= flags
	return a.nodes.Set(int(id), n)
}

// Reset drops every node and child but keeps the allocations.
func (a *Arena) Reset() {
	a.nodes.Clear()
	a.children.Clear()
}
