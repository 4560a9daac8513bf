// Package ir is a compact, index-addressed view of the SSA functions under
// analysis. Values and blocks are referred to by dense handles, which makes
// them usable as keys of sorted persistent maps.
package ir

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/cs-au-dk/absint/utils/graph"
)

type (
	// ValueID is the handle of a value in its function's arena.
	ValueID int
	// BlockID is the index of a basic block in its function.
	BlockID int
)

// NoBlock is the block of values defined outside any block (constants,
// parameters, globals).
const NoBlock BlockID = -1

// Kind classifies values by how the analyses treat them.
type Kind uint8

const (
	KindOther Kind = iota
	KindConst
	KindParam
	KindAlloc
	KindLoad
	KindStore
	KindBinOp
	KindCompare
	KindConvert
	KindIf
	KindJump
	// Return or panic.
	KindReturn
)

var kindNames = [...]string{
	KindOther:   "other",
	KindConst:   "const",
	KindParam:   "param",
	KindAlloc:   "alloc",
	KindLoad:    "load",
	KindStore:   "store",
	KindBinOp:   "binop",
	KindCompare: "compare",
	KindConvert: "convert",
	KindIf:      "if",
	KindJump:    "jump",
	KindReturn:  "return",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsTerminator holds for the kinds ending a block.
func (k Kind) IsTerminator() bool {
	return k == KindIf || k == KindJump || k == KindReturn
}

// Value is an instruction or an operand of one.
//
// Operands per kind:
//
//	KindLoad:    [slot]
//	KindStore:   [slot, value]
//	KindBinOp:   [x, y]
//	KindCompare: [x, y]
//	KindConvert: [x]
//	KindIf:      [condition]
type Value struct {
	ID       ValueID
	Kind     Kind
	Op       token.Token
	Operands []ValueID
	// Source-level name of allocation slots and parameters.
	Name string
	// Whether the value (for slots: the stored value) has an integer type.
	Integer bool
	// Exact value of integer constants.
	Const int
	Block BlockID
	text  string
}

// IsIntConst holds for integer constants whose value fits in an int.
func (v *Value) IsIntConst() bool {
	return v.Kind == KindConst && v.Integer
}

// IsNamed holds for values that carry a source-level variable name.
func (v *Value) IsNamed() bool {
	return v.Name != ""
}

func (v *Value) String() string {
	return v.text
}

type Block struct {
	ID      BlockID
	Comment string
	Instrs  []ValueID
	// For a conditional branch the successors are [true, false].
	Succs []BlockID
	Preds []BlockID
}

// Terminator is the last instruction of the block.
func (b *Block) Terminator() ValueID {
	return b.Instrs[len(b.Instrs)-1]
}

// IsExit holds for blocks without successors.
func (b *Block) IsExit() bool {
	return len(b.Succs) == 0
}

func (b *Block) String() string {
	return fmt.Sprintf("%d", b.ID)
}

type Function struct {
	Name   string
	Values []*Value
	Blocks []*Block
	// Allocation slots with source-level names, in handle order.
	named []ValueID
}

func (f *Function) Value(id ValueID) *Value {
	return f.Values[id]
}

func (f *Function) Block(id BlockID) *Block {
	return f.Blocks[id]
}

func (f *Function) Entry() *Block {
	return f.Blocks[0]
}

// Instr is the i'th instruction of block b.
func (f *Function) Instr(b *Block, i int) *Value {
	return f.Values[b.Instrs[i]]
}

// NamedSlots lists the allocation slots of source-level variables in handle
// order.
func (f *Function) NamedSlots() []*Value {
	slots := make([]*Value, 0, len(f.named))
	for _, id := range f.named {
		slots = append(slots, f.Values[id])
	}
	return slots
}

// Graph is the control-flow graph of the function.
func (f *Function) Graph() graph.Graph[BlockID] {
	return graph.Of(func(b BlockID) []BlockID {
		return f.Blocks[b].Succs
	})
}

func (f *Function) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "func %s:\n", f.Name)
	for _, b := range f.Blocks {
		fmt.Fprintf(&sb, "%d: %s", b.ID, b.Comment)
		if len(b.Preds) > 0 {
			fmt.Fprintf(&sb, " P:%v", b.Preds)
		}
		if len(b.Succs) > 0 {
			fmt.Fprintf(&sb, " S:%v", b.Succs)
		}
		sb.WriteString("\n")
		for _, id := range b.Instrs {
			fmt.Fprintf(&sb, "\t%s\n", f.Values[id])
		}
	}
	return sb.String()
}
