package ir

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"
)

var ErrNoBody = errors.New("function has no body")

type builder struct {
	fun    *Function
	instrs map[ssa.Instruction]ValueID
	values map[ssa.Value]ValueID
	// Names of variables declared in the function's syntax.
	declared map[string]bool
}

// FromSSA converts an SSA function into its arena form. The function is
// expected to be built in naive form, so that local variables are
// allocation slots.
func FromSSA(fun *ssa.Function) (*Function, error) {
	if len(fun.Blocks) == 0 {
		return nil, errors.Wrap(ErrNoBody, fun.String())
	}

	b := &builder{
		fun:      &Function{Name: fun.Name()},
		instrs:   make(map[ssa.Instruction]ValueID),
		values:   make(map[ssa.Value]ValueID),
		declared: declaredNames(fun.Syntax()),
	}

	// Instructions get the first handles so that they are allocated in
	// program order, whatever order their operands are encountered in.
	for _, blk := range fun.Blocks {
		irBlk := &Block{
			ID:      BlockID(blk.Index),
			Comment: blk.Comment,
		}
		for _, succ := range blk.Succs {
			irBlk.Succs = append(irBlk.Succs, BlockID(succ.Index))
		}
		for _, pred := range blk.Preds {
			irBlk.Preds = append(irBlk.Preds, BlockID(pred.Index))
		}

		for _, instr := range blk.Instrs {
			if hidden(instr) {
				continue
			}
			v := b.add(irBlk.ID)
			b.instrs[instr] = v.ID
			irBlk.Instrs = append(irBlk.Instrs, v.ID)
		}
		b.fun.Blocks = append(b.fun.Blocks, irBlk)
	}

	for _, blk := range fun.Blocks {
		for _, instr := range blk.Instrs {
			if id, ok := b.instrs[instr]; ok {
				b.translate(b.fun.Values[id], instr)
			}
		}
	}

	return b.fun, nil
}

// hidden reports the instructions that are left out of the arena form:
// debug references, and the bookkeeping of the function's defer stack,
// which is spilled to a local slot on entry and unwound before returning.
func hidden(instr ssa.Instruction) bool {
	switch instr := instr.(type) {
	case *ssa.DebugRef, *ssa.RunDefers:
		return true
	case *ssa.Alloc:
		return instr.Comment == deferStack
	case *ssa.Store:
		return isDeferStack(instr.Addr)
	case *ssa.UnOp:
		return instr.Op == token.MUL && isDeferStack(instr.X)
	case *ssa.Call:
		fun, ok := instr.Call.Value.(*ssa.Builtin)
		return ok && fun.Name() == "ssa:deferstack"
	}
	return false
}

// deferStack is the name go/ssa gives the local holding the defer stack.
const deferStack = "defer$stack"

func isDeferStack(addr ssa.Value) bool {
	alloc, ok := addr.(*ssa.Alloc)
	return ok && alloc.Comment == deferStack
}

func (b *builder) add(blk BlockID) *Value {
	v := &Value{
		ID:    ValueID(len(b.fun.Values)),
		Block: blk,
	}
	b.fun.Values = append(b.fun.Values, v)
	return v
}

// operand returns the handle of an SSA value, allocating one for values
// that are not instructions of the function.
func (b *builder) operand(val ssa.Value) ValueID {
	if instr, ok := val.(ssa.Instruction); ok {
		if id, ok := b.instrs[instr]; ok {
			return id
		}
	}
	if id, ok := b.values[val]; ok {
		return id
	}

	v := b.add(NoBlock)
	b.values[val] = v.ID

	switch val := val.(type) {
	case *ssa.Const:
		v.Kind = KindConst
		v.text = val.String()
		if val.Value != nil && val.Value.Kind() == constant.Int && isInteger(val.Type()) {
			if n, exact := constant.Int64Val(val.Value); exact && int64(int(n)) == n {
				v.Integer = true
				v.Const = int(n)
				v.text = fmt.Sprint(n)
			}
		}
	case *ssa.Parameter:
		v.Kind = KindParam
		v.Name = val.Name()
		v.Integer = isInteger(val.Type())
		v.text = val.Name()
	default:
		v.text = val.Name()
	}
	return v.ID
}

func (b *builder) operands(instr ssa.Instruction) (ops []ValueID) {
	for _, op := range instr.Operands(nil) {
		if op != nil && *op != nil {
			ops = append(ops, b.operand(*op))
		}
	}
	return
}

func (b *builder) translate(v *Value, instr ssa.Instruction) {
	if val, ok := instr.(ssa.Value); ok {
		v.text = val.Name() + " = " + val.String()
	} else {
		v.text = instr.String()
	}

	switch instr := instr.(type) {
	case *ssa.Alloc:
		v.Kind = KindAlloc
		if ptr, ok := instr.Type().Underlying().(*types.Pointer); ok {
			v.Integer = isInteger(ptr.Elem())
		}
		if b.declared[instr.Comment] {
			v.Name = instr.Comment
			b.fun.named = append(b.fun.named, v.ID)
		}
	case *ssa.UnOp:
		v.Op = instr.Op
		v.Operands = []ValueID{b.operand(instr.X)}
		if instr.Op == token.MUL {
			v.Kind = KindLoad
			v.Integer = isInteger(instr.Type())
		}
	case *ssa.Store:
		v.Kind = KindStore
		v.Operands = []ValueID{b.operand(instr.Addr), b.operand(instr.Val)}
	case *ssa.BinOp:
		v.Op = instr.Op
		v.Operands = []ValueID{b.operand(instr.X), b.operand(instr.Y)}
		switch {
		case isComparison(instr.Op) && isInteger(instr.X.Type()):
			v.Kind = KindCompare
		case !isComparison(instr.Op) && isInteger(instr.Type()):
			v.Kind = KindBinOp
			v.Integer = true
		}
	case *ssa.Convert:
		b.conversion(v, instr.X, instr.Type())
	case *ssa.ChangeType:
		b.conversion(v, instr.X, instr.Type())
	case *ssa.If:
		v.Kind = KindIf
		v.Operands = []ValueID{b.operand(instr.Cond)}
	case *ssa.Jump:
		v.Kind = KindJump
	case *ssa.Return, *ssa.Panic:
		v.Kind = KindReturn
		v.Operands = b.operands(instr)
	default:
		v.Operands = b.operands(instr)
	}
}

func (b *builder) conversion(v *Value, x ssa.Value, to types.Type) {
	v.Operands = []ValueID{b.operand(x)}
	if isInteger(x.Type()) && isInteger(to) {
		v.Kind = KindConvert
		v.Integer = true
	}
}

func isInteger(t types.Type) bool {
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsInteger != 0
}

func isComparison(op token.Token) bool {
	switch op {
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return true
	}
	return false
}

// declaredNames collects the names of the parameters, named results and
// local variables declared in the syntax of a function.
func declaredNames(syntax ast.Node) map[string]bool {
	names := make(map[string]bool)
	if syntax == nil {
		return names
	}

	declare := func(e ast.Expr) {
		if id, ok := e.(*ast.Ident); ok && id.Name != "_" {
			names[id.Name] = true
		}
	}

	ast.Inspect(syntax, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Field:
			for _, id := range n.Names {
				declare(id)
			}
		case *ast.ValueSpec:
			for _, id := range n.Names {
				declare(id)
			}
		case *ast.AssignStmt:
			if n.Tok == token.DEFINE {
				for _, lhs := range n.Lhs {
					declare(lhs)
				}
			}
		case *ast.RangeStmt:
			if n.Tok == token.DEFINE {
				if n.Key != nil {
					declare(n.Key)
				}
				if n.Value != nil {
					declare(n.Value)
				}
			}
		}
		return true
	})
	return names
}
