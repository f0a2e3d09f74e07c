package obfuscate

import (
	"fmt"
	"math/big"

	"kanso/internal/ir"
)

// Builder is the IR adapter of §6: a thin capability set over the host
// IR anchored at an instruction, so every value it emits dominates the
// point at which the anchor instruction would have been read. It plays
// the role the source's IRBuilder<> plays for LLVM, backed here by
// ir.BasicBlock.Instructions slice insertion instead of an LLVM
// instruction list.
type Builder struct {
	block   *ir.BasicBlock
	anchor  ir.Instruction
	ids     *idAllocator
	emitted []ir.Instruction
}

// idAllocator hands out monotonically increasing instruction/value IDs
// that never collide with IDs already present in the program, since the
// engine only ever adds instructions and never renumbers existing ones.
type idAllocator struct {
	next int
}

func (a *idAllocator) nextID() int {
	id := a.next
	a.next++
	return id
}

// newIDAllocator seeds the counter past every ID already used in
// program, so newly emitted values/instructions never collide with
// pre-existing ones.
func newIDAllocator(program *ir.Program) *idAllocator {
	max := 0
	for _, fn := range program.Functions {
		for _, param := range fn.Params {
			if param.Value != nil && param.Value.ID > max {
				max = param.Value.ID
			}
		}
		for _, block := range fn.Blocks {
			if block.Terminator != nil && block.Terminator.GetID() > max {
				max = block.Terminator.GetID()
			}
			for _, inst := range block.Instructions {
				if inst.GetID() > max {
					max = inst.GetID()
				}
				if result := inst.GetResult(); result != nil && result.ID > max {
					max = result.ID
				}
			}
		}
	}
	return &idAllocator{next: max + 1}
}

// NewBuilder returns a Builder that inserts new instructions into block
// immediately before anchor. anchor must belong to block.
func NewBuilder(block *ir.BasicBlock, anchor ir.Instruction, ids *idAllocator) *Builder {
	return &Builder{block: block, anchor: anchor, ids: ids}
}

func (b *Builder) value(name string, typ ir.Type) *ir.Value {
	id := b.ids.nextID()
	return &ir.Value{
		ID:       id,
		Name:     fmt.Sprintf("%s_%d", name, id),
		Type:     typ,
		DefBlock: b.block,
	}
}

func (b *Builder) emit(inst ir.Instruction) {
	b.emitted = append(b.emitted, inst)
	if result := inst.GetResult(); result != nil {
		result.DefInst = inst
	}
}

// Flush inserts every instruction emitted so far into the block
// immediately before the anchor, in emission order, and returns how many
// were inserted. Safe to call once after a transform completes; emitted
// is cleared afterward so the Builder can be reused for a sibling call.
func (b *Builder) Flush() int {
	if len(b.emitted) == 0 {
		return 0
	}
	idx := -1
	for i, inst := range b.block.Instructions {
		if inst == b.anchor {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Anchor already removed or this is an append-only builder (used
		// by tests exercising transforms in isolation): append at the end.
		b.block.Instructions = append(b.block.Instructions, b.emitted...)
		n := len(b.emitted)
		b.emitted = nil
		return n
	}
	rest := make([]ir.Instruction, 0, len(b.block.Instructions)+len(b.emitted))
	rest = append(rest, b.block.Instructions[:idx]...)
	rest = append(rest, b.emitted...)
	rest = append(rest, b.block.Instructions[idx:]...)
	b.block.Instructions = rest
	n := len(b.emitted)
	b.emitted = nil
	return n
}

// Const emits an integer constant of the given type.
func (b *Builder) Const(value uint64, typ *ir.IntType) *ir.Value {
	return b.ConstBig(new(big.Int).SetUint64(value), typ)
}

// ConstBig emits an integer constant that may exceed 64 bits (needed for
// X-OR's base-B exponent table, whose entries can approach the 128-bit
// budget).
func (b *Builder) ConstBig(value *big.Int, typ *ir.IntType) *ir.Value {
	result := b.value("obf_const", typ)
	b.emit(&ir.ConstantInstruction{ID: b.ids.nextID(), Result: result, Value: value, Type: typ, Block: b.block})
	return result
}

// ZExt zero-extends v to typ.
func (b *Builder) ZExt(v *ir.Value, typ *ir.IntType) *ir.Value {
	result := b.value("obf_zext", typ)
	b.emit(&ir.CastInstruction{ID: b.ids.nextID(), Result: result, Op: "ZEXT", Operand: v, Block: b.block})
	return result
}

// Trunc truncates v to typ. typ is ir.Type rather than *ir.IntType since
// a back-transform's final cast may need to land on the original value's
// own type, which can be BoolType (X-OR's bool^bool scenario).
func (b *Builder) Trunc(v *ir.Value, typ ir.Type) *ir.Value {
	result := b.value("obf_trunc", typ)
	b.emit(&ir.CastInstruction{ID: b.ids.nextID(), Result: result, Op: "TRUNC", Operand: v, Block: b.block})
	return result
}

// Binary emits a binary op (one of "&", "|", "^", "SHL", "LSHR", "ADD",
// "SUB", "MUL", "UDIV", "UREM") over lhs/rhs, which must share a type.
func (b *Builder) Binary(op string, lhs, rhs *ir.Value) *ir.Value {
	result := b.value("obf_"+opName(op), lhs.Type)
	b.emit(&ir.BinaryInstruction{ID: b.ids.nextID(), Result: result, Op: op, Left: lhs, Right: rhs, Block: b.block})
	return result
}

// AllOnes emits a constant with every bit of typ's width set.
func (b *Builder) AllOnes(typ *ir.IntType) *ir.Value {
	ones := new(big.Int).Lsh(big.NewInt(1), uint(typ.Bits))
	ones.Sub(ones, big.NewInt(1))
	return b.ConstBig(ones, typ)
}

func opName(op string) string {
	switch op {
	case "&":
		return "and"
	case "|":
		return "or"
	case "^":
		return "xor"
	default:
		return op
	}
}
