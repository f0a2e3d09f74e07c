package obfuscate

import (
	"math/big"
	"testing"

	"kanso/internal/ir"
)

// testIDs hands out IDs for hand-built IR the way ir.Builder would while
// constructing a function from the AST.
type testIDs struct{ next int }

func (t *testIDs) id() int {
	id := t.next
	t.next++
	return id
}

func newTestBlock(label string) *ir.BasicBlock {
	return &ir.BasicBlock{Label: label}
}

func u(bits int) *ir.IntType { return &ir.IntType{Bits: bits} }

var boolType = &ir.BoolType{}

// param declares a function-parameter-like leaf value: no DefInst, the
// way ir.Builder leaves a value built from an ast.Parameter.
func param(ids *testIDs, name string, typ ir.Type) *ir.Value {
	return &ir.Value{ID: ids.id(), Name: name, Type: typ}
}

// constInst appends a ConstantInstruction to block and returns its result,
// mirroring ir.Builder.addInstruction's DefInst/DefBlock bookkeeping.
func constInst(ids *testIDs, block *ir.BasicBlock, value int64, typ ir.Type) *ir.Value {
	result := &ir.Value{ID: ids.id(), Name: "c", Type: typ, DefBlock: block}
	inst := &ir.ConstantInstruction{ID: ids.id(), Result: result, Value: big.NewInt(value), Type: typ, Block: block}
	block.Instructions = append(block.Instructions, inst)
	result.DefInst = inst
	return result
}

// binInst appends a BinaryInstruction computing op(left, right) to block.
func binInst(ids *testIDs, block *ir.BasicBlock, op string, left, right *ir.Value, typ ir.Type) (*ir.Value, *ir.BinaryInstruction) {
	result := &ir.Value{ID: ids.id(), Name: "v", Type: typ, DefBlock: block}
	inst := &ir.BinaryInstruction{ID: ids.id(), Result: result, Op: op, Left: left, Right: right, Block: block}
	block.Instructions = append(block.Instructions, inst)
	result.DefInst = inst
	return result, inst
}

func returnTerm(ids *testIDs, block *ir.BasicBlock, v *ir.Value) {
	block.Terminator = &ir.ReturnTerminator{ID: ids.id(), Block: block, Value: v}
}

type diagRecord struct {
	kind   DiagnosticKind
	pass   string
	detail string
}

type collectingReporter struct {
	diags []diagRecord
}

func (c *collectingReporter) Report(kind DiagnosticKind, pass string, detail string) {
	c.diags = append(c.diags, diagRecord{kind, pass, detail})
}

func bigWidth(t ir.Type) int {
	w, ok := bitWidth(t)
	if !ok {
		return 0
	}
	return int(w)
}

func maskTo(v *big.Int, w int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(w))
	out := new(big.Int).Mod(v, mod)
	if out.Sign() < 0 {
		out.Add(out, mod)
	}
	return out
}

func toBigInt(t *testing.T, raw interface{}) *big.Int {
	t.Helper()
	switch val := raw.(type) {
	case *big.Int:
		return val
	case uint64:
		return new(big.Int).SetUint64(val)
	case int64:
		return big.NewInt(val)
	case int:
		return big.NewInt(int64(val))
	default:
		t.Fatalf("toBigInt: unsupported constant value %T", raw)
		return nil
	}
}

// evalBlock interprets block's instructions in program order against env
// (which must already hold every leaf value the block reads — function
// parameters and anything defined outside the block). It understands
// every opcode the engine emits (ZEXT/TRUNC casts; &, |, ^, SHL, LSHR,
// ADD, SUB, MUL, UDIV, UREM binary ops) plus whatever opcode the test
// itself used to build the original instruction tree. All arithmetic is
// unsigned, masked to each result's own bit width, matching the EVM
// word semantics the host IR targets.
func evalBlock(t *testing.T, block *ir.BasicBlock, env map[*ir.Value]*big.Int) map[*ir.Value]*big.Int {
	t.Helper()
	out := make(map[*ir.Value]*big.Int, len(env))
	for k, v := range env {
		out[k] = v
	}
	for _, inst := range block.Instructions {
		switch i := inst.(type) {
		case *ir.ConstantInstruction:
			out[i.Result] = toBigInt(t, i.Value)
		case *ir.CastInstruction:
			operand, ok := out[i.Operand]
			if !ok {
				t.Fatalf("evalBlock: %s: operand %s has no value", i.Op, i.Operand.Name)
			}
			out[i.Result] = maskTo(operand, bigWidth(i.Result.Type))
		case *ir.BinaryInstruction:
			l, ok := out[i.Left]
			if !ok {
				t.Fatalf("evalBlock: left operand %s has no value", i.Left.Name)
			}
			r, ok := out[i.Right]
			if !ok {
				t.Fatalf("evalBlock: right operand %s has no value", i.Right.Name)
			}
			var res *big.Int
			switch i.Op {
			case "&":
				res = new(big.Int).And(l, r)
			case "|":
				res = new(big.Int).Or(l, r)
			case "^":
				res = new(big.Int).Xor(l, r)
			case "SHL":
				res = new(big.Int).Lsh(l, uint(r.Uint64()))
			case "LSHR":
				res = new(big.Int).Rsh(l, uint(r.Uint64()))
			case "ADD", "+":
				res = new(big.Int).Add(l, r)
			case "SUB":
				res = new(big.Int).Sub(l, r)
			case "MUL":
				res = new(big.Int).Mul(l, r)
			case "UDIV":
				res = new(big.Int).Div(l, r)
			case "UREM":
				res = new(big.Int).Mod(l, r)
			default:
				t.Fatalf("evalBlock: unsupported op %q", i.Op)
			}
			out[i.Result] = maskTo(res, bigWidth(i.Result.Type))
		default:
			t.Fatalf("evalBlock: unsupported instruction %T", inst)
		}
	}
	return out
}
