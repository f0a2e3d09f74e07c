package obfuscate

import (
	"math/big"
	"testing"

	"kanso/internal/ir"
)

var (
	_ ir.OptimizationPass = (*XORObfuscation)(nil)
	_ ir.OptimizationPass = (*SplitBitwiseObfuscation)(nil)
	_ Reporter            = ColorReporter{}
)

func TestRegisterXORAndSplitBitwiseOp(t *testing.T) {
	pipeline := ir.NewOptimizationPipeline()
	RegisterXOR(pipeline, nil)
	RegisterSplitBitwiseOp(pipeline, nil)
}

func TestXORObfuscation_ApplyOverProgram(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(8)
	a := param(ids, "a", typ)
	b := param(ids, "b", typ)
	x, _ := binInst(ids, block, "^", a, b, typ)
	returnTerm(ids, block, x)

	fn := &ir.Function{Name: "f", Entry: block, Blocks: []*ir.BasicBlock{block}}
	program := &ir.Program{Functions: []*ir.Function{fn}}

	pass := &XORObfuscation{Seed: 11}
	if !pass.Apply(program) {
		t.Fatalf("expected XORObfuscation.Apply to report modification")
	}
	if pass.Name() == "" || pass.Description() == "" {
		t.Fatalf("expected a non-empty Name/Description")
	}

	env := map[*ir.Value]*big.Int{a: big.NewInt(91), b: big.NewInt(202)}
	result := evalBlock(t, block, env)
	got := result[block.Terminator.(*ir.ReturnTerminator).Value]
	want := maskTo(new(big.Int).Xor(env[a], env[b]), 8)
	if got.Cmp(want) != 0 {
		t.Fatalf("program-level X-OR mismatch: got %s want %s", got, want)
	}
}

func TestSplitBitwiseObfuscation_ApplyOverProgram(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(16)
	a := param(ids, "a", typ)
	b := param(ids, "b", typ)
	x, _ := binInst(ids, block, "&", a, b, typ)
	returnTerm(ids, block, x)

	fn := &ir.Function{Name: "g", Entry: block, Blocks: []*ir.BasicBlock{block}}
	program := &ir.Program{Functions: []*ir.Function{fn}}

	pass := &SplitBitwiseObfuscation{Seed: 5}
	if !pass.Apply(program) {
		t.Fatalf("expected SplitBitwiseObfuscation.Apply to report modification")
	}

	env := map[*ir.Value]*big.Int{a: big.NewInt(0x1234), b: big.NewInt(0x0FF0)}
	result := evalBlock(t, block, env)
	got := result[block.Terminator.(*ir.ReturnTerminator).Value]
	want := maskTo(new(big.Int).And(env[a], env[b]), 16)
	if got.Cmp(want) != 0 {
		t.Fatalf("program-level Split-Bitwise-Op mismatch: got %s want %s", got, want)
	}
}

func TestNewIDAllocator_SeedsPastExistingIDs(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(8)
	a := param(ids, "a", typ)
	b := param(ids, "b", typ)
	_, xInst := binInst(ids, block, "^", a, b, typ)

	fn := &ir.Function{Name: "f", Entry: block, Blocks: []*ir.BasicBlock{block}}
	program := &ir.Program{Functions: []*ir.Function{fn}}

	alloc := newIDAllocator(program)
	if alloc.next <= xInst.ID {
		t.Fatalf("expected idAllocator to seed past the highest existing ID %d, got next=%d", xInst.ID, alloc.next)
	}
}
