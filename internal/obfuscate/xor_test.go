package obfuscate

import (
	"math/big"
	"testing"

	"kanso/internal/ir"
)

func TestXOREndToEnd_SingleNode(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(8)
	a := param(ids, "a", typ)
	b := param(ids, "b", typ)
	x, xInst := binInst(ids, block, "^", a, b, typ)
	returnTerm(ids, block, x)

	env := map[*ir.Value]*big.Int{a: big.NewInt(0xB2), b: big.NewInt(0x6D)}

	idAlloc := &idAllocator{next: ids.next}
	reporter := &collectingReporter{}
	modified := RunBlock(block, NewXOR(NewRand(42)), idAlloc, reporter, "X_OR")

	if !modified {
		t.Fatalf("expected the block to be modified")
	}
	if len(reporter.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", reporter.diags)
	}

	result := evalBlock(t, block, env)
	got := result[block.Terminator.(*ir.ReturnTerminator).Value]
	want := maskTo(new(big.Int).Xor(env[a], env[b]), 8)
	if got.Cmp(want) != 0 {
		t.Fatalf("xor mismatch: got %s want %s", got, want)
	}

	for _, inst := range block.Instructions {
		if inst == xInst {
			continue
		}
		if bin, ok := inst.(*ir.BinaryInstruction); ok && bin.Op == "^" {
			t.Fatalf("a bare XOR survives obfuscation: %v", bin)
		}
	}
}

func TestXOREndToEnd_Chain(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(8)
	a := param(ids, "a", typ)
	bb := param(ids, "b", typ)
	c := param(ids, "c", typ)
	x1, _ := binInst(ids, block, "^", a, bb, typ)
	x2, _ := binInst(ids, block, "^", x1, c, typ)
	returnTerm(ids, block, x2)

	env := map[*ir.Value]*big.Int{a: big.NewInt(200), bb: big.NewInt(77), c: big.NewInt(13)}

	idAlloc := &idAllocator{next: ids.next}
	modified := RunBlock(block, NewXOR(NewRand(7)), idAlloc, nil, "X_OR")
	if !modified {
		t.Fatalf("expected the block to be modified")
	}

	result := evalBlock(t, block, env)
	got := result[block.Terminator.(*ir.ReturnTerminator).Value]
	want := maskTo(new(big.Int).Xor(new(big.Int).Xor(env[a], env[bb]), env[c]), 8)
	if got.Cmp(want) != 0 {
		t.Fatalf("chained xor mismatch: got %s want %s", got, want)
	}
}

func TestXOREndToEnd_Bool(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	a := param(ids, "a", boolType)
	b := param(ids, "b", boolType)
	x, _ := binInst(ids, block, "^", a, b, boolType)
	returnTerm(ids, block, x)

	env := map[*ir.Value]*big.Int{a: big.NewInt(1), b: big.NewInt(0)}

	idAlloc := &idAllocator{next: ids.next}
	reporter := &collectingReporter{}
	modified := RunBlock(block, NewXOR(NewRand(3)), idAlloc, reporter, "X_OR")
	if !modified {
		t.Fatalf("expected the block to be modified")
	}
	if len(reporter.diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", reporter.diags)
	}

	result := evalBlock(t, block, env)
	got := result[block.Terminator.(*ir.ReturnTerminator).Value]
	want := maskTo(new(big.Int).Xor(env[a], env[b]), 1)
	if got.Cmp(want) != 0 {
		t.Fatalf("bool xor mismatch: got %s want %s", got, want)
	}
	if back := block.Terminator.(*ir.ReturnTerminator).Value; back.Type != boolType {
		t.Fatalf("expected back-transformed value to keep Bool type, got %v", back.Type)
	}
}

func TestXOREndToEnd_WithConstantOperand(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(8)
	a := param(ids, "a", typ)
	k := constInst(ids, block, 0x5A, typ)
	x, _ := binInst(ids, block, "^", a, k, typ)
	returnTerm(ids, block, x)

	env := map[*ir.Value]*big.Int{a: big.NewInt(0x3C)}

	idAlloc := &idAllocator{next: ids.next}
	modified := RunBlock(block, NewXOR(NewRand(9)), idAlloc, nil, "X_OR")
	if !modified {
		t.Fatalf("expected the block to be modified")
	}

	result := evalBlock(t, block, env)
	got := result[block.Terminator.(*ir.ReturnTerminator).Value]
	want := maskTo(new(big.Int).Xor(env[a], big.NewInt(0x5A)), 8)
	if got.Cmp(want) != 0 {
		t.Fatalf("const-operand xor mismatch: got %s want %s", got, want)
	}
}

func TestXORCombine_RequiresSingleElementSequences(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic combining mismatched-length sequences")
		}
	}()
	ids := &testIDs{}
	block := newTestBlock("entry")
	x := NewXOR(NewDefaultRand())
	b := NewBuilder(block, nil, &idAllocator{})
	v := param(ids, "v", u(8))
	x.Combine(b, []*ir.Value{v, v}, []*ir.Value{v}, &ir.BinaryInstruction{Op: "^"}, 5)
}
