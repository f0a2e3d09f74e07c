package obfuscate

import "testing"

func TestMaxBase(t *testing.T) {
	cases := []struct {
		w    uint64
		want uint64
	}{
		{8, 1 << 16},
		{16, 1 << 8},
		{64, 1 << 2},
		{100, 1 << 1},
		{127, 1 << 1},
		{128, 0},
		{200, 0},
		{1, 63}, // shift 128 exceeds maxSupportedBase(63), capped to the limit itself
	}
	for _, c := range cases {
		if got := maxBase(c.w); got != c.want {
			t.Errorf("maxBase(%d) = %d, want %d", c.w, got, c.want)
		}
	}
}

func TestRequiredBits(t *testing.T) {
	cases := []struct {
		w, base uint64
		want    uint64
	}{
		{8, 0, 0},
		{8, 2, 0}, // base <= 2 rejected
		{8, 3, 13},
		{8, 256, 64},
		{32, 3, 51},
		{128, 3, 0}, // w >= MaxBitBudget rejected
	}
	for _, c := range cases {
		if got := requiredBits(c.w, c.base); got != c.want {
			t.Errorf("requiredBits(%d, %d) = %d, want %d", c.w, c.base, got, c.want)
		}
	}
}

func TestMinTreeBase_SingleXOR(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(8)
	a := param(ids, "a", typ)
	b := param(ids, "b", typ)
	_, x1Inst := binInst(ids, block, "^", a, b, typ)
	returnTerm(ids, block, nil)

	x := NewXOR(NewDefaultRand())
	forest := BuildForest(block, x.IsEligible)
	tree := forest.TreeOf(x1Inst)

	if got := minTreeBase(tree); got != 3 {
		t.Fatalf("minTreeBase of a 2-leaf XOR = %d, want 3", got)
	}
}

func TestMinTreeBase_Chain(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(8)
	a := param(ids, "a", typ)
	b := param(ids, "b", typ)
	c := param(ids, "c", typ)
	x1, _ := binInst(ids, block, "^", a, b, typ)
	_, x2Inst := binInst(ids, block, "^", x1, c, typ)
	returnTerm(ids, block, nil)

	x := NewXOR(NewDefaultRand())
	forest := BuildForest(block, x.IsEligible)
	tree := forest.TreeOf(x2Inst)

	// minBase(x1) = minBase(a) + minBase(b) = 1 + 1 = 2
	// minBase(x2's root sum) = minBase(x1) + minBase(c) = 2 + 1 = 3
	// minTreeBase = 3 + 1 = 4
	if got := minTreeBase(tree); got != 4 {
		t.Fatalf("minTreeBase of the 3-node chain = %d, want 4", got)
	}
}

func TestChooseXORBase_InfeasibleAtMaxWidth(t *testing.T) {
	ids := &testIDs{}
	block := newTestBlock("entry")
	typ := u(128)
	a := param(ids, "a", typ)
	b := param(ids, "b", typ)
	_, x1Inst := binInst(ids, block, "^", a, b, typ)
	returnTerm(ids, block, nil)

	x := NewXOR(NewDefaultRand())
	forest := BuildForest(block, x.IsEligible)
	tree := forest.TreeOf(x1Inst)

	if _, ok := ChooseXORBase(tree, 128, NewDefaultRand()); ok {
		t.Fatalf("expected a 128-bit tree to be infeasible (maxBase is 0)")
	}
}

func TestChooseSplitWidth(t *testing.T) {
	if divs := divisorsExcludingSelf(8); len(divs) != 3 {
		t.Fatalf("divisorsExcludingSelf(8) = %v, want 3 entries {1,2,4}", divs)
	}
	if divs := divisorsExcludingSelf(7); len(divs) != 1 || divs[0] != 1 {
		t.Fatalf("divisorsExcludingSelf(7) = %v, want {1}", divs)
	}
	if divs := divisorsExcludingSelf(1); len(divs) != 0 {
		t.Fatalf("divisorsExcludingSelf(1) = %v, want empty", divs)
	}

	if _, ok := ChooseSplitWidth(1, NewDefaultRand()); ok {
		t.Fatalf("expected width 1 to be infeasible for split-bitwise-op")
	}

	width, ok := ChooseSplitWidth(8, NewRand(1))
	if !ok {
		t.Fatalf("expected width 8 to be feasible")
	}
	found := false
	for _, d := range []uint64{1, 2, 4} {
		if width == d {
			found = true
		}
	}
	if !found {
		t.Fatalf("ChooseSplitWidth(8) = %d, want one of {1,2,4}", width)
	}
}
