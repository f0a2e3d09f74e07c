package obfuscate

import "kanso/internal/ir"

// Tree is a mapping from an eligible instruction to the set of its
// in-tree successors (operand instructions that are themselves eligible,
// in the same block, and belong to the same tree). It mirrors the
// source's Tree_t: an adjacency map, not a strict tree — nodes may have
// several users, so the structure is really a DAG.
type Tree struct {
	nodes map[ir.Instruction]map[ir.Instruction]bool
}

func newTree() *Tree {
	return &Tree{nodes: make(map[ir.Instruction]map[ir.Instruction]bool)}
}

// Has reports whether inst belongs to this tree.
func (t *Tree) Has(inst ir.Instruction) bool {
	_, ok := t.nodes[inst]
	return ok
}

// Successors returns inst's in-tree successor set (operands that are
// themselves tree nodes). Returns nil if inst is not in the tree.
func (t *Tree) Successors(inst ir.Instruction) map[ir.Instruction]bool {
	return t.nodes[inst]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns every instruction belonging to the tree, in no
// particular order.
func (t *Tree) Nodes() []ir.Instruction {
	out := make([]ir.Instruction, 0, len(t.nodes))
	for inst := range t.nodes {
		out = append(out, inst)
	}
	return out
}

// Roots returns the nodes of the tree that are the in-tree successor of
// no other node. Every tree has at least one root.
func (t *Tree) Roots() []ir.Instruction {
	isSuccessor := make(map[ir.Instruction]bool, len(t.nodes))
	for _, succs := range t.nodes {
		for s := range succs {
			isSuccessor[s] = true
		}
	}
	roots := make([]ir.Instruction, 0, len(t.nodes))
	for inst := range t.nodes {
		if !isSuccessor[inst] {
			roots = append(roots, inst)
		}
	}
	return roots
}

func (t *Tree) insert(inst ir.Instruction, successors map[ir.Instruction]bool) {
	t.nodes[inst] = successors
}

// absorb merges other's nodes into t, in place. Used when the forest
// builder discovers two previously-separate trees are connected.
func (t *Tree) absorb(other *Tree) {
	for inst, succs := range other.nodes {
		if existing, ok := t.nodes[inst]; ok {
			for s := range succs {
				existing[s] = true
			}
		} else {
			t.nodes[inst] = succs
		}
	}
}

// Forest is an unordered collection of trees covering all eligible
// instructions of a basic block, plus an index from instruction to its
// tree for O(1) membership checks during construction.
type Forest struct {
	trees []*Tree
	index map[ir.Instruction]*Tree
}

// Trees returns every tree in the forest, in no particular order (tie
// breaks in merging order don't affect the final partition).
func (f *Forest) Trees() []*Tree {
	return f.trees
}

// TreeOf returns the tree inst belongs to, or nil if inst is not
// eligible (and thus not part of any tree).
func (f *Forest) TreeOf(inst ir.Instruction) *Tree {
	return f.index[inst]
}

// BuildForest partitions the eligible instructions of block into a
// forest of disjoint trees. isEligible is supplied by the concrete
// obfuscation (XOR-only for X-OR, XOR/AND/OR for Split-Bitwise-Op).
//
// Algorithm: visit instructions in program order; for each not-yet-
// indexed eligible instruction, open a fresh tree and walk forward along
// use edges, absorbing any tree already indexing a reachable node.
// Operand edges are only recorded as successor sets, not walked; an
// eligible operand defined later in program order joins the tree when
// its own walk reaches an already-indexed user. Cycles are impossible (SSA), so the walk always
// terminates.
//
// The host IR (internal/ir.Value.Uses) is never populated by the
// builder, so use sites are recovered here by scanning the block's
// instructions once for operand references — sufficient since the
// engine is scoped to a single basic block (spec: cross-block flow is
// out of scope).
func BuildForest(block *ir.BasicBlock, isEligible func(ir.Instruction) bool) *Forest {
	f := &Forest{index: make(map[ir.Instruction]*Tree)}
	users := usesByValue(block)

	for _, inst := range block.Instructions {
		if !isEligible(inst) {
			continue
		}
		if _, seen := f.index[inst]; seen {
			continue
		}
		tree := newTree()
		f.trees = append(f.trees, tree)
		walk(f, tree, inst, block, isEligible, users)
	}

	return f
}

// usesByValue maps each value defined in block to the instructions
// (within the same block) that read it as an operand.
func usesByValue(block *ir.BasicBlock) map[*ir.Value][]ir.Instruction {
	users := make(map[*ir.Value][]ir.Instruction)
	for _, inst := range block.Instructions {
		for _, operand := range inst.GetOperands() {
			if operand != nil {
				users[operand] = append(users[operand], inst)
			}
		}
	}
	if block.Terminator != nil {
		for _, operand := range block.Terminator.GetOperands() {
			if operand != nil {
				users[operand] = append(users[operand], block.Terminator)
			}
		}
	}
	return users
}

func walk(f *Forest, tree *Tree, inst ir.Instruction, block *ir.BasicBlock, isEligible func(ir.Instruction) bool, users map[*ir.Value][]ir.Instruction) {
	if !isEligible(inst) {
		return
	}

	if existing, ok := f.index[inst]; ok {
		if existing == tree {
			return
		}
		// Merge existing into tree: copy nodes/successors, retarget the
		// index for every absorbed node, then drop existing from the
		// forest.
		tree.absorb(existing)
		for absorbed := range existing.nodes {
			f.index[absorbed] = tree
		}
		for i, candidate := range f.trees {
			if candidate == existing {
				f.trees = append(f.trees[:i], f.trees[i+1:]...)
				break
			}
		}
		return
	}

	successors := make(map[ir.Instruction]bool)
	for _, operand := range inst.GetOperands() {
		if operand == nil || operand.DefInst == nil {
			continue
		}
		if operand.DefBlock != block {
			continue
		}
		if isEligible(operand.DefInst) {
			successors[operand.DefInst] = true
		}
	}
	tree.insert(inst, successors)
	f.index[inst] = tree

	result := inst.GetResult()
	if result == nil {
		return
	}
	for _, use := range users[result] {
		walk(f, tree, use, block, isEligible, users)
	}
}
