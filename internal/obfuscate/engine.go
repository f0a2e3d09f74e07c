package obfuscate

import "kanso/internal/ir"

// treeState is the per-tree state machine of §4.7.
type treeState int

const (
	discovered treeState = iota
	parameterized
	transforming
	completed
	aborted
)

// RunBlock executes the three phases of the propagated-transformation
// engine (forest construction, parameter selection, recursive transform)
// against block for the given obfuscation. ids allocates fresh
// instruction/value IDs shared across the whole pass invocation (never
// reused, never renumbering existing IR). Returns true if block was
// modified.
//
// Per block: the forest, the transform registry, and any tree-local
// parameter are all freshly constructed here and discarded at the end;
// the only durable effect is the IR edits applied along the way.
func RunBlock(block *ir.BasicBlock, t Transformation, ids *idAllocator, reporter Reporter, passName string) bool {
	forest := BuildForest(block, t.IsEligible)
	registry := NewRegistry()
	users := usesByValue(block)

	modified := false
	for _, tree := range forest.Trees() {
		if runTree(tree, t, block, registry, users, ids, reporter, passName) {
			modified = true
		}
	}
	return modified
}

// runTree drives one tree through Discovered -> Parameterized ->
// Transforming -> {Completed, Aborted}. Returns true iff the tree
// reached Completed.
func runTree(tree *Tree, t Transformation, block *ir.BasicBlock, registry *Registry, users map[*ir.Value][]ir.Instruction, ids *idAllocator, reporter Reporter, passName string) bool {
	// Discovered -> Parameterized | Aborted
	param, ok := t.Parameter(tree)
	if !ok {
		report(reporter, Infeasible, passName, "no valid parameter for tree")
		return false // Aborted
	}

	// Parameterized -> Transforming -> Completed | Aborted
	for _, root := range tree.Roots() {
		if _, ok := recursiveTransform(root, tree, param, block, t, registry, users, ids, reporter, passName); !ok {
			report(reporter, TransformFailure, passName, "forward transform or combine failed")
			return false // Aborted
		}
	}
	return true // Completed
}

// recursiveTransform implements §4.6: transform node bottom-up, caching
// per-(value, parameter) results in registry and replacing every
// external use of node with a back-transformed value.
func recursiveTransform(node ir.Instruction, tree *Tree, param uint64, block *ir.BasicBlock, t Transformation, registry *Registry, users map[*ir.Value][]ir.Instruction, ids *idAllocator, reporter Reporter, passName string) ([]*ir.Value, bool) {
	operands := node.GetOperands()
	if len(operands) != 2 {
		panic("obfuscate: recursiveTransform requires a binary node")
	}

	builder := NewBuilder(block, node, ids)
	operandSeqs := make([][]*ir.Value, 2)

	for i, operand := range operands {
		if cached, ok := registry.Lookup(operand, param); ok {
			operandSeqs[i] = cached
			continue
		}

		if operand.DefInst != nil && tree.Has(operand.DefInst) {
			seq, ok := recursiveTransform(operand.DefInst, tree, param, block, t, registry, users, ids, reporter, passName)
			if !ok {
				return nil, false
			}
			operandSeqs[i] = seq
			continue
		}
		seq := t.Forward(builder, operand, param)
		if len(seq) == 0 {
			report(reporter, TransformFailure, passName, "forward transform produced an empty sequence")
			return nil, false
		}
		registry.Store(operand, param, seq)
		operandSeqs[i] = seq
	}

	combined := t.Combine(builder, operandSeqs[0], operandSeqs[1], node, param)
	if len(combined) == 0 {
		return nil, false
	}

	result := node.GetResult()
	back := t.Back(builder, combined, result.Type, param)
	if back == nil {
		return nil, false
	}

	builder.Flush()

	replaceExternalUses(result, back, tree, users)
	registry.Store(result, param, combined)

	return combined, true
}

// replaceExternalUses rewires every use of original outside tree to read
// replacement instead. In-tree users are left untouched: when they are
// themselves recursed into, they consume the registered sequence, not
// original's value directly.
func replaceExternalUses(original, replacement *ir.Value, tree *Tree, users map[*ir.Value][]ir.Instruction) {
	for _, user := range users[original] {
		if tree.Has(user) {
			continue
		}
		ir.ReplaceOperand(user, original, replacement)
		if term, ok := user.(ir.Terminator); ok {
			ir.ReplaceTerminatorOperand(term, original, replacement)
		}
	}
}

func report(reporter Reporter, kind DiagnosticKind, passName, detail string) {
	if reporter == nil {
		return
	}
	reporter.Report(kind, passName, detail)
}
