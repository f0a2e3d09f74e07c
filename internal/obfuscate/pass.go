package obfuscate

import (
	"fmt"

	"github.com/fatih/color"

	"kanso/internal/ir"
)

// XORObfuscation rewrites XOR instructions into base-N digit-sum
// addition. It implements ir.OptimizationPass so it slots into
// ir.OptimizationPipeline next to ConstantFolding, DeadCodeElimination,
// and friends.
type XORObfuscation struct {
	Seed     uint64
	Reporter Reporter
}

func (x *XORObfuscation) Name() string { return "X-OR Obfuscation" }

func (x *XORObfuscation) Description() string {
	return "Rewrites XOR instructions as base-N digit-sum addition"
}

func (x *XORObfuscation) Apply(program *ir.Program) bool {
	return runProgram(program, x.Reporter, "X_OR", func(rng *Rand) Transformation {
		return NewXOR(rng)
	}, x.Seed)
}

// SplitBitwiseObfuscation splits AND/OR/XOR instructions into K
// parallel narrow-lane bitwise operations.
type SplitBitwiseObfuscation struct {
	Seed     uint64
	Reporter Reporter
}

func (s *SplitBitwiseObfuscation) Name() string { return "Split-Bitwise-Op Obfuscation" }

func (s *SplitBitwiseObfuscation) Description() string {
	return "Splits bitwise AND/OR/XOR into parallel narrow-lane operations"
}

func (s *SplitBitwiseObfuscation) Apply(program *ir.Program) bool {
	return runProgram(program, s.Reporter, "SplitBitwiseOp", func(rng *Rand) Transformation {
		return NewSplitBitwiseOp(rng)
	}, s.Seed)
}

// runProgram drives one obfuscation over every block of every function.
// A fresh Transformation is built for each block (exponent caches and
// lane caches are block-scoped, per spec §3's per-basic-block
// lifecycle), sharing one Rand and one idAllocator across the whole run
// so iteration order and inserted IDs stay reproducible and collision
// free across the entire program.
func runProgram(program *ir.Program, reporter Reporter, passName string, newTransform func(*Rand) Transformation, seed uint64) bool {
	rng := NewDefaultRand()
	if seed != 0 {
		rng = NewRand(seed)
	}
	ids := newIDAllocator(program)

	modified := false
	for _, fn := range program.Functions {
		for _, block := range fn.Blocks {
			t := newTransform(rng)
			if RunBlock(block, t, ids, reporter, passName) {
				modified = true
				verifyBlock(block, passName)
			}
		}
	}
	return modified
}

// RegisterXOR adds XORObfuscation to pipeline. One of the two
// registration hooks of §6.
func RegisterXOR(pipeline *ir.OptimizationPipeline, reporter Reporter) {
	pipeline.AddPass(&XORObfuscation{Reporter: reporter})
}

// RegisterSplitBitwiseOp adds SplitBitwiseObfuscation to pipeline. The
// second registration hook of §6.
func RegisterSplitBitwiseOp(pipeline *ir.OptimizationPipeline, reporter Reporter) {
	pipeline.AddPass(&SplitBitwiseObfuscation{Reporter: reporter})
}

// ColorReporter prints diagnostics to stderr-equivalent stdout, colorized
// the way internal/errors.Reporter colors compiler diagnostics: warnings
// in yellow, the pass name dimmed. The registration hooks do not
// substitute it for a nil Reporter: they store whatever the caller passes,
// and a nil Reporter drops diagnostics.
type ColorReporter struct{}

func (ColorReporter) Report(kind DiagnosticKind, pass string, detail string) {
	label := "infeasible"
	if kind == TransformFailure {
		label = "transform failure"
	}
	color.Yellow("%s: %s: %s", pass, label, detail)
}

// verifyBlock is the invariant-violation guard of §7: any combine whose
// operand sequences disagree in length, or whose result type is missing
// a bit-width, is a programmer error and halts execution. This walks the
// rewritten block looking for the one shape that Combine/Back's own
// panics can't catch after the fact — an instruction left referencing a
// value with no type, which would indicate a Builder bug rather than bad
// input data.
func verifyBlock(block *ir.BasicBlock, passName string) {
	for _, inst := range block.Instructions {
		for _, operand := range inst.GetOperands() {
			if operand != nil && operand.Type == nil {
				panic(fmt.Sprintf("obfuscate(%s): invariant violation: operand with no type in block %s", passName, block.Label))
			}
		}
	}
}
