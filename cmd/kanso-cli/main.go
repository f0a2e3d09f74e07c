// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"kanso/internal/ir"
	"kanso/internal/obfuscate"
	"kanso/internal/parser"
	"kanso/internal/semantic"
)

func main() {
	obfuscateFlag := flag.String("obfuscate", "none", "obfuscation passes to run: none, xor, split, both")
	seed := flag.Uint64("seed", 0, "deterministic RNG seed for obfuscation passes (0 uses the fixed default seed)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: kanso-cli [--obfuscate=xor|split|both|none] [--seed=N] <file.ka>")
		os.Exit(1)
	}
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		os.Exit(1)
	}

	contract, parseErrors, scanErrors := parser.ParseSource(path, string(source))
	if len(scanErrors) > 0 || len(parseErrors) > 0 {
		reportScanErrors(path, string(source), scanErrors)
		reportParseErrors(path, string(source), parseErrors)
		os.Exit(1)
	}

	analyzer := semantic.NewAnalyzer()
	semanticErrors := analyzer.Analyze(contract)
	if len(semanticErrors) > 0 {
		reportSemanticErrors(string(source), semanticErrors)
		os.Exit(1)
	}

	program := ir.BuildProgram(contract, analyzer.GetContext())

	// A fresh, empty pipeline rather than ir.NewOptimizationPipeline()'s
	// defaults: ConstantFolding/CommonSubexpressionElimination running
	// after an obfuscation pass would happily simplify the inserted
	// digit-sum/lane arithmetic back down, undoing the obfuscation.
	// DeadCodeElimination alone is safe to run last, to sweep up any
	// now-unused original instruction a pass replaced.
	pipeline := &ir.OptimizationPipeline{}
	registerObfuscationPasses(pipeline, *obfuscateFlag, *seed)
	pipeline.AddPass(&ir.DeadCodeElimination{})

	pipeline.Run(program)

	fmt.Println(ir.PrintProgram(program))

	color.Green("✅ Successfully processed %s", path)
}

// registerObfuscationPasses wires the requested propagated-transformation
// passes into pipeline. seed is plumbed through by constructing each pass
// struct directly rather than via RegisterXOR/RegisterSplitBitwiseOp,
// which leave Seed at 0 and so always use obfuscate.DefaultSeed.
func registerObfuscationPasses(pipeline *ir.OptimizationPipeline, mode string, seed uint64) {
	reporter := obfuscate.ColorReporter{}
	switch strings.ToLower(mode) {
	case "none", "":
	case "xor":
		pipeline.AddPass(&obfuscate.XORObfuscation{Seed: seed, Reporter: reporter})
	case "split":
		pipeline.AddPass(&obfuscate.SplitBitwiseObfuscation{Seed: seed, Reporter: reporter})
	case "both":
		pipeline.AddPass(&obfuscate.XORObfuscation{Seed: seed, Reporter: reporter})
		pipeline.AddPass(&obfuscate.SplitBitwiseObfuscation{Seed: seed, Reporter: reporter})
	default:
		color.Yellow("unknown --obfuscate mode %q, running with no obfuscation passes", mode)
	}
}

func reportScanErrors(path, src string, errs []parser.ScanError) {
	for _, e := range errs {
		reportCaret(src, "scan error", e.Message, path, e.Position.Line, e.Position.Column)
	}
}

func reportParseErrors(path, src string, errs []parser.ParseError) {
	for _, e := range errs {
		reportCaret(src, "syntax error", e.Message, path, e.Position.Line, e.Position.Column)
	}
}

func reportSemanticErrors(src string, errs []semantic.SemanticError) {
	for _, e := range errs {
		reportCaret(src, "semantic error", e.Message, e.Position.Filename, e.Position.Line, e.Position.Column)
	}
}

// reportCaret prints a friendly caret-style diagnostic pointing at
// line/column within src, in the teacher CLI's red/dimmed color scheme.
func reportCaret(src, kind, message, filename string, line, column int) {
	lines := strings.Split(src, "\n")
	if line <= 0 || line > len(lines) {
		color.Red("❌ %s: %s", kind, message)
		return
	}

	text := lines[line-1]
	if column < 1 {
		column = 1
	}
	caret := strings.Repeat(" ", column-1) + "^"

	color.Red("❌ %s in %s at line %d, column %d:", kind, filename, line, column)
	fmt.Println(text)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", message)
}
