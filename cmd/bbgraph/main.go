// Command bbgraph demonstrates the graph builder end to end: it reads an
// asmtext file, builds one block per ";;"-separated section, and prints the
// resulting DebugString.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/plan-systems/klog"

	"github.com/gematria-go/bbgraph"
	"github.com/gematria-go/bbgraph/asmtext"
)

// defaultVocab is a small MOV/ADD vocabulary sufficient to run the demo
// out of the box with no -vocab flag.
var defaultVocab = []string{
	"MOV", "ADD", "RAX", "RBX",
	"_IMM_", "_FP_IMM_", "_ADDR_", "_MEM_", "LOCK",
}

func main() {
	flag.Set("logtostderr", "true")
	flag.Set("v", "2")

	fset := flag.NewFlagSet("bbgraph", flag.ExitOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	vocabPath := flag.String("vocab", "", "path to a newline-separated vocabulary file (default: the built-in demo vocabulary)")
	immediateToken := flag.String("immediate-token", "_IMM_", "vocabulary entry used for Immediate nodes")
	fpImmediateToken := flag.String("fp-immediate-token", "_FP_IMM_", "vocabulary entry used for FpImmediate nodes")
	addressToken := flag.String("address-token", "_ADDR_", "vocabulary entry used for AddressOperand nodes")
	memoryToken := flag.String("memory-token", "_MEM_", "vocabulary entry used for MemoryOperand nodes")
	oovMode := flag.String("oov", "error", `out-of-vocabulary policy: "error" or "replace"`)
	replacement := flag.String("oov-replacement", "_MEM_", "replacement token when -oov=replace")
	reverseEdges := flag.Bool("reverse-structural-dependency", false, "also emit ReverseStructuralDependency edges")

	flag.Parse()

	inputPath := flag.Arg(0)
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: bbgraph [flags] <asmtext-file>")
		os.Exit(2)
	}

	tokens := defaultVocab
	if *vocabPath != "" {
		var err error
		tokens, err = readVocabFile(*vocabPath)
		if err != nil {
			klog.Errorf("bbgraph: %v", err)
			os.Exit(1)
		}
	}

	oov := bbgraph.ReturnError()
	if *oovMode == "replace" {
		oov = bbgraph.ReplaceToken(*replacement)
	}

	builder := bbgraph.NewWithOptions(tokens, *immediateToken, *fpImmediateToken, *addressToken, *memoryToken, oov, bbgraph.BuilderOptions{
		AddReverseStructuralDependencyEdges: *reverseEdges,
	})

	source, err := os.ReadFile(inputPath)
	if err != nil {
		klog.Errorf("bbgraph: %v", err)
		os.Exit(1)
	}

	for i, blockSrc := range strings.Split(string(source), ";;") {
		blockSrc = strings.TrimSpace(blockSrc)
		if blockSrc == "" {
			continue
		}
		instructions, err := asmtext.Parse(blockSrc)
		if err != nil {
			klog.Errorf("bbgraph: block %d: %v", i, err)
			os.Exit(1)
		}
		if ok, err := builder.AddBlock(instructions); !ok {
			klog.Errorf("bbgraph: block %d: %v", i, err)
			os.Exit(1)
		}
	}

	fmt.Print(builder.DebugString())
	klog.Flush()
}

func readVocabFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tokens []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	return tokens, nil
}
