package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccdavis/liftc/codegen"
	"github.com/ccdavis/liftc/semantic"
	"github.com/ccdavis/liftc/treeio"
)

var (
	compileOutputFile string
	compileVerbose    bool
	compileModuleName string
)

var compileCmd = &cobra.Command{
	Use:   "compile [tree.json]",
	Short: "Compile a JSON-encoded expression tree to LLVM IR",
	Long: `Compile runs semantic analysis and code generation over a
JSON-encoded Lift expression tree (see treeio for the wire format) and
prints the resulting LLVM IR module.

Examples:
  # Compile and print IR to stdout
  liftc compile program.json

  # Compile to a .ll file
  liftc compile program.json -o program.ll`,
	Args: cobra.ExactArgs(1),
	RunE: compileTree,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutputFile, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().StringVar(&compileModuleName, "module-name", "lift_module", "name attached to the emitted module")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose diagnostics on stderr")
}

func compileTree(_ *cobra.Command, args []string) error {
	filename := args[0]

	logLevel := slog.LevelWarn
	if compileVerbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	logger.Debug("decoding tree", "file", filename)
	prog, err := treeio.DecodeProgram(raw)
	if err != nil {
		return fmt.Errorf("failed to decode tree: %w", err)
	}

	analyzer := semantic.NewAnalyzer()
	logger.Debug("running semantic analysis")
	if err := analyzer.Analyze(prog); err != nil {
		return fmt.Errorf("semantic analysis failed: %w", err)
	}

	logger.Debug("running code generation", "module", compileModuleName)
	opts := codegen.Options{ModuleName: compileModuleName}
	module, err := codegen.CompileProgram(prog, analyzer.Table, opts)
	if err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}

	ir := module.String()
	if compileOutputFile == "" {
		fmt.Print(ir)
		return nil
	}
	if err := os.WriteFile(compileOutputFile, []byte(ir), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", compileOutputFile, err)
	}
	if compileVerbose {
		logger.Debug("wrote IR", "file", compileOutputFile, "bytes", len(ir))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, compileOutputFile)
	}
	return nil
}
