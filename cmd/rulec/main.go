package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	archrule "github.com/archrule/archrule"
)

// compileConfig holds configuration for the root compile command.
type compileConfig struct {
	target string
	input  string
	output string
}

func newRootCmd() *cobra.Command {
	cfg := &compileConfig{}

	cmd := &cobra.Command{
		Use:   "rulec",
		Short: "Compile architectural-constraint rules to JSON or Cypher",
		Long:  `rulec parses a rule source file and emits its AST as JSON or a Cypher query.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.target, "target", "t", "json", `output target, "json" or "cypher"`)
	cmd.Flags().StringVarP(&cfg.input, "input", "i", "", "input file path (default stdin)")
	cmd.Flags().StringVarP(&cfg.output, "output", "o", "", "output file path (default stdout)")

	return cmd
}

func runCompile(cmd *cobra.Command, cfg *compileConfig) error {
	source, err := readSource(cfg.input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var out string
	switch cfg.target {
	case "json":
		out, err = archrule.CompileToJSON(source)
	case "cypher":
		out, err = archrule.CompileToCypher(source)
	default:
		return fmt.Errorf(`unknown target %q, want "json" or "cypher"`, cfg.target)
	}
	if err != nil {
		return err
	}

	return writeOutput(cfg.output, out)
}

func readSource(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}

	b, err := os.ReadFile(path)
	return string(b), err
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, content)
		return err
	}

	return os.WriteFile(path, []byte(content+"\n"), 0o644)
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rulec:", err)
		os.Exit(1)
	}
}
