package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wirepath/circuit"
	"wirepath/export"
	"wirepath/markdown"
	"wirepath/routing"
	"wirepath/validation"
)

// outputOptions are the flags shared by commands that export results.
type outputOptions struct {
	format   string
	output   string
	validate bool
	strict   bool
	width    int
	height   int
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "text",
		"output format: text, json, ascii, graphviz")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&o.validate, "validate", false, "check the routed paths")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "with --validate, also re-check direct paths for crossings")
	cmd.Flags().IntVar(&o.width, "width", 0, "plot width for ascii output (default from WIREPATH_CANVAS_WIDTH)")
	cmd.Flags().IntVar(&o.height, "height", 0, "plot height for ascii output (default from WIREPATH_CANVAS_HEIGHT)")
}

// inputOptions are the flags shared by commands that read a circuit.
type inputOptions struct {
	format   string
	markdown bool
	block    int
}

func (o *inputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "input-format", "",
		"input format: wires or json (detected from the extension if not specified)")
	cmd.Flags().BoolVar(&o.markdown, "markdown", false, "read a circuit block from a markdown file")
	cmd.Flags().IntVar(&o.block, "block", 0, "which circuit block to read (1-based index, 0 = the only block)")
}

func newRouteCommand(g *globals) *cobra.Command {
	var (
		out outputOptions
		in  inputOptions
	)

	cmd := &cobra.Command{
		Use:   "route <file>",
		Short: "Route the wires of a circuit file",
		Long: `Route the wires of a circuit file in order and print the resulting paths.
Use - to read the circuit from stdin.

Examples:
  wirepath route board.wires
  wirepath route --input-format json - < board.json
  wirepath route -f graphviz -o board.dot board.wires
  wirepath route --markdown --block 2 README.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(cmd, args[0], &in)
			if err != nil {
				return err
			}
			return g.export(cmd, c, &out)
		},
	}

	out.register(cmd)
	in.register(cmd)
	return cmd
}

// loadCircuit reads a circuit from a file, or from stdin when filename is -.
func loadCircuit(cmd *cobra.Command, filename string, in *inputOptions) (*circuit.Circuit, error) {
	if in.markdown {
		return loadMarkdownBlock(cmd, filename, in.block)
	}

	var format circuit.Format
	if in.format != "" {
		f, err := circuit.ParseFormat(in.format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	if filename != "-" {
		return circuit.Load(filename, format)
	}

	if format == "" {
		format = circuit.FormatText
	}
	c, err := circuit.Read("stdin", cmd.InOrStdin(), format)
	if err != nil {
		return nil, errors.Wrap(err, "reading stdin")
	}
	return c, nil
}

// loadMarkdownBlock reads one circuit block of a markdown document.
func loadMarkdownBlock(cmd *cobra.Command, filename string, index int) (*circuit.Circuit, error) {
	var (
		data []byte
		err  error
	)
	if filename == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read markdown")
	}

	blocks := markdown.NewScanner(string(data)).FindCircuitBlocks()
	if len(blocks) == 0 {
		return nil, errors.Errorf("no circuit blocks found in %s", filename)
	}

	if index == 0 {
		if len(blocks) > 1 {
			var sb strings.Builder
			fmt.Fprintf(&sb, "%s has %d circuit blocks, choose one with --block:", filename, len(blocks))
			for i, b := range blocks {
				sb.WriteString("\n  " + markdown.FormatBlockInfo(b, i))
			}
			return nil, errors.New(sb.String())
		}
		index = 1
	}
	if index < 1 || index > len(blocks) {
		return nil, errors.Errorf("block %d out of range (1-%d)", index, len(blocks))
	}

	p, err := circuit.NewParser()
	if err != nil {
		return nil, err
	}
	return blocks[index-1].Circuit(p)
}

// export routes the circuit, writes the results in the requested format and
// optionally validates them.
func (g *globals) export(cmd *cobra.Command, c *circuit.Circuit, out *outputOptions) error {
	format, err := export.ParseFormat(out.format)
	if err != nil {
		return err
	}

	width, height := g.cfg.CanvasWidth, g.cfg.CanvasHeight
	if out.width > 0 {
		width = out.width
	}
	if out.height > 0 {
		height = out.height
	}
	exporter, err := export.NewExporter(format, export.WithCanvasSize(width, height))
	if err != nil {
		return err
	}

	results := g.route(c)
	data, err := exporter.Export(&export.Report{Name: c.Name, Results: results})
	if err != nil {
		return errors.Wrapf(err, "failed to export to %s", exporter.GetFormatName())
	}

	if err := writeOutput(cmd.OutOrStdout(), out.output, data); err != nil {
		return err
	}
	if out.output != "" {
		g.logger.Info("results written", zap.String("file", out.output), zap.String("format", exporter.GetFormatName()))
	}

	if out.validate {
		return g.check(cmd.ErrOrStderr(), results, out.strict)
	}
	return nil
}

// check validates the results and reports every problem found.
func (g *globals) check(w io.Writer, results []routing.Result, strict bool) error {
	detour, _ := routing.ParseDetourPolicy(g.cfg.Detour)

	v := validation.NewPathValidator()
	v.SetDetourPolicy(detour)
	v.SetEpsilon(g.cfg.Epsilon)
	v.SetStrictMode(strict)

	errs := v.Validate(results)
	if len(errs) == 0 {
		fmt.Fprintln(w, "✓ Validation passed")
		return nil
	}

	fmt.Fprintf(w, "✗ Validation failed with %d errors:\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "  %s\n", e)
	}
	return errors.Errorf("validation failed: %d errors", len(errs))
}

func writeOutput(stdout io.Writer, filename, data string) error {
	if filename == "" {
		_, err := io.WriteString(stdout, data)
		return err
	}
	if err := os.WriteFile(filename, []byte(data), 0644); err != nil {
		return errors.Wrap(err, "failed to write output file")
	}
	return nil
}
