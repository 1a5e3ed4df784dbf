package cmd

import (
	"github.com/spf13/cobra"

	"wirepath/circuit"
)

func newDemoCommand(g *globals) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Route the built in two wire example",
		Long: `Route two crossing wires, (-100,0) -> (100,0) then (0,-100) -> (0,100).
The second wire is detoured through the crossing at the origin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.export(cmd, circuit.Demo(), &out)
		},
	}

	out.register(cmd)
	return cmd
}
