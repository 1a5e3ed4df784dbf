package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wirepath/demo"
	"wirepath/export"
	"wirepath/routing"
	"wirepath/terminal"
)

func newViewCommand(g *globals) *cobra.Command {
	var (
		in            inputOptions
		width, height int
		play          bool
		delay         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Preview a routed circuit in the terminal",
		Long: `Route a circuit and show the plot in an interactive terminal view.
Arrow keys scroll, q or Esc quits. With --play the wires appear one at a time
in drawing order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCircuit(cmd, args[0], &in)
			if err != nil {
				return err
			}

			w, h := g.cfg.CanvasWidth, g.cfg.CanvasHeight
			if width > 0 {
				w = width
			}
			if height > 0 {
				h = height
			}

			results := g.route(c)
			plot, err := export.Plot(results, w, h)
			if err != nil {
				return errors.Wrap(err, "failed to plot circuit")
			}
			if !play || len(results) == 0 {
				return terminal.Preview(plot, c.Name, summarize(results).String(), nil)
			}

			settings := demo.DefaultSettings()
			settings.Delay = delay
			first, err := export.PlotFirst(results, 1, w, h)
			if err != nil {
				return errors.Wrap(err, "failed to plot circuit")
			}

			var player *demo.Player
			defer func() {
				if player != nil {
					player.Stop()
				}
			}()
			return terminal.Preview(first, c.Name, stepStatus(results, 0), func(v *terminal.Viewer) {
				player = demo.NewPlayer(len(results), func(step int) {
					frame, err := export.PlotFirst(results, step+1, w, h)
					if err != nil {
						return
					}
					if err := v.Post(terminal.Frame{Canvas: frame, Status: stepStatus(results, step)}); err != nil {
						g.logger.Debug("frame dropped", zap.Int("step", step), zap.Error(err))
					}
				}, settings)
				if err := player.Play(); err != nil {
					g.logger.Warn("playback failed", zap.Error(err))
				}
			})
		},
	}

	in.register(cmd)
	cmd.Flags().IntVar(&width, "width", 0, "plot width (default from WIREPATH_CANVAS_WIDTH)")
	cmd.Flags().IntVar(&height, "height", 0, "plot height (default from WIREPATH_CANVAS_HEIGHT)")
	cmd.Flags().BoolVar(&play, "play", false, "draw the wires one at a time")
	cmd.Flags().DurationVar(&delay, "delay", demo.DefaultSettings().Delay, "pause between wires with --play")
	return cmd
}

// stepStatus describes the wire drawn at the given step.
func stepStatus(results []routing.Result, step int) string {
	res := results[step]
	status := fmt.Sprintf("wire %d/%d %s", step+1, len(results), res.Request)
	switch {
	case !res.OK():
		status += " rejected"
	case res.Blocker != nil:
		status += fmt.Sprintf(" via %s", res.Path.Points[1])
	}
	return status
}
