package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/eduwise/eduwise/internal/charts"
)

const fallbackWidth = 80

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		dash, err := d.service.Dashboard(cmd.Context(), d.state)
		if err != nil {
			return err
		}
		width, palette := terminalStyle()
		fmt.Fprintln(cmd.OutOrStdout(), charts.Dashboard(dash, width, palette))
		return nil
	},
}

// terminalStyle picks the chart width and palette for stdout. Pipes and
// NO_COLOR get plain output at the fallback width.
func terminalStyle() (int, charts.Palette) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth, charts.Plain()
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = fallbackWidth
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return width, charts.Plain()
	}
	return width, charts.Themed()
}
