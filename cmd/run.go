package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eduwise/eduwise/internal/app"
	"github.com/eduwise/eduwise/internal/config"
	"github.com/eduwise/eduwise/internal/pdfexport"
	"github.com/eduwise/eduwise/internal/screen"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := newDeps(cmd, depsOptions{llm: true, tui: true})
	if err != nil {
		return err
	}
	defer d.Close()

	exportDir, _ := cmd.Flags().GetString("export-dir")
	if exportDir == "" {
		exportDir = filepath.Join(config.XDGDataHome(), "eduwise", "exports")
	}

	d.logger.Info("tui started", "user", d.cfg.User)
	return app.Run(&screen.Env{
		Service:   d.service,
		State:     d.state,
		ExportDir: exportDir,
		PDF:       pdfexport.Options{FontPath: d.cfg.FontPath},
		Ctx:       cmd.Context(),
	})
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().String("export-dir", "", "Directory for PDF exports (default $XDG_DATA_HOME/eduwise/exports)")
	}
}
