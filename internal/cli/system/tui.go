package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/logger"
	"github.com/opjerryisgood-cloud/water-app/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	tr := ctx.Tracker()

	// Perform automatic backup on TUI startup (after successful load)
	if tr.LoadErr() == nil {
		ctx.PerformAutomaticBackup()
	}

	p := tea.NewProgram(tui.NewModel(tr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI failed", "error", err)
		dumpDiagnostics(ctx, err)
		return fmt.Errorf("failed to start the water tracker UI: %w", err)
	}
	return nil
}

// dumpDiagnostics prints enough context to file a bug when the screen
// cannot be set up.
func dumpDiagnostics(ctx *cli.Context, cause error) {
	w := os.Stderr
	fmt.Fprintln(w, "water: the interactive screen could not start.")
	fmt.Fprintf(w, "  error:    %v\n", cause)
	fmt.Fprintf(w, "  backend:  %s\n", ctx.Store.Backend())
	fmt.Fprintf(w, "  location: %s\n", ctx.Store.Location())
	fmt.Fprintf(w, "  data dir: %s\n", ctx.DataDir)
	fmt.Fprintf(w, "  log file: %s\n", logger.FilePath())
	fmt.Fprintf(w, "  session:  %s\n", logger.SessionID)
	fmt.Fprintf(w, "  TERM:     %s\n", os.Getenv("TERM"))
	fmt.Fprintln(w, "Run 'water doctor' for more checks, or use 'water add' and 'water status' without the screen.")
}
