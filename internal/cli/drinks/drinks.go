package drinks

import (
	"fmt"
	"strconv"

	"github.com/opjerryisgood-cloud/water-app/internal/cli"
	"github.com/opjerryisgood-cloud/water-app/internal/models"
	"github.com/opjerryisgood-cloud/water-app/internal/utils"
)

type AddCmd struct {
	Amount string `arg:"" help:"Amount in ml. Empty, non-numeric or non-positive input is ignored."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	return mutate(ctx, func() models.Summary {
		return ctx.Tracker().AddCustom(c.Amount)
	})
}

type QuickCmd struct {
	Size string `arg:"" enum:"100,300,500" help:"Preset amount in ml (100, 300 or 500)."`
}

func (c *QuickCmd) Run(ctx *cli.Context) error {
	amount, err := strconv.Atoi(c.Size)
	if err != nil {
		return fmt.Errorf("invalid preset: %s", c.Size)
	}
	return mutate(ctx, func() models.Summary {
		return ctx.Tracker().AddPreset(amount)
	})
}

type DeleteCmd struct {
	Index int `arg:"" help:"Original index of the drink, as shown in brackets by 'water status'."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	return mutate(ctx, func() models.Summary {
		return ctx.Tracker().DeleteEvent(c.Index)
	})
}

type StatusCmd struct {
	Date string `help:"Date to summarize (YYYY-MM-DD or 'today')." default:"today"`
	JSON bool   `help:"Print the summary as JSON."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	tr := ctx.Tracker()
	date, err := utils.ParseDate(c.Date, tr.Now())
	if err != nil {
		return err
	}

	var s models.Summary
	if date == tr.Today() {
		s = tr.Summary()
	} else {
		s = tr.SummaryFor(date)
	}

	if c.JSON {
		return cli.PrintSummaryJSON(ctx.Stdout(), s)
	}
	cli.PrintSummary(ctx.Stdout(), s)
	return nil
}

// mutate runs op under the archive lock and prints the resulting summary.
// A failed save is reported as a warning; the command still succeeds.
func mutate(ctx *cli.Context, op func() models.Summary) error {
	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer l.Release()

	s := op()
	cli.PrintSummary(ctx.Stdout(), s)
	if err := ctx.Tracker().LastSaveErr(); err != nil {
		fmt.Fprintf(ctx.Stdout(), "\nWarning: change kept for this run only, save failed: %v\n", err)
	}
	return nil
}
