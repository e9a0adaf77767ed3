package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook/renderer"
)

type stockCmd struct {
	artist   string
	location string
	opening  bool
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "show current stock" }
func (*stockCmd) Usage() string {
	return `stock [-artist <artist>] [-location <loc>] [-opening]

  Shows current stock grouped by artist, with per-location detail. With
  -opening, adds the current period's opening quantity and the month's
  in/out flow per row.
`
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.artist, "artist", "", "show only this artist's items")
	f.StringVar(&c.location, "location", "", "restrict detail to one location")
	f.BoolVar(&c.opening, "opening", false, "include the opening-stock view of the current period")
}

func (c *stockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.StockMarkdown(b, renderer.StockOptions{
		Artist:      c.artist,
		Location:    c.location,
		WithOpening: c.opening,
	}))
	return subcommands.ExitSuccess
}
