package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook"
	"github.com/yoon/stockbook/renderer"
	"github.com/yoon/stockbook/sheet"
)

type searchCmd struct {
	day     string
	month   string
	year    string
	artist  string
	from    string
	to      string
	output  string
	summary bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the movement history" }
func (*searchCmd) Usage() string {
	return `search [-day <d>] [-month <YYYY-MM>] [-year <YYYY>] [-from <d> -to <d>] [-artist <artist>] [-o <file.xlsx>] [-summary]

  Lists the movements matching every given criterion, with their history
  positions for edit/delete. Dates accept relative forms like -1d or -1m.
  With -o, the selection is exported to an xlsx file instead; -summary adds
  a net-quantity sheet.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "day", "", "exact day")
	f.StringVar(&c.month, "month", "", "period key, e.g. 2025-07 or -1m")
	f.StringVar(&c.year, "year", "", "calendar year")
	f.StringVar(&c.artist, "artist", "", "artist equality filter")
	f.StringVar(&c.from, "from", "", "inclusive day-range start")
	f.StringVar(&c.to, "to", "", "inclusive day-range end")
	f.StringVar(&c.output, "o", "", "export the selection to this xlsx file")
	f.BoolVar(&c.summary, "summary", false, "add a net-quantity summary sheet to the export")
}

func (c *searchCmd) filter() (stockbook.HistoryFilter, error) {
	var filter stockbook.HistoryFilter
	if c.day != "" {
		d, err := stockbook.ParseDate(c.day)
		if err != nil {
			return filter, err
		}
		filter.Day = d.String()
	}
	if c.month != "" {
		m, err := stockbook.ParseMonth(c.month)
		if err != nil {
			return filter, err
		}
		filter.Month = m.String()
	}
	filter.Year = strings.TrimSpace(c.year)
	filter.Artist = c.artist
	if c.from != "" {
		d, err := stockbook.ParseDate(c.from)
		if err != nil {
			return filter, err
		}
		filter.From = d
	}
	if c.to != "" {
		d, err := stockbook.ParseDate(c.to)
		if err != nil {
			return filter, err
		}
		filter.To = d
	}
	return filter, nil
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	if c.output != "" {
		movements := b.FilterHistory(filter)
		if err := sheet.ExportTransactions(c.output, movements, c.summary); err != nil {
			return fail(err)
		}
		fmt.Printf("Exported %d movements to %s\n", len(movements), c.output)
		return subcommands.ExitSuccess
	}

	entries := renderer.Collect(b.SearchHistory(filter))
	printMarkdown(renderer.HistoryMarkdown("History", entries))
	return subcommands.ExitSuccess
}
