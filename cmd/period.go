package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook"
)

type periodCmd struct{}

func (*periodCmd) Name() string     { return "period" }
func (*periodCmd) Synopsis() string { return "start or advance the opening-stock period" }
func (*periodCmd) Usage() string {
	return `period [<YYYY-MM>]

  Starts the given period (default: the current month), freezing the live
  stock as its opening snapshot. Starting an existing or earlier period is
  a no-op: historical opening stock is immutable.
`
}

func (c *periodCmd) SetFlags(f *flag.FlagSet) {}

func (c *periodCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month := stockbook.ThisMonth()
	if f.NArg() > 0 {
		var err error
		month, err = stockbook.ParseMonth(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	cfg, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	before := b.CurrentPeriod
	b.EnsurePeriod(month.String())
	if b.CurrentPeriod == before {
		fmt.Printf("Period unchanged: current is %s.\n", orUnset(b.CurrentPeriod))
		return subcommands.ExitSuccess
	}

	b.LogActivity(cfg.Actor, "period "+month.String())
	if err := store.Save(b); err != nil {
		return fail(err)
	}
	fmt.Printf("Period %s started; opening stock frozen.\n", month)
	return subcommands.ExitSuccess
}

func orUnset(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
