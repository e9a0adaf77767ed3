package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook"
)

type auditCmd struct {
	item   string
	option string
	scope  string
	date   string
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "stamp a physical count date on an item" }
func (*auditCmd) Usage() string {
	return `audit -item <item> -scope <location|all> [-option <opt>] [-date <day>]

  Records that the item (option, scope) was physically counted on the given
  day (default today). The stamp is informational; it does not change stock.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.item, "item", "", "item name")
	f.StringVar(&c.option, "option", "", "item option; empty for none")
	f.StringVar(&c.scope, "scope", "all", "location counted, or \"all\" for the whole item")
	f.StringVar(&c.date, "date", "", "count day (default today)")
}

func (c *auditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		fmt.Fprintln(os.Stderr, "audit requires -item")
		return subcommands.ExitUsageError
	}
	on := stockbook.Today()
	if c.date != "" {
		var err error
		on, err = stockbook.ParseDate(c.date)
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

	if err := b.StampAudit(c.item, c.option, c.scope, on); err != nil {
		return fail(err)
	}
	b.LogActivity(cfg.Actor, fmt.Sprintf("audit %s (%s) %s", c.item, c.option, c.scope))
	if err := store.Save(b); err != nil {
		return fail(err)
	}
	fmt.Printf("Audit stamped: %s (%s) %s counted on %s.\n", c.item, c.option, c.scope, on)
	return subcommands.ExitSuccess
}
