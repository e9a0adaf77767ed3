package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook"
)

type inCmd struct {
	movementFlags
	eventID string
}

func (*inCmd) Name() string     { return "in" }
func (*inCmd) Synopsis() string { return "record an inbound movement" }
func (*inCmd) Usage() string {
	return `in -artist <artist> -item <item> -location <loc> -qty <n> [-option <opt>] [-category album|md] [-date <day>] [-desc <text>] [-event-id <id>]

  Records stock arriving at a location. With -event-id, the movement is the
  return that settles an open event session.
`
}

func (c *inCmd) SetFlags(f *flag.FlagSet) {
	c.movementFlags.register(f)
	f.StringVar(&c.eventID, "event-id", "", "event session this return settles")
}

func (c *inCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	m, err := c.build(stockbook.Inbound, cfg.Actor)
	if err != nil {
		return fail(err)
	}

	if c.eventID != "" {
		err = b.ReturnEvent(m, c.eventID, false)
	} else {
		err = b.Record(m, false)
	}
	if err != nil {
		return fail(err)
	}

	b.LogActivity(cfg.Actor, fmt.Sprintf("in %d x %s @ %s", m.Quantity, m.Item, m.Location))
	if err := store.Save(b); err != nil {
		return fail(err)
	}

	fmt.Printf("Recorded in: %d x %s (%s) at %s, now %d on hand there.\n",
		m.Quantity, m.Item, m.Category, m.Location, b.Stock.At(m.Item, m.Option, m.Location))
	if c.eventID != "" {
		fmt.Printf("Event session %s settled.\n", c.eventID)
	}
	return subcommands.ExitSuccess
}
