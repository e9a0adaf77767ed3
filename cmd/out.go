package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook"
)

type outCmd struct {
	movementFlags
	event bool
	force bool
}

func (*outCmd) Name() string     { return "out" }
func (*outCmd) Synopsis() string { return "record an outbound movement" }
func (*outCmd) Usage() string {
	return `out -artist <artist> -item <item> -location <loc> -qty <n> -desc <text> [-option <opt>] [-category album|md] [-date <day>] [-event] [-force]

  Records stock leaving a location. Outbound movements require a description.
  The quantity must be available at the location unless -force permits going
  negative. With -event, the dispatch opens an event session (or merges into
  the already-open one for the same artist/item/option/category).
`
}

func (c *outCmd) SetFlags(f *flag.FlagSet) {
	c.movementFlags.register(f)
	f.BoolVar(&c.event, "event", false, "dispatch as an event session, expected back")
	f.BoolVar(&c.force, "force", false, "permit the location quantity to go negative")
}

func (c *outCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.desc == "" {
		fmt.Fprintln(os.Stderr, "outbound movements require -desc")
		return subcommands.ExitUsageError
	}

	cfg, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	m, err := c.build(stockbook.Outbound, cfg.Actor)
	if err != nil {
		return fail(err)
	}

	var note string
	if c.event {
		eventID, merged, err := b.DispatchEvent(m, c.force)
		if err != nil {
			return failMovement(err)
		}
		note = fmt.Sprintf("Event session %s open.", eventID)
		if merged {
			note = fmt.Sprintf("Merged into open event session %s.", eventID)
		}
	} else if err := b.Record(m, c.force); err != nil {
		return failMovement(err)
	}

	b.LogActivity(cfg.Actor, fmt.Sprintf("out %d x %s @ %s", m.Quantity, m.Item, m.Location))
	if err := store.Save(b); err != nil {
		return fail(err)
	}

	fmt.Printf("Recorded out: %d x %s (%s) from %s, %d left there.\n",
		m.Quantity, m.Item, m.Category, m.Location, b.Stock.At(m.Item, m.Option, m.Location))
	if note != "" {
		fmt.Println(note)
	}
	return subcommands.ExitSuccess
}

// failMovement renders the business-rule errors with their structured detail.
func failMovement(err error) subcommands.ExitStatus {
	var insufficient *stockbook.InsufficientStockError
	if errors.As(err, &insufficient) {
		fmt.Fprintf(os.Stderr, "Error: only %d of %q available at %q (requested %d). Re-run with -force to go negative.\n",
			insufficient.Available, insufficient.Item, insufficient.Location, insufficient.Requested)
		return subcommands.ExitFailure
	}
	var mismatch *stockbook.ArtistMismatchError
	if errors.As(err, &mismatch) {
		fmt.Fprintf(os.Stderr, "Error: item %q is already registered to artist %q, not %q.\n",
			mismatch.Item, mismatch.Have, mismatch.Want)
		return subcommands.ExitFailure
	}
	return fail(err)
}
