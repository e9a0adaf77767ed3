package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook/renderer"
)

type eventsCmd struct {
	clear int
}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "list or settle open event sessions" }
func (*eventsCmd) Usage() string {
	return `events [-clear <position>]

  Lists the open event sessions: outbound movements still waiting for their
  return. With -clear, force-settles the session row at the given history
  position without recording a return.
`
}

func (c *eventsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.clear, "clear", -1, "history position of the session row to force-settle")
}

func (c *eventsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	if c.clear >= 0 {
		if err := b.ClearEventFlag(c.clear); err != nil {
			return fail(err)
		}
		b.LogActivity(cfg.Actor, fmt.Sprintf("event clear #%d", c.clear))
		if err := store.Save(b); err != nil {
			return fail(err)
		}
		fmt.Printf("Settled event row #%d.\n", c.clear)
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.EventsMarkdown(renderer.Collect(b.OpenEvents())))
	return subcommands.ExitSuccess
}
