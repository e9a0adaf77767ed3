package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook"
)

type editCmd struct {
	movementFlags
	position int
	typ      string
	force    bool
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "rewrite a history entry" }
func (*editCmd) Usage() string {
	return `edit -i <position> -type in|out -artist <artist> -item <item> -location <loc> -qty <n> [...]

  Replaces the history entry at the given position (see search) with a new
  movement. The old entry's stock effect is reversed and the new one's
  applied; on failure nothing changes. Positions shift only on delete,
  never on edit.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.movementFlags.register(f)
	f.IntVar(&c.position, "i", -1, "history position to rewrite")
	f.StringVar(&c.typ, "type", "", "movement type: in or out")
	f.BoolVar(&c.force, "force", false, "permit the location quantity to go negative")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	updated, err := c.build(stockbook.MovementType(c.typ), cfg.Actor)
	if err != nil {
		return fail(err)
	}

	if err := b.EditMovement(c.position, updated, c.force); err != nil {
		return failMovement(err)
	}

	b.LogActivity(cfg.Actor, fmt.Sprintf("edit #%d", c.position))
	if err := store.Save(b); err != nil {
		return fail(err)
	}
	fmt.Printf("Rewrote history entry #%d.\n", c.position)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	position int
	force    bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a history entry" }
func (*deleteCmd) Usage() string {
	return `delete -i <position> [-force]

  Removes the history entry at the given position (see search), reversing
  its stock effect. Deleting the return that settled an event session
  reopens the session. Later positions shift down by one.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.position, "i", -1, "history position to delete")
	f.BoolVar(&c.force, "force", false, "permit the location quantity to go negative")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	if err := b.DeleteMovement(c.position, c.force); err != nil {
		return failMovement(err)
	}

	b.LogActivity(cfg.Actor, fmt.Sprintf("delete #%d", c.position))
	if err := store.Save(b); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted history entry #%d.\n", c.position)
	return subcommands.ExitSuccess
}
