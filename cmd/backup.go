package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook/renderer"
)

type backupCmd struct {
	label string
	list  bool
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "force a backup or list retained ones" }
func (*backupCmd) Usage() string {
	return `backup [-label <name>] | backup -list

  Forces a timestamped backup of the document under backups/, bypassing the
  routine-backup cooldown. With -list, shows the retained backups newest
  first instead.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "label baked into the backup filename")
	f.BoolVar(&c.list, "list", false, "list retained backups instead of writing one")
}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, store, err := app()
	if err != nil {
		return fail(err)
	}

	if c.list {
		paths, err := store.ListBackups()
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.BackupsMarkdown(paths))
		return subcommands.ExitSuccess
	}

	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}
	path, err := store.Backup(b, c.label, true)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Backup written: %s\n", path)
	return subcommands.ExitSuccess
}

type restoreCmd struct{}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace the document with a backup" }
func (*restoreCmd) Usage() string {
	return `restore <backup-file>

  Replaces the document with the given backup file. The current state is
  backed up first under the "restore" label, so a restore is always
  reversible.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {}

func (c *restoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "restore requires exactly one backup file argument")
		return subcommands.ExitUsageError
	}

	_, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := store.Restore(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Restored from %s: %d history entries, period %s.\n",
		f.Arg(0), len(b.History), orUnset(b.CurrentPeriod))
	return subcommands.ExitSuccess
}
