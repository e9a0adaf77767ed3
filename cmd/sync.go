package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/yoon/stockbook"
	"github.com/yoon/stockbook/renderer"
	"github.com/yoon/stockbook/sheet"
)

type pullCmd struct{}

func (*pullCmd) Name() string     { return "pull" }
func (*pullCmd) Synopsis() string { return "reconcile local stock from the workbook" }
func (*pullCmd) Usage() string {
	return `pull

  Reads the workbook and replays its quantity differences as ordinary
  movements; the workbook is authoritative for the pull. The document is
  force-backed-up under the "workbook_pull" label first. See
  "sbk topic sync" for the pull-to-zero behavior on local-only items.
`
}

func (c *pullCmd) SetFlags(f *flag.FlagSet) {}

func (c *pullCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	// Read the peer before touching anything local; a failure here leaves
	// the document exactly as it was.
	wb, err := sheet.ReadWorkbook(cfg.WorkbookPath)
	if err != nil {
		return fail(err)
	}

	if _, err := store.Backup(b, "workbook_pull", true); err != nil {
		return fail(err)
	}

	report, err := b.Reconcile(wb.Stock, "workbook", cfg.Actor, time.Now())
	if err != nil {
		// Partial passes stay committed; persist them and report the count.
		var sync *stockbook.SyncError
		if errors.As(err, &sync) && sync.Committed > 0 {
			b.LogActivity(cfg.Actor, fmt.Sprintf("pull aborted after %d corrections", sync.Committed))
			if saveErr := store.Save(b); saveErr != nil {
				fmt.Fprintf(os.Stderr, "Error: could not persist partial pull: %v\n", saveErr)
			}
		}
		return fail(err)
	}
	b.MergeMetadata(wb.Artists)

	b.LogActivity(cfg.Actor, fmt.Sprintf("pull: %d corrections", report.Committed))
	if err := store.Save(b); err != nil {
		return fail(err)
	}
	printMarkdown(renderer.ReconcileMarkdown(report))
	return subcommands.ExitSuccess
}

type pushCmd struct{}

func (*pushCmd) Name() string     { return "push" }
func (*pushCmd) Synopsis() string { return "write the full inventory to the workbook" }
func (*pushCmd) Usage() string {
	return `push

  Saves the document, backs it up under the "workbook_push" label, and
  writes the full stock, history and metadata tables to the workbook,
  replacing its previous content.
`
}

func (c *pushCmd) SetFlags(f *flag.FlagSet) {}

func (c *pushCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, store, err := app()
	if err != nil {
		return fail(err)
	}
	b, err := loadBook(store)
	if err != nil {
		return fail(err)
	}

	if err := store.Save(b); err != nil {
		return fail(err)
	}
	if _, err := store.Backup(b, "workbook_push", true); err != nil {
		return fail(err)
	}
	if err := sheet.WriteWorkbook(cfg.WorkbookPath, b); err != nil {
		return fail(err)
	}

	b.LogActivity(cfg.Actor, "push")
	if err := store.Save(b); err != nil {
		return fail(err)
	}
	fmt.Printf("Workbook written: %s (%d history entries).\n", cfg.WorkbookPath, len(b.History))
	return subcommands.ExitSuccess
}
