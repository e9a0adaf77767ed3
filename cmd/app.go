// Package cmd implements the CLI application to manage the inventory ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/yoon/stockbook"
	"github.com/yoon/stockbook/config"
)

// Commands lists every subcommand for a main package to register.
var Commands = []subcommands.Command{
	&inCmd{},
	&outCmd{},
	&stockCmd{},
	&searchCmd{},
	&periodCmd{},
	&editCmd{},
	&deleteCmd{},
	&eventsCmd{},
	&auditCmd{},
	&backupCmd{},
	&restoreCmd{},
	&pullCmd{},
	&pushCmd{},
	&inspectCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var documentFile = flag.String("f", "", "path to the inventory document (overrides config)")
var workbookFile = flag.String("workbook", "", "path to the xlsx peer workbook (overrides config)")
var actorName = flag.String("actor", "", "name stamped on recorded movements (overrides config)")

// app resolves the configuration and builds the store for the document.
func app() (*config.Config, *stockbook.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load configuration: %w", err)
	}
	if *documentFile != "" {
		cfg.DocumentPath = *documentFile
	}
	if *workbookFile != "" {
		cfg.WorkbookPath = *workbookFile
	}
	if *actorName != "" {
		cfg.Actor = *actorName
	}
	store := stockbook.NewStore(cfg.DocumentPath)
	store.Keep = cfg.BackupKeep
	store.Cooldown = cfg.BackupCooldown
	return cfg, store, nil
}

// loadBook loads the document through the store. Corruption is recovered
// inside Load; the operator is told when that happened.
func loadBook(store *stockbook.Store) (*stockbook.Book, error) {
	b, err := store.Load()
	if err != nil {
		return nil, err
	}
	if b.LastLoadError != nil {
		fmt.Fprintf(os.Stderr, "note: previous document was unreadable (%s); started fresh, original kept at %s\n",
			b.LastLoadError.Message, b.LastLoadError.CorruptBackup)
	}
	return b, nil
}

// fail prints the error and maps it onto an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}

// movementFlags are the fields shared by the in and out commands.
type movementFlags struct {
	artist   string
	item     string
	category string
	option   string
	location string
	quantity int
	date     string
	desc     string
}

func (m *movementFlags) register(f *flag.FlagSet) {
	f.StringVar(&m.artist, "artist", "", "artist the item belongs to")
	f.StringVar(&m.item, "item", "", "item name")
	f.StringVar(&m.category, "category", "", "item category: album, md (default album)")
	f.StringVar(&m.option, "option", "", "item option (version, color, size); empty for none")
	f.StringVar(&m.location, "location", "", "storage location")
	f.IntVar(&m.quantity, "qty", 0, "quantity moved (positive)")
	f.StringVar(&m.date, "date", "", "movement date, e.g. 2025-07-01 or -1d (default now)")
	f.StringVar(&m.desc, "desc", "", "description of the movement")
}

// when resolves the -date flag to an instant: the given day at the current
// wall time, or now when unset.
func (m *movementFlags) when() (time.Time, error) {
	now := time.Now()
	if strings.TrimSpace(m.date) == "" {
		return now, nil
	}
	d, err := stockbook.ParseDate(m.date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, now.Location()), nil
}

// build assembles the movement from the flags.
func (m *movementFlags) build(typ stockbook.MovementType, actor string) (stockbook.Movement, error) {
	at, err := m.when()
	if err != nil {
		return stockbook.Movement{}, err
	}
	return stockbook.NewMovement(typ, m.artist, m.item, m.category, m.option,
		m.location, m.quantity, at, actor, m.desc), nil
}
