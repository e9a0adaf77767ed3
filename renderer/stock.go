package renderer

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/yoon/stockbook"
)

// StockOptions selects what the stock report shows.
type StockOptions struct {
	Artist      string // restrict to one artist; empty shows everything
	WithOpening bool   // add the current period's opening quantities
	Location    string // restrict the per-location detail to one location
}

// StockMarkdown renders the current stock grouped by artist: per-artist
// totals first, then one row per item and option with the per-location
// detail rendered as "location(qty)". With WithOpening set, the current
// period's opening quantity and the period's in/out flow are added per row.
func StockMarkdown(b *stockbook.Book, opts StockOptions) string {
	var out strings.Builder
	title := "Current Stock"
	if b.CurrentPeriod != "" {
		title = fmt.Sprintf("Current Stock — period %s", b.CurrentPeriod)
	}
	fmt.Fprintf(&out, "# %s\n\n", title)

	byArtist := itemsByArtist(b, opts.Artist)
	if len(byArtist) == 0 {
		out.WriteString("No stock recorded.\n")
		return out.String()
	}

	var opening stockbook.Stock
	var activity map[stockbook.ItemOption]stockbook.Flow
	if opts.WithOpening {
		opening = b.OpeningStock(b.CurrentPeriod)
		activity = b.PeriodActivity(b.CurrentPeriod, opts.Location)
	}

	for _, artist := range slices.Sorted(maps.Keys(byArtist)) {
		items := byArtist[artist]
		total := 0
		for _, item := range items {
			total += b.Stock.ItemTotal(item)
		}
		name := artist
		if name == "" {
			name = "(no artist)"
		}
		fmt.Fprintf(&out, "## %s — %d on hand\n\n", name, total)

		header := []string{"Item", "Option", "Total", "Locations"}
		if opts.WithOpening {
			header = []string{"Item", "Option", "Opening", "In", "Out", "Total", "Locations"}
		}
		var rows [][]string
		for _, item := range items {
			options := b.Stock[item]
			for _, opt := range slices.Sorted(maps.Keys(options)) {
				rows = append(rows, stockRow(item, opt, options[opt], opening, activity, opts))
			}
		}
		mdTable(&out, header, rows)
		out.WriteString("\n")
	}
	return out.String()
}

func stockRow(item, opt string, locations map[string]int, opening stockbook.Stock, activity map[stockbook.ItemOption]stockbook.Flow, opts StockOptions) []string {
	total := 0
	var detail []string
	for _, loc := range slices.Sorted(maps.Keys(locations)) {
		if opts.Location != "" && loc != opts.Location {
			continue
		}
		total += locations[loc]
		detail = append(detail, fmt.Sprintf("%s(%d)", loc, locations[loc]))
	}

	row := []string{item, option(opt)}
	if opts.WithOpening {
		openQty := 0
		if opening != nil {
			for _, loc := range slices.Sorted(maps.Keys(opening[item][opt])) {
				if opts.Location == "" || loc == opts.Location {
					openQty += opening[item][opt][loc]
				}
			}
		}
		flow := activity[stockbook.ItemOption{Item: item, Option: opt}]
		row = append(row, itoa(openQty), itoa(flow.In), itoa(flow.Out))
	}
	return append(row, itoa(total), strings.Join(detail, " "))
}

// itemsByArtist groups the stocked items under their bound artist, sorted.
func itemsByArtist(b *stockbook.Book, artistFilter string) map[string][]string {
	byArtist := make(map[string][]string)
	for _, item := range b.Stock.Items() {
		artist := b.Artist(item)
		if artistFilter != "" && artist != artistFilter {
			continue
		}
		byArtist[artist] = append(byArtist[artist], item)
	}
	for artist := range byArtist {
		slices.Sort(byArtist[artist])
	}
	return byArtist
}

// SummaryMarkdown renders net quantities per item/option/location, the
// fold of a history selection.
func SummaryMarkdown(w io.Writer, net stockbook.Stock) {
	var out strings.Builder
	var rows [][]string
	for ref, qty := range net.All() {
		rows = append(rows, []string{ref.Item, option(ref.Option), ref.Location, itoa(qty)})
	}
	mdTable(&out, []string{"Item", "Option", "Location", "Net"}, rows)
	io.WriteString(w, out.String())
}
