package stockbook

import (
	"iter"
	"maps"
	"slices"
)

// Stock holds on-hand quantities as item → option → location → quantity.
// The empty string is a valid option key meaning "no option". Absent keys
// read as quantity 0. Quantities can go negative only through explicit
// overrides in the recording layer; Stock itself never bounds-checks.
type Stock map[string]map[string]map[string]int

// At returns the quantity at item/option/location, 0 when absent.
func (s Stock) At(item, option, location string) int {
	return s[item][option][location]
}

// Add adds delta (signed) to the quantity at item/option/location, creating
// intermediate maps as needed.
func (s Stock) Add(item, option, location string, delta int) {
	options, ok := s[item]
	if !ok {
		options = make(map[string]map[string]int)
		s[item] = options
	}
	locations, ok := options[option]
	if !ok {
		locations = make(map[string]int)
		options[option] = locations
	}
	locations[location] += delta
}

// Clone returns a deep copy, safe to retain across further mutations.
func (s Stock) Clone() Stock {
	c := make(Stock, len(s))
	for item, options := range s {
		co := make(map[string]map[string]int, len(options))
		for option, locations := range options {
			co[option] = maps.Clone(locations)
		}
		c[item] = co
	}
	return c
}

// ItemTotal returns the summed quantity of an item over all options and locations.
func (s Stock) ItemTotal(item string) int {
	total := 0
	for _, locations := range s[item] {
		for _, qty := range locations {
			total += qty
		}
	}
	return total
}

// Items returns the item names in sorted order.
func (s Stock) Items() []string {
	return slices.Sorted(maps.Keys(s))
}

// StockRef addresses one stock cell.
type StockRef struct {
	Item     string
	Option   string
	Location string
}

// All iterates every stock cell in sorted item/option/location order.
func (s Stock) All() iter.Seq2[StockRef, int] {
	return func(yield func(StockRef, int) bool) {
		for _, item := range slices.Sorted(maps.Keys(s)) {
			options := s[item]
			for _, option := range slices.Sorted(maps.Keys(options)) {
				locations := options[option]
				for _, location := range slices.Sorted(maps.Keys(locations)) {
					if !yield(StockRef{Item: item, Option: option, Location: location}, locations[location]) {
						return
					}
				}
			}
		}
	}
}
