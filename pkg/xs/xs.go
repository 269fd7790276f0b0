// Package xs selects temperature-dependent cross-section libraries.
//
// A Table holds buckets keyed by temperature (K). A query resolves to the
// bucket with the largest key that does not exceed the queried temperature;
// an exact key match resolves to that key. Queries below the lowest key are
// an error: there is no implicit floor bucket.
package xs

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrBelowTable is returned when a temperature is below the lowest bucket.
var ErrBelowTable = errors.New("temperature below lowest cross-section bucket")

// ErrEmptyTable is returned when a table has no buckets.
var ErrEmptyTable = errors.New("cross-section table is empty")

// Set is one temperature bucket: the library suffix used for material
// cards and the thermal scattering library for graphite.
type Set struct {
	Temperature int    `yaml:"temperature" json:"temperature"`
	Library     string `yaml:"xs_set" json:"xs_set"`
	Scattering  string `yaml:"graphite" json:"graphite"`
}

// Table is an immutable set of buckets sorted by temperature.
type Table struct {
	sets []Set
}

// NewTable builds a table from the given buckets. Duplicate temperatures are rejected.
func NewTable(sets ...Set) (Table, error) {
	if len(sets) == 0 {
		return Table{}, ErrEmptyTable
	}
	sorted := make([]Set, len(sets))
	copy(sorted, sets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Temperature < sorted[j].Temperature })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Temperature == sorted[i-1].Temperature {
			return Table{}, fmt.Errorf("duplicate cross-section bucket %d K", sorted[i].Temperature)
		}
	}
	return Table{sets: sorted}, nil
}

// Default returns the stock table with buckets at 300, 600, 900, 1200 and 1500 K.
func Default() Table {
	return Table{sets: []Set{
		{Temperature: 300, Library: "03c", Scattering: "grph300"},
		{Temperature: 600, Library: "06c", Scattering: "grph600"},
		{Temperature: 900, Library: "09c", Scattering: "grph900"},
		{Temperature: 1200, Library: "12c", Scattering: "grph1200"},
		{Temperature: 1500, Library: "15c", Scattering: "grph1500"},
	}}
}

// Lookup returns the bucket for temperature.
func (t Table) Lookup(temperature float64) (Set, error) {
	if len(t.sets) == 0 {
		return Set{}, ErrEmptyTable
	}
	if math.IsNaN(temperature) {
		return Set{}, fmt.Errorf("%w: NaN", ErrBelowTable)
	}
	// First bucket strictly above the query; the one before it is the answer.
	i := sort.Search(len(t.sets), func(i int) bool {
		return float64(t.sets[i].Temperature) > temperature
	})
	if i == 0 {
		return Set{}, fmt.Errorf("%w: %g K < %d K", ErrBelowTable, temperature, t.sets[0].Temperature)
	}
	return t.sets[i-1], nil
}

// Sets returns a copy of the buckets in ascending temperature order.
func (t Table) Sets() []Set {
	out := make([]Set, len(t.sets))
	copy(out, t.sets)
	return out
}

// Len returns the number of buckets.
func (t Table) Len() int {
	return len(t.sets)
}
