package xs

import (
	"errors"
	"testing"
)

func TestLookupBuckets(t *testing.T) {
	table := Default()
	tests := []struct {
		temp float64
		want int
	}{
		{1000, 900},
		{1200, 1200},
		{300, 300},
		{301, 300},
		{1499.9, 1200},
		{2500, 1500},
	}
	for _, tt := range tests {
		got, err := table.Lookup(tt.temp)
		if err != nil {
			t.Fatalf("Lookup(%v): %v", tt.temp, err)
		}
		if got.Temperature != tt.want {
			t.Errorf("Lookup(%v) = %d K, want %d K", tt.temp, got.Temperature, tt.want)
		}
	}
}

func TestLookupLibraries(t *testing.T) {
	got, err := Default().Lookup(950)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.Library != "09c" || got.Scattering != "grph900" {
		t.Errorf("got %+v, want 09c/grph900", got)
	}
}

func TestLookupBelowLowestBucket(t *testing.T) {
	_, err := Default().Lookup(294)
	if !errors.Is(err, ErrBelowTable) {
		t.Fatalf("expected ErrBelowTable, got %v", err)
	}
}

func TestNewTableSortsAndRejectsDuplicates(t *testing.T) {
	table, err := NewTable(
		Set{Temperature: 900, Library: "09c"},
		Set{Temperature: 300, Library: "03c"},
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	sets := table.Sets()
	if sets[0].Temperature != 300 || sets[1].Temperature != 900 {
		t.Errorf("expected ascending order, got %+v", sets)
	}

	if _, err := NewTable(Set{Temperature: 300}, Set{Temperature: 300}); err == nil {
		t.Error("expected error for duplicate buckets")
	}
	if _, err := NewTable(); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestLookupEmptyTable(t *testing.T) {
	var table Table
	if _, err := table.Lookup(900); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}
