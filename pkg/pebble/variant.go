package pebble

import (
	"fmt"
	"strings"
)

// variant holds the per-kind strategies for universe naming and
// temperature updates.
type variant struct {
	prefix      func(p *Pebble) string
	temperature func(p *Pebble, pebbleTemp, fuelTemp float64) error
}

var variants = map[Kind]variant{
	Graphite: {
		prefix:      func(*Pebble) string { return "g_" },
		temperature: updateGraphiteTemperature,
	},
	Fuel: {
		prefix:      func(p *Pebble) string { return fmt.Sprintf("f%d_", p.Fuel.Group) },
		temperature: updateFuelTemperature,
	},
}

// nextUniverse derives the universe name from the previous one.
//
// A shuffled pebble left the core and came back, so its history grows by
// the new mesh location. Within a pass, the last recorded location is
// replaced by the current one: the path segments after the type prefix
// lose their final entry and the current location is appended.
func nextUniverse(p *Pebble, shuffled bool) string {
	loc := p.Mesh.String()
	if shuffled {
		return p.PreviousUniverse + "_" + loc
	}
	segments := strings.Split(p.PreviousUniverse, "_")[1:]
	middle := ""
	if len(segments) > 1 {
		middle = strings.Join(segments[:len(segments)-1], "_") + "_"
	}
	return variants[p.Kind].prefix(p) + middle + loc
}

func updateGraphiteTemperature(p *Pebble, pebbleTemp, _ float64) error {
	set, err := p.table.Lookup(pebbleTemp)
	if err != nil {
		return err
	}
	p.Temperature = pebbleTemp
	p.XS = set
	return nil
}

func updateFuelTemperature(p *Pebble, pebbleTemp, fuelTemp float64) error {
	set, err := p.table.Lookup(pebbleTemp)
	if err != nil {
		return err
	}
	fuelSet, err := p.table.Lookup(fuelTemp)
	if err != nil {
		return fmt.Errorf("fuel: %w", err)
	}
	p.Temperature = pebbleTemp
	p.XS = set
	p.Fuel.Temperature = fuelTemp
	p.Fuel.XS = fuelSet
	return nil
}
