// Package core assembles the combinatorial geometry of a pebble-bed reactor:
// the axial region stack, the ring of reflector blocks, and the pebble bed.
package core

// Kind is one of the three directive groups of a deck.
type Kind string

const (
	Surfaces  Kind = "surfaces"
	Cells     Kind = "cells"
	Universes Kind = "universes"
)

// Kinds lists the directive groups in deck order.
var Kinds = []Kind{Surfaces, Cells, Universes}

// Fragment holds deck text grouped by kind.
type Fragment struct {
	Surfaces  string `json:"surfaces,omitempty"`
	Cells     string `json:"cells,omitempty"`
	Universes string `json:"universes,omitempty"`
}

// Text returns the text of one kind.
func (f Fragment) Text(k Kind) string {
	switch k {
	case Surfaces:
		return f.Surfaces
	case Cells:
		return f.Cells
	case Universes:
		return f.Universes
	}
	return ""
}

// Region is the build result of one reactor-level region.
type Region struct {
	Name string `json:"name"`
	Fragment
}

// Subregion is one part of a block. CellNames lists the material or fill
// cells it defines, which enclosing cells must exclude.
type Subregion struct {
	Name      string   `json:"name"`
	CellNames []string `json:"cell_names,omitempty"`
	Fragment
}

// Block subregion names.
const (
	SubBlock     = "block"
	SubDimples   = "dimples"
	SubRod       = "rod"
	SubRodCavity = "rod_cavity"
	SubRiser     = "riser"
)

// Block is one angular sector of the reflector ring spanning
// [Angle, Angle+Span) degrees.
type Block struct {
	ID         int         `json:"id"`
	Angle      float64     `json:"angle"`
	Span       float64     `json:"span"`
	Subregions []Subregion `json:"subregions"`
	Skip       []string    `json:"skip"`
}

// Subregion returns the named subregion.
func (b Block) Subregion(name string) (Subregion, bool) {
	for _, s := range b.Subregions {
		if s.Name == name {
			return s, true
		}
	}
	return Subregion{}, false
}

// Core is a complete build: blocks and regions in build order.
type Core struct {
	Simple     bool     `json:"simple"`
	BlockAngle float64  `json:"block_angle"`
	Heights    Heights  `json:"heights"`
	Blocks     []Block  `json:"blocks"`
	Regions    []Region `json:"regions"`
}

// Region returns the named region.
func (c *Core) Region(name string) (Region, bool) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}
