package core

import (
	"fmt"
	"strings"

	"github.com/pebblebed/kugel/pkg/config"
	"github.com/pebblebed/kugel/pkg/csg"
	"github.com/pebblebed/kugel/pkg/geo"
)

// rodAngleOffset rotates rods, risers and the dimple plane away from the
// block's leading edge (degrees).
const rodAngleOffset = 100

// BlockOptions toggles the optional parts of a block. The shell is always built.
type BlockOptions struct {
	Dimples bool
	Rods    bool // rod and rod cavity
	Risers  bool
}

// BlockAssembler builds single reflector blocks.
type BlockAssembler struct {
	cfg     config.ReactorConfig
	heights Heights
	span    float64
	opts    BlockOptions
}

// NewBlockAssembler returns an assembler for blocks spanning span degrees.
// cfg should already be the effective configuration.
func NewBlockAssembler(cfg config.ReactorConfig, heights Heights, span float64, opts BlockOptions) *BlockAssembler {
	return &BlockAssembler{cfg: cfg, heights: heights, span: span, opts: opts}
}

// Build assembles block id starting at angle degrees.
//
// Inner parts are built first (dimples, rod, rod cavity, riser) and each
// adds its cells to the skip list. The rod cavity excludes only the rod;
// the shell is built last and excludes everything in the skip list, so no
// point of the block is assigned two materials.
func (b *BlockAssembler) Build(id int, angle float64) Block {
	blk := Block{ID: id, Angle: angle, Span: b.span}
	var inner []Subregion

	if b.opts.Dimples {
		d := b.dimples(id, angle)
		inner = append(inner, d)
		blk.Skip = append(blk.Skip, d.CellNames...)
	}
	if b.opts.Rods {
		rodType, depth, material := "sr", b.cfg.Rods.SafetyInsertion, b.cfg.Materials.SafetyRod
		if id%2 == 0 {
			rodType, depth, material = "cr", b.cfg.Rods.ControlInsertion, b.cfg.Materials.ControlRod
		}
		rod := b.channel(SubRod, id, angle, rodType, b.cfg.Rods.RadiusToCenter, b.cfg.Rods.Radius,
			Segment{Lower: b.heights.PebbleBed.Upper - depth, Upper: b.heights.ControlRod.Upper}, material, nil)
		inner = append(inner, rod)
		blk.Skip = append(blk.Skip, rod.CellNames...)

		cavity := b.channel(SubRodCavity, id, angle, "cr_cavity", b.cfg.Rods.RadiusToCenter, b.cfg.Rods.CavityRadius,
			b.heights.ControlRod, b.cfg.Materials.ControlRodCavity, rod.CellNames)
		inner = append(inner, cavity)
		blk.Skip = append(blk.Skip, cavity.CellNames...)
	}
	if b.opts.Risers {
		riser := b.channel(SubRiser, id, angle, "riser", b.cfg.Risers.RadiusToCenter, b.cfg.Risers.Radius,
			b.heights.Riser, b.cfg.Materials.Riser, nil)
		inner = append(inner, riser)
		blk.Skip = append(blk.Skip, riser.CellNames...)
	}

	blk.Subregions = append([]Subregion{b.shell(id, angle, blk.Skip)}, inner...)
	return blk
}

func (b *BlockAssembler) shell(id int, angle float64, skip []string) Subregion {
	surf := fmt.Sprintf("block_%d_s", id)
	cell := fmt.Sprintf("block_%d_c", id)
	univ := fmt.Sprintf("block_%d_u", id)
	return Subregion{
		Name:      SubBlock,
		CellNames: []string{cell},
		Fragment: Fragment{
			Surfaces:  csg.Pad(surf, 0, 0, b.cfg.Blocks.InnerRadius, b.cfg.Blocks.OuterRadius, angle, angle+b.span),
			Cells:     csg.MaterialCell(cell, univ, b.cfg.Materials.Block, []string{surf}, nil, skip),
			Universes: csg.Universe(univ, []string{surf}, nil, skip),
		},
	}
}

// dimples builds a column of pebble-filled pockets in the block's inner
// face. Even and odd blocks start the column at different heights.
func (b *BlockAssembler) dimples(id int, angle float64) Subregion {
	d := b.cfg.Dimples
	pbLower := b.heights.PebbleBed.Lower
	base := pbLower + d.Radius*4
	if id%2 == 0 {
		base = d.AxialOffset + pbLower + d.Radius
	}
	dir := geo.FromPolar(geo.Radians(angle+rodAngleOffset), 1)
	plane := fmt.Sprintf("block_%d_plane", id)

	var surfaces, cells, universes strings.Builder
	surfaces.WriteString(csg.DirectedPlane(plane, dir.X, dir.Y))
	names := make([]string, 0, d.Count)
	for n := 0; n < d.Count; n++ {
		surf := fmt.Sprintf("block_%d_d%d_s", id, n)
		cell := fmt.Sprintf("block_%d_d%d_c", id, n)
		z := base + float64(n)*d.Radius*4
		inside := []string{surf, "outer_dimple"}
		outside := []string{"inner_dimple", plane}

		surfaces.WriteString(csg.VCylinder(surf, 0, 0, z, dir.X, dir.Y, 0, d.Radius))
		cells.WriteString(csg.FilledCell(cell, "pebbles_u", "pebble_bed", inside, outside, nil))
		universes.WriteString(csg.FilledCell(fmt.Sprintf("block_%d_d%d_u", id, n), "0", "pebbles_u", inside, outside, nil))
		names = append(names, cell)
	}
	return Subregion{
		Name:      SubDimples,
		CellNames: names,
		Fragment: Fragment{
			Surfaces:  surfaces.String(),
			Cells:     cells.String(),
			Universes: universes.String(),
		},
	}
}

// channel builds a vertical cylindrical channel (rod, rod cavity or riser)
// at radius r2c from the core axis.
func (b *BlockAssembler) channel(name string, id int, angle float64, channelType string, r2c, radius float64, span Segment, material string, exclude []string) Subregion {
	center := geo.FromPolar(geo.Radians(angle+rodAngleOffset), r2c)
	surf := fmt.Sprintf("block_%d_%s_s", id, channelType)
	cell := fmt.Sprintf("block_%d_%s_c", id, channelType)
	univ := fmt.Sprintf("block_%d_%s_u", id, channelType)
	return Subregion{
		Name:      name,
		CellNames: []string{cell},
		Fragment: Fragment{
			Surfaces:  csg.ZCylinder(surf, center.X, center.Y, radius, span.Lower, span.Upper),
			Cells:     csg.MaterialCell(cell, univ, material, []string{surf}, nil, exclude),
			Universes: csg.Universe(univ, []string{surf}, nil, exclude),
		},
	}
}
