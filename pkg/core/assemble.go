package core

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pebblebed/kugel/pkg/config"
	"github.com/pebblebed/kugel/pkg/csg"
	"github.com/pebblebed/kugel/pkg/validation"
)

// blockRotation aligns block 0 with the solver's coordinate convention (degrees).
const blockRotation = 90

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

// Assembler builds the full or simplified core from one configuration. It
// owns its region and block maps; rebuilding replaces entries in place.
type Assembler struct {
	cfg        config.ReactorConfig
	heights    Heights
	blockAngle float64
	blocks     *BlockAssembler
	logger     *zap.Logger

	regions  *ordered[string, Region]
	blockMap *ordered[int, Block]
}

// New validates cfg and prepares an assembler. An invalid configuration
// fails here, before any deck text is produced.
func New(cfg *config.ReactorConfig, opts ...Option) (*Assembler, error) {
	if err := validation.ValidateConfig(cfg).Err(); err != nil {
		return nil, fmt.Errorf("core config: %w", err)
	}
	eff := cfg.Effective()
	a := &Assembler{
		cfg:        eff,
		heights:    ComputeHeights(eff.Heights),
		blockAngle: 360 / float64(eff.Blocks.Count),
		logger:     zap.NewNop(),
		regions:    newOrdered[string, Region](),
		blockMap:   newOrdered[int, Block](),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.blocks = NewBlockAssembler(eff, a.heights, a.blockAngle, BlockOptions{
		Dimples: eff.Options.CreateDimples,
		Rods:    !eff.Options.SimpleCore,
		Risers:  !eff.Options.SimpleCore,
	})
	return a, nil
}

// Heights returns the derived axial boundaries.
func (a *Assembler) Heights() Heights { return a.heights }

// BlockAngle returns the angular span of one block in degrees.
func (a *Assembler) BlockAngle() float64 { return a.blockAngle }

// BlockAngles returns the starting angle of every block.
func (a *Assembler) BlockAngles() []float64 {
	angles := make([]float64, a.cfg.Blocks.Count)
	for i := range angles {
		angles[i] = a.blockAngle*float64(i) + blockRotation
	}
	return angles
}

// Region returns a built region.
func (a *Assembler) Region(name string) (Region, bool) { return a.regions.get(name) }

// Block returns a built block.
func (a *Assembler) Block(id int) (Block, bool) { return a.blockMap.get(id) }

// Build runs the region sequence for the configured mode and returns a
// snapshot of the result.
func (a *Assembler) Build() *Core {
	for _, step := range a.sequence() {
		step()
	}
	c := a.snapshot()
	a.logger.Info("core assembled",
		zap.Bool("simple", c.Simple),
		zap.Int("blocks", len(c.Blocks)),
		zap.Int("regions", len(c.Regions)),
		zap.Float64("lower_model", c.Heights.LowerModel),
		zap.Float64("model_upper", c.Heights.ModelUpper),
	)
	return c
}

func (a *Assembler) snapshot() *Core {
	return &Core{
		Simple:     a.cfg.Options.SimpleCore,
		BlockAngle: a.blockAngle,
		Heights:    a.heights,
		Blocks:     a.blockMap.snapshot(),
		Regions:    a.regions.snapshot(),
	}
}

func (a *Assembler) sequence() []func() {
	if a.cfg.Options.SimpleCore {
		return []func(){
			a.region("bottom_reflector", a.bottomReflector),
			a.buildBlocks,
			a.region("pebble_bed", a.pebbleBed),
			a.region("pebble", a.pebble),
			a.region("top_reflector", a.topReflector),
			a.region("outside", a.outside),
		}
	}
	return []func(){
		a.region("pebble_shoot", a.pebbleShoot),
		a.region("conus", a.conus),
		a.region("outlet_plenum", a.outletPlenum),
		a.region("outlet_channel", a.outletChannel),
		a.region("bottom_reflector", a.bottomReflector),
		a.buildBlocks,
		a.region("pebble_bed", a.pebbleBed),
		a.region("pebble", a.pebble),
		a.region("cavity", a.cavity),
		a.region("top_reflector", a.topReflector),
		a.region("outside", a.outside),
	}
}

func (a *Assembler) region(name string, build func() Fragment) func() {
	return func() {
		a.regions.set(name, Region{Name: name, Fragment: build()})
		a.logger.Debug("region built", zap.String("region", name))
	}
}

// buildBlocks places the reflector ring. Dimple cells in every block
// reference the shared inner and outer dimple cylinders, which are built
// first as their own region.
func (a *Assembler) buildBlocks() {
	if a.cfg.Options.CreateDimples {
		a.region("dimples", a.dimpleBounds)()
	}
	for id, angle := range a.BlockAngles() {
		a.blockMap.set(id, a.blocks.Build(id, angle))
		a.logger.Debug("block built", zap.Int("block", id), zap.Float64("angle", angle))
	}
}

func (a *Assembler) dimpleBounds() Fragment {
	pb := a.heights.PebbleBed
	ir := a.cfg.Blocks.InnerRadius
	return Fragment{
		Surfaces: csg.ZCylinder("inner_dimple", 0, 0, ir, pb.Lower, pb.Upper) +
			csg.ZCylinder("outer_dimple", 0, 0, ir+a.cfg.Dimples.Depth, pb.Lower, pb.Upper),
	}
}

func (a *Assembler) pebbleShoot() Fragment {
	s := a.heights.PebbleShoot
	return Fragment{
		Surfaces:  csg.ZCylinder("pebble_shoot_s", 0, 0, a.cfg.PebbleBed.ShootRadius, s.Lower, s.Upper),
		Cells:     csg.MaterialCell("pebble_shoot_c", "pebble_shoot_u", a.cfg.Materials.PebbleShoot, []string{"pebble_shoot_s"}, nil, nil),
		Universes: csg.Universe("pebble_shoot_u", []string{"pebble_shoot_s"}, nil, nil),
	}
}

// conus is the cone funnelling pebbles into the chute. The cone is defined
// pointing down and flipped about its base.
func (a *Assembler) conus() Fragment {
	z := a.cfg.Heights.ConusZOffset
	surfaces := csg.Cone("conus_s", 0, 0, z, a.cfg.Blocks.InnerRadius, -a.cfg.Heights.Conus) +
		csg.Rotate("conus_s", [3]float64{0, 0, z}, [3]float64{0, 0, 1}, 180)
	upper, _ := csg.Plane("upper_cone", "z", a.heights.PebbleBed.Lower)
	return Fragment{
		Surfaces:  surfaces + upper,
		Cells:     csg.FilledCell("cone_c", "cone_u", "pebble_bed", []string{"conus_s"}, nil, nil),
		Universes: csg.Universe("cone_u", []string{"conus_s", "upper_cone"}, []string{"pebble_shoot_s"}, nil),
	}
}

func (a *Assembler) outletPlenum() Fragment {
	s := a.heights.OutletPlenum
	return Fragment{
		Surfaces:  csg.ZCylinder("outlet_plenum_s", 0, 0, a.cfg.Blocks.InnerRadius, s.Lower, s.Upper),
		Cells:     csg.MaterialCell("outlet_plenum_c", "outlet_plenum_u", a.cfg.Materials.OutletPlenum, []string{"outlet_plenum_s"}, []string{"pebble_shoot_s"}, nil),
		Universes: csg.Universe("outlet_plenum_u", []string{"outlet_plenum_s"}, []string{"pebble_shoot_s"}, nil),
	}
}

func (a *Assembler) outletChannel() Fragment {
	s := a.heights.OutletChannel
	outside := []string{"pebble_shoot_s", "conus_s"}
	return Fragment{
		Surfaces:  csg.ZCylinder("outlet_channel_s", 0, 0, a.cfg.Blocks.InnerRadius, s.Lower, s.Upper),
		Cells:     csg.MaterialCell("outlet_channel_c", "outlet_channel_u", a.cfg.Materials.OutletChannel, []string{"outlet_channel_s"}, outside, nil),
		Universes: csg.Universe("outlet_channel_u", []string{"outlet_channel_s"}, outside, nil),
	}
}

// bottomReflector surrounds the pebble chute, which the simplified core lacks.
func (a *Assembler) bottomReflector() Fragment {
	s := a.heights.BottomReflector
	var outside []string
	if !a.cfg.Options.SimpleCore {
		outside = []string{"pebble_shoot_s"}
	}
	return Fragment{
		Surfaces:  csg.ZCylinder("bottom_reflector_s", 0, 0, a.cfg.Blocks.InnerRadius, s.Lower, s.Upper),
		Cells:     csg.MaterialCell("bottom_reflector_c", "bottom_reflector_u", a.cfg.Materials.BottomReflector, []string{"bottom_reflector_s"}, outside, nil),
		Universes: csg.Universe("bottom_reflector_u", []string{"bottom_reflector_s"}, outside, nil),
	}
}

// pebbleBed declares the explicit pebble lattice, with coolant between
// pebbles, and the cylinder that contains it.
func (a *Assembler) pebbleBed() Fragment {
	s := a.heights.PebbleBed
	surfaces := csg.Infinite("inf_surf") +
		csg.PebbleBed("pebble_bed", "helium_u", a.cfg.PebbleBed.FileName) +
		csg.ZCylinder("pebbles_s", 0, 0, a.cfg.Blocks.InnerRadius, s.Lower, s.Upper)
	cells := csg.MaterialCell("c_he", "helium_u", a.cfg.Materials.Coolant, []string{"inf_surf"}, nil, nil) +
		csg.FilledCell("pebbles_c", "pebbles_u", "pebble_bed", []string{"pebbles_s"}, nil, nil)
	return Fragment{
		Surfaces:  surfaces,
		Cells:     cells,
		Universes: csg.Universe("pebbles_u", []string{"pebbles_s"}, nil, nil),
	}
}

// pebble holds the template spheres shared by every pebble universe.
func (a *Assembler) pebble() Fragment {
	return Fragment{
		Surfaces: csg.Sphere("pebble_inner", 0, 0, 0, a.cfg.PebbleBed.PebbleInnerRadius) +
			csg.Sphere("pebble_outer", 0, 0, 0, a.cfg.PebbleBed.PebbleOuterRadius),
	}
}

func (a *Assembler) cavity() Fragment {
	s := a.heights.Cavity
	return Fragment{
		Surfaces:  csg.ZCylinder("cavity_s", 0, 0, a.cfg.Blocks.InnerRadius, s.Lower, s.Upper),
		Cells:     csg.MaterialCell("cavity_c", "cavity_u", a.cfg.Materials.Cavity, []string{"cavity_s"}, nil, nil),
		Universes: csg.Universe("cavity_u", []string{"cavity_s"}, nil, nil),
	}
}

func (a *Assembler) topReflector() Fragment {
	s := a.heights.TopReflector
	return Fragment{
		Surfaces:  csg.ZCylinder("top_reflector_s", 0, 0, a.cfg.Blocks.InnerRadius, s.Lower, s.Upper),
		Cells:     csg.MaterialCell("top_reflector_c", "top_reflector_u", a.cfg.Materials.TopReflector, []string{"top_reflector_s"}, nil, nil),
		Universes: csg.Universe("top_reflector_u", []string{"top_reflector_s"}, nil, nil),
	}
}

// outside bounds the model; everything beyond outside_s is void.
func (a *Assembler) outside() Fragment {
	return Fragment{
		Surfaces:  csg.ZCylinder("outside_s", 0, 0, a.cfg.Blocks.OuterRadius, a.heights.BottomReflector.Lower, a.heights.ModelUpper),
		Universes: csg.MaterialCell("out", "0", "outside", nil, []string{"outside_s"}, nil),
	}
}
