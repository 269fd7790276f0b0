package config

import (
	"github.com/pebblebed/kugel/pkg/pebble"
	"github.com/pebblebed/kugel/pkg/xs"
)

// ReactorConfig is the full description of one reactor model. All lengths
// are in cm, angles in degrees and temperatures in K.
type ReactorConfig struct {
	ConfigVersion string       `yaml:"config_version" json:"config_version"`
	Options       Options      `yaml:"options" json:"options"`
	Materials     Materials    `yaml:"materials" json:"materials"`
	Heights       AxialHeights `yaml:"heights" json:"heights"`
	Blocks        BlockDef     `yaml:"blocks" json:"blocks"`
	Rods          RodDef       `yaml:"control_rods" json:"control_rods"`
	Risers        RiserDef     `yaml:"risers" json:"risers"`
	Dimples       DimpleDef    `yaml:"dimples" json:"dimples"`
	PebbleBed     PebbleBedDef `yaml:"pebble_bed" json:"pebble_bed"`
	CrossSections []xs.Set     `yaml:"cross_sections" json:"cross_sections"`
	Output        OutputDef    `yaml:"output" json:"output"`
}

// Options toggles model features.
type Options struct {
	SimpleCore    bool `yaml:"simple_core" json:"simple_core"`
	CreateDimples bool `yaml:"create_dimples" json:"create_dimples"`
}

// Materials names the material of each structural region. Compositions
// live in a separate material deck.
type Materials struct {
	Block            string `yaml:"block" json:"block"`
	PebbleShoot      string `yaml:"pebble_shoot" json:"pebble_shoot"`
	OutletPlenum     string `yaml:"outlet_plenum" json:"outlet_plenum"`
	OutletChannel    string `yaml:"outlet_channel" json:"outlet_channel"`
	SafetyRod        string `yaml:"safety_rod" json:"safety_rod"`
	ControlRod       string `yaml:"control_rod" json:"control_rod"`
	ControlRodCavity string `yaml:"control_rod_cavity" json:"control_rod_cavity"`
	Riser            string `yaml:"riser" json:"riser"`
	Cavity           string `yaml:"cavity" json:"cavity"`
	BottomReflector  string `yaml:"bottom_reflector" json:"bottom_reflector"`
	TopReflector     string `yaml:"top_reflector" json:"top_reflector"`
	Coolant          string `yaml:"coolant" json:"coolant"`
}

// AxialHeights holds the height of each axial segment.
type AxialHeights struct {
	BottomReflector float64 `yaml:"bottom_reflector" json:"bottom_reflector"`
	OutletPlenum    float64 `yaml:"outlet_plenum" json:"outlet_plenum"`
	ConusChannel    float64 `yaml:"conus_channel" json:"conus_channel"`
	Conus           float64 `yaml:"conus" json:"conus"`
	ConusZOffset    float64 `yaml:"conus_z_offset" json:"conus_z_offset"`
	PebbleChute     float64 `yaml:"pebble_chute" json:"pebble_chute"`
	PebbleBed       float64 `yaml:"pebble_bed" json:"pebble_bed"`
	Cavity          float64 `yaml:"cavity" json:"cavity"`
	TopReflector    float64 `yaml:"top_reflector" json:"top_reflector"`
}

// BlockDef describes the ring of reflector blocks around the pebble bed.
type BlockDef struct {
	Count       int     `yaml:"number_of_blocks" json:"number_of_blocks"`
	InnerRadius float64 `yaml:"inner_radius" json:"inner_radius"`
	OuterRadius float64 `yaml:"outer_radius" json:"outer_radius"`
}

// RodDef places control and safety rods. Insertion depths are measured
// down from the top of the pebble bed.
type RodDef struct {
	RadiusToCenter   float64 `yaml:"radius_to_center" json:"radius_to_center"`
	Radius           float64 `yaml:"radius" json:"radius"`
	CavityRadius     float64 `yaml:"cavity_radius" json:"cavity_radius"`
	ControlInsertion float64 `yaml:"cr_insertion_depth" json:"cr_insertion_depth"`
	SafetyInsertion  float64 `yaml:"sr_insertion_depth" json:"sr_insertion_depth"`
}

// RiserDef places the coolant riser channel in each block.
type RiserDef struct {
	RadiusToCenter float64 `yaml:"radius_to_center" json:"radius_to_center"`
	Radius         float64 `yaml:"radius" json:"radius"`
}

// DimpleDef describes the pockets cut into the inner block face.
type DimpleDef struct {
	AxialOffset float64 `yaml:"axial_offset" json:"axial_offset"`
	Radius      float64 `yaml:"radius" json:"radius"`
	Depth       float64 `yaml:"depth" json:"depth"`
	Count       int     `yaml:"count" json:"count"`
}

// PebbleBedDef describes the pebble bed, the pebble template and the
// pebble chute.
type PebbleBedDef struct {
	FileName          string            `yaml:"file_name" json:"file_name"`
	ShootRadius       float64           `yaml:"pebble_shoot_radius" json:"pebble_shoot_radius"`
	PebbleInnerRadius float64           `yaml:"pebble_inner_radius" json:"pebble_inner_radius"`
	PebbleOuterRadius float64           `yaml:"pebble_outer_radius" json:"pebble_outer_radius"`
	Temperature       float64           `yaml:"temperature" json:"temperature"`
	PassLimit         int               `yaml:"pass_limit" json:"pass_limit"`
	Kernel            pebble.KernelData `yaml:"kernel" json:"kernel"`
}

// OutputDef names the deck file.
type OutputDef struct {
	CoreFileName string `yaml:"core_file_name" json:"core_file_name"`
}
