package config

import (
	"github.com/pebblebed/kugel/pkg/pebble"
	"github.com/pebblebed/kugel/pkg/xs"
)

// Defaults returns the reference reactor model.
func Defaults() *ReactorConfig {
	return &ReactorConfig{
		ConfigVersion: "0.1.0",
		Options: Options{
			SimpleCore:    false,
			CreateDimples: true,
		},
		Materials: Materials{
			Block:            "reflector",
			PebbleShoot:      "pebble_shoot",
			OutletPlenum:     "outlet_plenum",
			OutletChannel:    "outlet_channel",
			SafetyRod:        "safety_rod",
			ControlRod:       "control_rod",
			ControlRodCavity: "helium",
			Riser:            "helium",
			Cavity:           "helium",
			BottomReflector:  "reflector",
			TopReflector:     "reflector",
			Coolant:          "helium",
		},
		Heights: AxialHeights{
			BottomReflector: 58.4,
			OutletPlenum:    96.7,
			ConusChannel:    85.438,
			Conus:           70.772,
			ConusZOffset:    0,
			PebbleChute:     185.1,
			PebbleBed:       893.0,
			Cavity:          45.8,
			TopReflector:    86.0,
		},
		Blocks: BlockDef{
			Count:       18,
			InnerRadius: 120.0,
			OuterRadius: 206.6,
		},
		Rods: RodDef{
			RadiusToCenter:   133,
			Radius:           6.25,
			CavityRadius:     6.5,
			ControlInsertion: 0.0,
			SafetyInsertion:  -25.0,
		},
		Risers: RiserDef{
			RadiusToCenter: 178.5,
			Radius:         8.5,
		},
		Dimples: DimpleDef{
			AxialOffset: 20.5,
			Radius:      17.5,
			Depth:       3.0,
			Count:       12,
		},
		PebbleBed: PebbleBedDef{
			FileName:          "pf61_Step1.pbed",
			ShootRadius:       26.0,
			PebbleInnerRadius: pebble.DefaultInnerRadius,
			PebbleOuterRadius: 3.0,
			Temperature:       pebble.DefaultTemperature,
			PassLimit:         pebble.DefaultPassLimit,
			Kernel:            pebble.DefaultKernelData(),
		},
		CrossSections: xs.Default().Sets(),
		Output: OutputDef{
			CoreFileName: "pbr_structure.inp",
		},
	}
}

// Effective returns the configuration the assembler builds from. The
// simplified core drops the conus, outlet plenum, outlet channel and cavity,
// so their heights are zeroed.
func (c ReactorConfig) Effective() ReactorConfig {
	if c.Options.SimpleCore {
		c.Heights.Conus = 0
		c.Heights.ConusChannel = 0
		c.Heights.OutletPlenum = 0
		c.Heights.Cavity = 0
	}
	return c
}

// XSTable builds the cross-section table.
func (c ReactorConfig) XSTable() (xs.Table, error) {
	return xs.NewTable(c.CrossSections...)
}

// PebbleParams returns construction inputs for a pebble at the configured
// template radius, temperature and pass limit.
func (c ReactorConfig) PebbleParams() (pebble.Params, error) {
	table, err := c.XSTable()
	if err != nil {
		return pebble.Params{}, err
	}
	return pebble.Params{
		Radius:      c.PebbleBed.PebbleOuterRadius,
		InnerRadius: c.PebbleBed.PebbleInnerRadius,
		Temperature: c.PebbleBed.Temperature,
		PassLimit:   c.PebbleBed.PassLimit,
		Table:       table,
	}, nil
}
