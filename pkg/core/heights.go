package core

import "github.com/pebblebed/kugel/pkg/config"

// Segment is an axial interval [Lower, Upper] in cm.
type Segment struct {
	Name  string  `json:"name"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Height returns Upper - Lower.
func (s Segment) Height() float64 { return s.Upper - s.Lower }

// Heights holds every derived axial boundary. The stacked segments chain
// from LowerModel: each starts where the one below it ends. The pebble
// chute, rods and risers overlap the stack.
type Heights struct {
	LowerModel      float64 `json:"lower_model"`
	ModelUpper      float64 `json:"model_upper"`
	BottomReflector Segment `json:"bottom_reflector"`
	OutletPlenum    Segment `json:"outlet_plenum"`
	OutletChannel   Segment `json:"outlet_channel"`
	PebbleBed       Segment `json:"pebble_bed"`
	Cavity          Segment `json:"cavity"`
	TopReflector    Segment `json:"top_reflector"`
	PebbleShoot     Segment `json:"pebble_shoot"`
	ControlRod      Segment `json:"control_rod"`
	Riser           Segment `json:"riser"`
}

// ComputeHeights derives all boundaries. The pebble bed starts at z = 0
// when every segment below it has its configured height.
func ComputeHeights(h config.AxialHeights) Heights {
	var out Heights
	out.LowerModel = -(h.BottomReflector + h.ConusChannel + h.OutletPlenum)

	z := out.LowerModel
	next := func(name string, height float64) Segment {
		s := Segment{Name: name, Lower: z, Upper: z + height}
		z = s.Upper
		return s
	}
	out.BottomReflector = next("bottom_reflector", h.BottomReflector)
	out.OutletPlenum = next("outlet_plenum", h.OutletPlenum)
	out.OutletChannel = next("outlet_channel", h.ConusChannel)
	out.PebbleBed = next("pebble_bed", h.PebbleBed)
	out.Cavity = next("cavity", h.Cavity)
	out.TopReflector = next("top_reflector", h.TopReflector)
	out.ModelUpper = z

	out.PebbleShoot = Segment{Name: "pebble_shoot", Lower: out.LowerModel, Upper: out.LowerModel + h.PebbleChute}
	out.ControlRod = Segment{Name: "control_rod", Lower: out.PebbleBed.Lower, Upper: out.ModelUpper}
	out.Riser = Segment{Name: "riser", Lower: out.PebbleBed.Lower, Upper: out.Cavity.Upper}
	return out
}

// AxialSegments lists the stacked segments present in the given mode,
// bottom to top. The simplified core has no outlet plenum, outlet channel
// or cavity.
func (h Heights) AxialSegments(simple bool) []Segment {
	if simple {
		return []Segment{h.BottomReflector, h.PebbleBed, h.TopReflector}
	}
	return []Segment{h.BottomReflector, h.OutletPlenum, h.OutletChannel, h.PebbleBed, h.Cavity, h.TopReflector}
}
