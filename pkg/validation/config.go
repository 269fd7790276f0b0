package validation

import (
	"fmt"

	"github.com/pebblebed/kugel/pkg/config"
	"github.com/pebblebed/kugel/pkg/pebble"
)

// ValidateConfig performs schema and geometry checks on a reactor config
// before anything is assembled.
func ValidateConfig(c *config.ReactorConfig) *Report {
	r := NewReport()

	validateBlocks(c, r)
	validateHeights(c, r)
	validateDimples(c, r)
	validateRods(c, r)
	validateRisers(c, r)
	validatePebbles(c, r)
	validateCrossSections(c, r)
	validateOutput(c, r)

	return r
}

func validateBlocks(c *config.ReactorConfig, r *Report) {
	b := c.Blocks
	if b.Count <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "number_of_blocks must be greater than 0",
			ConfigPath:  "blocks.number_of_blocks",
			ActualValue: b.Count,
			Expected:    "> 0",
		})
	}
	if b.InnerRadius <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "block inner radius must be positive",
			ConfigPath:  "blocks.inner_radius",
			ActualValue: b.InnerRadius,
			Expected:    "> 0",
		})
	}
	if b.OuterRadius <= b.InnerRadius {
		r.AddError(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("block outer radius (%.2f) must exceed inner radius (%.2f)", b.OuterRadius, b.InnerRadius),
			ConfigPath:  "blocks.outer_radius",
			ActualValue: b.OuterRadius,
			Expected:    fmt.Sprintf("> %.2f", b.InnerRadius),
		})
	}
}

func validateHeights(c *config.ReactorConfig, r *Report) {
	h := c.Heights
	heights := []struct {
		name  string
		value float64
	}{
		{"bottom_reflector", h.BottomReflector},
		{"outlet_plenum", h.OutletPlenum},
		{"conus_channel", h.ConusChannel},
		{"conus", h.Conus},
		{"pebble_chute", h.PebbleChute},
		{"pebble_bed", h.PebbleBed},
		{"cavity", h.Cavity},
		{"top_reflector", h.TopReflector},
	}
	for _, seg := range heights {
		if seg.value < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("heights.%s must be non-negative", seg.name),
				ConfigPath:  "heights." + seg.name,
				ActualValue: seg.value,
				Expected:    ">= 0",
			})
		}
	}
	if h.PebbleBed == 0 {
		r.AddError(Result{
			Level:      LevelSchema,
			Message:    "pebble bed height must be greater than 0",
			ConfigPath: "heights.pebble_bed",
			Expected:   "> 0",
		})
	}
	if !c.Options.SimpleCore && h.Conus > h.ConusChannel {
		r.AddWarning(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("conus height (%.2f) exceeds outlet channel height (%.2f)", h.Conus, h.ConusChannel),
			ConfigPath:  "heights.conus",
			ActualValue: h.Conus,
			Expected:    fmt.Sprintf("<= %.2f", h.ConusChannel),
		})
	}
}

func validateDimples(c *config.ReactorConfig, r *Report) {
	d := c.Dimples
	if d.Count < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "dimple count must be non-negative",
			ConfigPath:  "dimples.count",
			ActualValue: d.Count,
			Expected:    ">= 0",
		})
	}
	if !c.Options.CreateDimples {
		return
	}
	if d.Count == 0 {
		r.AddInfo(Result{
			Level:      LevelGeometry,
			Message:    "dimples enabled with zero count; no dimples will be cut",
			ConfigPath: "dimples.count",
		})
	}
	if d.Radius <= 0 || d.Depth <= 0 {
		r.AddError(Result{
			Level:      LevelSchema,
			Message:    "dimple radius and depth must be positive",
			ConfigPath: "dimples",
			Expected:   "radius > 0, depth > 0",
		})
	}
	top := d.AxialOffset + d.Radius + float64(d.Count-1)*d.Radius*4
	if d.Count > 0 && top > c.Heights.PebbleBed {
		r.AddWarning(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("highest dimple (%.2f) is above the pebble bed (%.2f)", top, c.Heights.PebbleBed),
			ConfigPath:  "dimples.count",
			ActualValue: d.Count,
		})
	}
}

func validateRods(c *config.ReactorConfig, r *Report) {
	if c.Options.SimpleCore {
		return
	}
	rod := c.Rods
	if rod.Radius <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "control rod radius must be positive",
			ConfigPath:  "control_rods.radius",
			ActualValue: rod.Radius,
			Expected:    "> 0",
		})
	}
	if rod.CavityRadius < rod.Radius {
		r.AddError(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("rod cavity radius (%.2f) is smaller than rod radius (%.2f)", rod.CavityRadius, rod.Radius),
			ConfigPath:  "control_rods.cavity_radius",
			ActualValue: rod.CavityRadius,
			Expected:    fmt.Sprintf(">= %.2f", rod.Radius),
		})
	}
	checkInsideBlock(c, r, "control_rods", rod.RadiusToCenter, rod.CavityRadius)
	for _, depth := range []struct {
		path  string
		value float64
	}{
		{"control_rods.cr_insertion_depth", rod.ControlInsertion},
		{"control_rods.sr_insertion_depth", rod.SafetyInsertion},
	} {
		if depth.value > c.Heights.PebbleBed {
			r.AddWarning(Result{
				Level:       LevelGeometry,
				Message:     "rod inserted below the bottom of the pebble bed",
				ConfigPath:  depth.path,
				ActualValue: depth.value,
				Expected:    fmt.Sprintf("<= %.2f", c.Heights.PebbleBed),
			})
		}
	}
}

func validateRisers(c *config.ReactorConfig, r *Report) {
	if c.Options.SimpleCore {
		return
	}
	if c.Risers.Radius <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "riser radius must be positive",
			ConfigPath:  "risers.radius",
			ActualValue: c.Risers.Radius,
			Expected:    "> 0",
		})
	}
	checkInsideBlock(c, r, "risers", c.Risers.RadiusToCenter, c.Risers.Radius)
}

// checkInsideBlock warns when a channel of the given radius centered at
// center does not fit radially inside the block ring.
func checkInsideBlock(c *config.ReactorConfig, r *Report, path string, center, radius float64) {
	b := c.Blocks
	if center-radius < b.InnerRadius || center+radius > b.OuterRadius {
		r.AddWarning(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("%s channel [%.2f, %.2f] extends outside the block ring [%.2f, %.2f]", path, center-radius, center+radius, b.InnerRadius, b.OuterRadius),
			ConfigPath:  path + ".radius_to_center",
			ActualValue: center,
		})
	}
}

func validatePebbles(c *config.ReactorConfig, r *Report) {
	p := c.PebbleBed
	if p.FileName == "" {
		r.AddError(Result{
			Level:      LevelSchema,
			Message:    "pebble bed file name is required",
			ConfigPath: "pebble_bed.file_name",
		})
	}
	if p.PebbleInnerRadius >= p.PebbleOuterRadius {
		r.AddWarning(Result{
			Level:       LevelGeometry,
			Message:     "pebble inner radius is not smaller than outer radius; shell volume will be non-positive",
			ConfigPath:  "pebble_bed.pebble_inner_radius",
			ActualValue: p.PebbleInnerRadius,
			Expected:    fmt.Sprintf("< %.2f", p.PebbleOuterRadius),
		})
	}
	if !c.Options.SimpleCore && p.ShootRadius >= c.Blocks.InnerRadius {
		r.AddWarning(Result{
			Level:       LevelGeometry,
			Message:     "pebble chute is wider than the pebble bed",
			ConfigPath:  "pebble_bed.pebble_shoot_radius",
			ActualValue: p.ShootRadius,
			Expected:    fmt.Sprintf("< %.2f", c.Blocks.InnerRadius),
		})
	}

	k := p.Kernel
	prev := 0.0
	for _, name := range pebble.KernelLayers {
		radius, ok := k.Layers[name]
		if !ok {
			r.AddError(Result{
				Level:      LevelSchema,
				Message:    fmt.Sprintf("kernel layer %q is missing", name),
				ConfigPath: "pebble_bed.kernel.layers." + name,
			})
			continue
		}
		if radius <= prev {
			r.AddWarning(Result{
				Level:       LevelGeometry,
				Message:     fmt.Sprintf("kernel layer %q radius does not increase outward", name),
				ConfigPath:  "pebble_bed.kernel.layers." + name,
				ActualValue: radius,
				Expected:    fmt.Sprintf("> %g", prev),
			})
		}
		prev = radius
	}
	if k.PerPebble <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "kernels_per_pebble must be greater than 0",
			ConfigPath:  "pebble_bed.kernel.kernels_per_pebble",
			ActualValue: k.PerPebble,
			Expected:    "> 0",
		})
	}
}

func validateCrossSections(c *config.ReactorConfig, r *Report) {
	table, err := c.XSTable()
	if err != nil {
		r.AddError(Result{
			Level:      LevelSchema,
			Message:    err.Error(),
			ConfigPath: "cross_sections",
		})
		return
	}
	if _, err := table.Lookup(c.PebbleBed.Temperature); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("pebble temperature has no cross-section bucket: %v", err),
			ConfigPath:  "pebble_bed.temperature",
			ActualValue: c.PebbleBed.Temperature,
		})
	}
}

func validateOutput(c *config.ReactorConfig, r *Report) {
	if c.Output.CoreFileName == "" {
		r.AddError(Result{
			Level:      LevelSchema,
			Message:    "core file name is required",
			ConfigPath: "output.core_file_name",
		})
	}
}
