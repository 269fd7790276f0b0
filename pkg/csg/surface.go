package csg

import (
	"errors"
	"fmt"
)

// ErrUnknownSurface is returned when a surface type or plane orientation
// token is not recognized.
var ErrUnknownSurface = errors.New("unknown surface type")

// CylinderType selects the cylinder axis.
type CylinderType string

const (
	CylinderX CylinderType = "cylx"
	CylinderY CylinderType = "cyly"
	CylinderZ CylinderType = "cylz"
	// CylinderV is a cylinder along an arbitrary direction (U, V, W).
	CylinderV CylinderType = "cylv"
)

// Span truncates an axis-aligned cylinder between two coordinates along its axis.
type Span struct {
	Lower float64
	Upper float64
}

// Cylinder describes a cylindrical surface.
type Cylinder struct {
	Name    string
	Type    CylinderType
	Radius  float64
	X, Y, Z float64 // offsets of the axis
	U, V, W float64 // direction vector, cylv only
	Span    *Span   // nil for an infinite cylinder; ignored by cylv
}

// Surface renders the cylinder. Every numeric parameter is rounded to
// Precision decimals before emission.
func (c Cylinder) Surface() (string, error) {
	r := func(v float64) string { return Num(Round(v, Precision)) }

	var span []string
	if c.Span != nil {
		span = []string{r(c.Span.Lower), r(c.Span.Upper)}
	}

	switch c.Type {
	case CylinderV:
		return line("surf", c.Name, string(c.Type),
			r(c.X), r(c.Y), r(c.Z), r(c.U), r(c.V), r(c.W), r(c.Radius)), nil
	case CylinderZ:
		return line(append([]string{"surf", c.Name, string(c.Type), r(c.X), r(c.Y), r(c.Radius)}, span...)...), nil
	case CylinderY:
		return line(append([]string{"surf", c.Name, string(c.Type), r(c.X), r(c.Z), r(c.Radius)}, span...)...), nil
	case CylinderX:
		return line(append([]string{"surf", c.Name, string(c.Type), r(c.Y), r(c.Z), r(c.Radius)}, span...)...), nil
	default:
		return "", fmt.Errorf("%w %q, select from cylv, cylx, cyly, cylz", ErrUnknownSurface, c.Type)
	}
}

// ZCylinder renders a truncated cylz surface.
func ZCylinder(name string, x, y, radius, lower, upper float64) string {
	// Surface only fails for an unknown type.
	s, _ := Cylinder{
		Name:   name,
		Type:   CylinderZ,
		Radius: radius,
		X:      x,
		Y:      y,
		Span:   &Span{Lower: lower, Upper: upper},
	}.Surface()
	return s
}

// VCylinder renders a cylinder through (x, y, z) along the direction (u, v, w).
func VCylinder(name string, x, y, z, u, v, w, radius float64) string {
	s, _ := Cylinder{
		Name:   name,
		Type:   CylinderV,
		Radius: radius,
		X:      x,
		Y:      y,
		Z:      z,
		U:      u,
		V:      v,
		W:      w,
	}.Surface()
	return s
}

// Cuboid renders an axis-aligned box.
func Cuboid(name string, xmin, xmax, ymin, ymax, zmin, zmax float64) string {
	return line(append([]string{"surf", name, "cuboid"}, nums(xmin, xmax, ymin, ymax, zmin, zmax)...)...)
}

// Plane renders a plane perpendicular to one of the axes ("x", "y" or "z").
func Plane(name, orientation string, position float64) (string, error) {
	switch orientation {
	case "x", "y", "z":
		return line("surf", name, "p"+orientation, Num(position)), nil
	default:
		return "", fmt.Errorf("%w: plane orientation %q, select from x, y, z", ErrUnknownSurface, orientation)
	}
}

// DirectedPlane renders a vertical plane through the origin given by the
// coefficients of its normal in the XY plane.
func DirectedPlane(name string, u, v float64) string {
	return line("surf", name, "plane", Num(u), Num(v))
}

// Pad renders an angular wedge of an annulus between two radii and two angles (degrees).
func Pad(name string, x, y, innerRadius, outerRadius, angle1, angle2 float64) string {
	return line(append([]string{"surf", name, "pad"}, nums(x, y, innerRadius, outerRadius, angle1, angle2)...)...)
}

// Sphere renders a sphere.
func Sphere(name string, x, y, z, radius float64) string {
	return line(append([]string{"surf", name, "sph"}, nums(x, y, z, radius)...)...)
}

// Cone renders a cone with its base at (x, y, z) and apex at z + height.
func Cone(name string, x, y, z, radius, height float64) string {
	return line(append([]string{"surf", name, "cone"}, nums(x, y, z, radius, height)...)...)
}

// Infinite renders the all-space surface.
func Infinite(name string) string {
	return line("surf", name, "inf")
}

// Rotate renders a surface transformation rotating surface by angle degrees
// about the axis (u, v, w) through origin.
func Rotate(surface string, origin [3]float64, axis [3]float64, angle float64) string {
	tokens := []string{"trans", "s", surface, "rot"}
	tokens = append(tokens, nums(origin[0], origin[1], origin[2], axis[0], axis[1], axis[2], angle)...)
	return line(tokens...)
}
