// Package pebble tracks the physical state of individual pebbles as they
// move through a pebble-bed core: position, layered geometry, universe name
// history, temperature and cross-section bucket, and (for fuel) burnup.
package pebble

import (
	"errors"
	"fmt"
	"math"

	"github.com/pebblebed/kugel/pkg/geo"
	"github.com/pebblebed/kugel/pkg/xs"
)

// Kind tags the pebble variant.
type Kind int

const (
	Graphite Kind = iota
	Fuel
)

func (k Kind) String() string {
	switch k {
	case Graphite:
		return "graphite"
	case Fuel:
		return "fuel"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	DefaultInnerRadius = 2.5   // cm, outer radius of the matrix region
	DefaultTemperature = 900.0 // K
	DefaultPassLimit   = 6
)

// ErrNotFuel is returned when a fuel-only operation is applied to a graphite pebble.
var ErrNotFuel = errors.New("operation requires a fuel pebble")

// Position is a pebble location in core coordinates (cm). R is the radial
// distance from the core centerline.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	R float64 `json:"r"`
}

// NewPosition derives R from x and y.
func NewPosition(x, y, z float64) Position {
	return Position{X: x, Y: y, Z: z, R: geo.Radius(x, y)}
}

// MeshLocation buckets a position into a flow channel and an axial volume.
type MeshLocation struct {
	Channel int `json:"channel"`
	Volume  int `json:"volume"`
}

func (m MeshLocation) String() string {
	return fmt.Sprintf("c%dv%d", m.Channel, m.Volume)
}

// ParseMeshLocation parses the "c<channel>v<volume>" form produced by String.
func ParseMeshLocation(s string) (MeshLocation, error) {
	var m MeshLocation
	var rest string
	n, _ := fmt.Sscanf(s, "c%dv%d%s", &m.Channel, &m.Volume, &rest)
	if n != 2 || m.String() != s {
		return MeshLocation{}, fmt.Errorf("invalid mesh location %q", s)
	}
	return m, nil
}

// Layer is one nested spherical region. Volume is the volume of all
// instances of the layer minus everything inside it.
type Layer struct {
	Name      string  `json:"name"`
	Radius    float64 `json:"radius"`
	Instances int     `json:"instances"`
	Volume    float64 `json:"volume"`
}

// Params holds the construction inputs shared by both variants.
type Params struct {
	Number      int
	Position    Position
	Mesh        MeshLocation
	Radius      float64
	InnerRadius float64 // 0 selects DefaultInnerRadius
	Temperature float64 // 0 selects DefaultTemperature
	PassLimit   int     // 0 selects DefaultPassLimit
	Table       xs.Table // empty selects xs.Default()
}

// Pebble is a graphite or fuel pebble. Fuel is nil for graphite pebbles.
type Pebble struct {
	Kind             Kind         `json:"kind"`
	Number           int          `json:"number"`
	Position         Position     `json:"position"`
	Mesh             MeshLocation `json:"mesh"`
	Radius           float64      `json:"radius"`
	InnerRadius      float64      `json:"inner_radius"`
	Temperature      float64      `json:"temperature"`
	XS               xs.Set       `json:"xs"`
	Universe         string       `json:"universe"`
	PreviousUniverse string       `json:"previous_universe"`
	Passes           int          `json:"passes"`
	PassLimit        int          `json:"pass_limit"`
	Shuffled         bool         `json:"shuffled"`
	Layers           []Layer      `json:"layers"`
	Fuel             *FuelState   `json:"fuel,omitempty"`

	table xs.Table
}

// NewGraphite creates a graphite pebble with a matrix and a shell layer.
func NewGraphite(p Params) (*Pebble, error) {
	peb := newPebble(Graphite, p)
	peb.Layers = []Layer{
		{Name: "matrix", Radius: peb.InnerRadius, Instances: 1},
		{Name: "pebshell", Radius: peb.Radius, Instances: 1},
	}
	computeVolumes(peb.Layers)
	if err := peb.init(); err != nil {
		return nil, err
	}
	return peb, nil
}

func newPebble(kind Kind, p Params) *Pebble {
	table := p.Table
	if table.Len() == 0 {
		table = xs.Default()
	}
	inner := p.InnerRadius
	if inner == 0 {
		inner = DefaultInnerRadius
	}
	temp := p.Temperature
	if temp == 0 {
		temp = DefaultTemperature
	}
	passLimit := p.PassLimit
	if passLimit == 0 {
		passLimit = DefaultPassLimit
	}
	return &Pebble{
		Kind:        kind,
		Number:      p.Number,
		Position:    p.Position,
		Mesh:        p.Mesh,
		Radius:      p.Radius,
		InnerRadius: inner,
		Temperature: temp,
		PassLimit:   passLimit,
		table:       table,
	}
}

// init selects the initial cross-section bucket(s) and names the starting universe.
func (p *Pebble) init() error {
	if err := p.UpdateTemperature(p.Temperature, p.fuelTemperature()); err != nil {
		return fmt.Errorf("pebble %d: %w", p.Number, err)
	}
	p.PreviousUniverse = variants[p.Kind].prefix(p) + p.Mesh.String()
	p.Universe = nextUniverse(p, false)
	p.PreviousUniverse = p.Universe
	return nil
}

func (p *Pebble) fuelTemperature() float64 {
	if p.Fuel != nil {
		return p.Fuel.Temperature
	}
	return p.Temperature
}

// computeVolumes fills in layer volumes by nested-sphere subtraction. Radii
// are not checked: decreasing radii yield negative volumes.
func computeVolumes(layers []Layer) {
	previous := 0.0
	for i := range layers {
		sphere := 4.0 / 3.0 * math.Pi * math.Pow(layers[i].Radius, 3)
		total := sphere * float64(layers[i].Instances)
		layers[i].Volume = total - previous
		previous = total
	}
}

// Layer returns the named geometry layer.
func (p *Pebble) Layer(name string) (Layer, bool) {
	for _, l := range p.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// UpdatePosition moves the pebble and renames its universe. shuffled marks
// a discharge and reinsertion; otherwise the move is within the current pass.
func (p *Pebble) UpdatePosition(pos Position, mesh MeshLocation, shuffled bool) {
	p.Shuffled = shuffled
	p.Position = pos
	p.Mesh = mesh
	p.SetUniverse()
}

// SetUniverse renames the pebble from its previous universe and current
// mesh location, then records the result as the new previous universe.
func (p *Pebble) SetUniverse() {
	p.Universe = nextUniverse(p, p.Shuffled)
	p.PreviousUniverse = p.Universe
}

// SetPreviousUniverse overrides the recorded history, e.g. after a
// homogenization step collapses a group of pebbles onto one universe.
func (p *Pebble) SetPreviousUniverse(universe string) {
	p.PreviousUniverse = universe
}

// IncreasePass records another pass through the core.
func (p *Pebble) IncreasePass() {
	p.Passes++
}

// ExceedsPassLimit reports whether the pebble has made more passes than
// allowed. Discarding the pebble is up to the caller.
func (p *Pebble) ExceedsPassLimit() bool {
	return p.Passes > p.PassLimit
}

// SetXSSet returns the cross-section bucket for temperature.
func (p *Pebble) SetXSSet(temperature float64) (xs.Set, error) {
	return p.table.Lookup(temperature)
}

// UpdateTemperature sets the pebble temperature and re-derives the
// cross-section bucket(s). For fuel pebbles the optional fuelTemp sets the
// kernel temperature; it defaults to the pebble temperature. On error the
// pebble is left unchanged.
func (p *Pebble) UpdateTemperature(pebbleTemp float64, fuelTemp ...float64) error {
	ft := pebbleTemp
	if len(fuelTemp) > 0 {
		ft = fuelTemp[0]
	}
	return variants[p.Kind].temperature(p, pebbleTemp, ft)
}
