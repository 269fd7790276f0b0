package pebble

import (
	"errors"
	"fmt"

	"github.com/pebblebed/kugel/pkg/xs"
)

const (
	// HeavyMetalMass is the initial heavy-metal loading of a fuel pebble (kg).
	HeavyMetalMass = 0.007
	// KernelVolume is the volume attributed to one TRISO particle (cm³).
	KernelVolume = 0.0000402
)

// ErrMissingKernelLayer is returned when fuel kernel geometry lacks a required layer.
var ErrMissingKernelLayer = errors.New("missing TRISO kernel layer")

// KernelLayers lists the TRISO layers from the kernel outwards.
var KernelLayers = []string{"fuel", "buffer", "inner_pyc", "sic", "outer_pyc"}

// KernelData is the TRISO particle geometry: outer radius (cm) per layer and
// the number of particles in one pebble.
type KernelData struct {
	Layers    map[string]float64 `yaml:"layers" json:"layers"`
	PerPebble int                `yaml:"kernels_per_pebble" json:"kernels_per_pebble"`
}

// DefaultKernelData returns the reference TRISO geometry.
func DefaultKernelData() KernelData {
	return KernelData{
		Layers: map[string]float64{
			"fuel":      0.02125,
			"buffer":    0.03125,
			"inner_pyc": 0.03525,
			"sic":       0.03875,
			"outer_pyc": 0.04275,
		},
		PerPebble: 18775,
	}
}

// FuelParams holds the fuel-only construction inputs.
type FuelParams struct {
	Group       int         // homogenization group
	Temperature float64     // kernel temperature (K); 0 follows the pebble
	Kernel      *KernelData // nil selects DefaultKernelData
	Material    string
}

// FuelState is the fuel-only payload of a pebble.
type FuelState struct {
	Group        int        `json:"group"`
	Temperature  float64    `json:"temperature"`
	XS           xs.Set     `json:"xs"`
	Kernel       KernelData `json:"kernel"`
	Material     string     `json:"material,omitempty"`
	TrisoVolume  float64    `json:"triso_volume"`
	PowerDensity float64    `json:"power_density"`
	PowerDays    float64    `json:"power_days"`
	DaysInCore   float64    `json:"days_in_core"`
	Burnup       float64    `json:"burnup_mwd_kg"`
	BurnupJcm3   float64    `json:"burnup_j_cm3"`
}

// NewFuel creates a fuel pebble: five TRISO layers scaled by the kernel
// count, then the matrix and the shell.
func NewFuel(p Params, f FuelParams) (*Pebble, error) {
	kernel := DefaultKernelData()
	if f.Kernel != nil {
		kernel = *f.Kernel
	}
	if err := kernel.validate(); err != nil {
		return nil, fmt.Errorf("pebble %d: %w", p.Number, err)
	}

	peb := newPebble(Fuel, p)
	fuelTemp := f.Temperature
	if fuelTemp == 0 {
		fuelTemp = peb.Temperature
	}
	peb.Fuel = &FuelState{
		Group:       f.Group,
		Temperature: fuelTemp,
		Kernel:      kernel,
		Material:    f.Material,
		TrisoVolume: float64(kernel.PerPebble) * KernelVolume,
	}
	for _, name := range KernelLayers {
		peb.Layers = append(peb.Layers, Layer{Name: name, Radius: kernel.Layers[name], Instances: kernel.PerPebble})
	}
	peb.Layers = append(peb.Layers,
		Layer{Name: "matrix", Radius: peb.InnerRadius, Instances: 1},
		Layer{Name: "pebshell", Radius: peb.Radius, Instances: 1},
	)
	computeVolumes(peb.Layers)
	if err := peb.init(); err != nil {
		return nil, err
	}
	return peb, nil
}

func (k KernelData) validate() error {
	for _, name := range KernelLayers {
		if _, ok := k.Layers[name]; !ok {
			return fmt.Errorf("%w %q", ErrMissingKernelLayer, name)
		}
	}
	if k.PerPebble <= 0 {
		return fmt.Errorf("%w: kernels_per_pebble must be set", ErrMissingKernelLayer)
	}
	return nil
}

// UpdateBurnup accumulates power (W) over days. Power days and burnup only
// grow for non-negative inputs; nothing is ever reset.
func (p *Pebble) UpdateBurnup(power, days float64) error {
	if p.Fuel == nil {
		return ErrNotFuel
	}
	f := p.Fuel
	f.DaysInCore += days
	f.PowerDensity = power / 1e6 // W -> MW
	f.PowerDays += f.PowerDensity * days
	f.Burnup = f.PowerDays / HeavyMetalMass
	// MWd over kernel volume, converted to J (1e6 W/MW, 86400 s/day).
	f.BurnupJcm3 = f.PowerDays / f.TrisoVolume * 1e6 * 86400
	return nil
}

// SetFuelMaterial swaps the fuel material identifier, e.g. after depletion.
func (p *Pebble) SetFuelMaterial(material string) error {
	if p.Fuel == nil {
		return ErrNotFuel
	}
	p.Fuel.Material = material
	return nil
}
