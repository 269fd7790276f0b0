package pebble

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pebblebed/kugel/pkg/xs"
)

func sphere(r float64) float64 { return 4.0 / 3.0 * math.Pi * r * r * r }

func newGraphite(t *testing.T, mesh MeshLocation) *Pebble {
	t.Helper()
	p, err := NewGraphite(Params{
		Number:   1,
		Position: NewPosition(10, 0, 100),
		Mesh:     mesh,
		Radius:   3.0,
	})
	require.NoError(t, err)
	return p
}

func newFuel(t *testing.T, group int, mesh MeshLocation) *Pebble {
	t.Helper()
	p, err := NewFuel(Params{
		Number:      2,
		Position:    NewPosition(0, 20, 50),
		Mesh:        mesh,
		Radius:      3.0,
		Temperature: 900,
		PassLimit:   6,
	}, FuelParams{Group: group, Temperature: 900, Material: "fuel_0"})
	require.NoError(t, err)
	return p
}

func TestGraphiteLayerVolumes(t *testing.T) {
	p := newGraphite(t, MeshLocation{Channel: 1, Volume: 2})
	require.Len(t, p.Layers, 2)

	matrix, ok := p.Layer("matrix")
	require.True(t, ok)
	assert.InDelta(t, sphere(2.5), matrix.Volume, 1e-9)

	shell, ok := p.Layer("pebshell")
	require.True(t, ok)
	assert.InDelta(t, 4.0/3.0*math.Pi*(27-15.625), shell.Volume, 1e-9)
}

func TestFuelLayerVolumes(t *testing.T) {
	p := newFuel(t, 0, MeshLocation{})
	k := DefaultKernelData()
	n := float64(k.PerPebble)

	names := make([]string, len(p.Layers))
	for i, l := range p.Layers {
		names[i] = l.Name
	}
	assert.Equal(t, []string{"fuel", "buffer", "inner_pyc", "sic", "outer_pyc", "matrix", "pebshell"}, names)

	fuel, _ := p.Layer("fuel")
	assert.InDelta(t, sphere(0.02125)*n, fuel.Volume, 1e-9)
	buffer, _ := p.Layer("buffer")
	assert.InDelta(t, (sphere(0.03125)-sphere(0.02125))*n, buffer.Volume, 1e-9)
	matrix, _ := p.Layer("matrix")
	assert.InDelta(t, sphere(2.5)-sphere(0.04275)*n, matrix.Volume, 1e-9)
	assert.InDelta(t, n*KernelVolume, p.Fuel.TrisoVolume, 1e-12)
}

func TestLayerVolumesSumToPebble(t *testing.T) {
	p := newFuel(t, 0, MeshLocation{})
	total := 0.0
	for _, l := range p.Layers {
		total += l.Volume
	}
	if math.Abs(total-sphere(3.0)) > 1e-9 {
		t.Errorf("total volume = %v, want %v", total, sphere(3.0))
	}
}

func TestInitialUniverse(t *testing.T) {
	g := newGraphite(t, MeshLocation{Channel: 1, Volume: 2})
	if g.Universe != "g_c1v2" {
		t.Errorf("graphite universe = %q, want g_c1v2", g.Universe)
	}
	if g.PreviousUniverse != g.Universe {
		t.Errorf("previous universe = %q, want %q", g.PreviousUniverse, g.Universe)
	}

	f := newFuel(t, 3, MeshLocation{Channel: 4, Volume: 0})
	if f.Universe != "f3_c4v0" {
		t.Errorf("fuel universe = %q, want f3_c4v0", f.Universe)
	}
}

func TestShuffleExtendsHistory(t *testing.T) {
	p := newGraphite(t, MeshLocation{Channel: 1, Volume: 2})

	p.UpdatePosition(NewPosition(0, 0, 0), MeshLocation{Channel: 2, Volume: 1}, true)
	assert.Equal(t, "g_c1v2_c2v1", p.Universe)

	before := strings.Count(p.Universe, "_")
	p.UpdatePosition(NewPosition(0, 0, 0), MeshLocation{Channel: 3, Volume: 4}, true)
	assert.Equal(t, "g_c1v2_c2v1_c3v4", p.Universe)
	assert.Equal(t, before+1, strings.Count(p.Universe, "_"))
	assert.True(t, p.Shuffled)
}

func TestInPassMoveReplacesLastLocation(t *testing.T) {
	p := newFuel(t, 0, MeshLocation{Channel: 1, Volume: 2})

	p.UpdatePosition(NewPosition(0, 0, 0), MeshLocation{Channel: 1, Volume: 3}, false)
	assert.Equal(t, "f0_c1v3", p.Universe)

	p.UpdatePosition(NewPosition(0, 0, 0), MeshLocation{Channel: 2, Volume: 1}, true)
	assert.Equal(t, "f0_c1v3_c2v1", p.Universe)

	for v := 2; v < 8; v++ {
		p.UpdatePosition(NewPosition(0, 0, 0), MeshLocation{Channel: 2, Volume: v}, false)
	}
	assert.Equal(t, "f0_c1v3_c2v7", p.Universe)
	assert.Equal(t, p.Universe, p.PreviousUniverse)
}

func TestSetPreviousUniverse(t *testing.T) {
	p := newFuel(t, 1, MeshLocation{Channel: 0, Volume: 0})
	p.SetPreviousUniverse("f1_h2_c0v0")
	p.UpdatePosition(NewPosition(0, 0, 0), MeshLocation{Channel: 5, Volume: 5}, false)
	if p.Universe != "f1_h2_c5v5" {
		t.Errorf("universe = %q, want f1_h2_c5v5", p.Universe)
	}
}

func TestUpdateBurnup(t *testing.T) {
	p := newFuel(t, 0, MeshLocation{})

	require.NoError(t, p.UpdateBurnup(1e6, 1))
	assert.InDelta(t, 1.0, p.Fuel.PowerDensity, 1e-12)
	assert.InDelta(t, 1.0, p.Fuel.PowerDays, 1e-12)
	assert.InDelta(t, 1.0/HeavyMetalMass, p.Fuel.Burnup, 1e-9)
	assert.InDelta(t, 1.0/p.Fuel.TrisoVolume*1e6*86400, p.Fuel.BurnupJcm3, 1e-3)
	assert.Equal(t, 1.0, p.Fuel.DaysInCore)
}

func TestBurnupAccumulatesMonotonically(t *testing.T) {
	p := newFuel(t, 0, MeshLocation{})
	steps := []struct{ power, days float64 }{
		{2500, 30}, {1800, 45.5}, {0, 10}, {3200, 30},
	}
	sum := 0.0
	prev := 0.0
	for _, s := range steps {
		require.NoError(t, p.UpdateBurnup(s.power, s.days))
		sum += s.power / 1e6 * s.days
		if p.Fuel.Burnup < prev {
			t.Fatalf("burnup decreased: %v -> %v", prev, p.Fuel.Burnup)
		}
		prev = p.Fuel.Burnup
	}
	assert.InDelta(t, sum, p.Fuel.PowerDays, 1e-12)
	assert.InDelta(t, sum/HeavyMetalMass, p.Fuel.Burnup, 1e-9)
	assert.InDelta(t, 115.5, p.Fuel.DaysInCore, 1e-12)
}

func TestGraphiteRejectsFuelOperations(t *testing.T) {
	p := newGraphite(t, MeshLocation{})
	if err := p.UpdateBurnup(1000, 1); !errors.Is(err, ErrNotFuel) {
		t.Errorf("UpdateBurnup err = %v, want ErrNotFuel", err)
	}
	if err := p.SetFuelMaterial("fuel_9"); !errors.Is(err, ErrNotFuel) {
		t.Errorf("SetFuelMaterial err = %v, want ErrNotFuel", err)
	}
}

func TestSetFuelMaterial(t *testing.T) {
	p := newFuel(t, 0, MeshLocation{})
	require.NoError(t, p.SetFuelMaterial("fuel_12"))
	assert.Equal(t, "fuel_12", p.Fuel.Material)
}

func TestUpdateTemperature(t *testing.T) {
	g := newGraphite(t, MeshLocation{})
	require.NoError(t, g.UpdateTemperature(1000))
	assert.Equal(t, 1000.0, g.Temperature)
	assert.Equal(t, 900, g.XS.Temperature)

	f := newFuel(t, 0, MeshLocation{})
	require.NoError(t, f.UpdateTemperature(700, 1250))
	assert.Equal(t, 600, f.XS.Temperature)
	assert.Equal(t, 1200, f.Fuel.XS.Temperature)
	assert.Equal(t, "12c", f.Fuel.XS.Library)

	require.NoError(t, f.UpdateTemperature(1500))
	assert.Equal(t, 1500.0, f.Fuel.Temperature)
	assert.Equal(t, 1500, f.Fuel.XS.Temperature)
}

func TestUpdateTemperatureBelowTableLeavesState(t *testing.T) {
	f := newFuel(t, 0, MeshLocation{})
	err := f.UpdateTemperature(950, 250)
	if !errors.Is(err, xs.ErrBelowTable) {
		t.Fatalf("err = %v, want ErrBelowTable", err)
	}
	if f.Temperature != 900 || f.Fuel.Temperature != 900 {
		t.Errorf("temperatures changed to %v/%v", f.Temperature, f.Fuel.Temperature)
	}
}

func TestConstructBelowTable(t *testing.T) {
	_, err := NewGraphite(Params{Radius: 3, Temperature: 280})
	if !errors.Is(err, xs.ErrBelowTable) {
		t.Errorf("err = %v, want ErrBelowTable", err)
	}
}

func TestCustomTable(t *testing.T) {
	table, err := xs.NewTable(
		xs.Set{Temperature: 250, Library: "02c", Scattering: "grph250"},
		xs.Set{Temperature: 900, Library: "09c", Scattering: "grph900"},
	)
	require.NoError(t, err)
	p, err := NewGraphite(Params{Radius: 3, Temperature: 280, Table: table})
	require.NoError(t, err)
	assert.Equal(t, "grph250", p.XS.Scattering)
}

func TestMissingKernelLayer(t *testing.T) {
	k := DefaultKernelData()
	delete(k.Layers, "sic")
	_, err := NewFuel(Params{Radius: 3}, FuelParams{Kernel: &k})
	if !errors.Is(err, ErrMissingKernelLayer) {
		t.Errorf("err = %v, want ErrMissingKernelLayer", err)
	}

	k = DefaultKernelData()
	k.PerPebble = 0
	_, err = NewFuel(Params{Radius: 3}, FuelParams{Kernel: &k})
	if !errors.Is(err, ErrMissingKernelLayer) {
		t.Errorf("err = %v, want ErrMissingKernelLayer", err)
	}
}

func TestPassLimit(t *testing.T) {
	p, err := NewGraphite(Params{Radius: 3, PassLimit: 2})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		p.IncreasePass()
		if p.ExceedsPassLimit() {
			t.Fatalf("exceeded after %d passes", p.Passes)
		}
	}
	p.IncreasePass()
	if !p.ExceedsPassLimit() {
		t.Error("expected pass limit exceeded after 3 passes")
	}
}

func TestDefaults(t *testing.T) {
	p, err := NewGraphite(Params{Radius: 3})
	require.NoError(t, err)
	assert.Equal(t, DefaultInnerRadius, p.InnerRadius)
	assert.Equal(t, DefaultTemperature, p.Temperature)
	assert.Equal(t, DefaultPassLimit, p.PassLimit)
	assert.Equal(t, "g_c0v0", p.Universe)
}

func TestNewPositionRadius(t *testing.T) {
	pos := NewPosition(3, 4, 12)
	assert.InDelta(t, 5.0, pos.R, 1e-12)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "graphite", Graphite.String())
	assert.Equal(t, "fuel", Fuel.String())
}

func TestParseMeshLocation(t *testing.T) {
	m, err := ParseMeshLocation("c12v3")
	require.NoError(t, err)
	assert.Equal(t, MeshLocation{Channel: 12, Volume: 3}, m)

	for _, bad := range []string{"", "c1", "v1c2", "c1v2x", "c01v2", "x1v2"} {
		_, err := ParseMeshLocation(bad)
		assert.Error(t, err, bad)
	}
}
