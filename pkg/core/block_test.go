package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pebblebed/kugel/pkg/config"
)

func blockAssembler(opts BlockOptions) *BlockAssembler {
	cfg := config.Defaults().Effective()
	return NewBlockAssembler(cfg, ComputeHeights(cfg.Heights), 20, opts)
}

func subregionNames(b Block) []string {
	out := make([]string, len(b.Subregions))
	for i, s := range b.Subregions {
		out[i] = s.Name
	}
	return out
}

func TestBlockDimplesDisabled(t *testing.T) {
	blk := blockAssembler(BlockOptions{Rods: true, Risers: true}).Build(0, 90)

	_, ok := blk.Subregion(SubDimples)
	assert.False(t, ok, "dimples subregion should not exist")
	for _, s := range blk.Subregions {
		for _, k := range Kinds {
			assert.NotContains(t, s.Text(k), "_d0_", "subregion %s %s", s.Name, k)
		}
	}

	cavity, ok := blk.Subregion(SubRodCavity)
	require.True(t, ok)
	assert.Equal(t, "cell block_0_cr_cavity_c block_0_cr_cavity_u helium -block_0_cr_cavity_s #block_0_cr_c\n", cavity.Cells)

	riser, ok := blk.Subregion(SubRiser)
	require.True(t, ok)
	assert.NotContains(t, riser.Cells, "#")

	assert.Equal(t, []string{"block_0_cr_c", "block_0_cr_cavity_c", "block_0_riser_c"}, blk.Skip)
}

func TestBlockOrderingAndSkipList(t *testing.T) {
	blk := blockAssembler(BlockOptions{Dimples: true, Rods: true, Risers: true}).Build(3, 150)

	assert.Equal(t, []string{SubBlock, SubDimples, SubRod, SubRodCavity, SubRiser}, subregionNames(blk))

	var want []string
	for n := 0; n < 12; n++ {
		want = append(want, fmt.Sprintf("block_3_d%d_c", n))
	}
	want = append(want, "block_3_sr_c", "block_3_cr_cavity_c", "block_3_riser_c")
	if diff := cmp.Diff(want, blk.Skip); diff != "" {
		t.Errorf("skip list mismatch (-want +got):\n%s", diff)
	}

	shell, _ := blk.Subregion(SubBlock)
	exclusions := "#" + strings.Join(want, " #")
	assert.Equal(t, "cell block_3_c block_3_u reflector -block_3_s "+exclusions+"\n", shell.Cells)
	assert.Equal(t, "cell block_3_u 0 fill block_3_u -block_3_s "+exclusions+"\n", shell.Universes)

	// The cavity excludes only the rod, not the dimples built before it.
	cavity, _ := blk.Subregion(SubRodCavity)
	assert.True(t, strings.HasSuffix(cavity.Cells, "-block_3_cr_cavity_s #block_3_sr_c\n"), cavity.Cells)
}

func TestBlockShellOnly(t *testing.T) {
	blk := blockAssembler(BlockOptions{}).Build(0, 90)
	require.Len(t, blk.Subregions, 1)
	want := Fragment{
		Surfaces:  "surf block_0_s pad 0.0 0.0 120.0 206.6 90.0 110.0\n",
		Cells:     "cell block_0_c block_0_u reflector -block_0_s\n",
		Universes: "cell block_0_u 0 fill block_0_u -block_0_s\n",
	}
	if diff := cmp.Diff(want, blk.Subregions[0].Fragment); diff != "" {
		t.Errorf("shell mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, blk.Skip)
}

func TestBlockRodParity(t *testing.T) {
	ba := blockAssembler(BlockOptions{Rods: true})

	even, _ := ba.Build(0, 90).Subregion(SubRod)
	assert.Equal(t, "surf block_0_cr_s cylz -23.09521 -130.97943 6.25 893.0 1024.8\n", even.Surfaces)
	assert.Equal(t, "cell block_0_cr_c block_0_cr_u control_rod -block_0_cr_s\n", even.Cells)
	assert.Equal(t, "cell block_0_cr_u 0 fill block_0_cr_u -block_0_cr_s\n", even.Universes)

	// Safety rods sit above the bed top by the negative insertion depth.
	odd, _ := ba.Build(1, 110).Subregion(SubRod)
	assert.Contains(t, odd.Surfaces, "surf block_1_sr_s cylz ")
	assert.True(t, strings.HasSuffix(odd.Surfaces, " 6.25 918.0 1024.8\n"), odd.Surfaces)
	assert.Equal(t, "cell block_1_sr_c block_1_sr_u safety_rod -block_1_sr_s\n", odd.Cells)
}

func TestBlockChannelsShareAngle(t *testing.T) {
	blk := blockAssembler(BlockOptions{Rods: true, Risers: true}).Build(0, 90)
	rod, _ := blk.Subregion(SubRod)
	cavity, _ := blk.Subregion(SubRodCavity)
	riser, _ := blk.Subregion(SubRiser)

	rodF := strings.Fields(rod.Surfaces)
	cavF := strings.Fields(cavity.Surfaces)
	assert.Equal(t, rodF[3:5], cavF[3:5], "rod and cavity share an axis")
	assert.Equal(t, []string{"6.5", "0.0", "1024.8"}, cavF[5:])

	riserF := strings.Fields(riser.Surfaces)
	assert.Equal(t, []string{"8.5", "0.0", "938.8"}, riserF[5:])
}

func TestDimpleColumnParity(t *testing.T) {
	ba := blockAssembler(BlockOptions{Dimples: true})

	dimpleZ := func(blk Block, n int) string {
		d, ok := blk.Subregion(SubDimples)
		require.True(t, ok)
		prefix := fmt.Sprintf("surf block_%d_d%d_s cylv ", blk.ID, n)
		for _, ln := range strings.Split(d.Surfaces, "\n") {
			if strings.HasPrefix(ln, prefix) {
				return strings.Fields(ln)[5]
			}
		}
		t.Fatalf("dimple %d not found in block %d", n, blk.ID)
		return ""
	}

	even := ba.Build(0, 90)
	assert.Equal(t, "38.0", dimpleZ(even, 0))
	assert.Equal(t, "108.0", dimpleZ(even, 1))

	odd := ba.Build(1, 110)
	assert.Equal(t, "70.0", dimpleZ(odd, 0))
	assert.Equal(t, "140.0", dimpleZ(odd, 1))

	d, _ := even.Subregion(SubDimples)
	assert.Len(t, d.CellNames, 12)
	assert.Equal(t, 13, strings.Count(d.Surfaces, "\n"), "plane plus one cylinder per dimple")
	assert.Contains(t, d.Cells, "cell block_0_d11_c pebbles_u fill pebble_bed -block_0_d11_s -outer_dimple inner_dimple block_0_plane\n")
	assert.Contains(t, d.Universes, "cell block_0_d11_u 0 fill pebbles_u -block_0_d11_s -outer_dimple inner_dimple block_0_plane\n")
}
