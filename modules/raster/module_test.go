package raster_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/nodegraph/internal/catalog"
	"github.com/specialistvlad/nodegraph/internal/handlers"
	"github.com/specialistvlad/nodegraph/modules/product"
	"github.com/specialistvlad/nodegraph/modules/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scene(name string, w, h int, bands ...string) *product.Product {
	return &product.Product{Name: name, Width: w, Height: h, Bands: bands}
}

func TestManifest_MatchesHandlers(t *testing.T) {
	c := catalog.New()
	name, src := raster.Module{}.Manifest()
	require.NoError(t, c.LoadSource(context.Background(), name, src))

	h := handlers.New()
	raster.Module{}.Register(h)
	assert.Equal(t, c.Kinds(), h.Kinds())

	bm, err := c.Describe("BandMaths")
	require.NoError(t, err)
	assert.True(t, bm.IsVariadic())
	assert.Equal(t, 1, bm.MinInputs())

	merge, err := c.Describe("Merge")
	require.NoError(t, err)
	assert.Equal(t, 2, merge.MinInputs())
	assert.Equal(t, 1, merge.VariadicStart())

	stack, err := c.Describe("Stack")
	require.NoError(t, err)
	assert.True(t, stack.HasFixedInputs())
	assert.Equal(t, 2, stack.MaxInputs())
}

func TestOnSubset(t *testing.T) {
	src := scene("s", 100, 50, "B1", "B2")
	ctx := context.Background()

	testCases := []struct {
		name    string
		input   raster.SubsetInput
		wantW   int
		wantH   int
		bands   []string
		wantErr string
	}{
		{name: "full extent", wantW: 100, wantH: 50, bands: []string{"B1", "B2"}},
		{name: "region", input: raster.SubsetInput{Region: "10, 10, 20, 5"}, wantW: 20, wantH: 5, bands: []string{"B1", "B2"}},
		{name: "band selection", input: raster.SubsetInput{Bands: []string{"B2"}}, wantW: 100, wantH: 50, bands: []string{"B2"}},
		{name: "region too large", input: raster.SubsetInput{Region: "90,0,20,5"}, wantErr: "exceeds"},
		{name: "malformed region", input: raster.SubsetInput{Region: "1,2"}, wantErr: "x,y,width,height"},
		{name: "unknown band", input: raster.SubsetInput{Bands: []string{"B9"}}, wantErr: "not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := raster.OnSubset(ctx, &tc.input, src)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantW, out.Width)
			assert.Equal(t, tc.wantH, out.Height)
			assert.Equal(t, tc.bands, out.Bands)
			assert.Equal(t, []string{"Subset"}, out.Lineage)
		})
	}
}

func TestOnBandMaths(t *testing.T) {
	ctx := context.Background()
	in := &raster.BandMathsInput{Expression: "B1 * 2", TargetBand: "ndvi"}

	out, err := raster.OnBandMaths(ctx, in, []*product.Product{scene("a", 5, 5, "B1"), scene("b", 5, 5, "B1")})
	require.NoError(t, err)
	assert.Equal(t, []string{"ndvi"}, out.Bands)

	_, err = raster.OnBandMaths(ctx, in, []*product.Product{scene("a", 5, 5), scene("b", 6, 5)})
	assert.ErrorContains(t, err, "differ in size")

	_, err = raster.OnBandMaths(ctx, &raster.BandMathsInput{}, []*product.Product{scene("a", 5, 5)})
	assert.ErrorContains(t, err, "empty")
}

func TestOnMergeCollocateStack(t *testing.T) {
	ctx := context.Background()
	master := scene("m", 4, 4, "B1")
	slave := scene("s", 4, 4, "B1", "B2")

	merged, err := raster.OnMerge(ctx, master, []*product.Product{slave})
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "B2"}, merged.Bands)

	col, err := raster.OnCollocate(ctx, &raster.CollocateInput{SlaveSuffix: "_S"}, master, slave)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "B1_S", "B2_S"}, col.Bands)

	alone, err := raster.OnCollocate(ctx, &raster.CollocateInput{}, master, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, alone.Bands)

	stack, err := raster.OnStack(ctx, []*product.Product{master, slave})
	require.NoError(t, err)
	assert.Equal(t, []string{"B1", "B1_slv", "B2_slv"}, stack.Bands)

	_, err = raster.OnStack(ctx, []*product.Product{master})
	assert.Error(t, err)
}
