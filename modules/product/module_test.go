package product_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/nodegraph/internal/catalog"
	"github.com/specialistvlad/nodegraph/internal/handlers"
	"github.com/specialistvlad/nodegraph/modules/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestManifest_MatchesHandlers(t *testing.T) {
	c := catalog.New()
	name, src := product.Module{}.Manifest()
	require.NoError(t, c.LoadSource(context.Background(), name, src))

	h := handlers.New()
	product.Module{}.Register(h)
	assert.Equal(t, c.Kinds(), h.Kinds())

	write, err := c.Describe("Write")
	require.NoError(t, err)
	assert.False(t, write.HasOutput())
	assert.Equal(t, []string{"sourceProduct"}, write.MandatoryInputs())
}

func TestOnRead(t *testing.T) {
	ctx := context.Background()

	p, err := product.OnRead(ctx, &product.ReadInput{File: "/data/S2A_scene.dim", Width: 10, Height: 20, Bands: []string{"B4"}})
	require.NoError(t, err)
	assert.Equal(t, "S2A_scene", p.Name)
	assert.Equal(t, []string{"B4"}, p.Bands)

	_, err = product.OnRead(ctx, &product.ReadInput{})
	assert.EqualError(t, err, "no file given")

	_, err = product.OnRead(ctx, &product.ReadInput{File: filepath.Join(t.TempDir(), "missing.dim"), Width: 1, Height: 1, MustExist: true})
	assert.ErrorContains(t, err, "cannot open product")
}

func TestOnWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "scene.yaml")
	src := &product.Product{Name: "scene", Width: 2, Height: 3, Bands: []string{"B1"}, Lineage: []string{"Read(scene.dim)"}}

	w, err := product.OnWrite(context.Background(), &product.WriteInput{File: target}, src)
	require.NoError(t, err)
	assert.Equal(t, target, w.Path)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var got product.Product
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, *src, got)
}

func TestAll_OrdersVariadicInputs(t *testing.T) {
	a := &product.Product{Name: "a"}
	b := &product.Product{Name: "b"}
	c := &product.Product{Name: "c"}

	got, err := product.All(map[string]any{
		"sourceProduct.10": c,
		"sourceProduct":    a,
		"sourceProduct.2":  b,
	})

	require.NoError(t, err)
	assert.Equal(t, []*product.Product{a, b, c}, got)

	_, err = product.All(map[string]any{"sourceProduct": "not a product"})
	assert.Error(t, err)
}
