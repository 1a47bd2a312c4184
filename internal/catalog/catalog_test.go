package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_RegisterDescribe(t *testing.T) {
	c := New()
	md := c.MustRegister(Definition{Kind: "Read", Output: &Output{}})

	got, err := c.Describe("Read")
	require.NoError(t, err)
	assert.Same(t, md, got)

	_, err = c.Describe("Write")
	assert.ErrorIs(t, err, ErrUnknownOperator)

	assert.ErrorIs(t, c.Register(md), ErrDuplicateOperator)
	assert.ErrorIs(t, c.Register(nil), ErrInvalidMetadata)
	assert.Panics(t, func() { c.MustRegister(Definition{Kind: "Read"}) })
}

func TestCatalog_Kinds(t *testing.T) {
	c := New()
	c.MustRegister(Definition{Kind: "Write"})
	c.MustRegister(Definition{Kind: "BandMaths"})
	c.MustRegister(Definition{Kind: "Read"})

	assert.Equal(t, []string{"BandMaths", "Read", "Write"}, c.Kinds())
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_Search(t *testing.T) {
	c := New()
	c.MustRegister(Definition{Kind: "Read", Label: "Read", Category: "Input-Output"})
	c.MustRegister(Definition{Kind: "Write", Label: "Write", Category: "Input-Output"})
	c.MustRegister(Definition{Kind: "BandMaths", Label: "Band Maths", Category: "Raster"})
	c.MustRegister(Definition{Kind: "BandSelect", Label: "Band Select", Category: "Raster"})

	matches := c.Search("read")
	require.Len(t, matches, 1)
	assert.Equal(t, "Read", matches[0].Metadata.Kind())
	assert.Equal(t, 1.0, matches[0].Score)

	matches = c.Search("input")
	require.Len(t, matches, 2, "category-only hits score zero but still match")
	assert.Equal(t, 0.0, matches[0].Score)
	assert.Equal(t, "Read", matches[0].Metadata.Label())

	matches = c.Search("BAND maths")
	require.Len(t, matches, 2)
	assert.Equal(t, "BandMaths", matches[0].Metadata.Kind(), "longest keyword wins")

	assert.Empty(t, c.Search("   "))
	assert.Empty(t, c.Search("sar"))
}
