package preview

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/domain"
)

func TestRenderEncodesWebP(t *testing.T) {
	g := domain.NewGrid(4, 3, 0)
	g.Set(0, 0, catalog.Placeholder)
	g.Set(1, 1, 0xA0)
	g.Set(1, 2, 0xB6)
	g.Set(2, 3, catalog.InnerBorder)

	data, err := NewWebP(1).Render(context.Background(), g, nil)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("RIFF")))
	require.Contains(t, string(data[:16]), "WEBP")
}

func TestRenderAppliesOverlay(t *testing.T) {
	g := domain.NewGrid(2, 2, 0)
	g.Set(0, 0, catalog.Placeholder)

	plain, err := NewWebP(1).Render(context.Background(), g, nil)
	require.NoError(t, err)
	overlaid, err := NewWebP(1).Render(context.Background(), g, domain.Assignment{
		{Row: 0, Col: 0}: 0xA0,
	})
	require.NoError(t, err)
	assert.NotEqual(t, plain, overlaid)
}

func TestRenderScaleGrowsOutput(t *testing.T) {
	g := domain.NewGrid(3, 3, 0)
	g.Set(1, 1, 0xA1)

	small, err := NewWebP(1).Render(context.Background(), g, nil)
	require.NoError(t, err)
	big, err := NewWebP(8).Render(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Greater(t, len(big), len(small))
}

func TestRenderEmptyGrid(t *testing.T) {
	_, err := NewWebP(1).Render(context.Background(), nil, nil)
	require.Error(t, err)
	_, err = NewWebP(1).Render(context.Background(), &domain.Grid{}, nil)
	require.Error(t, err)
}

func TestTileColorBuckets(t *testing.T) {
	assert.Equal(t, colorPlaceholder, tileColor(catalog.Placeholder))
	assert.Equal(t, colorInnerBorder, tileColor(catalog.InnerBorder))
	assert.Equal(t, colorTerrain, tileColor(0x00))
	assert.Equal(t, familyFill[0], tileColor(0xA0))
	assert.Equal(t, familyBorder[3], tileColor(0xB6))
}
