// Package preview renders terrain grids to small color-coded images so fill
// results can be eyeballed without the editor.
package preview

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/domain"
)

// WebP renders one pixel per cell, upscales by Scale with nearest-neighbor
// so tile boundaries stay crisp, and encodes lossless WebP.
type WebP struct{ Scale int }

func NewWebP(scale int) *WebP {
	if scale < 1 {
		scale = 1
	}
	return &WebP{Scale: scale}
}

// Family fill tiles get distinct greens so orientation phase is visible;
// border tiles share a lighter shade per family.
var familyFill = [catalog.NumFamilies]color.NRGBA{
	{R: 0x1b, G: 0x5e, B: 0x20, A: 0xff},
	{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff},
	{R: 0x38, G: 0x8e, B: 0x3c, A: 0xff},
	{R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
}

var familyBorder = [catalog.NumFamilies]color.NRGBA{
	{R: 0x66, G: 0xbb, B: 0x6a, A: 0xff},
	{R: 0x81, G: 0xc7, B: 0x84, A: 0xff},
	{R: 0x9c, G: 0xcc, B: 0x65, A: 0xff},
	{R: 0xae, G: 0xd5, B: 0x81, A: 0xff},
}

var (
	colorInnerBorder = color.NRGBA{R: 0xa1, G: 0x88, B: 0x7f, A: 0xff}
	colorPlaceholder = color.NRGBA{R: 0xd8, G: 0x1b, B: 0x60, A: 0xff}
	colorTerrain     = color.NRGBA{R: 0xbd, G: 0xbd, B: 0xbd, A: 0xff}
)

func tileColor(t domain.Tile) color.NRGBA {
	switch {
	case catalog.IsPlaceholder(t):
		return colorPlaceholder
	case t == catalog.InnerBorder:
		return colorInnerBorder
	case catalog.IsFillTile(t):
		return familyFill[catalog.FamilyOf(t)]
	case catalog.IsForest(t):
		return familyBorder[catalog.FamilyOf(t)]
	default:
		return colorTerrain
	}
}

// Render draws g with a overlaid and returns the encoded WebP bytes.
func (p *WebP) Render(ctx context.Context, g *domain.Grid, a domain.Assignment) ([]byte, error) {
	if g == nil || g.Width == 0 || g.Height == 0 {
		return nil, errors.New("empty grid")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			t := g.At(row, col)
			if at, ok := a[domain.Coord{Row: row, Col: col}]; ok {
				t = at
			}
			src.SetNRGBA(col, row, tileColor(t))
		}
	}

	out := src
	if p.Scale > 1 {
		out = image.NewNRGBA(image.Rect(0, 0, g.Width*p.Scale, g.Height*p.Scale))
		draw.NearestNeighbor.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, out, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
