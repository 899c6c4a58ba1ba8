// Flattening the layer document into a raster export
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

// ImageResolver loads the pixels behind a layer src or background URL.
type ImageResolver func(src string) (image.Image, error)

type Rasterizer struct {
	resolve ImageResolver
}

func NewRasterizer(resolve ImageResolver) *Rasterizer {
	return &Rasterizer{resolve: resolve}
}

// Render paints the document at the background's natural resolution: the
// below-mask group first, then the subject cutout, then the above-mask group.
// Array order within a group is paint order.
func (r *Rasterizer) Render(state entity.EditorState) (image.Image, error) {
	if state.BackgroundURL == "" {
		return nil, fmt.Errorf("document has no background")
	}

	bg, err := r.resolve(state.BackgroundURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load background: %w", err)
	}

	canvas := imaging.Clone(bg)
	w := canvas.Bounds().Dx()
	h := canvas.Bounds().Dy()

	for i := range state.Layers {
		if !state.Layers[i].AboveMask {
			if err := r.paintLayer(canvas, &state.Layers[i], w, h); err != nil {
				return nil, err
			}
		}
	}

	if state.MaskURL != "" && !state.MaskHidden {
		if err := r.paintMask(canvas, state, w, h); err != nil {
			return nil, err
		}
	}

	for i := range state.Layers {
		if state.Layers[i].AboveMask {
			if err := r.paintLayer(canvas, &state.Layers[i], w, h); err != nil {
				return nil, err
			}
		}
	}

	return canvas, nil
}

func (r *Rasterizer) paintMask(canvas *image.NRGBA, state entity.EditorState, w, h int) error {
	mask, err := r.resolve(state.MaskURL)
	if err != nil {
		return fmt.Errorf("failed to load mask: %w", err)
	}

	fitted := imaging.Resize(mask, w, h, imaging.Lanczos)
	offX := int(state.MaskOffsetXPct / 100 * float64(w))
	offY := int(state.MaskOffsetYPct / 100 * float64(h))
	overlayOnto(canvas, fitted, image.Pt(offX, offY), 1)
	return nil
}

func (r *Rasterizer) paintLayer(canvas *image.NRGBA, l *entity.Layer, w, h int) error {
	if l.Hidden {
		return nil
	}

	rect := layerRect(l, w, h)
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return nil
	}

	switch l.Type {
	case entity.LayerShape:
		tile := fillShape(l, rect.Dx(), rect.Dy())
		overlayOnto(canvas, rotate(tile, l.RotationDeg), rect.Min, 1)
	case entity.LayerImage, entity.LayerMask:
		if l.Src == "" {
			return nil
		}
		img, err := r.resolve(l.Src)
		if err != nil {
			return fmt.Errorf("failed to load layer %s: %w", l.ID, err)
		}
		fitted := imaging.Resize(img, rect.Dx(), rect.Dy(), imaging.Lanczos)
		overlayOnto(canvas, rotate(fitted, l.RotationDeg), rect.Min, 1)
	case entity.LayerText:
		tile := drawText(l, rect.Dx(), rect.Dy())
		overlayOnto(canvas, rotate(tile, l.RotationDeg), rect.Min, 1)
	}
	return nil
}

func layerRect(l *entity.Layer, w, h int) image.Rectangle {
	x := int(l.XPct / 100 * float64(w))
	y := int(l.YPct / 100 * float64(h))
	lw := int(l.WidthPct / 100 * float64(w) * nonZeroScale(l.ScaleX))
	lh := int(l.HeightPct / 100 * float64(h) * nonZeroScale(l.ScaleY))
	return image.Rect(x, y, x+lw, y+lh)
}

func nonZeroScale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}

func rotate(img image.Image, deg float64) image.Image {
	if deg == 0 {
		return img
	}
	return imaging.Rotate(img, -deg, color.NRGBA{})
}

func fillShape(l *entity.Layer, w, h int) *image.NRGBA {
	tile := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill := entity.RGB(0, 0, 0)
	if l.Fill != nil {
		fill = *l.Fill
	}
	c := color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: uint8(fill.A * 255)}

	switch l.Shape {
	case entity.ShapeEllipse:
		cx, cy := float64(w)/2, float64(h)/2
		rx, ry := cx, cy
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx := (float64(x) + 0.5 - cx) / rx
				dy := (float64(y) + 0.5 - cy) / ry
				if dx*dx+dy*dy <= 1 {
					tile.SetNRGBA(x, y, c)
				}
			}
		}
	case entity.ShapeTriangle:
		// isosceles, apex centered on the top edge
		for y := 0; y < h; y++ {
			span := float64(y) / float64(h) * float64(w) / 2
			mid := float64(w) / 2
			for x := int(mid - span); x <= int(mid+span) && x < w; x++ {
				if x >= 0 {
					tile.SetNRGBA(x, y, c)
				}
			}
		}
	case entity.ShapeLine:
		thickness := int(l.StrokeWidth)
		if thickness < 2 {
			thickness = 2
		}
		top := (h - thickness) / 2
		draw.Draw(tile, image.Rect(0, top, w, top+thickness), &image.Uniform{c}, image.Point{}, draw.Src)
	default: // rectangle
		draw.Draw(tile, tile.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	}

	return tile
}

// drawText paints the plain-text content with a bitmap face. Web fonts are a
// client concern; the export only needs the text to be present and legible.
func drawText(l *entity.Layer, w, h int) *image.NRGBA {
	tile := image.NewNRGBA(image.Rect(0, 0, w, h))

	if l.Highlight != nil {
		bg := color.NRGBA{R: l.Highlight.R, G: l.Highlight.G, B: l.Highlight.B, A: uint8(l.Highlight.A * 255)}
		draw.Draw(tile, tile.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	}

	col := entity.RGB(255, 255, 255)
	if l.Color != nil {
		col = *l.Color
	}

	d := font.Drawer{
		Dst:  tile,
		Src:  &image.Uniform{color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(col.A * 255)}},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, h/2),
	}
	d.DrawString(l.Text)
	return tile
}

func overlayOnto(canvas *image.NRGBA, img image.Image, at image.Point, opacity float64) {
	result := imaging.Overlay(canvas, img, at, opacity)
	draw.Draw(canvas, canvas.Bounds(), result, result.Bounds().Min, draw.Src)
}
