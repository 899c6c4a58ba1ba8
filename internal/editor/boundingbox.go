package editor

import "github.com/drivecanvas/designer-backend/internal/entity"

// BoxPaddingPx is the minimum margin kept around the stroked region, in
// canvas pixels. Strokes wider than twice the padding push the margin out to
// their own half-width instead.
const BoxPaddingPx = 30.0

// ComputeBoundingBox returns the minimal axis-aligned box covering all stroke
// points, expanded on each side by the larger of BoxPaddingPx and the
// stroke's half-width, clamped to the canvas. Zero strokes default to the
// full canvas.
func ComputeBoundingBox(strokes []entity.BrushStroke, canvasW, canvasH float64) entity.BoundingBox {
	empty := true
	minX, minY := canvasW, canvasH
	maxX, maxY := 0.0, 0.0

	for _, stroke := range strokes {
		margin := stroke.Width / 2
		if margin < BoxPaddingPx {
			margin = BoxPaddingPx
		}
		for _, p := range stroke.Points {
			empty = false
			if p.X-margin < minX {
				minX = p.X - margin
			}
			if p.Y-margin < minY {
				minY = p.Y - margin
			}
			if p.X+margin > maxX {
				maxX = p.X + margin
			}
			if p.Y+margin > maxY {
				maxY = p.Y + margin
			}
		}
	}

	if empty {
		return entity.BoundingBox{X: 0, Y: 0, Width: canvasW, Height: canvasH}
	}

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > canvasW {
		maxX = canvasW
	}
	if maxY > canvasH {
		maxY = canvasH
	}

	return entity.BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
