package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

// TestComputeBoundingBox тестирует вычисление области редактирования
func TestComputeBoundingBox(t *testing.T) {
	tests := []struct {
		name    string
		strokes []entity.BrushStroke
		canvasW float64
		canvasH float64
		want    entity.BoundingBox
	}{
		{
			name: "three strokes spanning 100x50 at origin",
			strokes: []entity.BrushStroke{
				{Width: 10, Points: []entity.Point{{X: 0, Y: 0}, {X: 100, Y: 10}}},
				{Width: 10, Points: []entity.Point{{X: 20, Y: 50}, {X: 60, Y: 25}}},
				{Width: 10, Points: []entity.Point{{X: 100, Y: 50}}},
			},
			canvasW: 800,
			canvasH: 600,
			want:    entity.BoundingBox{X: 0, Y: 0, Width: 130, Height: 80},
		},
		{
			name: "interior strokes keep the full margin on every side",
			strokes: []entity.BrushStroke{
				{Width: 10, Points: []entity.Point{{X: 100, Y: 100}, {X: 200, Y: 150}}},
			},
			canvasW: 800,
			canvasH: 600,
			want:    entity.BoundingBox{X: 70, Y: 70, Width: 160, Height: 110},
		},
		{
			name: "box clamped to canvas edge",
			strokes: []entity.BrushStroke{
				{Width: 10, Points: []entity.Point{{X: 780, Y: 590}}},
			},
			canvasW: 800,
			canvasH: 600,
			want:    entity.BoundingBox{X: 750, Y: 560, Width: 50, Height: 40},
		},
		{
			name: "wide stroke pushes the margin past the padding",
			strokes: []entity.BrushStroke{
				{Width: 100, Points: []entity.Point{{X: 400, Y: 300}}},
			},
			canvasW: 800,
			canvasH: 600,
			want:    entity.BoundingBox{X: 350, Y: 250, Width: 100, Height: 100},
		},
		{
			name:    "no strokes defaults to the full canvas",
			strokes: nil,
			canvasW: 800,
			canvasH: 600,
			want:    entity.BoundingBox{X: 0, Y: 0, Width: 800, Height: 600},
		},
		{
			name:    "strokes without points count as empty",
			strokes: []entity.BrushStroke{{Width: 10}},
			canvasW: 800,
			canvasH: 600,
			want:    entity.BoundingBox{X: 0, Y: 0, Width: 800, Height: 600},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBoundingBox(tt.strokes, tt.canvasW, tt.canvasH)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.want.Height, got.Height, 1e-9)
		})
	}
}
