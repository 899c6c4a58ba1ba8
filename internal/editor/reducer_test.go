package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

func textLayer(id string) entity.Layer {
	return entity.Layer{ID: id, Type: entity.LayerText, Name: id, Text: "hello", WidthPct: 20, HeightPct: 10}
}

func shapeLayer(id string) entity.Layer {
	return entity.Layer{ID: id, Type: entity.LayerShape, Name: id, Shape: entity.ShapeRectangle, WidthPct: 20, HeightPct: 10}
}

func layerIDs(state entity.EditorState) []string {
	ids := make([]string, len(state.Layers))
	for i := range state.Layers {
		ids[i] = state.Layers[i].ID
	}
	return ids
}

// TestAddLayerScenario тестирует базовый сценарий добавления слоев
func TestAddLayerScenario(t *testing.T) {
	state := entity.NewEditorState()

	textA := textLayer("textA")
	state = Reduce(state, entity.Action{Type: entity.ActionAddLayer, Layer: &textA, AtTop: true})

	require.Equal(t, []string{"textA"}, layerIDs(state))
	assert.Equal(t, "textA", state.ActiveLayerID)
	assert.Equal(t, "textA", state.EditingLayerID, "new text layer opens in edit mode")
	assert.Equal(t, []string{"textA"}, state.SelectedLayerIDs)

	shapeB := shapeLayer("shapeB")
	state = Reduce(state, entity.Action{Type: entity.ActionAddLayer, Layer: &shapeB, AtTop: true})
	require.Equal(t, []string{"textA", "shapeB"}, layerIDs(state))

	state = Reduce(state, entity.Action{Type: entity.ActionBringForward, LayerID: "textA"})
	assert.Equal(t, []string{"shapeB", "textA"}, layerIDs(state))
}

// TestMoveWithinGroup тестирует перемещение слоя внутри своей группы
func TestMoveWithinGroup(t *testing.T) {
	tests := []struct {
		name    string
		layers  []entity.Layer
		action  entity.ActionType
		layerID string
		want    []string
	}{
		{
			name:    "bring forward swaps with next in group",
			layers:  []entity.Layer{shapeLayer("a"), shapeLayer("b"), shapeLayer("c")},
			action:  entity.ActionBringForward,
			layerID: "a",
			want:    []string{"b", "a", "c"},
		},
		{
			name:    "send backward swaps with previous in group",
			layers:  []entity.Layer{shapeLayer("a"), shapeLayer("b"), shapeLayer("c")},
			action:  entity.ActionSendBackward,
			layerID: "c",
			want:    []string{"a", "c", "b"},
		},
		{
			name:    "bring forward on topmost of group is a no-op",
			layers:  []entity.Layer{shapeLayer("a"), shapeLayer("b")},
			action:  entity.ActionBringForward,
			layerID: "b",
			want:    []string{"a", "b"},
		},
		{
			name:    "send backward on bottom of group is a no-op",
			layers:  []entity.Layer{shapeLayer("a"), shapeLayer("b")},
			action:  entity.ActionSendBackward,
			layerID: "a",
			want:    []string{"a", "b"},
		},
		{
			name: "bring forward skips layers of the other group",
			layers: func() []entity.Layer {
				a, b, c := shapeLayer("a"), shapeLayer("b"), shapeLayer("c")
				b.AboveMask = true
				return []entity.Layer{a, b, c}
			}(),
			action:  entity.ActionBringForward,
			layerID: "a",
			want:    []string{"c", "b", "a"},
		},
		{
			name: "topmost of below group does not cross into above group",
			layers: func() []entity.Layer {
				a, b := shapeLayer("a"), shapeLayer("b")
				b.AboveMask = true
				return []entity.Layer{a, b}
			}(),
			action:  entity.ActionBringForward,
			layerID: "a",
			want:    []string{"a", "b"},
		},
		{
			name:    "unknown id is a no-op",
			layers:  []entity.Layer{shapeLayer("a")},
			action:  entity.ActionBringForward,
			layerID: "missing",
			want:    []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := entity.NewEditorState()
			state.Layers = tt.layers

			next := Reduce(state, entity.Action{Type: tt.action, LayerID: tt.layerID})
			assert.Equal(t, tt.want, layerIDs(next))
		})
	}
}

// TestBringForwardSendBackwardInverse тестирует обратимость перемещений
func TestBringForwardSendBackwardInverse(t *testing.T) {
	state := entity.NewEditorState()
	above := shapeLayer("x")
	above.AboveMask = true
	state.Layers = []entity.Layer{shapeLayer("a"), above, shapeLayer("b"), shapeLayer("c")}
	original := layerIDs(state)

	next := Reduce(state, entity.Action{Type: entity.ActionBringForward, LayerID: "b"})
	next = Reduce(next, entity.Action{Type: entity.ActionSendBackward, LayerID: "b"})
	assert.Equal(t, original, layerIDs(next))

	next = Reduce(state, entity.Action{Type: entity.ActionSendBackward, LayerID: "b"})
	next = Reduce(next, entity.Action{Type: entity.ActionBringForward, LayerID: "b"})
	assert.Equal(t, original, layerIDs(next))
}

// TestMoveToGroupEdge тестирует send_to_front и send_to_back
func TestMoveToGroupEdge(t *testing.T) {
	build := func() entity.EditorState {
		state := entity.NewEditorState()
		x, y := shapeLayer("x"), shapeLayer("y")
		x.AboveMask = true
		y.AboveMask = true
		state.Layers = []entity.Layer{shapeLayer("a"), x, shapeLayer("b"), y, shapeLayer("c")}
		return state
	}

	next := Reduce(build(), entity.Action{Type: entity.ActionSendToFront, LayerID: "a"})
	assert.Equal(t, []string{"x", "b", "y", "c", "a"}, layerIDs(next))

	next = Reduce(build(), entity.Action{Type: entity.ActionSendToBack, LayerID: "c"})
	assert.Equal(t, []string{"c", "a", "x", "b", "y"}, layerIDs(next))

	// внутри верхней группы нижние слои не трогаются
	next = Reduce(build(), entity.Action{Type: entity.ActionSendToFront, LayerID: "x"})
	assert.Equal(t, []string{"a", "b", "y", "x", "c"}, layerIDs(next))
}

// TestToggleAboveMask тестирует смену группы без изменения порядка
func TestToggleAboveMask(t *testing.T) {
	state := entity.NewEditorState()
	state.Layers = []entity.Layer{shapeLayer("a"), shapeLayer("b"), shapeLayer("c")}

	next := Reduce(state, entity.Action{Type: entity.ActionToggleAboveMask, LayerID: "b"})

	assert.Equal(t, []string{"a", "b", "c"}, layerIDs(next), "array order must not change")
	assert.False(t, next.Layers[0].AboveMask)
	assert.True(t, next.Layers[1].AboveMask)
	assert.False(t, next.Layers[2].AboveMask)

	back := Reduce(next, entity.Action{Type: entity.ActionToggleAboveMask, LayerID: "b"})
	assert.False(t, back.Layers[1].AboveMask)
}

// TestSelectionInvariant тестирует что выделение всегда подмножество слоев
func TestSelectionInvariant(t *testing.T) {
	state := entity.NewEditorState()

	actions := []entity.Action{
		{Type: entity.ActionAddLayer, Layer: func() *entity.Layer { l := shapeLayer("a"); return &l }(), AtTop: true},
		{Type: entity.ActionAddLayer, Layer: func() *entity.Layer { l := textLayer("b"); return &l }(), AtTop: true},
		{Type: entity.ActionSelectLayers, LayerIDs: []string{"a", "b"}},
		{Type: entity.ActionRemoveLayer, LayerID: "b"},
		{Type: entity.ActionToggleSelectLayer, LayerID: "a"},
		{Type: entity.ActionToggleSelectLayer, LayerID: "a"},
		{Type: entity.ActionRemoveLayer, LayerID: "a"},
		{Type: entity.ActionSelectLayer, LayerID: "ghost"},
	}

	for _, action := range actions {
		state = Reduce(state, action)

		present := map[string]bool{}
		for _, id := range layerIDs(state) {
			present[id] = true
		}
		for _, sid := range state.SelectedLayerIDs {
			assert.True(t, present[sid], "selected id %q must exist after %s", sid, action.Type)
		}
		if state.ActiveLayerID != "" {
			assert.True(t, present[state.ActiveLayerID], "active id must exist after %s", action.Type)
		}
	}
}

// TestToggleSelectLayer тестирует аддитивное выделение
func TestToggleSelectLayer(t *testing.T) {
	state := entity.NewEditorState()
	state.Layers = []entity.Layer{shapeLayer("a"), shapeLayer("b")}

	state = Reduce(state, entity.Action{Type: entity.ActionToggleSelectLayer, LayerID: "a"})
	state = Reduce(state, entity.Action{Type: entity.ActionToggleSelectLayer, LayerID: "b"})
	assert.Equal(t, []string{"a", "b"}, state.SelectedLayerIDs)
	assert.Equal(t, "b", state.ActiveLayerID)

	state = Reduce(state, entity.Action{Type: entity.ActionToggleSelectLayer, LayerID: "b"})
	assert.Equal(t, []string{"a"}, state.SelectedLayerIDs)
	assert.Equal(t, "a", state.ActiveLayerID, "active falls back to last remaining selection")

	state = Reduce(state, entity.Action{Type: entity.ActionToggleSelectLayer, LayerID: "a"})
	assert.Empty(t, state.SelectedLayerIDs)
	assert.Equal(t, "", state.ActiveLayerID)
}

// TestSetTool тестирует побочные эффекты смены инструмента
func TestSetTool(t *testing.T) {
	state := entity.NewEditorState()
	l := textLayer("a")
	state = Reduce(state, entity.Action{Type: entity.ActionAddLayer, Layer: &l, AtTop: true})
	require.Equal(t, "a", state.EditingLayerID)

	// переход на text сбрасывает выделение
	next := Reduce(state, entity.Action{Type: entity.ActionSetTool, Tool: entity.ToolText})
	assert.Empty(t, next.SelectedLayerIDs)
	assert.Equal(t, "", next.ActiveLayerID)
	assert.Equal(t, "a", next.EditingLayerID)

	// переход с text закрывает inline-редактирование
	next = Reduce(state, entity.Action{Type: entity.ActionSetTool, Tool: entity.ToolSelect})
	assert.Equal(t, "", next.EditingLayerID)
	assert.Equal(t, "a", next.ActiveLayerID)

	// уход с кисти отбрасывает незавершенную аннотацию
	brush := Reduce(state, entity.Action{Type: entity.ActionSetTool, Tool: entity.ToolBrush})
	brush = Reduce(brush, entity.Action{Type: entity.ActionStartDrawToEdit})
	require.NotNil(t, brush.DrawToEdit)
	next = Reduce(brush, entity.Action{Type: entity.ActionSetTool, Tool: entity.ToolSelect})
	assert.Nil(t, next.DrawToEdit)
}

// TestUpdateLayerPatch тестирует частичное обновление слоя
func TestUpdateLayerPatch(t *testing.T) {
	state := entity.NewEditorState()
	l := textLayer("a")
	l.XPct = 10
	state.Layers = []entity.Layer{l}

	x := 42.5
	text := "updated"
	next := Reduce(state, entity.Action{
		Type:    entity.ActionUpdateLayer,
		LayerID: "a",
		Patch:   &entity.LayerPatch{XPct: &x, Text: &text},
	})

	assert.Equal(t, 42.5, next.Layers[0].XPct)
	assert.Equal(t, "updated", next.Layers[0].Text)
	assert.Equal(t, l.WidthPct, next.Layers[0].WidthPct, "untouched fields keep their value")
	assert.Equal(t, 10.0, state.Layers[0].XPct, "original state is not mutated")
}

// TestReorderLayerClamped тестирует перенос слоя на абсолютный индекс
func TestReorderLayerClamped(t *testing.T) {
	state := entity.NewEditorState()
	state.Layers = []entity.Layer{shapeLayer("a"), shapeLayer("b"), shapeLayer("c")}

	next := Reduce(state, entity.Action{Type: entity.ActionReorderLayer, LayerID: "a", ToIndex: 2})
	assert.Equal(t, []string{"b", "c", "a"}, layerIDs(next))

	next = Reduce(state, entity.Action{Type: entity.ActionReorderLayer, LayerID: "c", ToIndex: -5})
	assert.Equal(t, []string{"c", "a", "b"}, layerIDs(next))

	next = Reduce(state, entity.Action{Type: entity.ActionReorderLayer, LayerID: "a", ToIndex: 99})
	assert.Equal(t, []string{"b", "c", "a"}, layerIDs(next))
}

// TestDrawToEditLifecycle тестирует жизненный цикл аннотации
func TestDrawToEditLifecycle(t *testing.T) {
	state := entity.NewEditorState()

	stroke := entity.BrushStroke{Width: 10, Points: []entity.Point{{X: 1, Y: 2}}}

	// штрих без активной аннотации игнорируется
	next := Reduce(state, entity.Action{Type: entity.ActionAddBrushStroke, Stroke: &stroke})
	assert.Nil(t, next.DrawToEdit)

	next = Reduce(state, entity.Action{Type: entity.ActionStartDrawToEdit})
	require.NotNil(t, next.DrawToEdit)
	next = Reduce(next, entity.Action{Type: entity.ActionAddBrushStroke, Stroke: &stroke})
	require.Len(t, next.DrawToEdit.Strokes, 1)

	box := entity.BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}
	next = Reduce(next, entity.Action{Type: entity.ActionFinalizeDrawToEdit, Box: &box})
	require.NotNil(t, next.DrawToEdit.Box)
	assert.Equal(t, box, *next.DrawToEdit.Box)

	applied := Reduce(next, entity.Action{Type: entity.ActionApplyDrawToEditResult, URL: "/view?key=results/1.png"})
	assert.Nil(t, applied.DrawToEdit, "apply discards the annotation")
	assert.Equal(t, "/view?key=results/1.png", applied.BackgroundURL)

	cleared := Reduce(next, entity.Action{Type: entity.ActionClearDrawToEdit})
	assert.Nil(t, cleared.DrawToEdit)
}

// TestUnknownActionIsNoop тестирует тотальность редьюсера
func TestUnknownActionIsNoop(t *testing.T) {
	state := entity.NewEditorState()
	state.Layers = []entity.Layer{shapeLayer("a")}

	next := Reduce(state, entity.Action{Type: "definitely_not_an_action"})
	assert.Equal(t, layerIDs(state), layerIDs(next))
	assert.Equal(t, Signature(state), Signature(next))
}
