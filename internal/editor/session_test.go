package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivecanvas/designer-backend/internal/entity"
)

func brushSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(entity.NewEditorState())
	s.Dispatch(entity.Action{Type: entity.ActionSetTool, Tool: entity.ToolBrush})
	s.Dispatch(entity.Action{Type: entity.ActionStartDrawToEdit})
	return s
}

func stroke(x float64) *entity.BrushStroke {
	return &entity.BrushStroke{Width: 10, Points: []entity.Point{{X: x, Y: x}}}
}

// TestSessionRevisionMonotonic тестирует монотонный счетчик ревизий
func TestSessionRevisionMonotonic(t *testing.T) {
	s := NewSession(entity.NewEditorState())
	first := s.Snapshot().Revision

	snap := s.Dispatch(entity.Action{Type: entity.ActionSetTool, Tool: entity.ToolShape})
	assert.Greater(t, snap.Revision, first)

	l := shapeLayer("a")
	next := s.Dispatch(entity.Action{Type: entity.ActionAddLayer, Layer: &l, AtTop: true})
	assert.Greater(t, next.Revision, snap.Revision)
}

// TestStrokeUndoRedo тестирует отдельный undo-стек для штрихов
func TestStrokeUndoRedo(t *testing.T) {
	s := brushSession(t)

	s.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: stroke(1)})
	s.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: stroke(2)})
	s.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: stroke(3)})

	snap, ok := s.UndoStroke()
	require.True(t, ok)
	require.NotNil(t, snap.State.DrawToEdit)
	assert.Len(t, snap.State.DrawToEdit.Strokes, 2)

	snap, ok = s.UndoStroke()
	require.True(t, ok)
	assert.Len(t, snap.State.DrawToEdit.Strokes, 1)

	snap, ok = s.RedoStroke()
	require.True(t, ok)
	assert.Len(t, snap.State.DrawToEdit.Strokes, 2)

	// штрихи не мутируют документ и не трогают его историю
	assert.False(t, snap.CanUndo)
	assert.False(t, snap.Dirty)
}

// TestStrokeUndoEmptyStack тестирует no-op на пустом стеке штрихов
func TestStrokeUndoEmptyStack(t *testing.T) {
	s := brushSession(t)

	_, ok := s.UndoStroke()
	assert.False(t, ok)
	_, ok = s.RedoStroke()
	assert.False(t, ok)
}

// TestStrokeRedoClearedByNewStroke тестирует линейность стека штрихов
func TestStrokeRedoClearedByNewStroke(t *testing.T) {
	s := brushSession(t)

	s.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: stroke(1)})
	s.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: stroke(2)})

	_, ok := s.UndoStroke()
	require.True(t, ok)

	s.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: stroke(3)})

	_, ok = s.RedoStroke()
	assert.False(t, ok)
}

// TestStrokeStackResetByLifecycle тестирует сброс стека штрихов
func TestStrokeStackResetByLifecycle(t *testing.T) {
	tests := []struct {
		name  string
		reset entity.Action
	}{
		{name: "start resets", reset: entity.Action{Type: entity.ActionStartDrawToEdit}},
		{name: "clear resets", reset: entity.Action{Type: entity.ActionClearDrawToEdit}},
		{name: "apply result resets", reset: entity.Action{Type: entity.ActionApplyDrawToEditResult, URL: "u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := brushSession(t)
			s.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: stroke(1)})

			s.Dispatch(tt.reset)

			_, ok := s.UndoStroke()
			assert.False(t, ok)
		})
	}
}

// TestDocumentUndoResetsStrokeStack тестирует изоляцию двух стеков
func TestDocumentUndoResetsStrokeStack(t *testing.T) {
	s := brushSession(t)
	l := shapeLayer("a")
	s.Dispatch(entity.Action{Type: entity.ActionAddLayer, Layer: &l, AtTop: true})
	s.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: stroke(1)})

	_, ok := s.Undo()
	require.True(t, ok)

	_, ok = s.UndoStroke()
	assert.False(t, ok, "document-level restore invalidates the stroke stack")
}

// TestApplyCommand тестирует выполнение клавиатурных команд
func TestApplyCommand(t *testing.T) {
	s := NewSession(entity.NewEditorState())
	l := shapeLayer("a")
	s.Dispatch(entity.Action{Type: entity.ActionAddLayer, Layer: &l, AtTop: true})

	snap, ok := s.ApplyCommand(CommandDuplicate)
	require.True(t, ok)
	assert.Len(t, snap.State.Layers, 2)

	snap, ok = s.ApplyCommand(CommandUndo)
	require.True(t, ok)
	assert.Len(t, snap.State.Layers, 1)

	snap, ok = s.ApplyCommand(CommandRedo)
	require.True(t, ok)
	assert.Len(t, snap.State.Layers, 2)

	snap, ok = s.ApplyCommand(CommandDelete)
	require.True(t, ok)
	assert.Len(t, snap.State.Layers, 1)

	_, ok = s.ApplyCommand(CommandNone)
	assert.False(t, ok)
}

// TestMarkJobApplied тестирует защиту от повторного применения результата
func TestMarkJobApplied(t *testing.T) {
	s := NewSession(entity.NewEditorState())

	assert.True(t, s.MarkJobApplied("job-1"))
	assert.False(t, s.MarkJobApplied("job-1"), "second apply of the same job is rejected")
	assert.True(t, s.MarkJobApplied("job-2"))
}

// TestEditing тестирует режим inline-редактирования текста
func TestEditing(t *testing.T) {
	s := NewSession(entity.NewEditorState())
	assert.False(t, s.Editing())

	l := textLayer("a")
	s.Dispatch(entity.Action{Type: entity.ActionAddLayer, Layer: &l, AtTop: true})
	assert.True(t, s.Editing())

	s.Dispatch(entity.Action{Type: entity.ActionSetEditingLayer, LayerID: ""})
	assert.False(t, s.Editing())
}
