// Pure state transitions of the designer document
package editor

import (
	"github.com/drivecanvas/designer-backend/internal/entity"
)

// Reduce maps (state, action) to the next state. It is total: it never
// errors, and an unknown action type returns the state unchanged. Every
// transition works on a structural copy, so callers may keep references to
// earlier states (undo snapshots depend on that).
func Reduce(state entity.EditorState, action entity.Action) entity.EditorState {
	switch action.Type {
	case entity.ActionSetTool:
		return setTool(state, action.Tool)
	case entity.ActionSetMarqueeMode:
		s := state.Clone()
		s.MarqueeMode = action.MarqueeMode
		return s

	case entity.ActionAddLayer:
		return addLayer(state, action.Layer, action.AtTop)
	case entity.ActionUpdateLayer:
		return updateLayer(state, action.LayerID, action.Patch)
	case entity.ActionRemoveLayer:
		return removeLayer(state, action.LayerID)
	case entity.ActionReorderLayer:
		return reorderLayer(state, action.LayerID, action.ToIndex)
	case entity.ActionBringForward:
		return moveWithinGroup(state, action.LayerID, +1)
	case entity.ActionSendBackward:
		return moveWithinGroup(state, action.LayerID, -1)
	case entity.ActionSendToFront:
		return moveToGroupEdge(state, action.LayerID, true)
	case entity.ActionSendToBack:
		return moveToGroupEdge(state, action.LayerID, false)
	case entity.ActionToggleAboveMask:
		return toggleAboveMask(state, action.LayerID)

	case entity.ActionSelectLayer:
		return selectLayer(state, action.LayerID)
	case entity.ActionToggleSelectLayer:
		return toggleSelectLayer(state, action.LayerID)
	case entity.ActionSelectLayers:
		return selectLayers(state, action.LayerIDs)
	case entity.ActionSetEditingLayer:
		return setEditingLayer(state, action.LayerID)

	case entity.ActionSetBackground:
		s := state.Clone()
		s.BackgroundURL = action.URL
		s.BackgroundBlurhash = action.Blurhash
		return s
	case entity.ActionSetMask:
		s := state.Clone()
		s.MaskURL = action.URL
		return s
	case entity.ActionSetMaskOffset:
		s := state.Clone()
		s.MaskOffsetXPct = action.OffsetX
		s.MaskOffsetYPct = action.OffsetY
		return s
	case entity.ActionResetMask:
		s := state.Clone()
		s.MaskOffsetXPct = 0
		s.MaskOffsetYPct = 0
		return s
	case entity.ActionToggleMaskHidden:
		s := state.Clone()
		s.MaskHidden = !s.MaskHidden
		return s

	case entity.ActionStartDrawToEdit:
		s := state.Clone()
		s.DrawToEdit = &entity.DrawToEditAnnotation{Strokes: []entity.BrushStroke{}}
		return s
	case entity.ActionAddBrushStroke:
		return addBrushStroke(state, action.Stroke)
	case entity.ActionClearDrawToEdit:
		s := state.Clone()
		s.DrawToEdit = nil
		return s
	case entity.ActionFinalizeDrawToEdit:
		return finalizeDrawToEdit(state, action.Box)
	case entity.ActionApplyDrawToEditResult:
		s := state.Clone()
		s.BackgroundURL = action.URL
		s.BackgroundBlurhash = ""
		s.DrawToEdit = nil
		return s

	case entity.ActionReplaceState:
		if action.State == nil {
			return state
		}
		return action.State.Clone()
	}

	return state
}

// setTool: switching to text drops the selection so the next canvas click
// creates a new text layer instead of editing an existing one. Switching away
// from brush discards the in-progress annotation.
func setTool(state entity.EditorState, tool entity.Tool) entity.EditorState {
	s := state.Clone()
	prev := s.Tool
	s.Tool = tool

	if tool == entity.ToolText {
		s.ActiveLayerID = ""
		s.SelectedLayerIDs = []string{}
	}
	if tool != entity.ToolText {
		s.EditingLayerID = ""
	}
	if prev == entity.ToolBrush && tool != entity.ToolBrush {
		s.DrawToEdit = nil
	}
	return s
}

func addLayer(state entity.EditorState, layer *entity.Layer, atTop bool) entity.EditorState {
	if layer == nil {
		return state
	}
	s := state.Clone()
	l := layer.Clone()

	if atTop {
		s.Layers = append(s.Layers, l)
	} else {
		s.Layers = append([]entity.Layer{l}, s.Layers...)
	}

	s.SelectedLayerIDs = []string{l.ID}
	s.ActiveLayerID = l.ID
	if l.Type == entity.LayerText {
		s.EditingLayerID = l.ID
	}
	return s
}

func updateLayer(state entity.EditorState, id string, patch *entity.LayerPatch) entity.EditorState {
	idx := state.LayerIndex(id)
	if idx < 0 || patch == nil {
		return state
	}
	s := state.Clone()
	patch.Apply(&s.Layers[idx])
	return s
}

func removeLayer(state entity.EditorState, id string) entity.EditorState {
	idx := state.LayerIndex(id)
	if idx < 0 {
		return state
	}
	s := state.Clone()
	s.Layers = append(s.Layers[:idx], s.Layers[idx+1:]...)

	selected := s.SelectedLayerIDs[:0]
	for _, sid := range s.SelectedLayerIDs {
		if sid != id {
			selected = append(selected, sid)
		}
	}
	s.SelectedLayerIDs = selected

	if s.ActiveLayerID == id {
		s.ActiveLayerID = ""
	}
	if s.EditingLayerID == id {
		s.EditingLayerID = ""
	}
	return s
}

// reorderLayer moves a layer to an absolute index, clamped. Used for coarse
// drag reorder; group semantics are intentionally ignored here.
func reorderLayer(state entity.EditorState, id string, toIndex int) entity.EditorState {
	idx := state.LayerIndex(id)
	if idx < 0 {
		return state
	}
	s := state.Clone()

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(s.Layers)-1 {
		toIndex = len(s.Layers) - 1
	}
	if toIndex == idx {
		return s
	}

	l := s.Layers[idx]
	rest := append(s.Layers[:idx], s.Layers[idx+1:]...)
	s.Layers = append(rest[:toIndex], append([]entity.Layer{l}, rest[toIndex:]...)...)
	return s
}

// moveWithinGroup swaps the layer with its nearest neighbor in the same
// aboveMask group. A layer already at the group edge is a silent no-op,
// matching the "can't move past the edge" UX.
func moveWithinGroup(state entity.EditorState, id string, dir int) entity.EditorState {
	idx := state.LayerIndex(id)
	if idx < 0 {
		return state
	}
	group := state.Layers[idx].AboveMask

	neighbor := -1
	for i := idx + dir; i >= 0 && i < len(state.Layers); i += dir {
		if state.Layers[i].AboveMask == group {
			neighbor = i
			break
		}
	}
	if neighbor < 0 {
		return state
	}

	s := state.Clone()
	s.Layers[idx], s.Layers[neighbor] = s.Layers[neighbor], s.Layers[idx]
	return s
}

// moveToGroupEdge moves the layer to its group's first or last position,
// leaving every other layer's relative order untouched.
func moveToGroupEdge(state entity.EditorState, id string, front bool) entity.EditorState {
	idx := state.LayerIndex(id)
	if idx < 0 {
		return state
	}
	group := state.Layers[idx].AboveMask

	first, last := -1, -1
	for i := range state.Layers {
		if state.Layers[i].AboveMask != group {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}

	target := first
	if front {
		target = last
	}
	if target == idx {
		return state
	}

	s := state.Clone()
	l := s.Layers[idx]
	rest := append(s.Layers[:idx], s.Layers[idx+1:]...)
	// for front the group's last index shifted down by one after removal, so
	// inserting at the original index lands just past the group's new tail
	s.Layers = append(rest[:target], append([]entity.Layer{l}, rest[target:]...)...)
	return s
}

// toggleAboveMask flips group membership without changing the array index, so
// the layer "jumps" groups at whatever position it currently holds.
func toggleAboveMask(state entity.EditorState, id string) entity.EditorState {
	idx := state.LayerIndex(id)
	if idx < 0 {
		return state
	}
	s := state.Clone()
	s.Layers[idx].AboveMask = !s.Layers[idx].AboveMask
	return s
}

func selectLayer(state entity.EditorState, id string) entity.EditorState {
	if state.LayerIndex(id) < 0 {
		return state
	}
	s := state.Clone()
	s.SelectedLayerIDs = []string{id}
	s.ActiveLayerID = id
	return s
}

func toggleSelectLayer(state entity.EditorState, id string) entity.EditorState {
	if state.LayerIndex(id) < 0 {
		return state
	}
	s := state.Clone()

	for i, sid := range s.SelectedLayerIDs {
		if sid != id {
			continue
		}
		s.SelectedLayerIDs = append(s.SelectedLayerIDs[:i], s.SelectedLayerIDs[i+1:]...)
		// keep the active id only while it stays selected
		if s.ActiveLayerID == id || !contains(s.SelectedLayerIDs, s.ActiveLayerID) {
			s.ActiveLayerID = ""
			if n := len(s.SelectedLayerIDs); n > 0 {
				s.ActiveLayerID = s.SelectedLayerIDs[n-1]
			}
		}
		return s
	}

	s.SelectedLayerIDs = append(s.SelectedLayerIDs, id)
	s.ActiveLayerID = id
	return s
}

func selectLayers(state entity.EditorState, ids []string) entity.EditorState {
	s := state.Clone()
	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.LayerIndex(id) >= 0 {
			selected = append(selected, id)
		}
	}
	s.SelectedLayerIDs = selected
	s.ActiveLayerID = ""
	if n := len(selected); n > 0 {
		s.ActiveLayerID = selected[n-1]
	}
	return s
}

func setEditingLayer(state entity.EditorState, id string) entity.EditorState {
	s := state.Clone()
	if id == "" {
		s.EditingLayerID = ""
		return s
	}
	idx := s.LayerIndex(id)
	if idx < 0 || s.Layers[idx].Type != entity.LayerText {
		return state
	}
	s.EditingLayerID = id
	return s
}

func addBrushStroke(state entity.EditorState, stroke *entity.BrushStroke) entity.EditorState {
	if stroke == nil || state.DrawToEdit == nil {
		return state
	}
	s := state.Clone()
	s.DrawToEdit.Strokes = append(s.DrawToEdit.Strokes, stroke.Clone())
	return s
}

func finalizeDrawToEdit(state entity.EditorState, box *entity.BoundingBox) entity.EditorState {
	if state.DrawToEdit == nil || box == nil {
		return state
	}
	s := state.Clone()
	b := *box
	s.DrawToEdit.Box = &b
	return s
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
