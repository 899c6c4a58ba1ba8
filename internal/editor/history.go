// Undo/redo stack and dirty tracking around the reducer
package editor

import (
	"strings"

	"github.com/drivecanvas/designer-backend/internal/entity"
	"github.com/google/uuid"
)

// HistoryDepth bounds the undo stack; the oldest snapshot is evicted on
// overflow.
const HistoryDepth = 200

// duplicateOffsetPct nudges a duplicated layer so it is visibly distinct.
const duplicateOffsetPct = 2.0

// mutating lists the actions that change the persisted document. Only these
// snapshot into the undo stack; tool switches, selection changes and brush
// strokes never pollute history.
var mutating = map[entity.ActionType]bool{
	entity.ActionAddLayer:              true,
	entity.ActionUpdateLayer:           true,
	entity.ActionRemoveLayer:           true,
	entity.ActionReorderLayer:          true,
	entity.ActionBringForward:          true,
	entity.ActionSendBackward:          true,
	entity.ActionSendToFront:           true,
	entity.ActionSendToBack:            true,
	entity.ActionToggleAboveMask:       true,
	entity.ActionSetBackground:         true,
	entity.ActionSetMask:               true,
	entity.ActionSetMaskOffset:         true,
	entity.ActionResetMask:             true,
	entity.ActionToggleMaskHidden:      true,
	entity.ActionApplyDrawToEditResult: true,
}

// IsMutating reports whether the action counts as a document mutation.
func IsMutating(t entity.ActionType) bool {
	return mutating[t]
}

// History owns the live document state, the bounded past/future stacks and
// the dirty baseline. It is not safe for concurrent use; Session adds the
// locking.
type History struct {
	state    entity.EditorState
	past     []entity.EditorState
	future   []entity.EditorState
	baseline string
	depth    int
}

func NewHistory(initial entity.EditorState) *History {
	h := &History{
		state: initial.Clone(),
		depth: HistoryDepth,
	}
	h.baseline = Signature(h.state)
	return h
}

func (h *History) State() entity.EditorState {
	return h.state
}

// Dispatch applies the action. Document mutations snapshot the pre-mutation
// state first and clear the redo stack (linear history, no branching).
func (h *History) Dispatch(action entity.Action) entity.EditorState {
	if IsMutating(action.Type) {
		h.past = append(h.past, h.state.Clone())
		if len(h.past) > h.depth {
			h.past = h.past[1:]
		}
		h.future = nil
	}
	h.state = Reduce(h.state, action)
	return h.state
}

// Undo restores the most recent snapshot. No-op when the past stack is empty.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	snap := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, h.state.Clone())
	h.state = Reduce(h.state, entity.Action{Type: entity.ActionReplaceState, State: &snap})
	return true
}

func (h *History) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	snap := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, h.state.Clone())
	h.state = Reduce(h.state, entity.Action{Type: entity.ActionReplaceState, State: &snap})
	return true
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// IsDirty compares the live signature against the baseline captured at
// construction or at the last CommitBaseline.
func (h *History) IsDirty() bool {
	return Signature(h.state) != h.baseline
}

// CommitBaseline re-captures the current signature, typically after a
// successful save.
func (h *History) CommitBaseline() {
	h.baseline = Signature(h.state)
}

// RemoveActive deletes the active layer. No-op without one.
func (h *History) RemoveActive() bool {
	id := h.state.ActiveLayerID
	if id == "" {
		return false
	}
	h.Dispatch(entity.Action{Type: entity.ActionRemoveLayer, LayerID: id})
	return true
}

// DuplicateActive clones the active layer under a freshly minted id, nudges
// its position and inserts the clone at the top of the paint order.
func (h *History) DuplicateActive() bool {
	idx := h.state.LayerIndex(h.state.ActiveLayerID)
	if idx < 0 {
		return false
	}

	dup := h.state.Layers[idx].Clone()
	dup.ID = dup.ID + "-" + mintSuffix()
	dup.XPct += duplicateOffsetPct
	dup.YPct += duplicateOffsetPct

	h.Dispatch(entity.Action{Type: entity.ActionAddLayer, Layer: &dup, AtTop: true})
	return true
}

func mintSuffix() string {
	return strings.Split(uuid.New().String(), "-")[0]
}
