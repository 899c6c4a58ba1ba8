package editor

import (
	"sync"
	"time"

	"github.com/drivecanvas/designer-backend/internal/entity"
	"github.com/google/uuid"
)

// Session owns one editing document: the history manager, the stroke-level
// undo stack and a monotonic revision counter used to discard stale async
// results. All access goes through the mutex; the document is never mutated
// from outside.
type Session struct {
	ID string

	mu       sync.Mutex
	history  *History
	strokes  strokeHistory
	revision uint64
	touched  time.Time

	// guards a queued job's completion against being applied twice when two
	// poll ticks race
	appliedJobs map[string]bool
}

func NewSession(initial entity.EditorState) *Session {
	return &Session{
		ID:          uuid.New().String(),
		history:     NewHistory(initial),
		touched:     time.Now(),
		appliedJobs: map[string]bool{},
	}
}

// Snapshot is what the transport layer serializes back to the caller.
type Snapshot struct {
	Revision uint64
	Dirty    bool
	CanUndo  bool
	CanRedo  bool
	State    entity.EditorState
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Revision: s.revision,
		Dirty:    s.history.IsDirty(),
		CanUndo:  s.history.CanUndo(),
		CanRedo:  s.history.CanRedo(),
		State:    s.history.State().Clone(),
	}
}

// Dispatch applies one action and bumps the revision. Brush strokes are
// additionally recorded into the stroke-level undo stack; starting, clearing
// or applying an annotation resets it.
func (s *Session) Dispatch(action entity.Action) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
	s.revision++

	switch action.Type {
	case entity.ActionAddBrushStroke:
		if action.Stroke != nil && s.history.State().DrawToEdit != nil {
			s.strokes.record(action.Stroke.Clone())
		}
	case entity.ActionStartDrawToEdit, entity.ActionClearDrawToEdit,
		entity.ActionApplyDrawToEditResult, entity.ActionReplaceState:
		s.strokes.reset()
	}

	s.history.Dispatch(action)
	return s.snapshotLocked()
}

// Undo rewinds one document mutation. The stroke stack is scoped to the
// annotation's lifetime, so a document-level restore resets it.
func (s *Session) Undo() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	ok := s.history.Undo()
	if ok {
		s.revision++
		s.strokes.reset()
	}
	return s.snapshotLocked(), ok
}

func (s *Session) Redo() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	ok := s.history.Redo()
	if ok {
		s.revision++
		s.strokes.reset()
	}
	return s.snapshotLocked(), ok
}

// UndoStroke rewinds the last brush stroke by replaying the annotation up to
// the previous index. The replay actions are non-mutating, so document
// history is untouched.
func (s *Session) UndoStroke() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	if !s.strokes.canUndo() {
		return s.snapshotLocked(), false
	}
	s.strokes.applied--
	s.replayStrokesLocked()
	s.revision++
	return s.snapshotLocked(), true
}

func (s *Session) RedoStroke() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	if !s.strokes.canRedo() {
		return s.snapshotLocked(), false
	}
	s.strokes.applied++
	s.replayStrokesLocked()
	s.revision++
	return s.snapshotLocked(), true
}

func (s *Session) replayStrokesLocked() {
	s.history.Dispatch(entity.Action{Type: entity.ActionStartDrawToEdit})
	for i := 0; i < s.strokes.applied; i++ {
		stroke := s.strokes.recorded[i].Clone()
		s.history.Dispatch(entity.Action{Type: entity.ActionAddBrushStroke, Stroke: &stroke})
	}
}

// ApplyCommand runs a resolved keyboard command.
func (s *Session) ApplyCommand(cmd Command) (Snapshot, bool) {
	switch cmd {
	case CommandUndo:
		return s.Undo()
	case CommandRedo:
		return s.Redo()
	case CommandDelete:
		s.mu.Lock()
		defer s.mu.Unlock()
		s.touched = time.Now()
		ok := s.history.RemoveActive()
		if ok {
			s.revision++
		}
		return s.snapshotLocked(), ok
	case CommandDuplicate:
		s.mu.Lock()
		defer s.mu.Unlock()
		s.touched = time.Now()
		ok := s.history.DuplicateActive()
		if ok {
			s.revision++
		}
		return s.snapshotLocked(), ok
	}
	return s.Snapshot(), false
}

// CommitBaseline marks the current document as saved.
func (s *Session) CommitBaseline() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
	s.history.CommitBaseline()
	return s.snapshotLocked()
}

// Editing reports whether a text layer is in inline-edit mode; keyboard
// chords are suppressed while it is.
func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.State().EditingLayerID != ""
}

// MarkJobApplied records the job completion. The second and later calls for
// the same job return false.
func (s *Session) MarkJobApplied(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appliedJobs[jobID] {
		return false
	}
	s.appliedJobs[jobID] = true
	return true
}

// IdleSince reports the last time the session was touched.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

// strokeHistory is the brush-stroke undo stack, independent from document
// history and reset whenever the annotation's lifecycle restarts.
type strokeHistory struct {
	recorded []entity.BrushStroke
	applied  int
}

func (h *strokeHistory) record(stroke entity.BrushStroke) {
	h.recorded = append(h.recorded[:h.applied], stroke)
	h.applied = len(h.recorded)
}

func (h *strokeHistory) reset() {
	h.recorded = nil
	h.applied = 0
}

func (h *strokeHistory) canUndo() bool { return h.applied > 0 }
func (h *strokeHistory) canRedo() bool { return h.applied < len(h.recorded) }
