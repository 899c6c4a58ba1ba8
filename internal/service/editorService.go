package service

import (
	"bytes"
	"image/png"

	"github.com/drivecanvas/designer-backend/internal/editor"
	"github.com/drivecanvas/designer-backend/internal/entity"
)

func (s *editorService) CreateSession(req entity.CreateSessionRequest) (*editor.Session, error) {
	state := entity.NewEditorState()
	state.BackgroundURL = req.BackgroundURL
	state.BackgroundBlurhash = req.BackgroundBlurhash
	state.MaskURL = req.MaskURL
	if req.CanvasAspectRatio > 0 {
		state.CanvasAspectRatio = req.CanvasAspectRatio
	}
	if len(req.Layers) > 0 {
		state.Layers = entity.CloneLayers(req.Layers)
	}

	session := editor.NewSession(state)
	if err := s.sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *editorService) GetSession(id string) (*editor.Session, error) {
	session, ok := s.sessions.FindByID(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return session, nil
}

func (s *editorService) DeleteSession(id string) error {
	return s.sessions.Delete(id)
}

func (s *editorService) Dispatch(id string, action entity.Action) (editor.Snapshot, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return editor.Snapshot{}, err
	}
	return session.Dispatch(action), nil
}

func (s *editorService) Undo(id string) (editor.Snapshot, bool, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return editor.Snapshot{}, false, err
	}
	snap, ok := session.Undo()
	return snap, ok, nil
}

func (s *editorService) Redo(id string) (editor.Snapshot, bool, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return editor.Snapshot{}, false, err
	}
	snap, ok := session.Redo()
	return snap, ok, nil
}

func (s *editorService) UndoStroke(id string) (editor.Snapshot, bool, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return editor.Snapshot{}, false, err
	}
	snap, ok := session.UndoStroke()
	return snap, ok, nil
}

func (s *editorService) RedoStroke(id string) (editor.Snapshot, bool, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return editor.Snapshot{}, false, err
	}
	snap, ok := session.RedoStroke()
	return snap, ok, nil
}

// KeyPress resolves a keyboard chord and runs the resulting command. Chords
// are suppressed while a text layer is in inline-edit mode.
func (s *editorService) KeyPress(id, chord string) (editor.Snapshot, editor.Command, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return editor.Snapshot{}, editor.CommandNone, err
	}

	cmd := editor.ResolveChord(chord, session.Editing())
	if cmd == editor.CommandNone {
		return session.Snapshot(), cmd, nil
	}

	snap, _ := session.ApplyCommand(cmd)
	return snap, cmd, nil
}

// FinalizeDrawToEdit computes the bounding box from the current strokes and
// attaches it to the annotation. Canvas dimensions are the background's
// natural pixel size, supplied by the caller that loaded it.
func (s *editorService) FinalizeDrawToEdit(id string, canvasW, canvasH float64) (editor.Snapshot, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return editor.Snapshot{}, err
	}
	if canvasW <= 0 || canvasH <= 0 {
		return editor.Snapshot{}, entity.ErrInvalidInput
	}

	snap := session.Snapshot()
	if snap.State.DrawToEdit == nil {
		return snap, entity.ErrNoBoundingBox
	}

	box := editor.ComputeBoundingBox(snap.State.DrawToEdit.Strokes, canvasW, canvasH)
	return session.Dispatch(entity.Action{Type: entity.ActionFinalizeDrawToEdit, Box: &box}), nil
}

func (s *editorService) CommitBaseline(id string) (editor.Snapshot, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return editor.Snapshot{}, err
	}
	return session.CommitBaseline(), nil
}

// Export flattens the document to a PNG in storage and returns its key and
// viewable URL. The caller commits the baseline separately once its own save
// succeeds.
func (s *editorService) Export(id string) (string, string, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return "", "", err
	}

	img, err := s.rasterizer.Render(session.Snapshot().State)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", "", err
	}

	key := "exports/" + session.ID + ".png"
	if err := s.files.SaveBytes(key, buf.Bytes()); err != nil {
		return "", "", err
	}

	return key, s.files.ResolveURL(key), nil
}

// ExpireIdle removes every session the predicate rejects and returns their
// ids. The janitor worker drives this.
func (s *editorService) ExpireIdle(keep func(*editor.Session) bool) []string {
	var expired []string
	for _, session := range s.sessions.All() {
		if keep(session) {
			continue
		}
		if err := s.sessions.Delete(session.ID); err == nil {
			expired = append(expired, session.ID)
		}
	}
	return expired
}
