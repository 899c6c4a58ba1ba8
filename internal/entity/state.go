package entity

type Tool string

const (
	ToolSelect Tool = "select"
	ToolText   Tool = "text"
	ToolShape  Tool = "shape"
	ToolImage  Tool = "image"
	ToolBrush  Tool = "brush"
)

type MarqueeMode string

const (
	MarqueeRectangle MarqueeMode = "rectangle"
	MarqueeEllipse   MarqueeMode = "ellipse"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BrushStroke points and width are in canvas pixel coordinates, pre-scaled
// from display pixels by the caller.
type BrushStroke struct {
	Points []Point `json:"points"`
	Width  float64 `json:"width"`
	Color  Color   `json:"color"`
}

func (s BrushStroke) Clone() BrushStroke {
	c := s
	c.Points = append([]Point(nil), s.Points...)
	return c
}

type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DrawToEditAnnotation is transient: brush strokes plus the finalized region,
// discarded once the edit result is applied or the annotation is cleared.
type DrawToEditAnnotation struct {
	Strokes []BrushStroke `json:"strokes"`
	Box     *BoundingBox  `json:"box,omitempty"`
}

func (a *DrawToEditAnnotation) Clone() *DrawToEditAnnotation {
	if a == nil {
		return nil
	}
	c := &DrawToEditAnnotation{Strokes: make([]BrushStroke, len(a.Strokes))}
	for i, s := range a.Strokes {
		c.Strokes[i] = s.Clone()
	}
	if a.Box != nil {
		b := *a.Box
		c.Box = &b
	}
	return c
}

// EditorState is the whole per-session document plus transient tool state.
// It lives in memory for the lifetime of one editing session.
type EditorState struct {
	Tool        Tool        `json:"tool"`
	MarqueeMode MarqueeMode `json:"marqueeMode"`

	BackgroundURL      string `json:"backgroundUrl"`
	BackgroundBlurhash string `json:"backgroundBlurhash,omitempty"`

	MaskURL        string  `json:"maskUrl,omitempty"`
	MaskHidden     bool    `json:"maskHidden"`
	MaskLocked     bool    `json:"maskLocked"`
	MaskOffsetXPct float64 `json:"maskOffsetXPct"`
	MaskOffsetYPct float64 `json:"maskOffsetYPct"`

	CanvasAspectRatio float64 `json:"canvasAspectRatio"`

	Layers           []Layer  `json:"layers"`
	SelectedLayerIDs []string `json:"selectedLayerIds"`
	ActiveLayerID    string   `json:"activeLayerId,omitempty"`
	EditingLayerID   string   `json:"editingLayerId,omitempty"`

	DrawToEdit *DrawToEditAnnotation `json:"drawToEdit,omitempty"`
}

// NewEditorState seeds a fresh session state with defaults.
func NewEditorState() EditorState {
	return EditorState{
		Tool:              ToolSelect,
		MarqueeMode:       MarqueeRectangle,
		CanvasAspectRatio: 1,
		Layers:            []Layer{},
		SelectedLayerIDs:  []string{},
	}
}

// Clone copies the state deeply enough that mutating the copy can never
// corrupt the original. Undo snapshots rely on this.
func (s EditorState) Clone() EditorState {
	c := s
	c.Layers = CloneLayers(s.Layers)
	c.SelectedLayerIDs = append([]string(nil), s.SelectedLayerIDs...)
	c.DrawToEdit = s.DrawToEdit.Clone()
	return c
}

// LayerIndex returns the index of the layer, or -1 if absent.
func (s EditorState) LayerIndex(id string) int {
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			return i
		}
	}
	return -1
}
