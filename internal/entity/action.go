package entity

type ActionType string

const (
	ActionSetTool        ActionType = "set_tool"
	ActionSetMarqueeMode ActionType = "set_marquee_mode"

	ActionAddLayer        ActionType = "add_layer"
	ActionUpdateLayer     ActionType = "update_layer"
	ActionRemoveLayer     ActionType = "remove_layer"
	ActionReorderLayer    ActionType = "reorder_layer"
	ActionBringForward    ActionType = "bring_forward"
	ActionSendBackward    ActionType = "send_backward"
	ActionSendToFront     ActionType = "send_to_front"
	ActionSendToBack      ActionType = "send_to_back"
	ActionToggleAboveMask ActionType = "toggle_above_mask"

	ActionSelectLayer       ActionType = "select_layer"
	ActionToggleSelectLayer ActionType = "toggle_select_layer"
	ActionSelectLayers      ActionType = "select_layers"
	ActionSetEditingLayer   ActionType = "set_editing_layer"

	ActionSetBackground    ActionType = "set_background"
	ActionSetMask          ActionType = "set_mask"
	ActionSetMaskOffset    ActionType = "set_mask_offset"
	ActionResetMask        ActionType = "reset_mask"
	ActionToggleMaskHidden ActionType = "toggle_mask_hidden"

	ActionStartDrawToEdit       ActionType = "start_draw_to_edit"
	ActionAddBrushStroke        ActionType = "add_brush_stroke"
	ActionClearDrawToEdit       ActionType = "clear_draw_to_edit"
	ActionFinalizeDrawToEdit    ActionType = "finalize_draw_to_edit"
	ActionApplyDrawToEditResult ActionType = "apply_draw_to_edit_result"

	ActionReplaceState ActionType = "replace_state"
)

// Action is the closed set of editor transitions. Only the fields relevant to
// Type are populated; the reducer ignores the rest.
type Action struct {
	Type ActionType `json:"type"`

	LayerID  string   `json:"layerId,omitempty"`
	LayerIDs []string `json:"layerIds,omitempty"`
	Layer    *Layer   `json:"layer,omitempty"`
	Patch    *LayerPatch `json:"patch,omitempty"`
	AtTop    bool     `json:"atTop,omitempty"`
	ToIndex  int      `json:"toIndex,omitempty"`

	Tool        Tool        `json:"tool,omitempty"`
	MarqueeMode MarqueeMode `json:"marqueeMode,omitempty"`

	URL      string  `json:"url,omitempty"`
	Blurhash string  `json:"blurhash,omitempty"`
	OffsetX  float64 `json:"offsetX,omitempty"`
	OffsetY  float64 `json:"offsetY,omitempty"`

	Stroke *BrushStroke `json:"stroke,omitempty"`
	Box    *BoundingBox `json:"box,omitempty"`

	State *EditorState `json:"state,omitempty"`
}

// LayerPatch carries a shallow merge for update_layer: nil fields are left
// untouched on the target layer.
type LayerPatch struct {
	Name *string `json:"name,omitempty"`

	XPct      *float64 `json:"xPct,omitempty"`
	YPct      *float64 `json:"yPct,omitempty"`
	WidthPct  *float64 `json:"widthPct,omitempty"`
	HeightPct *float64 `json:"heightPct,omitempty"`

	RotationDeg *float64 `json:"rotationDeg,omitempty"`
	TiltXDeg    *float64 `json:"tiltXDeg,omitempty"`
	TiltYDeg    *float64 `json:"tiltYDeg,omitempty"`
	ScaleX      *float64 `json:"scaleX,omitempty"`
	ScaleY      *float64 `json:"scaleY,omitempty"`

	Locked    *bool `json:"locked,omitempty"`
	Hidden    *bool `json:"hidden,omitempty"`
	AboveMask *bool `json:"aboveMask,omitempty"`

	Effects *Effects `json:"effects,omitempty"`

	Text            *string    `json:"text,omitempty"`
	HTML            *string    `json:"html,omitempty"`
	Italic          *bool      `json:"italic,omitempty"`
	Underline       *bool      `json:"underline,omitempty"`
	TextAlign       *TextAlign `json:"textAlign,omitempty"`
	Color           *Color     `json:"color,omitempty"`
	FontFamily      *string    `json:"fontFamily,omitempty"`
	FontWeight      *int       `json:"fontWeight,omitempty"`
	FontSizeEm      *float64   `json:"fontSizeEm,omitempty"`
	LetterSpacingEm *float64   `json:"letterSpacingEm,omitempty"`
	LineHeightEm    *float64   `json:"lineHeightEm,omitempty"`
	StrokeEnabled   *bool      `json:"strokeEnabled,omitempty"`
	StrokeColor     *Color     `json:"strokeColor,omitempty"`
	StrokeWidth     *float64   `json:"strokeWidth,omitempty"`
	Highlight       *Color     `json:"highlight,omitempty"`
	BorderRadiusEm  *float64   `json:"borderRadiusEm,omitempty"`

	Shape     *ShapeKind `json:"shape,omitempty"`
	Fill      *Color     `json:"fill,omitempty"`
	RadiusPct *float64   `json:"radiusPct,omitempty"`

	Src           *string `json:"src,omitempty"`
	NaturalWidth  *int    `json:"naturalWidth,omitempty"`
	NaturalHeight *int    `json:"naturalHeight,omitempty"`
}

// Apply merges the non-nil patch fields into the layer.
func (p *LayerPatch) Apply(l *Layer) {
	if p == nil {
		return
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.XPct != nil {
		l.XPct = *p.XPct
	}
	if p.YPct != nil {
		l.YPct = *p.YPct
	}
	if p.WidthPct != nil {
		l.WidthPct = *p.WidthPct
	}
	if p.HeightPct != nil {
		l.HeightPct = *p.HeightPct
	}
	if p.RotationDeg != nil {
		l.RotationDeg = *p.RotationDeg
	}
	if p.TiltXDeg != nil {
		l.TiltXDeg = *p.TiltXDeg
	}
	if p.TiltYDeg != nil {
		l.TiltYDeg = *p.TiltYDeg
	}
	if p.ScaleX != nil {
		l.ScaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		l.ScaleY = *p.ScaleY
	}
	if p.Locked != nil {
		l.Locked = *p.Locked
	}
	if p.Hidden != nil {
		l.Hidden = *p.Hidden
	}
	if p.AboveMask != nil {
		l.AboveMask = *p.AboveMask
	}
	if p.Effects != nil {
		l.Effects = *p.Effects
	}
	if p.Text != nil {
		l.Text = *p.Text
	}
	if p.HTML != nil {
		l.HTML = *p.HTML
	}
	if p.Italic != nil {
		l.Italic = *p.Italic
	}
	if p.Underline != nil {
		l.Underline = *p.Underline
	}
	if p.TextAlign != nil {
		l.TextAlign = *p.TextAlign
	}
	if p.Color != nil {
		c := *p.Color
		l.Color = &c
	}
	if p.FontFamily != nil {
		l.FontFamily = *p.FontFamily
	}
	if p.FontWeight != nil {
		l.FontWeight = *p.FontWeight
	}
	if p.FontSizeEm != nil {
		l.FontSizeEm = *p.FontSizeEm
	}
	if p.LetterSpacingEm != nil {
		l.LetterSpacingEm = *p.LetterSpacingEm
	}
	if p.LineHeightEm != nil {
		l.LineHeightEm = *p.LineHeightEm
	}
	if p.StrokeEnabled != nil {
		l.StrokeEnabled = *p.StrokeEnabled
	}
	if p.StrokeColor != nil {
		c := *p.StrokeColor
		l.StrokeColor = &c
	}
	if p.StrokeWidth != nil {
		l.StrokeWidth = *p.StrokeWidth
	}
	if p.Highlight != nil {
		c := *p.Highlight
		l.Highlight = &c
	}
	if p.BorderRadiusEm != nil {
		l.BorderRadiusEm = *p.BorderRadiusEm
	}
	if p.Shape != nil {
		l.Shape = *p.Shape
	}
	if p.Fill != nil {
		c := *p.Fill
		l.Fill = &c
	}
	if p.RadiusPct != nil {
		l.RadiusPct = *p.RadiusPct
	}
	if p.Src != nil {
		l.Src = *p.Src
	}
	if p.NaturalWidth != nil {
		l.NaturalWidth = *p.NaturalWidth
	}
	if p.NaturalHeight != nil {
		l.NaturalHeight = *p.NaturalHeight
	}
}
