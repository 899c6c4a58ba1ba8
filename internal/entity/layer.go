package entity

type LayerType string

const (
	LayerText  LayerType = "text"
	LayerShape LayerType = "shape"
	LayerImage LayerType = "image"
	LayerMask  LayerType = "mask"
)

type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeEllipse   ShapeKind = "ellipse"
	ShapeTriangle  ShapeKind = "triangle"
	ShapeLine      ShapeKind = "line"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// LayerEffect describes a single shadow or glow applied to a layer.
type LayerEffect struct {
	Enabled bool    `json:"enabled"`
	Color   Color   `json:"color"`
	Blur    float64 `json:"blur"`
	Size    float64 `json:"size"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

type Effects struct {
	Shadow LayerEffect `json:"shadow"`
	Glow   LayerEffect `json:"glow"`
}

// Layer is one visual element of the document. The variant is picked by Type;
// variant-specific fields are zero for the other variants.
type Layer struct {
	ID   string    `json:"id"`
	Type LayerType `json:"type"`
	Name string    `json:"name"`

	// Position and size in percent of the canvas, not pixels
	XPct      float64 `json:"xPct"`
	YPct      float64 `json:"yPct"`
	WidthPct  float64 `json:"widthPct"`
	HeightPct float64 `json:"heightPct"`

	RotationDeg float64 `json:"rotationDeg"`
	TiltXDeg    float64 `json:"tiltXDeg"`
	TiltYDeg    float64 `json:"tiltYDeg"`
	ScaleX      float64 `json:"scaleX"`
	ScaleY      float64 `json:"scaleY"`

	Locked    bool `json:"locked"`
	Hidden    bool `json:"hidden"`
	AboveMask bool `json:"aboveMask"`

	Effects Effects `json:"effects"`

	// text variant
	Text            string    `json:"text,omitempty"`
	HTML            string    `json:"html,omitempty"`
	Italic          bool      `json:"italic,omitempty"`
	Underline       bool      `json:"underline,omitempty"`
	TextAlign       TextAlign `json:"textAlign,omitempty"`
	Color           *Color    `json:"color,omitempty"`
	FontFamily      string    `json:"fontFamily,omitempty"`
	FontWeight      int       `json:"fontWeight,omitempty"`
	FontSizeEm      float64   `json:"fontSizeEm,omitempty"`
	LetterSpacingEm float64   `json:"letterSpacingEm,omitempty"`
	LineHeightEm    float64   `json:"lineHeightEm,omitempty"`
	StrokeEnabled   bool      `json:"strokeEnabled,omitempty"`
	StrokeColor     *Color    `json:"strokeColor,omitempty"`
	StrokeWidth     float64   `json:"strokeWidth,omitempty"`
	Highlight       *Color    `json:"highlight,omitempty"`
	BorderRadiusEm  float64   `json:"borderRadiusEm,omitempty"`

	// shape variant
	Shape     ShapeKind `json:"shape,omitempty"`
	Fill      *Color    `json:"fill,omitempty"`
	RadiusPct float64   `json:"radiusPct,omitempty"`

	// image and mask variants
	Src           string `json:"src,omitempty"`
	NaturalWidth  int    `json:"naturalWidth,omitempty"`
	NaturalHeight int    `json:"naturalHeight,omitempty"`
}

// Clone returns a copy safe to mutate independently.
func (l Layer) Clone() Layer {
	c := l
	c.Color = cloneColorPtr(l.Color)
	c.StrokeColor = cloneColorPtr(l.StrokeColor)
	c.Highlight = cloneColorPtr(l.Highlight)
	c.Fill = cloneColorPtr(l.Fill)
	return c
}

func cloneColorPtr(c *Color) *Color {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

func CloneLayers(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone()
	}
	return out
}
