package entity

// CreateSessionRequest seeds a fresh editor session. Every field is optional;
// zero values fall back to NewEditorState defaults.
type CreateSessionRequest struct {
	BackgroundURL      string  `json:"backgroundUrl"`
	BackgroundBlurhash string  `json:"backgroundBlurhash"`
	MaskURL            string  `json:"maskUrl"`
	CanvasAspectRatio  float64 `json:"canvasAspectRatio"`
	Layers             []Layer `json:"layers"`
}

type SessionResponse struct {
	ID       string      `json:"id"`
	Revision uint64      `json:"revision"`
	Dirty    bool        `json:"dirty"`
	CanUndo  bool        `json:"canUndo"`
	CanRedo  bool        `json:"canRedo"`
	State    EditorState `json:"state"`
}

type DispatchRequest struct {
	Action Action `json:"action"`
}

// KeyPressRequest carries a keyboard chord such as "ctrl+shift+z" for the
// keymap resolver.
type KeyPressRequest struct {
	Chord string `json:"chord"`
}

type SubmitEditRequest struct {
	Prompt               string       `json:"prompt"`
	ImageDataURL         string       `json:"imageDataUrl"`
	BoundingBox          *BoundingBox `json:"boundingBox"`
	OriginalImageDataURL string       `json:"originalImageDataUrl"`
	CarMaskURL           string       `json:"carMaskUrl"`
}

type SubmitEditResponse struct {
	Status  JobStatus `json:"status"`
	JobID   string    `json:"jobId,omitempty"`
	Credits int64     `json:"credits,omitempty"`
}

type JobStatusResponse struct {
	Status JobStatus `json:"status"`
	Key    string    `json:"key,omitempty"`
	URL    string    `json:"url,omitempty"`
	Error  string    `json:"error,omitempty"`
}

type CreditsResponse struct {
	Credits int64 `json:"credits"`
}

// InsufficientCreditsResponse is the HTTP 402 body.
type InsufficientCreditsResponse struct {
	CurrentCredits  int64 `json:"currentCredits"`
	RequiredCredits int64 `json:"requiredCredits"`
}

type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
