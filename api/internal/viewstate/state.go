package viewstate

import "landmark-lens/api/internal/recognition"

type Phase string

const (
	PhaseInitial Phase = "initial"
	PhaseLoading Phase = "loading"
	PhaseResult  Phase = "result"
	PhaseError   Phase = "error"
)

// State is exactly one of Initial, Loading, Result or Failure.
type State interface {
	Phase() Phase
	isState()
}

type Initial struct{}

type Loading struct {
	Message string
}

// Result keeps the encoded image next to the landmark so the lookup can be
// repeated in another language without the uploaded file.
type Result struct {
	Landmark     recognition.LandmarkInfo
	ImageURI     string
	ImageEncoded string // base64, standard alphabet
	MimeType     string
}

type Failure struct {
	Message string
}

func (Initial) Phase() Phase { return PhaseInitial }
func (Loading) Phase() Phase { return PhaseLoading }
func (Result) Phase() Phase  { return PhaseResult }
func (Failure) Phase() Phase { return PhaseError }

func (Initial) isState() {}
func (Loading) isState() {}
func (Result) isState()  {}
func (Failure) isState() {}

// Directions is the route sub-state shown under a Result.
type Directions struct {
	Info        *recognition.DirectionsInfo
	FormVisible bool
	Loading     bool
	Origin      string
}
