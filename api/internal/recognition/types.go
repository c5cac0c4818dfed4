package recognition

// Source is a web page the model cited while answering.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type LandmarkInfo struct {
	Name    string   `json:"name"`
	History string   `json:"history"`
	Sources []Source `json:"sources"`
}

type DirectionsInfo struct {
	Directions string `json:"directions"` // numbered steps, one per line
	MapURL     string `json:"map_url"`
}

// Citation is one raw grounding entry as reported by a backend. Either field
// may be empty; DedupeSources decides what survives.
type Citation struct {
	Title string
	URI   string
}

// Reply is the free-text answer of a backend plus any grounding citations.
type Reply struct {
	Text      string
	Citations []Citation
}
