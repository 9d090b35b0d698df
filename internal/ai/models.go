package ai

import "context"

// GroundedModel identifies a dish from an image or a free-text query and
// augments the answer with grounded place citations.
type GroundedModel interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Location biases the model's place retrieval toward the user's area.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Request carries either a canonical JPEG image or a free-text query, never
// both. Location is optional.
type Request struct {
	ImageJPEG []byte
	Query     string
	Location  *Location
}

// Response is the model's free-text answer plus the grounding citations
// returned alongside it.
type Response struct {
	Text   string
	Chunks []GroundingChunk
}

// GroundingChunk is one loosely-structured citation. Web chunks are plain
// source links; maps chunks carry a place title and map URI and may nest
// review snippets. Phone numbers never arrive in the chunk itself.
type GroundingChunk struct {
	Web  *WebSource  `json:"web,omitempty"`
	Maps *MapsSource `json:"maps,omitempty"`
}

type WebSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type MapsSource struct {
	URI                string              `json:"uri"`
	Title              string              `json:"title"`
	PlaceAnswerSources []PlaceAnswerSource `json:"placeAnswerSources,omitempty"`
}

type PlaceAnswerSource struct {
	ReviewSnippets []ReviewSnippet `json:"reviewSnippets,omitempty"`
}

type ReviewSnippet struct {
	Content string `json:"content"`
}
