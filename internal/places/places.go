package places

import "github.com/dishoutapp/dishout/internal/ai"

// Record is one restaurant extracted from the model's grounded answer.
// Immutable once constructed.
type Record struct {
	Title         string `json:"title"`
	MapURI        string `json:"mapUri"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	ReviewSnippet string `json:"reviewSnippet,omitempty"`
}

// FromChunks converts grounding chunks into place records, dropping pure web
// citations and annotating each place with a phone number extracted from the
// answer text where one can be found. Absence of a phone number is an
// expected outcome, not a failure.
func FromChunks(answer string, chunks []ai.GroundingChunk, extractor PhoneExtractor) []Record {
	records := make([]Record, 0, len(chunks))

	for _, chunk := range chunks {
		if chunk.Maps == nil {
			continue
		}

		record := Record{
			Title:  chunk.Maps.Title,
			MapURI: chunk.Maps.URI,
		}

		if record.Title != "" {
			record.PhoneNumber = extractor.Extract(answer, record.Title)
		}

		if len(chunk.Maps.PlaceAnswerSources) > 0 {
			snippets := chunk.Maps.PlaceAnswerSources[0].ReviewSnippets
			if len(snippets) > 0 {
				record.ReviewSnippet = snippets[0].Content
			}
		}

		records = append(records, record)
	}

	return records
}
