package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	geminiAPIURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	geminiModel        = "gemini-2.5-flash"
)

const identifyDishPrompt = `Identify this dish with a catchy title. Describe its key flavors.
Then, using your maps tool, find 3 highly-rated restaurants nearby that serve this specific dish or cuisine.
For each restaurant, provide a reason why it is good and explicitly state its International Phone Number in the format "Phone: +xxxxxxxxxxx" if available.`

// fallbackAnswer stands in when the model returns an empty answer so the
// caller always has a first line to parse.
const fallbackAnswer = "I couldn't identify the dish or find places."

// GeminiClient calls the Gemini generateContent endpoint with the Google
// Maps grounding tool enabled.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = geminiModel
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: fmt.Sprintf(geminiAPIURLFormat, model),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents   []geminiContent   `json:"contents"`
	Tools      []geminiTool      `json:"tools,omitempty"`
	ToolConfig *geminiToolConfig `json:"toolConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiTool struct {
	GoogleMaps struct{} `json:"googleMaps"`
}

type geminiToolConfig struct {
	RetrievalConfig *geminiRetrievalConfig `json:"retrievalConfig,omitempty"`
}

type geminiRetrievalConfig struct {
	LatLng geminiLatLng `json:"latLng"`
}

type geminiLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []GroundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	parts := []geminiPart{}
	if len(req.ImageJPEG) > 0 {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: "image/jpeg",
				Data:     base64.StdEncoding.EncodeToString(req.ImageJPEG),
			},
		})
		parts = append(parts, geminiPart{Text: identifyDishPrompt})
	} else {
		parts = append(parts, geminiPart{Text: req.Query + "\n\n" + identifyDishPrompt})
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		Tools:    []geminiTool{{}},
	}

	if req.Location != nil {
		reqBody.ToolConfig = &geminiToolConfig{
			RetrievalConfig: &geminiRetrievalConfig{
				LatLng: geminiLatLng{
					Latitude:  req.Location.Latitude,
					Longitude: req.Location.Longitude,
				},
			},
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if geminiResp.Error != nil {
		return nil, fmt.Errorf("Gemini API error: %s", geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 {
		return nil, fmt.Errorf("no response from Gemini")
	}

	candidate := geminiResp.Candidates[0]

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}

	answer := text.String()
	if strings.TrimSpace(answer) == "" {
		answer = fallbackAnswer
	}

	result := &Response{Text: answer}
	if candidate.GroundingMetadata != nil {
		result.Chunks = candidate.GroundingMetadata.GroundingChunks
	}

	return result, nil
}
