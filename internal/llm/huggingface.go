package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const DefaultSummaryURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"

// HuggingFaceClient calls a HuggingFace inference endpoint. Used for the
// diff summarization model, which speaks the inference API rather than chat
// completions.
type HuggingFaceClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
}

func NewHuggingFaceClient(token, baseURL string, logger *zap.Logger) *HuggingFaceClient {
	if baseURL == "" {
		baseURL = DefaultSummaryURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HuggingFaceClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		token:      token,
		logger:     logger,
	}
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxLength     int  `json:"max_length"`
	NumBeams      int  `json:"num_beams"`
	EarlyStopping bool `json:"early_stopping"`
}

type inferenceResult struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
}

// Complete sends the prompt to the inference endpoint and extracts the
// generated text. The API answers with either a list of results or a single
// object; both shapes are accepted.
func (c *HuggingFaceClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxLength:     128,
			NumBeams:      4,
			EarlyStopping: true,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("inference request failed", zap.Error(err))
		return "", &Failure{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Failure{Status: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("inference request rejected",
			zap.Int("status", resp.StatusCode))
		return "", &Failure{Status: resp.StatusCode, Body: string(body)}
	}

	text, err := extractGeneratedText(body)
	if err != nil {
		return "", &Failure{Status: resp.StatusCode, Body: string(body)}
	}

	return text, nil
}

func extractGeneratedText(body []byte) (string, error) {
	var results []inferenceResult
	if err := json.Unmarshal(body, &results); err == nil && len(results) > 0 {
		return pickText(results[0])
	}

	var single inferenceResult
	if err := json.Unmarshal(body, &single); err == nil {
		return pickText(single)
	}

	return "", fmt.Errorf("unexpected inference response shape")
}

func pickText(r inferenceResult) (string, error) {
	if s := strings.TrimSpace(r.GeneratedText); s != "" {
		return s, nil
	}
	if s := strings.TrimSpace(r.SummaryText); s != "" {
		return s, nil
	}
	return "", fmt.Errorf("inference response carried no text")
}
