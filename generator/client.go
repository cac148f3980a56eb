package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// Metadata probes are quick; bulk generation can legitimately take minutes
	// on a local model.
	probeTimeout    = 5 * time.Second
	generateTimeout = 300 * time.Second
)

// BackendError wraps a transport or HTTP failure from the text generation
// backend.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generation backend error: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// OllamaClient talks to a local Ollama text generation endpoint.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response *string `json:"response"`
}

// NewOllamaClient builds a client and probes the backend. A backend that does
// not answer the probe is a startup failure.
func NewOllamaClient(baseURL, model string) (*OllamaClient, error) {
	c := &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: generateTimeout},
	}

	probe := &http.Client{Timeout: probeTimeout}
	res, err := probe.Get(c.baseURL + "/api/tags")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to Ollama at %s, make sure Ollama is running", c.baseURL)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to connect to Ollama at %s: status %d", c.baseURL, res.StatusCode)
	}

	return c, nil
}

// GenerateText sends one blocking generation request and returns the trimmed
// output. A transport failure, a non-2xx status or a missing output field is
// returned as a *BackendError.
func (c *OllamaClient) GenerateText(systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: userPrompt,
		System: systemPrompt,
		Stream: false,
		Options: generateOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
			TopP:        0.95,
			TopK:        40,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	res, err := c.client.Post(c.baseURL+"/api/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", &BackendError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return "", &BackendError{Err: fmt.Errorf("non-200 http code: %d", res.StatusCode)}
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &BackendError{Err: err}
	}

	var parsed generateResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", &BackendError{Err: err}
	}
	if parsed.Response == nil {
		return "", &BackendError{Err: errors.New("empty response from model")}
	}

	return strings.TrimSpace(*parsed.Response), nil
}
