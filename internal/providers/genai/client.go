package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"designstudio/internal/infra"
)

// Options controls how the Gemini client is configured.
type Options struct {
	Project    string
	Region     string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client is a thin authenticated handle over the Vertex AI generateContent
// endpoint. It owns every outbound call the pipeline makes, performs a single
// attempt per call, and does no response validation beyond transport-level
// success. It holds no per-call mutable state, so one instance may be shared
// by any number of concurrent runs.
type Client struct {
	project    string
	region     string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Content is one conversational turn in a generateContent request or response.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

// Part is a single content fragment: text or an inline binary payload.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries a binary payload embedded directly in a part. Data is
// standard base64 as required by the wire format.
type InlineData struct {
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// GenerationConfig mirrors the backend decoding knobs. Temperature and TopP
// are pointers so a stage can pin an explicit 0.0 without it being dropped by
// omitempty.
type GenerationConfig struct {
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
	TopP            *float64 `json:"topP,omitempty"`
	TopK            *int     `json:"topK,omitempty"`
}

type generateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one completion in a generateContent response.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// GenerateContentResponse is the decoded success envelope.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// ServiceError reports a transport, auth, or backend-reported failure for a
// single call. Message carries the backend text verbatim for diagnostics.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Message != "":
		return fmt.Sprintf("gemini status %d: %s", e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("gemini status %d", e.StatusCode)
	case e.Message != "":
		return "gemini: " + e.Message
	default:
		return "gemini: call failed"
	}
}

func (e *ServiceError) Unwrap() error { return e.Err }

// NewClient constructs a Gemini client. The project identifier and an API
// credential are both required for backend authentication; without them the
// constructor fails and the caller is expected to run with a nil client in a
// backend-unavailable state rather than crash.
func NewClient(opts Options) (*Client, error) {
	project := strings.TrimSpace(opts.Project)
	if project == "" {
		return nil, fmt.Errorf("genai: google cloud project is required")
	}
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("genai: api credential is required")
	}

	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = "us-central1"
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", region)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		project:    project,
		region:     region,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// GenerateContent issues a single generateContent call against the given
// model. Any transport or backend failure comes back as a *ServiceError.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []Content, cfg *GenerationConfig) (*GenerateContentResponse, error) {
	payload := generateContentRequest{
		Contents:         contents,
		GenerationConfig: cfg,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ServiceError{Message: "marshal request: " + err.Error(), Err: err}
	}

	endpoint := c.endpoint(model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ServiceError{Message: "create request: " + err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			return nil, &ServiceError{StatusCode: resp.StatusCode, Message: apiErr.Error.Message}
		}
		data, _ := io.ReadAll(resp.Body)
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	var out GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ServiceError{Message: "decode response: " + err.Error(), Err: err}
	}

	c.logger.Debug().
		Str("model", model).
		Int("candidates", len(out.Candidates)).
		Dur("elapsed", time.Since(start)).
		Msg("genai: generateContent call completed")

	return &out, nil
}

func (c *Client) endpoint(model string) string {
	return fmt.Sprintf("%s/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		c.baseURL,
		url.PathEscape(c.project),
		url.PathEscape(c.region),
		url.PathEscape(model),
	)
}

// TextContent wraps a single user prompt in the contents shape the backend
// expects.
func TextContent(prompt string) []Content {
	return []Content{{
		Role:  "user",
		Parts: []Part{{Text: prompt}},
	}}
}

// TextWithPNG builds a two-part multimodal user turn: an instruction followed
// by inline PNG bytes.
func TextWithPNG(prompt string, png []byte) []Content {
	return []Content{{
		Role: "user",
		Parts: []Part{
			{Text: prompt},
			{InlineData: &InlineData{
				MIMEType: "image/png",
				Data:     base64.StdEncoding.EncodeToString(png),
			}},
		},
	}}
}

// InlineBytes decodes the part's inline payload. The second return is false
// when the part carries no usable binary data.
func (p Part) InlineBytes() ([]byte, bool) {
	if p.InlineData == nil || p.InlineData.Data == "" {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Float returns a pointer suitable for GenerationConfig fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer suitable for GenerationConfig fields.
func Int(v int) *int { return &v }
