// Package estimator turns a free-text meal description into a macro estimate
// using the Gemini generateContent REST endpoint.
package estimator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/macrolog/internal/error_values"
	"github.com/limbo/macrolog/pkg/entity"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash-lite"
	DefaultTimeout = 20 * time.Second
)

const promptTemplate = `Analyze the following meal description and provide nutritional estimates.
Respond ONLY with a valid JSON object in exactly this format, with no additional text or markdown:
{"mealName": "descriptive name", "calories": number, "protein": number, "fats": number, "carbs": number}

All nutrient values should be numbers (not strings) representing grams, except calories which is in kcal.

Meal description: %s`

type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type GeminiEstimator struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func New(opts Options) *GeminiEstimator {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &GeminiEstimator{
		client:  &http.Client{Timeout: opts.Timeout},
		apiKey:  opts.APIKey,
		model:   opts.Model,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Estimate asks the model for a macro estimate. Every failure, including a reply
// that does not have the expected shape, wraps ErrEstimationFailed.
func (e *GeminiEstimator) Estimate(ctx context.Context, description string) (*entity.MacroEstimate, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("%w: api key is not configured", errorvalues.ErrEstimationFailed)
	}
	body, err := sonic.ConfigDefault.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, description)}}}},
		GenerationConfig: generationConfig{
			Temperature:      0.2,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", errorvalues.ErrEstimationFailed, err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", errorvalues.ErrEstimationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request error: %v", errorvalues.ErrEstimationFailed, err)
	}
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", errorvalues.ErrEstimationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if sonic.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: api error (%d): %s", errorvalues.ErrEstimationFailed, resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: api error (%d): %s", errorvalues.ErrEstimationFailed, resp.StatusCode, preview(respBytes))
	}

	var out generateResponse
	if err := sonic.Unmarshal(respBytes, &out); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", errorvalues.ErrEstimationFailed, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty model reply", errorvalues.ErrEstimationFailed)
	}
	text := out.Candidates[0].Content.Parts[0].Text
	estimate, err := ParseEstimate(text)
	if err != nil {
		slog.Default().Error("unparseable estimator reply", slog.String("reply", preview([]byte(text))))
		return nil, fmt.Errorf("%w: %v", errorvalues.ErrEstimationFailed, err)
	}
	return estimate, nil
}

type rawEstimate struct {
	MealName string   `json:"mealName"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Fats     *float64 `json:"fats"`
	Carbs    *float64 `json:"carbs"`
}

var errInvalidStructure = errors.New("invalid nutrient data structure")

// ParseEstimate validates a model reply: markdown fences are stripped, the name must
// be non-empty and all four nutrients must be non-negative JSON numbers.
func ParseEstimate(text string) (*entity.MacroEstimate, error) {
	text = stripFences(text)
	var raw rawEstimate
	if err := sonic.UnmarshalString(text, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidStructure, err)
	}
	name := strings.TrimSpace(raw.MealName)
	if name == "" {
		return nil, fmt.Errorf("%w: missing meal name", errInvalidStructure)
	}
	values := []*float64{raw.Calories, raw.Protein, raw.Fats, raw.Carbs}
	for _, v := range values {
		if v == nil {
			return nil, fmt.Errorf("%w: missing nutrient value", errInvalidStructure)
		}
		if *v < 0 {
			return nil, fmt.Errorf("%w: negative nutrient value", errInvalidStructure)
		}
	}
	return &entity.MacroEstimate{
		Name:     name,
		Calories: *raw.Calories,
		Protein:  *raw.Protein,
		Fats:     *raw.Fats,
		Carbs:    *raw.Carbs,
	}, nil
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func preview(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
