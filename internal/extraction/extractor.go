package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is the one failure that crosses the engine boundary as an
// error: calling extraction with empty or whitespace-only text is a caller
// bug, not a data-quality problem. Every other failure mode comes back in
// the result envelope with Success=false.
var ErrEmptyInput = errors.New("input text cannot be empty")

// Generator is the single blocking call to the remote model. Implementations
// own the transport timeout.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions are the sampling settings for one call. Extraction runs at
// low temperature for consistency; that is a quality tactic, not a
// correctness guarantee, so the output is still validated field by field.
type GenerateOptions struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// Item is one validated line item extracted from RFP text.
type Item struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	Specifications string `json:"specifications"`
}

// RFPResult is the extraction envelope for RFP text. When Success is false
// every data field must be treated as absent regardless of its value.
type RFPResult struct {
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
	Title    string   `json:"title,omitempty"`
	Budget   *float64 `json:"budget,omitempty"`
	Deadline *string  `json:"deadline,omitempty"`
	Items    []Item   `json:"items"`

	// RawResponse holds the cleaned model output when JSON parsing failed,
	// for diagnostics only.
	RawResponse string `json:"-"`
}

// ProposalResult is the extraction envelope for proposal emails.
type ProposalResult struct {
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	PaymentTerms *string  `json:"payment_terms,omitempty"`
	Warranty     *string  `json:"warranty,omitempty"`

	RawResponse string `json:"-"`
}

// Engine converts free text into validated structured records through one
// remote model call. It never reads ambient configuration; the credential is
// handed to it at construction.
type Engine struct {
	generator Generator
	apiKey    string
}

func NewEngine(generator Generator, apiKey string) *Engine {
	return &Engine{generator: generator, apiKey: apiKey}
}

// ExtractRFP extracts a structured RFP (title, budget, deadline, items) from
// a natural language description.
func (e *Engine) ExtractRFP(ctx context.Context, text string) (RFPResult, error) {
	if strings.TrimSpace(text) == "" {
		return RFPResult{}, ErrEmptyInput
	}

	fail := func(msg string) RFPResult {
		return RFPResult{Error: msg, Items: []Item{}}
	}

	if e.apiKey == "" {
		return fail("GEMINI_API_KEY environment variable not set"), nil
	}

	prompt := fmt.Sprintf(rfpPromptTemplate, text)
	raw, err := e.generator.Generate(ctx, prompt, GenerateOptions{
		Temperature:     0.1,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		return fail(describeError(err)), nil
	}

	if strings.TrimSpace(raw) == "" {
		return fail("empty response from model"), nil
	}

	cleaned := stripCodeFence(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		result := fail("failed to parse JSON response: " + err.Error())
		result.RawResponse = cleaned
		return result, nil
	}

	result := RFPResult{
		Success: true,
		Title:   "Untitled RFP",
		Items:   normalizeItems(parsed["items"]),
	}
	if title := toString(parsed["title"]); title != "" {
		result.Title = title
	}
	result.Budget = toFloat(parsed["budget"])
	if deadline := toString(parsed["deadline"]); deadline != "" && isISODate(deadline) {
		result.Deadline = &deadline
	}

	return result, nil
}

// ExtractProposal extracts price, payment terms and warranty from a vendor's
// proposal email body.
func (e *Engine) ExtractProposal(ctx context.Context, text string) (ProposalResult, error) {
	if strings.TrimSpace(text) == "" {
		return ProposalResult{}, ErrEmptyInput
	}

	if e.apiKey == "" {
		return ProposalResult{Error: "GEMINI_API_KEY environment variable not set"}, nil
	}

	prompt := fmt.Sprintf(proposalPromptTemplate, text)
	raw, err := e.generator.Generate(ctx, prompt, GenerateOptions{
		Temperature:     0.1,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return ProposalResult{Error: describeError(err)}, nil
	}

	if strings.TrimSpace(raw) == "" {
		return ProposalResult{Error: "empty response from model"}, nil
	}

	cleaned := stripCodeFence(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return ProposalResult{
			Error:       "failed to parse JSON response: " + err.Error(),
			RawResponse: cleaned,
		}, nil
	}

	return ProposalResult{
		Success:      true,
		Price:        toFloat(parsed["price"]),
		PaymentTerms: toStringPtr(parsed["payment_terms"]),
		Warranty:     toStringPtr(parsed["warranty"]),
	}, nil
}

// describeError names the error kind and message, mirroring what callers see
// in the envelope for any transport or API failure.
func describeError(err error) string {
	return fmt.Sprintf("%T: %v", err, err)
}
