package llm

import "context"

// Provider defines the interface for LLM providers used to apply
// natural-language edits to a sequence.
// All providers MUST return the model's raw text output unparsed — the
// caller owns extracting and validating JSON from it (see ExtractJSON).
type Provider interface {
	// Generate sends the current sequence plus an instruction to the
	// model and returns its raw text output.
	Generate(ctx context.Context, request *EditRequest) (*EditResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini").
	Name() string
}

// EditRequest contains everything needed to ask a provider to edit a
// sequence via natural language.
type EditRequest struct {
	Model               string
	SystemPrompt        string
	CurrentSequenceJSON string
	Instruction         string
	// SelectionStart/SelectionEnd are nil unless the caller wants a
	// range-scoped edit; both are set together or not at all.
	SelectionStart *int
	SelectionEnd   *int
}

// EditResponse carries the provider's raw text output for the caller to
// parse permissively (bare JSON or ```json fenced block).
type EditResponse struct {
	RawOutput string
	Usage     any
}
