package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Hon139/MuseAid/internal/metrics"
	"github.com/Hon139/MuseAid/internal/model"
	"github.com/Hon139/MuseAid/internal/observability"
	"github.com/tidwall/gjson"
)

// EditTimeout bounds a single LLM call per spec.md §5's "≈30 s" budget.
const EditTimeout = 30 * time.Second

// requiredSequenceKeys are the keys the model's response must carry for
// it to be accepted as a replacement sequence.
var requiredSequenceKeys = []string{"name", "bpm", "time_sig_num", "time_sig_den", "key", "notes"}

// Editor dispatches natural-language sequence edits to an LLM provider
// and enforces range-scoped edit invariants on the result. The provider
// is resolved once at wiring time via ProviderFactory.GetProvider, per
// the GEMINI_MODEL/GEMINI_API_KEY configuration.
type Editor struct {
	provider Provider
	model    string
	metrics  *metrics.SentryMetrics
}

// NewEditor builds an Editor bound to provider for the given model name.
func NewEditor(provider Provider, model string) *Editor {
	return &Editor{provider: provider, model: model, metrics: metrics.NewSentryMetrics()}
}

// Apply sends current plus instruction to the configured provider and
// returns the resulting sequence. When selectionStart/selectionEnd are
// both non-nil, the response is rejected unless every note outside that
// range is unchanged and the total note count is preserved.
func (e *Editor) Apply(
	ctx context.Context,
	current *model.Sequence,
	instruction string,
	selectionStart, selectionEnd *int,
) (*model.Sequence, error) {
	ctx, cancel := context.WithTimeout(ctx, EditTimeout)
	defer cancel()

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("llm: marshal current sequence: %w", err)
	}

	request := &EditRequest{
		Model:               e.model,
		SystemPrompt:        BuildSystemPrompt(selectionStart, selectionEnd),
		CurrentSequenceJSON: string(currentJSON),
		Instruction:         instruction,
		SelectionStart:      selectionStart,
		SelectionEnd:        selectionEnd,
	}

	trace := observability.GetClient().StartTrace(ctx, "speech_edit", map[string]interface{}{
		"provider":        e.provider.Name(),
		"model":           e.model,
		"selection_start": selectionStart,
		"selection_end":   selectionEnd,
	})
	defer trace.Finish()
	generation := trace.Generation(e.provider.Name()+".generate", nil)
	generation.Input(map[string]interface{}{
		"instruction":     instruction,
		"current_notes":   len(current.Notes),
		"selection_start": selectionStart,
		"selection_end":   selectionEnd,
	})
	defer generation.Finish()

	start := time.Now()
	resp, err := e.provider.Generate(ctx, request)
	if err != nil {
		e.metrics.RecordLLMLatency(ctx, e.provider.Name(), time.Since(start), false)
		generation.SetLevel("ERROR")
		generation.Output(err.Error())
		return nil, fmt.Errorf("llm: %s generate: %w", e.provider.Name(), err)
	}

	updated, err := e.validate(current, resp.RawOutput, selectionStart, selectionEnd)
	e.metrics.RecordLLMLatency(ctx, e.provider.Name(), time.Since(start), err == nil)
	if err != nil {
		generation.SetLevel("WARNING")
		generation.Output(err.Error())
		return nil, err
	}
	generation.Output(map[string]interface{}{"note_count": len(updated.Notes)})
	return updated, nil
}

// validate extracts and checks the provider's raw response, enforcing
// range-scoped invariants when a selection was requested.
func (e *Editor) validate(current *model.Sequence, rawOutput string, selectionStart, selectionEnd *int) (*model.Sequence, error) {
	jsonText, err := ExtractJSON(rawOutput)
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(jsonText) {
		return nil, fmt.Errorf("llm: response is not valid JSON")
	}
	for _, key := range requiredSequenceKeys {
		if !gjson.Get(jsonText, key).Exists() {
			return nil, fmt.Errorf("llm: response missing required key %q", key)
		}
	}

	var updated model.Sequence
	if err := json.Unmarshal([]byte(jsonText), &updated); err != nil {
		return nil, fmt.Errorf("llm: parse response sequence: %w", err)
	}

	if selectionStart != nil && selectionEnd != nil {
		if err := validateRangeUnchanged(current, &updated, *selectionStart, *selectionEnd); err != nil {
			return nil, err
		}
	}

	return &updated, nil
}

// validateRangeUnchanged enforces spec.md §4.3's strict range
// enforcement: the note count must be preserved, and every note outside
// [start, end] must be structurally identical to the pre-state note at
// the same index.
func validateRangeUnchanged(before, after *model.Sequence, start, end int) error {
	if len(before.Notes) != len(after.Notes) {
		return fmt.Errorf("strict selection mode requires unchanged total note count")
	}
	for i := range before.Notes {
		if i >= start && i <= end {
			continue
		}
		if !notesEqual(before.Notes[i], after.Notes[i]) {
			return fmt.Errorf("out-of-range mutation detected at note index %d", i)
		}
	}
	return nil
}

func notesEqual(a, b *model.Note) bool {
	return a.Pitch == b.Pitch &&
		a.Duration == b.Duration &&
		a.Beat == b.Beat &&
		a.NoteType == b.NoteType &&
		a.Instrument == b.Instrument &&
		a.SampleBank == b.SampleBank
}
