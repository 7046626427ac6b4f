package llm

import (
	"fmt"
	"strings"
)

// baseSystemPrompt is the fixed preamble sent to every edit request,
// declaring the sequence JSON schema the model must echo back.
const baseSystemPrompt = `You are an expert music composition assistant. You will receive a JSON
object describing a musical sequence (with fields: name, bpm, time_sig_num,
time_sig_den, key, notes) and a natural-language instruction from the user.

Your job is to return only a valid JSON object with the same schema,
modified according to the instruction. Do not include any explanation —
only the JSON.

Each note has: pitch (e.g. "C4", "REST"), duration (beats), beat (start
position), note_type ("whole"|"half"|"quarter"|"eighth"|"sixteenth"), and
instrument (0 or 1).`

// BuildSystemPrompt returns the system prompt for an edit request,
// appending an explicit editable-range clause when the request is
// range-scoped.
func BuildSystemPrompt(selectionStart, selectionEnd *int) string {
	if selectionStart == nil || selectionEnd == nil {
		return baseSystemPrompt
	}
	return baseSystemPrompt + fmt.Sprintf(`

The user has selected notes at indices %d through %d (inclusive) in the
"notes" array. You MUST NOT modify, add, or remove any note outside that
index range. Every note at an index outside [%d, %d] must be returned
byte-for-byte identical to the corresponding note in the input, and the
total number of notes must stay the same.`, *selectionStart, *selectionEnd, *selectionStart, *selectionEnd)
}

// BuildUserMessage assembles the per-request content: the current
// sequence JSON followed by the user's instruction.
func BuildUserMessage(currentSequenceJSON, instruction string) string {
	return fmt.Sprintf("Current sequence:\n%s\n\nInstruction: %s", currentSequenceJSON, instruction)
}

// ExtractJSON permissively pulls a JSON object out of an LLM's raw text
// output: a bare object, or one fenced in a ```json block. It extracts
// from the first '{' to the last '}' so surrounding prose or fence
// markers are ignored.
func ExtractJSON(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("llm: empty response")
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("llm: no JSON object found in response")
	}
	return text[start : end+1], nil
}
