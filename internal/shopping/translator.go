package shopping

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/shared"
)

// Translator fills translated names. Missing names are left untranslated.
type Translator interface {
	Translate(ctx context.Context, names []string) (map[string]string, error)
}

// MetricsRecorder stores execution metadata of translation calls.
type MetricsRecorder interface {
	RecordMeta(ctx context.Context, meta shared.ExecutionMeta) error
}

// LLMTranslator asks a text generator to translate item names.
type LLMTranslator struct {
	textGen  llm.TextGenerator
	language string
	metrics  MetricsRecorder
}

// NewLLMTranslator creates a translator into language. metrics may be nil.
func NewLLMTranslator(textGen llm.TextGenerator, language string, metrics MetricsRecorder) *LLMTranslator {
	return &LLMTranslator{textGen: textGen, language: language, metrics: metrics}
}

func (t *LLMTranslator) Translate(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	list, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`Translate these grocery item names into %s as they would appear on a shopping list.
Return only a JSON object mapping each original name to its translation, with no other text.

Items: %s`, t.language, list)

	start := time.Now()
	resp, err := t.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to translate shopping items: %w", err)
	}
	if t.metrics != nil {
		meta := shared.ExecutionMeta{Operation: "translate_shopping_list", Usage: resp.Usage, Latency: time.Since(start)}
		if err := t.metrics.RecordMeta(ctx, meta); err != nil {
			log.Printf("Warning: failed to record translation metrics: %v", err)
		}
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Content)), &out); err != nil {
		return nil, fmt.Errorf("failed to parse translation JSON: %w. Response: %s", err, resp.Content)
	}
	for k, v := range out {
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}
