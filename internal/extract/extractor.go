// Package extract recovers structured payloads that a text-generation model
// embeds inside a free-form reply.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/saulo-duarte/coach-lambda/internal/config"
)

const (
	KeyGoals = "goals"
	KeyTasks = "tasks"
)

type Outcome string

const (
	OutcomeNoFence     Outcome = "no_fence"
	OutcomeInvalidJSON Outcome = "invalid_json"
	OutcomeMissingKey  Outcome = "missing_key"
	OutcomeExtracted   Outcome = "extracted"
)

// Payload is the result of one extraction. Message is always the untouched
// input so callers can render the conversation regardless of Outcome.
type Payload struct {
	Message  string
	Records  []json.RawMessage
	Outcome  Outcome
	ParseErr error
}

func (p Payload) Found() bool {
	return p.Outcome == OutcomeExtracted
}

type StructuredTextExtractor interface {
	Extract(ctx context.Context, text, key string) Payload
}

// FencedJSONExtractor reads the first ```json fenced block. Later blocks are ignored.
type FencedJSONExtractor struct{}

func NewFencedJSONExtractor() StructuredTextExtractor {
	return FencedJSONExtractor{}
}

var fencePattern = regexp.MustCompile("(?s)```json\n(.*?)\n```")

func (FencedJSONExtractor) Extract(ctx context.Context, text, key string) Payload {
	result := Payload{Message: text, Outcome: OutcomeNoFence}

	match := fencePattern.FindStringSubmatch(text)
	if match == nil {
		return result
	}
	block := []byte(match[1])

	var top map[string]json.RawMessage
	if err := json.Unmarshal(block, &top); err != nil {
		if !json.Valid(block) {
			result.Outcome = OutcomeInvalidJSON
			result.ParseErr = fmt.Errorf("parse fenced json: %w", err)
			config.WithContext(ctx).WithError(err).WithField("key", key).Warn("Failed to parse fenced JSON block")
			return result
		}
		result.Outcome = OutcomeMissingKey
		return result
	}

	raw, ok := top[key]
	if !ok || !isArray(raw) {
		result.Outcome = OutcomeMissingKey
		return result
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		result.Outcome = OutcomeMissingKey
		return result
	}

	result.Records = records
	result.Outcome = OutcomeExtracted
	return result
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// Fence wraps v as {"key": v} inside a ```json block, the format the extractor reads.
func Fence(key string, v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]interface{}{key: v}); err != nil {
		return "", err
	}
	return "```json\n" + strings.TrimRight(buf.String(), "\n") + "\n```", nil
}

// MustFence is Fence for package-level prompt templates. It panics if v cannot be encoded.
func MustFence(key string, v interface{}) string {
	block, err := Fence(key, v)
	if err != nil {
		panic(fmt.Sprintf("extract: fence %q: %v", key, err))
	}
	return block
}
