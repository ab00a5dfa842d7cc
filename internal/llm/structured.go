package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// DefaultMaxAttempts bounds the structured-completion retry loop.
const DefaultMaxAttempts = 5

// ErrValidationExhausted is returned when no reply satisfied the schema
// within the attempt budget. Validation failure is an expected, modeled
// outcome, not an exception.
var ErrValidationExhausted = errors.New("structured completion retry budget exhausted")

// Validatable lets result types carry constraints beyond what the JSON Schema
// expresses (for example cross-field rules via struct tags).
type Validatable interface {
	Validate() error
}

// CompleteStructured issues a completion whose reply must satisfy schemaJSON,
// then decodes it into out. The schema is rendered into the prompt as the
// required output shape and the backend is asked for JSON mode. A reply that
// fails schema validation, decoding, or out's own Validate triggers an
// immediate retry, up to maxAttempts; exhaustion returns
// ErrValidationExhausted wrapping the last cause. Provider failures are not
// retried here and surface directly.
func CompleteStructured(ctx context.Context, p Provider, req Request, schemaJSON string, out any, maxAttempts int) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	req.JSONMode = true
	req.UserMessage = appendSchemaInstructions(req.UserMessage, schemaJSON)
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := p.Complete(ctx, req)
		if err != nil {
			return fmt.Errorf("structured completion attempt %d: %w", attempt, err)
		}

		cleaned := CleanJSONBlock(raw)

		result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(cleaned))
		if err != nil {
			lastErr = fmt.Errorf("reply is not valid JSON: %w", err)
			continue
		}
		if !result.Valid() {
			lastErr = schemaResultError(result)
			continue
		}

		if err := json.Unmarshal([]byte(cleaned), out); err != nil {
			lastErr = fmt.Errorf("failed to decode reply: %w", err)
			continue
		}

		if v, ok := out.(Validatable); ok {
			if err := v.Validate(); err != nil {
				lastErr = err
				continue
			}
		}
		return nil
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrValidationExhausted, maxAttempts, lastErr)
}

// appendSchemaInstructions attaches the required output shape to the prompt.
// JSON mode alone only guarantees a JSON object, not the right fields.
func appendSchemaInstructions(userMessage, schemaJSON string) string {
	var sb strings.Builder
	sb.WriteString(userMessage)
	sb.WriteString("\n\nReturn ONLY a JSON object satisfying this JSON Schema, with no markdown and no explanation:\n")
	sb.WriteString(schemaJSON)
	return sb.String()
}

func schemaResultError(result *gojsonschema.Result) error {
	var sb strings.Builder
	sb.WriteString("reply violates schema:")
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		fmt.Fprintf(&sb, " %s: %s;", field, desc.Description())
	}
	return errors.New(strings.TrimSuffix(sb.String(), ";"))
}
