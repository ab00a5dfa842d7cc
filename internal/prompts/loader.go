// Package prompts holds the system-message assets and composes user-turn
// prompts from structured inputs. System messages are externalized in a JSON
// file embedded at compile time; they are configuration, not logic.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed prompts.json
var promptFile embed.FS

var (
	loadOnce sync.Once
	messages map[string]string
	loadErr  error
)

// Get retrieves a system message by key.
func Get(key string) (string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", loadErr
	}
	msg, ok := messages[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return msg, nil
}

// MustGet retrieves a system message by key, panicking if it is absent.
// The asset is embedded, so a missing key is a programming error.
func MustGet(key string) string {
	msg, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return msg
}

func load() {
	data, err := promptFile.ReadFile("prompts.json")
	if err != nil {
		loadErr = fmt.Errorf("failed to read prompt file: %w", err)
		return
	}
	if err := json.Unmarshal(data, &messages); err != nil {
		loadErr = fmt.Errorf("failed to parse prompt file: %w", err)
	}
}
