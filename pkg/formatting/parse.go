package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when content cannot be parsed as JSON,
// either directly or from a markdown code fence.
var ErrParseFailed = errors.New("failed to parse response")

// ErrNoStructure is returned when content contains no JSON object or array.
var ErrNoStructure = errors.New("no structured payload in response")

var jsonBlockRegex = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Parse attempts to unmarshal content as JSON into T.
// If direct parsing fails, it extracts JSON from a markdown code fence
// and retries. Returns ErrParseFailed if both attempts fail.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	matches := jsonBlockRegex.FindStringSubmatch(content)
	if len(matches) >= 2 {
		cleaned := strings.TrimSpace(matches[1])
		if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, content)
}

// Extract slices the first JSON object or array embedded in content and
// unmarshals it into T. The payload runs from the first opening brace or
// bracket to the last closing delimiter of the same kind, which tolerates
// prose before and after the structure. Returns ErrNoStructure when no
// delimiter pair is present and ErrParseFailed when the slice will not decode.
func Extract[T any](content string) (T, error) {
	var result T

	open := strings.IndexAny(content, "{[")
	if open < 0 {
		return result, fmt.Errorf("%w: %s", ErrNoStructure, content)
	}

	closer := "}"
	if content[open] == '[' {
		closer = "]"
	}

	end := strings.LastIndex(content, closer)
	if end < open {
		return result, fmt.Errorf("%w: %s", ErrNoStructure, content)
	}

	payload := content[open : end+1]
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return result, fmt.Errorf("%w: %s", ErrParseFailed, payload)
	}

	return result, nil
}
