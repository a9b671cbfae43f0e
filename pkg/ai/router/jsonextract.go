package router

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a model reply carries no JSON object at all.
var ErrNoJSONObject = errors.New("no JSON object in reply")

// ExtractJSON pulls the outermost JSON object out of a model reply. Code fences
// (```json ... ``` or bare ```) and any prose around the object are discarded.
// The result is not validated; callers still decode it.
func ExtractJSON(reply string) (string, error) {
	text := stripFences(strings.TrimSpace(reply))

	start := strings.Index(text, "{")
	if start == -1 {
		return "", ErrNoJSONObject
	}

	if end := matchBrace(text, start); end != -1 {
		return text[start : end+1], nil
	}

	// unbalanced; hand the decoder the widest candidate so it reports the syntax error
	end := strings.LastIndex(text, "}")
	if end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}

func stripFences(text string) string {
	open := strings.Index(text, "```")
	if open == -1 {
		return text
	}
	body := text[open+3:]
	if nl := strings.Index(body, "\n"); nl != -1 {
		// drop the language tag line, e.g. ```json
		if tag := strings.TrimSpace(body[:nl]); !strings.HasPrefix(tag, "{") {
			body = body[nl+1:]
		}
	}
	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// matchBrace returns the index of the brace closing text[start], honouring strings.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
