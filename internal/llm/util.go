package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock strips markdown code fences and any conversational text
// around the first JSON object or array in a model response.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = stripFence(strings.TrimSpace(text))

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if balanced := extractBalanced(text[start:]); balanced != "" {
		return balanced
	}
	return text
}

// CleanJSONObject is CleanJSONBlock for callers that expect an object. When prose
// before the object holds a bracketed aside ("[3] tips: {...}"), the first
// well-formed object wins. A response that is itself an array is left as one.
func CleanJSONObject(text string) string {
	cleaned := CleanJSONBlock(text)
	if strings.HasPrefix(cleaned, "{") {
		return cleaned
	}

	text = stripFence(strings.TrimSpace(text))
	if strings.HasPrefix(text, "[") {
		return cleaned
	}
	for i := strings.IndexByte(text, '{'); i >= 0; {
		if obj := extractBalanced(text[i:]); obj != "" && json.Valid([]byte(obj)) {
			return obj
		}
		next := strings.IndexByte(text[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return cleaned
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")

	// Skip a language identifier on the opening fence line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// extractBalanced returns the leading JSON object or array of s, or "" if it is unterminated.
func extractBalanced(s string) string {
	if s == "" {
		return ""
	}
	open := s[0]
	var closer byte
	switch open {
	case '{':
		closer = '}'
	case '[':
		closer = ']'
	default:
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
