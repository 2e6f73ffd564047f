package aigateway

import (
	"encoding/json"
	"strings"
)

// ExtractJSON tries to recover a JSON object from noisy model text. Models
// sometimes wrap their answer in code fences or prose, so after a direct parse
// fails it falls back to the first-{ last-} substring. Returns nil when no
// object can be recovered; absence of structure is a normal outcome here, not
// an error.
func ExtractJSON(text string) json.RawMessage {
	if text == "" {
		return nil
	}

	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")

	if candidate := parseObject(cleaned); candidate != nil {
		return candidate
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return nil
	}
	return parseObject(cleaned[start : end+1])
}

func parseObject(s string) json.RawMessage {
	var probe map[string]interface{}
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return nil
	}
	return json.RawMessage(s)
}
