package strategy

import (
	"encoding/json"
	"fmt"
	"strings"

	"mockmate/internal/domain"
)

// Providers wrap JSON in prose, code fences or reasoning markers. These
// helpers strip the known wrappers and locate the expected shape anywhere in
// the response before decoding.

func cleanResponse(response string) string {
	s := strings.TrimSpace(response)
	if thinkStart := strings.Index(s, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(s, "</think>"); thinkEnd != -1 {
			s = s[thinkEnd+len("</think>"):]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractJSONSlice returns the first balanced JSON value delimited by open
// and close found in s.
func extractJSONSlice(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeArray decodes the first JSON array found in the provider response.
func decodeArray(response string, v interface{}) error {
	cleaned := cleanResponse(response)
	raw, ok := extractJSONSlice(cleaned, '[', ']')
	if !ok {
		return &domain.ParseError{Cause: fmt.Errorf("no JSON array in response"), Response: response}
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &domain.ParseError{Cause: err, Response: response}
	}
	return nil
}

// decodeObject decodes the first JSON object found in the provider response.
func decodeObject(response string, v interface{}) error {
	cleaned := cleanResponse(response)
	raw, ok := extractJSONSlice(cleaned, '{', '}')
	if !ok {
		return &domain.ParseError{Cause: fmt.Errorf("no JSON object in response"), Response: response}
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return &domain.ParseError{Cause: err, Response: response}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// languageDirective produces the strict target-language instruction shared by
// every strategy prompt.
func languageDirective(lang domain.Language) string {
	name := "English"
	switch lang {
	case domain.LanguageUzbek:
		name = "Uzbek"
	case domain.LanguageRussian:
		name = "Russian"
	}
	return fmt.Sprintf("IMPORTANT: Write every generated text strictly in %s. Do not mix languages.", name)
}
