package a2a

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/BerylCAtieno/style-advisor-agent/internal/models"
)

// scorePattern matches "field: value" or "field=value" pairs in free text.
var scorePattern = regexp.MustCompile(`(?i)\b(cognitive_bias_awareness|persuasion_receptivity|deception_susceptibility|emotional_response_bias)\s*[:=]\s*(-?\d+(?:\.\d+)?)`)

// extractScores collects score fields from the message parts. Free text left
// over once the scores are removed is returned as the prompt.
func extractScores(msg A2AMessage) (fields map[string]any, prompt string) {
	fields = map[string]any{}
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case PartData:
			if obj, ok := decodeObject(part.Data); ok {
				mergeScores(fields, obj)
			}
		case PartText:
			text := cleanText(part.Text)
			if text == "" {
				continue
			}
			if obj, ok := decodeObject([]byte(text)); ok {
				mergeScores(fields, obj)
				continue
			}
			for _, m := range scorePattern.FindAllStringSubmatch(text, -1) {
				fields[strings.ToLower(m[1])] = json.Number(m[2])
			}
			if rest := strings.Trim(scorePattern.ReplaceAllString(text, ""), " ,;.\n\t"); rest != "" {
				texts = append(texts, rest)
			}
		}
	}

	return fields, strings.TrimSpace(strings.Join(texts, " "))
}

func decodeObject(b []byte) (map[string]any, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func mergeScores(dst, src map[string]any) {
	for _, name := range models.FieldNames {
		if v, ok := src[name]; ok {
			dst[name] = v
		}
	}
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "<p>", "")
	text = strings.ReplaceAll(text, "</p>", "")
	return strings.TrimSpace(text)
}
