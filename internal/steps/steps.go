// Package steps splits recipe instruction text into numbered steps.
package steps

import (
	"regexp"
	"strings"
)

// Step is one numbered instruction step.
type Step struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// marker matches a leading list marker: "1.", "2)", "-", "*", "Step 3:".
var marker = regexp.MustCompile(`^(?i:step\s+)?(\d+[.):]|[-*•])\s*`)

// Split breaks text into steps. A blank line ends a step, and a line that
// starts with a list marker begins a new one. Markers are stripped and steps
// are renumbered from 1.
func Split(text string) []Step {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var out []Step
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		t := strings.TrimSpace(strings.Join(current, "\n"))
		if t != "" {
			out = append(out, Step{Number: len(out) + 1, Text: t})
		}
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}
		if loc := marker.FindStringIndex(trimmed); loc != nil {
			flush()
			trimmed = trimmed[loc[1]:]
		}
		current = append(current, trimmed)
	}
	flush()

	return out
}
