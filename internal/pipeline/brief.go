package pipeline

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxPromptChars bounds the brief text embedded in the enhance instruction.
// Longer input is truncated, never rejected.
const MaxPromptChars = 200

// DesignBrief is the structured user input describing a room design request.
// It is immutable once constructed; Details is optional free text.
type DesignBrief struct {
	RoomType string
	Style    string
	Material string
	Palette  string
	Details  string
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// Prompt derives the single-line description submitted to the enhance stage,
// e.g. "Modern Living Room with focus on Wood and Neutral tones. large windows".
func (b DesignBrief) Prompt() string {
	style := titleCaser.String(strings.TrimSpace(b.Style))
	room := titleCaser.String(strings.TrimSpace(b.RoomType))
	material := titleCaser.String(strings.TrimSpace(b.Material))
	palette := titleCaser.String(strings.TrimSpace(b.Palette))

	prompt := fmt.Sprintf("%s %s with focus on %s and %s tones.", style, room, material, palette)
	if details := strings.TrimSpace(b.Details); details != "" {
		prompt += " " + details
	}
	return prompt
}

// Truncate bounds s to at most limit characters. Multi-byte text is cut on a
// rune boundary, not mid-sequence.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
