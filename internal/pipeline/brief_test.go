package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBriefPromptComposition(t *testing.T) {
	tests := []struct {
		name  string
		brief DesignBrief
		want  string
	}{
		{
			name:  "basic brief",
			brief: DesignBrief{RoomType: "Living Room", Style: "Modern", Material: "Wood", Palette: "Neutral"},
			want:  "Modern Living Room with focus on Wood and Neutral tones.",
		},
		{
			name:  "lowercase fields are title cased",
			brief: DesignBrief{RoomType: "bedroom", Style: "scandinavian", Material: "wood", Palette: "neutral"},
			want:  "Scandinavian Bedroom with focus on Wood and Neutral tones.",
		},
		{
			name:  "details are appended",
			brief: DesignBrief{RoomType: "Office", Style: "Industrial", Material: "Metal", Palette: "Dark & Moody", Details: "large windows, high ceiling"},
			want:  "Industrial Office with focus on Metal and Dark & Moody tones. large windows, high ceiling",
		},
		{
			name:  "surrounding whitespace is ignored",
			brief: DesignBrief{RoomType: " Kitchen ", Style: " Rustic", Material: "Stone ", Palette: "Warm", Details: "   "},
			want:  "Rustic Kitchen with focus on Stone and Warm tones.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.brief.Prompt(); got != tc.want {
				t.Fatalf("Prompt() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruncateBoundsLongText(t *testing.T) {
	long := strings.Repeat("x", MaxPromptChars+150)
	got := Truncate(long, MaxPromptChars)
	if utf8.RuneCountInString(got) != MaxPromptChars {
		t.Fatalf("truncated length = %d, want %d", utf8.RuneCountInString(got), MaxPromptChars)
	}
}

func TestTruncateKeepsShortText(t *testing.T) {
	short := "cozy reading nook"
	if got := Truncate(short, MaxPromptChars); got != short {
		t.Fatalf("Truncate() = %q, want unchanged input", got)
	}
}

func TestTruncateRespectsRuneBoundaries(t *testing.T) {
	text := strings.Repeat("日", 300)
	got := Truncate(text, MaxPromptChars)
	if utf8.RuneCountInString(got) != MaxPromptChars {
		t.Fatalf("rune count = %d, want %d", utf8.RuneCountInString(got), MaxPromptChars)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncation produced an invalid UTF-8 sequence")
	}
}
