package messaging

// MaxMessageRunes is the safety threshold below the LINE 5000-character text
// limit; completions longer than this are cut and marked.
const MaxMessageRunes = 4500

// TruncationMarker is appended to any message that was cut short.
const TruncationMarker = "\n（訊息過長，已截斷）"

// Truncate caps text at MaxMessageRunes characters, appending the truncation
// marker. Text at or under the limit passes through unmodified.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxMessageRunes {
		return text
	}

	return string(runes[:MaxMessageRunes]) + TruncationMarker
}
