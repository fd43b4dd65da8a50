package tra

import "strings"

// Entry is one decoded identifier/text pair from a single language file.
type Entry struct {
	// ID is the stable identifier. Digits in the legacy files, but treated
	// as an opaque string everywhere downstream.
	ID string
	// Text is the decoded translatable string.
	Text string
}

// ParseLine decodes one physical line of the legacy tra format.
//
// Recognized forms, tried in order:
//
//	123,"quoted text","ignored status field"
//	123,"quoted text"
//	123,unquoted text until comma or end of line
//
// Inside a quoted field a doubled quote decodes to one literal quote and a
// backslash escapes the following character. The unquoted fallback keeps its
// text verbatim: no trimming, no unescaping. Blank lines and lines matching
// neither form report ok=false; malformed input is never an error.
func ParseLine(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Entry{}, false
	}

	// Identifier: one or more ASCII digits immediately followed by a comma.
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(trimmed) || trimmed[i] != ',' {
		return Entry{}, false
	}

	id := trimmed[:i]
	rest := trimmed[i+1:]

	if strings.HasPrefix(rest, `"`) {
		if text, ok := decodeQuoted(rest[1:]); ok {
			return Entry{ID: id, Text: text}, true
		}
	}

	// Unquoted fallback: everything up to the next comma.
	text := rest
	if c := strings.IndexByte(rest, ','); c >= 0 {
		text = rest[:c]
	}
	return Entry{ID: id, Text: text}, true
}

// decodeQuoted decodes a quoted field body, starting after the opening quote.
// Everything past the closing quote is a trailing field the format allows and
// this layer ignores. Reports ok=false when the quote never closes, which
// sends the caller down the unquoted fallback path.
func decodeQuoted(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if i+1 < len(s) && s[i+1] == '"' {
				b.WriteByte('"')
				i++
				continue
			}
			return b.String(), true
		case '\\':
			if i+1 >= len(s) {
				return "", false
			}
			b.WriteByte(s[i+1])
			i++
		default:
			b.WriteByte(s[i])
		}
	}
	return "", false
}
