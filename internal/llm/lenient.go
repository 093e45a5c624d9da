package llm

import "bytes"

// ExtractJSONObject returns the first balanced {...} span in b. Braces inside JSON
// strings are ignored. ok is false when no opening brace is found or it never closes.
func ExtractJSONObject(b []byte) (obj []byte, ok bool) {
	start := bytes.IndexByte(b, '{')
	if start < 0 {
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(b); i++ {
		c := b[i]
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
				return b[start : i+1], true
			}
		}
	}
	return nil, false
}
