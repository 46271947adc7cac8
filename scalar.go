package sdeyaml

import (
	"strconv"
	"strings"
)

// decodeScalar converts a literal into a typed value. The rules cover what
// the export generator emits: plain integers and floats (optional leading
// '-', at most one '.'), lowercase true/false, single-line [a, b, c] flow
// sequences, and everything else as a literal string. No escapes are
// processed here; quoted text is handled by the block reader.
func decodeScalar(text string) *Value {
	text = strings.TrimSpace(text)

	if isNumeric(text) {
		if strings.Contains(text, ".") {
			f, err := strconv.ParseFloat(text, 64)
			if err == nil {
				return floatValue(f)
			}
		} else {
			i, err := strconv.ParseInt(text, 10, 64)
			if err == nil {
				return intValue(i)
			}
		}
		// Out-of-range numerics fall back to their literal text.
		return stringValue(text)
	}

	switch text {
	case "true":
		return boolValue(true)
	case "false":
		return boolValue(false)
	}

	if len(text) >= 2 && text[0] == '[' && text[len(text)-1] == ']' {
		return decodeFlowSequence(text[1 : len(text)-1])
	}

	return stringValue(text)
}

// decodeFlowSequence decodes the inner text of a single-line [ ] sequence.
// The subset has no nested brackets, so a plain split on ',' is enough.
// An empty inner text is an empty sequence; a single element is a
// one-element sequence.
func decodeFlowSequence(inner string) *Value {
	seq := newSequence()
	if strings.TrimSpace(inner) == "" {
		return seq
	}
	for _, part := range strings.Split(inner, ",") {
		seq.append(decodeScalar(part))
	}
	return seq
}

// isNumeric reports whether text is a plain decimal literal: an optional
// leading '-', at least one digit, and at most one '.'. Scientific notation
// and a leading '+' are not part of the subset.
func isNumeric(text string) bool {
	if text == "" {
		return false
	}
	if text[0] == '-' {
		text = text[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
