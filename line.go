package sdeyaml

import "strings"

// indentOf counts the leading space characters of a line.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// isSequenceItem reports whether a line, leading spaces aside, starts with a
// "- " sequence marker.
func isSequenceItem(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), "- ")
}

// logicalIndent returns the column of a line's first payload character. For
// a sequence item that is the column right after the "- " marker, because
// nesting comparisons are made against where the item's payload begins.
func logicalIndent(line string) int {
	if isSequenceItem(line) {
		return indentOf(line) + 2
	}
	return indentOf(line)
}

// isBlank reports whether a line holds no content at all.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isComment reports whether a line holds only a comment.
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// isSignificant reports whether a line contributes to the document structure.
func isSignificant(line string) bool {
	return !isBlank(line) && !isComment(line)
}

// splitKeyValue splits "key: value" or "key:" into its parts. It looks for
// the first ':' that is followed by a space or ends the line; earlier colons
// are taken to be part of the key, which holds for everything the export
// generator emits. The separator space is not part of the returned value,
// but any further leading whitespace is.
func splitKeyValue(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != ':' {
			continue
		}
		if i == len(trimmed)-1 {
			return strings.TrimSpace(trimmed[:i]), "", true
		}
		if trimmed[i+1] == ' ' {
			return strings.TrimSpace(trimmed[:i]), trimmed[i+2:], true
		}
	}
	return "", "", false
}
