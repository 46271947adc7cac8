package sdeyaml

import "fmt"

// StructuralError reports a line that does not fit the document structure
// built so far: a dedent past the root, an indent that matches no open
// container, a line that is neither a sequence item nor a key-value pair, or
// an open key with nothing attachable below it.
type StructuralError struct {
	Line int    // 1-based physical line number.
	Text string // Raw line text.
	Msg  string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// UnterminatedScalarError reports a quoted or folded scalar whose terminator
// never appears, or appears somewhere other than the end of a line.
type UnterminatedScalarError struct {
	Line int
	Text string
	Msg  string
}

func (e *UnterminatedScalarError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// DuplicateKeyError reports a key that appears twice within one mapping.
// Export files are expected to have unique keys, so this is fatal rather
// than a silent overwrite.
type DuplicateKeyError struct {
	Line int
	Text string
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("line %d: duplicate key %q in mapping: %q", e.Line, e.Key, e.Text)
}
