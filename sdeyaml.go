// Package sdeyaml decodes the constrained YAML subset used by EVE static
// data export files. The exports are machine-generated, so the decoder
// supports exactly the patterns the generator emits — block mappings and
// sequences nested by indentation, plain scalars, single-line [ ] flow
// sequences, and quoted or folded multi-line strings — and nothing more: no
// anchors, aliases, tags, flow mappings or multi-document streams. Skipping
// the general-purpose machinery is what makes it fast enough for the very
// large files the export ships.
package sdeyaml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// frame is one open container on the context stack together with its
// indentation relative to the frame below it.
type frame struct {
	rel       int
	container *Value
}

// contextStack tracks the currently open containers, innermost last. The
// sum of the relative indents is the column at which the next sibling line
// of the innermost container must start.
type contextStack struct {
	frames []frame
}

func (s *contextStack) push(rel int, container *Value) {
	s.frames = append(s.frames, frame{rel: rel, container: container})
}

// pop removes the innermost frame. It refuses to pop the root frame.
func (s *contextStack) pop() bool {
	if len(s.frames) <= 1 {
		return false
	}
	s.frames = s.frames[:len(s.frames)-1]
	return true
}

func (s *contextStack) top() *Value {
	return s.frames[len(s.frames)-1].container
}

func (s *contextStack) depth() int {
	return len(s.frames)
}

func (s *contextStack) absIndent() int {
	sum := 0
	for i := range s.frames {
		sum += s.frames[i].rel
	}
	return sum
}

// parser holds the state of one load: the line source and the stack of open
// containers. Each parser is single-use and private to its call, so files
// may be loaded concurrently with independent parsers.
type parser struct {
	lr    *lineReader
	stack contextStack
}

// Load reads a complete document from r and returns its value tree. The
// first significant line decides the root container: a "- " marker opens a
// root sequence, anything else a root mapping. An input with no significant
// lines yields an empty mapping.
func Load(r io.Reader) (*Value, error) {
	p := &parser{lr: newLineReader(r)}
	return p.parse()
}

// LoadFile loads the document in the named file, closing it on every path.
func LoadFile(path string) (*Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	v, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte) (*Value, error) {
	return Load(bytes.NewReader(data))
}

func (p *parser) parse() (*Value, error) {
	first, ok, err := p.lr.peekSignificant()
	if err != nil {
		return nil, err
	}

	var root *Value
	if ok && isSequenceItem(first) {
		root = newSequence()
		// The root offset matches the width of the "- " marker.
		p.stack.push(2, root)
	} else {
		root = newMapping()
		p.stack.push(0, root)
	}
	if !ok {
		return root, nil
	}

	for {
		line, more, err := p.lr.readLine()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lr.lineNum+1, err)
		}
		if !more {
			break
		}
		if !isSignificant(line) {
			continue
		}
		if err := p.handleLine(line); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// handleLine runs the dedent rule and dispatches one significant line.
func (p *parser) handleLine(line string) error {
	cur := logicalIndent(line)

	for cur < p.stack.absIndent() {
		if !p.stack.pop() {
			return p.structuralErr("dedent below the document root", line)
		}
	}
	if abs := p.stack.absIndent(); cur > abs {
		return p.structuralErr(
			fmt.Sprintf("indent %d does not match any open container (expected %d)", cur, abs), line)
	}

	if isSequenceItem(line) {
		return p.handleSequence(line, cur)
	}
	if _, _, ok := splitKeyValue(line); ok {
		return p.handleMapping(line, strings.TrimSpace(line), cur)
	}
	return p.structuralErr("line is neither a sequence item nor a key-value pair", line)
}

// handleSequence processes a "- " line. cur is the line's logical indent,
// which for a sequence item is the column of its payload.
func (p *parser) handleSequence(line string, cur int) error {
	// A sequence item arriving while an element mapping is still open
	// closes it: the dedent rule cannot tell them apart because element
	// mapping frames sit at relative indent zero.
	for p.stack.depth() > 1 && p.stack.top().Kind() == KindMapping && cur > indentOf(line) {
		p.stack.pop()
	}

	top := p.stack.top()
	if top.Kind() != KindSequence {
		return p.structuralErr("sequence item outside any open sequence", line)
	}

	// The payload may sit further right than the marker ("-   key: value"
	// is how the export generator writes element mappings), so its column
	// is measured after stripping the marker and any extra spaces.
	after := strings.TrimLeft(line, " ")[2:]
	payload := strings.TrimLeft(after, " ")
	if key, _, ok := splitKeyValue(payload); ok && key != "" {
		// The element is itself a mapping: open it at the payload column.
		elem := newMapping()
		rel := indentOf(line) + 2 + (len(after) - len(payload)) - cur
		top.append(elem)
		p.stack.push(rel, elem)
		return p.handleMapping(line, payload, cur+rel)
	}

	top.append(decodeScalar(payload))
	return nil
}

// handleMapping processes one "key: value" or "key:" entry. content is the
// trimmed entry text (for sequence elements, the payload after the marker)
// and cur the logical indent it sits at.
func (p *parser) handleMapping(line, content string, cur int) error {
	top := p.stack.top()
	if top.Kind() != KindMapping {
		return p.structuralErr("key-value pair outside any open mapping", line)
	}

	key, rawVal, ok := splitKeyValue(content)
	if !ok {
		return p.structuralErr("line is neither a sequence item nor a key-value pair", line)
	}
	if top.has(key) {
		return &DuplicateKeyError{Line: p.lr.lineNum, Text: line, Key: key}
	}

	if rawVal == "" {
		return p.openValue(line, key, cur, top)
	}

	val := decodeScalar(rawVal)
	if val.Kind() == KindString {
		// Any string value may continue across lines, quoted or folded.
		text, err := p.readTextBlock(val.Str(), cur)
		if err != nil {
			return err
		}
		val = stringValue(text)
	}
	top.insert(key, val)
	return nil
}

// openValue resolves a key with no inline value by peeking at the next
// significant line: a sequence item opens a sequence, anything else a
// mapping. The peeked line is not consumed; the driver reads it next.
func (p *parser) openValue(line, key string, cur int, top *Value) error {
	next, ok, err := p.lr.peekSignificant()
	if err != nil {
		return err
	}
	if !ok {
		// Nothing follows the open key; its value is null.
		top.insert(key, nullValue())
		return nil
	}

	nextIndent := logicalIndent(next)
	if nextIndent < cur {
		return p.structuralErr(
			fmt.Sprintf("key %q has no value and nothing indented below it", key), line)
	}

	if isSequenceItem(next) {
		seq := newSequence()
		top.insert(key, seq)
		p.stack.push(nextIndent-cur, seq)
		return nil
	}

	m := newMapping()
	top.insert(key, m)
	p.stack.push(nextIndent-cur, m)
	return nil
}

func (p *parser) structuralErr(msg, line string) error {
	return &StructuralError{Line: p.lr.lineNum, Text: line, Msg: msg}
}
