package sdeyaml

import "strings"

// readTextBlock consumes the continuation of a string value that began with
// start on the key's line. keyIndent is the logical indent of that line.
//
// If start opens with a quote character, lines are joined (space-separated,
// blank lines becoming embedded newlines) until a line whose last character
// is the matching unescaped quote. A terminator anywhere but line end is
// malformed input. Without a quote the value is a folded scalar: lines are
// joined the same way until one dedents to the key's indent or below, and
// that line is pushed back for the driver.
func (p *parser) readTextBlock(start string, keyIndent int) (string, error) {
	var quote byte
	ret := start

	if start[0] == '"' || start[0] == '\'' {
		quote = start[0]
		if idx, found := findTerminator(start[1:], quote); found {
			if idx != len(start)-2 {
				return "", p.unterminatedErr("closing quote is not at the end of the value", start)
			}
			return strings.Trim(start, string(quote)), nil
		}
		// The opening quote is not part of the content.
		ret = start[1:]
	}

	for {
		line, ok, err := p.lr.readLine()
		if err != nil {
			return "", err
		}
		if !ok {
			if quote != 0 {
				return "", p.unterminatedErr("quoted value never closes before end of input", start)
			}
			return strings.TrimSpace(ret), nil
		}

		if isBlank(line) {
			ret += "\n"
			continue
		}

		if quote == 0 {
			if indentOf(line) <= keyIndent {
				p.lr.unread(line)
				return strings.TrimSpace(ret), nil
			}
		} else if idx, found := findTerminator(line, quote); found {
			if idx != len(strings.TrimRight(line, " "))-1 {
				return "", p.unterminatedErr("closing quote is not at the end of the line", line)
			}
			return ret + " " + strings.TrimRight(strings.TrimSpace(line), string(quote)), nil
		}

		ret += " " + strings.TrimSpace(line)
	}
}

// findTerminator locates the first quote in text that actually terminates a
// string. An escaped quote (\" or \') and the doubled forms ("" and '')
// stand for a literal embedded quote; masking them first keeps them from
// matching. The masks have the same width as what they replace, so the
// returned index is valid in the original text.
func findTerminator(text string, quote byte) (int, bool) {
	q := string(quote)
	masked := strings.ReplaceAll(text, `\`+q, "~~")
	masked = strings.ReplaceAll(masked, q+q, "~~")

	idx := strings.IndexByte(masked, quote)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

func (p *parser) unterminatedErr(msg, text string) error {
	return &UnterminatedScalarError{Line: p.lr.lineNum, Text: text, Msg: msg}
}
