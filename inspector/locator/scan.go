package locator

// MatchBrace returns the offset of the '}' closing the '{' at open
func MatchBrace(text string, open int) (int, bool) {
	return matchDelimiter(text, open, '{', '}')
}

// MatchParen returns the offset of the ')' closing the '(' at open
func MatchParen(text string, open int) (int, bool) {
	return matchDelimiter(text, open, '(', ')')
}

// matchDelimiter counts nested delimiter pairs starting at open.
// String, template and comment contents are not skipped.
func matchDelimiter(text string, open int, left, right byte) (int, bool) {
	if open < 0 || open >= len(text) || text[open] != left {
		return -1, false
	}
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case left:
			depth++
		case right:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// skipSpace returns the first non whitespace offset at or after pos
func skipSpace(text string, pos int) int {
	for pos < len(text) {
		switch text[pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// skipSemicolon consumes optional trailing whitespace on the same line and a ';'
func skipSemicolon(text string, pos int) int {
	next := pos
	for next < len(text) && (text[next] == ' ' || text[next] == '\t') {
		next++
	}
	if next < len(text) && text[next] == ';' {
		return next + 1
	}
	return pos
}
