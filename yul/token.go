package yul

import (
	"fmt"
	"unicode"
)

type tokenType int

const (
	tokLBrace tokenType = iota
	tokRBrace
	tokLParen
	tokRParen
	tokComma
	tokArrow  // ->
	tokAssign // :=
	tokIdent
	tokNumber
	tokString
	tokEOF
)

func (t tokenType) String() string {
	switch t {
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokArrow:
		return "'->'"
	case tokAssign:
		return "':='"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokEOF:
		return "end of input"
	}
	return "unknown"
}

type token struct {
	Value string
	Type  tokenType
	Line  int
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

// Identifiers may contain dots: builtin names such as i64.add and imported
// names such as eth.getGasLeft are single identifiers.
func isIdentPart(r rune) bool {
	return isIdentStart(r) || r == '.' || unicode.IsDigit(r)
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// Block comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			i += 2
			for i+1 < len(runes) && !(runes[i] == '*' && runes[i+1] == '/') {
				if runes[i] == '\n' {
					line++
				}
				i++
			}
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("line %d: unterminated comment", line)
			}
			i++
			continue
		}

		switch r {
		case '{':
			tokens = append(tokens, token{"{", tokLBrace, line})
			continue
		case '}':
			tokens = append(tokens, token{"}", tokRBrace, line})
			continue
		case '(':
			tokens = append(tokens, token{"(", tokLParen, line})
			continue
		case ')':
			tokens = append(tokens, token{")", tokRParen, line})
			continue
		case ',':
			tokens = append(tokens, token{",", tokComma, line})
			continue
		}

		if r == '-' && i+1 < len(runes) && runes[i+1] == '>' {
			tokens = append(tokens, token{"->", tokArrow, line})
			i++
			continue
		}

		if r == ':' {
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, token{":=", tokAssign, line})
				i++
				continue
			}
			return nil, fmt.Errorf("line %d: unexpected ':'", line)
		}

		if r == '"' {
			start := i + 1
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\n' {
					return nil, fmt.Errorf("line %d: unterminated string literal", line)
				}
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("line %d: unterminated string literal", line)
			}
			tokens = append(tokens, token{string(runes[start:i]), tokString, line})
			continue
		}

		if unicode.IsDigit(r) {
			start := i
			for i+1 < len(runes) && (isIdentPart(runes[i+1]) && runes[i+1] != '.') {
				i++
			}
			tokens = append(tokens, token{string(runes[start : i+1]), tokNumber, line})
			continue
		}

		if isIdentStart(r) {
			start := i
			for i+1 < len(runes) && isIdentPart(runes[i+1]) {
				i++
			}
			tokens = append(tokens, token{string(runes[start : i+1]), tokIdent, line})
			continue
		}

		return nil, fmt.Errorf("line %d: unexpected character %q", line, r)
	}

	tokens = append(tokens, token{"", tokEOF, line})
	return tokens, nil
}
