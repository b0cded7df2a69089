package minilisp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrIncomplete marks parse errors caused by input ending too early, such
// as an unclosed list or string.
var ErrIncomplete = errors.New("incomplete input")

type NodeKind int

const (
	NodeSymbol NodeKind = iota
	NodeString
	NodeInt
	NodeFloat
	NodeList
)

// Node is a parsed expression. The evaluator only ever reads nodes.
type Node struct {
	Kind     NodeKind
	Int      int64
	Float    float64
	Str      string // symbol name or string contents
	Children []*Node
}

func (n *Node) String() string {
	switch n.Kind {
	case NodeInt:
		return strconv.FormatInt(n.Int, 10)
	case NodeFloat:
		return formatFloat(n.Float)
	case NodeString:
		return strconv.Quote(n.Str)
	case NodeSymbol:
		return n.Str
	case NodeList:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return "<unknown>"
	}
}

// Parse reads exactly one expression from input.
func Parse(input string) (*Node, error) {
	nodes, err := ParseProgram(input)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("empty input")
	case 1:
		return nodes[0], nil
	default:
		return nil, fmt.Errorf("unexpected input after expression: %s", nodes[1])
	}
}

// ParseProgram reads every top-level expression in input, in order.
// Empty input yields no expressions and no error.
func ParseProgram(input string) ([]*Node, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	b := &builder{toks: toks}
	var nodes []*Node
	for !b.done() {
		node, err := b.expr()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// --- lexer ---

type tokKind int

const (
	tokOpen tokKind = iota
	tokClose
	tokQuote
	tokString
	tokAtom
)

type token struct {
	kind tokKind
	text string // atom text or unescaped string contents
	pos  int    // rune offset in the input
}

// lex splits input into tokens. Whitespace separates atoms; ';' starts a
// comment running to the end of the line. An atom is any run of runes
// other than whitespace, parentheses, double quotes, ';' and '\''.
func lex(input string) ([]token, error) {
	rs := []rune(input)
	var toks []token
	for i := 0; i < len(rs); {
		ch := rs[i]
		switch {
		case unicode.IsSpace(ch):
			i++
		case ch == ';':
			for i < len(rs) && rs[i] != '\n' {
				i++
			}
		case ch == '(':
			toks = append(toks, token{kind: tokOpen, pos: i})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokClose, pos: i})
			i++
		case ch == '\'':
			toks = append(toks, token{kind: tokQuote, pos: i})
			i++
		case ch == '"':
			s, next, err := lexString(rs, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokString, text: s, pos: i})
			i = next
		default:
			start := i
			for i < len(rs) && !endsAtom(rs[i]) {
				i++
			}
			toks = append(toks, token{kind: tokAtom, text: string(rs[start:i]), pos: start})
		}
	}
	return toks, nil
}

// lexString reads the literal opening at rs[start] and returns its
// contents and the offset just past the closing quote.
func lexString(rs []rune, start int) (string, int, error) {
	var buf strings.Builder
	for i := start + 1; i < len(rs); i++ {
		switch rs[i] {
		case '"':
			return buf.String(), i + 1, nil
		case '\\':
			i++
			if i >= len(rs) {
				return "", 0, fmt.Errorf("%w: unexpected end of input in string escape", ErrIncomplete)
			}
			esc, ok := stringEscapes[rs[i]]
			if !ok {
				return "", 0, fmt.Errorf("unknown escape sequence: \\%c at position %d", rs[i], i)
			}
			buf.WriteRune(esc)
		default:
			buf.WriteRune(rs[i])
		}
	}
	return "", 0, fmt.Errorf("%w: unclosed string starting at position %d", ErrIncomplete, start)
}

var stringEscapes = map[rune]rune{'n': '\n', 't': '\t', '\\': '\\', '"': '"'}

func endsAtom(ch rune) bool {
	return unicode.IsSpace(ch) || strings.ContainsRune(`()";'`, ch)
}

// --- tree builder ---

type builder struct {
	toks []token
	pos  int
}

func (b *builder) done() bool {
	return b.pos >= len(b.toks)
}

func (b *builder) expr() (*Node, error) {
	if b.done() {
		return nil, fmt.Errorf("%w: unexpected end of input", ErrIncomplete)
	}
	tok := b.toks[b.pos]
	b.pos++
	switch tok.kind {
	case tokOpen:
		children := []*Node{}
		for {
			if b.done() {
				return nil, fmt.Errorf("%w: unclosed list starting at position %d", ErrIncomplete, tok.pos)
			}
			if b.toks[b.pos].kind == tokClose {
				b.pos++
				return &Node{Kind: NodeList, Children: children}, nil
			}
			child, err := b.expr()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	case tokClose:
		return nil, fmt.Errorf("unexpected ')' at position %d", tok.pos)
	case tokQuote:
		inner, err := b.expr()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NodeList, Children: []*Node{{Kind: NodeSymbol, Str: "quote"}, inner}}, nil
	case tokString:
		return &Node{Kind: NodeString, Str: tok.text}, nil
	default:
		return atomNode(tok)
	}
}

// atomNode classifies an atom as an int, a float or a symbol. Only
// decimal notation is numeric; "inf", "nan" and "0x10" are symbols. A
// numeric literal that does not fit its type is a parse error.
func atomNode(tok token) (*Node, error) {
	if !isDecimalNumber(tok.text) {
		return &Node{Kind: NodeSymbol, Str: tok.text}, nil
	}
	i, err := strconv.ParseInt(tok.text, 10, 64)
	if err == nil {
		return &Node{Kind: NodeInt, Int: i}, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("integer literal %s out of range at position %d", tok.text, tok.pos)
	}
	f, err := strconv.ParseFloat(tok.text, 64)
	if err == nil {
		return &Node{Kind: NodeFloat, Float: f}, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("float literal %s out of range at position %d", tok.text, tok.pos)
	}
	// Digits in an otherwise malformed number, like "1-2" or "1.2.3".
	return &Node{Kind: NodeSymbol, Str: tok.text}, nil
}

// isDecimalNumber reports whether s uses only decimal number characters
// and contains at least one digit.
func isDecimalNumber(s string) bool {
	digit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("+-.eE", r):
		default:
			return false
		}
	}
	return digit
}
