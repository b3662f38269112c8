package cexpr

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"surge/internal/source"
)

// Lexer scans a cexpr source string into Tokens. Unlike the main
// language's lexer it tracks no trivia and no dialect evidence — this
// notation has no comments and no whitespace-sensitive constructs.
type Lexer struct {
	file source.FileID
	src  []byte
	pos  int
}

// NewLexer scans src, attributing spans to file (pass source.NoFileID
// when the caller has no surrounding FileSet).
func NewLexer(file source.FileID, src string) *Lexer {
	return &Lexer{file: file, src: []byte(src)}
}

func (lx *Lexer) offset() uint32 {
	off, err := safecast.Conv[uint32](lx.pos)
	if err != nil {
		return 0
	}
	return off
}

func (lx *Lexer) span(start int) source.Span {
	startOff, _ := safecast.Conv[uint32](start)
	return source.Span{File: lx.file, Start: startOff, End: lx.offset()}
}

func (lx *Lexer) peekByte() (byte, bool) {
	if lx.pos >= len(lx.src) {
		return 0, false
	}
	return lx.src[lx.pos], true
}

func (lx *Lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		b := lx.src[lx.pos]
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.pos++
			continue
		}
		break
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Next returns the next token, or a TokEOF token at end of input.
func (lx *Lexer) Next() (Token, error) {
	lx.skipSpace()
	start := lx.pos
	b, ok := lx.peekByte()
	if !ok {
		return Token{Kind: TokEOF, Span: lx.span(start)}, nil
	}

	switch b {
	case '(':
		lx.pos++
		return Token{Kind: TokLParen, Text: "(", Span: lx.span(start)}, nil
	case ')':
		lx.pos++
		return Token{Kind: TokRParen, Text: ")", Span: lx.span(start)}, nil
	case '{':
		lx.pos++
		return Token{Kind: TokLBrace, Text: "{", Span: lx.span(start)}, nil
	case '}':
		lx.pos++
		return Token{Kind: TokRBrace, Text: "}", Span: lx.span(start)}, nil
	case ':':
		lx.pos++
		return Token{Kind: TokColon, Text: ":", Span: lx.span(start)}, nil
	case ',':
		lx.pos++
		return Token{Kind: TokComma, Text: ",", Span: lx.span(start)}, nil
	case ';':
		lx.pos++
		return Token{Kind: TokSemi, Text: ";", Span: lx.span(start)}, nil
	case '.':
		lx.pos++
		return Token{Kind: TokDot, Text: ".", Span: lx.span(start)}, nil
	case '\\':
		lx.pos++
		return Token{Kind: TokBackslash, Text: "\\", Span: lx.span(start)}, nil
	case '-':
		if lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '>' {
			lx.pos += 2
			return Token{Kind: TokArrow, Text: "->", Span: lx.span(start)}, nil
		}
		return Token{Kind: TokInvalid, Text: "-", Span: lx.span(start)}, fmt.Errorf("cexpr: unexpected %q at offset %d", "-", start)
	}

	r, size := utf8.DecodeRune(lx.src[lx.pos:])
	if isIdentStart(r) {
		for lx.pos < len(lx.src) {
			r, size := utf8.DecodeRune(lx.src[lx.pos:])
			if !isIdentPart(r) {
				break
			}
			lx.pos += size
		}
		return Token{Kind: TokIdent, Text: string(lx.src[start:lx.pos]), Span: lx.span(start)}, nil
	}

	lx.pos += size
	return Token{Kind: TokInvalid, Text: string(r), Span: lx.span(start)}, fmt.Errorf("cexpr: unexpected character %q at offset %d", r, start)
}
