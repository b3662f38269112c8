package cexpr

import (
	"fmt"

	"surge/internal/source"
)

// Parser turns a token stream from a Lexer into an Expr tree. It is a
// plain recursive-descent parser with one token of lookahead, the
// shape the main language's parser uses throughout (expression,
// peek-and-consume, no backtracking).
type Parser struct {
	lx   *Lexer
	look *Token
}

// NewParser wraps a Lexer.
func NewParser(lx *Lexer) *Parser {
	return &Parser{lx: lx}
}

// Parse parses src in its entirety and returns the resulting Expr, or
// a parse error naming the unexpected token.
func Parse(file source.FileID, src string) (Expr, error) {
	p := NewParser(NewLexer(file, src))
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokEOF {
		return nil, fmt.Errorf("cexpr: unexpected trailing token %q", tok.Text)
	}
	return expr, nil
}

func (p *Parser) peek() (Token, error) {
	if p.look != nil {
		return *p.look, nil
	}
	tok, err := p.lx.Next()
	if err != nil {
		return Token{}, err
	}
	p.look = &tok
	return tok, nil
}

func (p *Parser) next() (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	p.look = nil
	return tok, nil
}

func (p *Parser) expect(kind Kind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, fmt.Errorf("cexpr: expected %s, got %s %q", kind, tok.Kind, tok.Text)
	}
	return tok, nil
}

// parseExpr parses the lowest-precedence form: a right-associative
// function arrow over primaries.
func (p *Parser) parseExpr() (Expr, error) {
	dom, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokArrow {
		return dom, nil
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	cod, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return FuncExpr{exprBase{dom.Span().Cover(cod.Span())}, dom, cod}, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokIdent:
		return p.parseIdentHeaded(tok)
	case TokLBrace:
		return p.parseRecord(tok)
	default:
		return nil, fmt.Errorf("cexpr: expected a contract expression, got %s %q", tok.Kind, tok.Text)
	}
}

func (p *Parser) parseIdentHeaded(tok Token) (Expr, error) {
	switch tok.Text {
	case "Array":
		elem, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return ArrayExpr{exprBase{tok.Span.Cover(elem.Span())}, elem}, nil
	case "Dict":
		elem, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return DictExpr{exprBase{tok.Span.Cover(elem.Span())}, elem, false}, nil
	case "DictType":
		elem, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return DictExpr{exprBase{tok.Span.Cover(elem.Span())}, elem, true}, nil
	case "Enum":
		return p.parseEnum(tok)
	case "forall":
		return p.parseForall(tok)
	default:
		return NameExpr{exprBase{tok.Span}, tok.Text}, nil
	}
}

func (p *Parser) parseEnum(head Token) (Expr, error) {
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	var tags []string
	for {
		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		tags = append(tags, name.Text)
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokComma {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	closeTok, err := p.expect(TokRParen)
	if err != nil {
		return nil, err
	}
	return EnumExpr{exprBase{head.Span.Cover(closeTok.Span)}, tags}, nil
}

func (p *Parser) parseForall(head Token) (Expr, error) {
	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	var constraints []string
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokBackslash {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		for {
			c, err := p.expect(TokIdent)
			if err != nil {
				return nil, err
			}
			constraints = append(constraints, c.Text)
			peeked, err := p.peek()
			if err != nil {
				return nil, err
			}
			if peeked.Kind == TokComma {
				if _, err := p.next(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if _, err := p.expect(TokDot); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ForallExpr{exprBase{head.Span.Cover(body.Span())}, name.Text, constraints, body}, nil
}

func (p *Parser) parseRecord(open Token) (Expr, error) {
	var fields []Field
	tail := TailSpec{Kind: "empty"}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokRBrace && tok.Kind != TokSemi {
		for {
			field, err := p.parseField()
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == TokComma {
				if _, err := p.next(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokSemi {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		tail, err = p.parseTail()
		if err != nil {
			return nil, err
		}
	}

	closeTok, err := p.expect(TokRBrace)
	if err != nil {
		return nil, err
	}
	return RecordExpr{exprBase{open.Span.Cover(closeTok.Span)}, fields, tail}, nil
}

func (p *Parser) parseField() (Field, error) {
	name, err := p.expect(TokIdent)
	if err != nil {
		return Field{}, err
	}
	if _, err := p.expect(TokColon); err != nil {
		return Field{}, err
	}
	typ, err := p.parseExpr()
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name.Text, Type: typ}, nil
}

func (p *Parser) parseTail() (TailSpec, error) {
	tok, err := p.peek()
	if err != nil {
		return TailSpec{}, err
	}
	if tok.Kind == TokRBrace {
		return TailSpec{Kind: "empty"}, nil
	}
	name, err := p.expect(TokIdent)
	if err != nil {
		return TailSpec{}, err
	}
	switch name.Text {
	case "Dyn":
		return TailSpec{Kind: "dyn"}, nil
	case "Empty":
		return TailSpec{Kind: "empty"}, nil
	default:
		return TailSpec{Kind: "var", Var: name.Text}, nil
	}
}
