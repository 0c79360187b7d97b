package condeval

import (
	"fmt"
	"unicode"
)

type boolTokKind int

const (
	boolTokEOF boolTokKind = iota
	boolTokTrue
	boolTokFalse
	boolTokAnd
	boolTokOr
	boolTokNot
	boolTokLParen
	boolTokRParen
)

type boolToken struct {
	kind boolTokKind
}

type boolLexer struct {
	src []rune
	pos int
}

func newBoolLexer(src string) *boolLexer {
	return &boolLexer{src: []rune(src)}
}

func (l *boolLexer) next() (boolToken, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return boolToken{kind: boolTokEOF}, nil
	}
	switch l.src[l.pos] {
	case '&':
		l.pos++
		return boolToken{kind: boolTokAnd}, nil
	case '|':
		l.pos++
		return boolToken{kind: boolTokOr}, nil
	case '!':
		l.pos++
		return boolToken{kind: boolTokNot}, nil
	case '(':
		l.pos++
		return boolToken{kind: boolTokLParen}, nil
	case ')':
		l.pos++
		return boolToken{kind: boolTokRParen}, nil
	}
	if l.matchWord("true") {
		return boolToken{kind: boolTokTrue}, nil
	}
	if l.matchWord("false") {
		return boolToken{kind: boolTokFalse}, nil
	}
	return boolToken{}, fmt.Errorf("unexpected character %q in condition logic", l.src[l.pos])
}

func (l *boolLexer) matchWord(word string) bool {
	wr := []rune(word)
	if l.pos+len(wr) > len(l.src) {
		return false
	}
	if string(l.src[l.pos:l.pos+len(wr)]) != word {
		return false
	}
	l.pos += len(wr)
	return true
}

type boolParser struct {
	lex *boolLexer
	tok boolToken
	err error
}

func (p *boolParser) next() {
	if p.err != nil {
		return
	}
	p.tok, p.err = p.lex.next()
}

func (p *boolParser) parseOr() (bool, error) {
	v, err := p.parseAnd()
	if err != nil {
		return false, err
	}
	for p.tok.kind == boolTokOr {
		p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return false, err
		}
		v = v || rhs
	}
	return v, p.err
}

func (p *boolParser) parseAnd() (bool, error) {
	v, err := p.parseUnary()
	if err != nil {
		return false, err
	}
	for p.tok.kind == boolTokAnd {
		p.next()
		rhs, err := p.parseUnary()
		if err != nil {
			return false, err
		}
		v = v && rhs
	}
	return v, p.err
}

func (p *boolParser) parseUnary() (bool, error) {
	if p.tok.kind == boolTokNot {
		p.next()
		v, err := p.parseUnary()
		return !v, err
	}
	return p.parsePrimary()
}

func (p *boolParser) parsePrimary() (bool, error) {
	switch p.tok.kind {
	case boolTokTrue:
		p.next()
		return true, p.err
	case boolTokFalse:
		p.next()
		return false, p.err
	case boolTokLParen:
		p.next()
		v, err := p.parseOr()
		if err != nil {
			return false, err
		}
		if p.tok.kind != boolTokRParen {
			return false, fmt.Errorf("expected ')' in condition logic")
		}
		p.next()
		return v, p.err
	default:
		return false, fmt.Errorf("unexpected token in condition logic")
	}
}
