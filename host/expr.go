// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"strconv"
	"strings"
)

// errExprParse is returned for any malformed address expression.
var errExprParse = errors.New("expression syntax error")

type tokenType byte

const (
	tokenNil tokenType = iota
	tokenIdentifier
	tokenNumber
	tokenOp
	tokenLParen
	tokenRParen
)

type token struct {
	typ tokenType
	num int64
	str string
	op  byte // '+', '-', '*', '/'
}

var precedence = map[byte]int{'+': 1, '-': 1, '*': 2, '/': 2}

// exprParser evaluates address expressions of the form accepted by
// every command that takes a <pc>: a hex literal ($XXXXXX or
// 0xXXXXXX), a decimal literal, a label already known to the
// Analysis, or a sum/difference/product of these, with parentheses.
// This is a reduced form of the teacher's full bitwise expression
// grammar: address arithmetic here never needs shifts or masks.
type exprParser struct {
	resolve func(name string) (int64, bool)
}

func newExprParser(resolve func(name string) (int64, bool)) *exprParser {
	return &exprParser{resolve: resolve}
}

func (p *exprParser) Parse(s string) (int64, error) {
	toks, err := tokenize(s)
	if err != nil {
		return 0, err
	}
	if len(toks) == 0 {
		return 0, errExprParse
	}
	v, rest, err := p.parseExpr(toks, 0)
	if err != nil {
		return 0, err
	}
	if len(rest) != 0 {
		return 0, errExprParse
	}
	return v, nil
}

func tokenize(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			toks = append(toks, token{typ: tokenLParen})
			i++
		case c == ')':
			toks = append(toks, token{typ: tokenRParen})
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{typ: tokenOp, op: c})
			i++
		case c == '$':
			j := i + 1
			for j < len(s) && isHex(s[j]) {
				j++
			}
			if j == i+1 {
				return nil, errExprParse
			}
			v, err := strconv.ParseInt(s[i+1:j], 16, 64)
			if err != nil {
				return nil, errExprParse
			}
			toks = append(toks, token{typ: tokenNumber, num: v})
			i = j
		case isDigit(c):
			j := i
			for j < len(s) && (isHex(s[j]) || s[j] == 'x' || s[j] == 'X') {
				j++
			}
			word := s[i:j]
			base := 10
			if strings.HasPrefix(word, "0x") || strings.HasPrefix(word, "0X") {
				word = word[2:]
				base = 16
			}
			v, err := strconv.ParseInt(word, base, 64)
			if err != nil {
				return nil, errExprParse
			}
			toks = append(toks, token{typ: tokenNumber, num: v})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			toks = append(toks, token{typ: tokenIdentifier, str: s[i:j]})
			i = j
		default:
			return nil, errExprParse
		}
	}
	return toks, nil
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHex(c byte) bool        { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentStart(c byte) bool { return c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentChar(c byte) bool  { return isIdentStart(c) || isDigit(c) }

func (p *exprParser) parseExpr(toks []token, minPrec int) (int64, []token, error) {
	lhs, rest, err := p.parseUnary(toks)
	if err != nil {
		return 0, nil, err
	}
	for len(rest) > 0 && rest[0].typ == tokenOp && precedence[rest[0].op] >= minPrec {
		opTok := rest[0]
		rhs, after, err := p.parseExpr(rest[1:], precedence[opTok.op]+1)
		if err != nil {
			return 0, nil, err
		}
		switch opTok.op {
		case '+':
			lhs += rhs
		case '-':
			lhs -= rhs
		case '*':
			lhs *= rhs
		case '/':
			if rhs == 0 {
				return 0, nil, errors.New("division by zero")
			}
			lhs /= rhs
		}
		rest = after
	}
	return lhs, rest, nil
}

func (p *exprParser) parseUnary(toks []token) (int64, []token, error) {
	if len(toks) == 0 {
		return 0, nil, errExprParse
	}
	if toks[0].typ == tokenOp && toks[0].op == '-' {
		v, rest, err := p.parseUnary(toks[1:])
		return -v, rest, err
	}
	return p.parsePrimary(toks)
}

func (p *exprParser) parsePrimary(toks []token) (int64, []token, error) {
	if len(toks) == 0 {
		return 0, nil, errExprParse
	}
	switch toks[0].typ {
	case tokenNumber:
		return toks[0].num, toks[1:], nil
	case tokenIdentifier:
		v, ok := p.resolve(toks[0].str)
		if !ok {
			return 0, nil, errors.New("unknown label '" + toks[0].str + "'")
		}
		return v, toks[1:], nil
	case tokenLParen:
		v, rest, err := p.parseExpr(toks[1:], 0)
		if err != nil {
			return 0, nil, err
		}
		if len(rest) == 0 || rest[0].typ != tokenRParen {
			return 0, nil, errExprParse
		}
		return v, rest[1:], nil
	default:
		return 0, nil, errExprParse
	}
}
