package quantity

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	errSyntax       = errors.New("quantity: sintaxis inválida")
	errDivideByZero = errors.New("quantity: división por cero")
)

// evaluator es un parser descendente recursivo sobre:
//
//	expr   := term (("+" | "-") term)*
//	term   := unary (("*" | "/") unary)*
//	unary  := ("+" | "-") unary | number
//	number := digits ["." digits] | "." digits
type evaluator struct {
	src string
	pos int
}

func evaluate(s string) (decimal.Decimal, error) {
	e := &evaluator{src: s}
	v, err := e.expr()
	if err != nil {
		return decimal.Zero, err
	}
	e.skipSpace()
	if e.pos != len(e.src) {
		return decimal.Zero, errSyntax
	}
	return v, nil
}

func (e *evaluator) expr() (decimal.Decimal, error) {
	left, err := e.term()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		switch e.peek() {
		case '+':
			e.pos++
			right, err := e.term()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Add(right)
		case '-':
			e.pos++
			right, err := e.term()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

func (e *evaluator) term() (decimal.Decimal, error) {
	left, err := e.unary()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		switch e.peek() {
		case '*':
			e.pos++
			right, err := e.unary()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Mul(right)
		case '/':
			e.pos++
			right, err := e.unary()
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, errDivideByZero
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

func (e *evaluator) unary() (decimal.Decimal, error) {
	switch e.peek() {
	case '-':
		e.pos++
		v, err := e.unary()
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	case '+':
		e.pos++
		return e.unary()
	}
	return e.number()
}

func (e *evaluator) number() (decimal.Decimal, error) {
	e.skipSpace()
	start := e.pos
	digits, dots := 0, 0
	for e.pos < len(e.src) {
		c := e.src[e.pos]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' {
			dots++
		} else {
			break
		}
		e.pos++
	}
	if digits == 0 || dots > 1 {
		return decimal.Zero, errSyntax
	}
	lit := e.src[start:e.pos]
	if lit[len(lit)-1] == '.' {
		lit = lit[:len(lit)-1]
	}
	return decimal.NewFromString(lit)
}

// peek devuelve el próximo carácter significativo (sin consumirlo), o 0 al final.
func (e *evaluator) peek() byte {
	e.skipSpace()
	if e.pos >= len(e.src) {
		return 0
	}
	return e.src[e.pos]
}

func (e *evaluator) skipSpace() {
	for e.pos < len(e.src) {
		switch e.src[e.pos] {
		case ' ', '\t', '\n', '\r':
			e.pos++
		default:
			return
		}
	}
}
