package execute

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Arithmetic expression evaluation for the math strategy. A small
// precedence-climbing parser over + - * / % ^ and parentheses; no variables,
// no function calls.

type exprParser struct {
	input string
	pos   int
}

// evalExpr evaluates a plain arithmetic expression.
func evalExpr(expr string) (float64, error) {
	p := &exprParser{input: strings.TrimSpace(expr)}
	if p.input == "" {
		return 0, fmt.Errorf("empty expression")
	}

	v, err := p.parseExpr(0)
	if err != nil {
		return 0, err
	}

	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

type opInfo struct {
	prec       int
	rightAssoc bool
}

var binaryOps = map[byte]opInfo{
	'+': {prec: 1},
	'-': {prec: 1},
	'*': {prec: 2},
	'/': {prec: 2},
	'%': {prec: 2},
	'^': {prec: 3, rightAssoc: true},
}

func (p *exprParser) parseExpr(minPrec int) (float64, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return left, nil
		}

		op, ok := binaryOps[p.input[p.pos]]
		if !ok || op.prec < minPrec {
			return left, nil
		}
		opCh := p.input[p.pos]
		p.pos++

		nextMin := op.prec + 1
		if op.rightAssoc {
			nextMin = op.prec
		}

		right, err := p.parseExpr(nextMin)
		if err != nil {
			return 0, err
		}

		left, err = apply(opCh, left, right)
		if err != nil {
			return 0, err
		}
	}
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, fmt.Errorf("unexpected end of expression")
	}

	switch c := p.input[p.pos]; {
	case c == '(':
		p.pos++
		v, err := p.parseExpr(0)
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil

	case c == '-':
		p.pos++
		v, err := p.parsePrimary()
		if err != nil {
			return 0, err
		}
		return -v, nil

	case c == '+':
		p.pos++
		return p.parsePrimary()

	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()

	default:
		return 0, fmt.Errorf("unexpected %q at position %d", c, p.pos)
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}

	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func apply(op byte, a, b float64) (float64, error) {
	switch op {
	case '+':
		return a + b, nil
	case '-':
		return a - b, nil
	case '*':
		return a * b, nil
	case '/':
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	case '%':
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return math.Mod(a, b), nil
	case '^':
		return math.Pow(a, b), nil
	default:
		return 0, fmt.Errorf("unknown operator %q", op)
	}
}

var chainPattern = regexp.MustCompile(`\d+(?:\.\d+)?(?:\s*[-+*/^%]\s*\(?\s*\d+(?:\.\d+)?\s*\)?)+`)

// extractExpressions pulls arithmetic expressions out of prose. Segments
// containing "=" contribute their left-hand side; otherwise any
// number-operator chain counts.
func extractExpressions(content string) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(expr string) {
		expr = strings.TrimSpace(expr)
		if expr == "" || seen[expr] {
			return
		}
		seen[expr] = true
		out = append(out, expr)
	}

	for _, segment := range strings.Split(content, "=") {
		for _, m := range chainPattern.FindAllString(segment, -1) {
			add(m)
		}
	}

	return out
}
