package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// piTolerance is how close an angle must be to a multiple of pi/d before the
// pi form is considered.
const piTolerance = 1e-10

// piDenominators are tried in order when printing an angle as a pi fraction.
var piDenominators = []int{1, 2, 3, 4, 6, 8}

// angleParser evaluates the arithmetic used for gate parameters in QASM files
// and on the command line:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary | primary }
//	unary   = ("-" | "+") unary | primary
//	primary = number | "pi" | "(" expr ")"
//
// A primary directly after a factor multiplies it, so "2pi" and "3pi/4" work.
type angleParser struct {
	src string
	pos int
}

func (p *angleParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *angleParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *angleParser) expr() (float64, bool) {
	v, ok := p.term()
	for ok {
		switch p.peek() {
		case '+':
			p.pos++
			var r float64
			r, ok = p.term()
			v += r
		case '-':
			p.pos++
			var r float64
			r, ok = p.term()
			v -= r
		default:
			return v, true
		}
	}
	return 0, false
}

func (p *angleParser) term() (float64, bool) {
	v, ok := p.unary()
	for ok {
		var r float64
		switch c := p.peek(); {
		case c == '*':
			p.pos++
			r, ok = p.unary()
			v *= r
		case c == '/':
			p.pos++
			r, ok = p.unary()
			if r == 0 {
				return 0, false
			}
			v /= r
		case c == '(' || c == 'p':
			r, ok = p.primary()
			v *= r
		default:
			return v, true
		}
	}
	return 0, false
}

func (p *angleParser) unary() (float64, bool) {
	switch p.peek() {
	case '-':
		p.pos++
		v, ok := p.unary()
		return -v, ok
	case '+':
		p.pos++
		return p.unary()
	}
	return p.primary()
}

func (p *angleParser) primary() (float64, bool) {
	c := p.peek()
	switch {
	case c == '(':
		p.pos++
		v, ok := p.expr()
		if !ok || p.peek() != ')' {
			return 0, false
		}
		p.pos++
		return v, true
	case strings.HasPrefix(p.src[p.pos:], "pi"):
		p.pos += 2
		return math.Pi, true
	case c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	}
	return 0, false
}

func (p *angleParser) number() (float64, bool) {
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] == '.' || isDigit(p.src[p.pos])) {
		p.pos++
	}
	// Exponent, only when digits follow.
	if p.pos < len(p.src) && p.src[p.pos] == 'e' {
		j := p.pos + 1
		if j < len(p.src) && (p.src[j] == '+' || p.src[j] == '-') {
			j++
		}
		if j < len(p.src) && isDigit(p.src[j]) {
			for j < len(p.src) && isDigit(p.src[j]) {
				j++
			}
			p.pos = j
		}
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	return v, err == nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parseParamExpr evaluates a parameter expression. Returns the value and true
// on success, or 0 and false on failure.
//
// Supported formats:
//   - Plain numbers: "1.5707", "-0.5", "1e-10"
//   - Pi constant: "pi" (any case)
//   - Pi fractions and multiples: "pi/2", "2pi", "3*pi/4", "-pi/8"
//   - Arithmetic with parentheses: "pi/4 + 0.1", "-(pi/2)"
func parseParamExpr(s string) (float64, bool) {
	p := &angleParser{src: strings.ToLower(strings.TrimSpace(s))}
	if p.src == "" {
		return 0, false
	}
	v, ok := p.expr()
	if !ok || p.peek() != 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseParamList parses a comma separated parameter list such as "pi/2, 0.3".
func parseParamList(input string) ([]float64, error) {
	var params []float64
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		val, ok := parseParamExpr(part)
		if !ok {
			return nil, errors.Errorf("invalid parameter %q", part)
		}
		params = append(params, val)
	}
	return params, nil
}

// formatParam prints an angle as a pi fraction when the fraction parses back
// to exactly val, and as the shortest round-trip decimal otherwise.
func formatParam(val float64) string {
	if val == 0 {
		return "0"
	}
	for _, d := range piDenominators {
		n := math.Round(val * float64(d) / math.Pi)
		if n == 0 || math.Abs(n) > float64(2*d) {
			continue
		}
		// Same evaluation order as angleParser: (n*pi)/d.
		exact := n * math.Pi / float64(d)
		if math.Abs(val-exact) >= piTolerance {
			continue
		}
		if exact != val {
			break
		}
		return piFraction(int(n), d)
	}
	return formatFloat(val)
}

func piFraction(n, d int) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	num := "pi"
	if n != 1 {
		num = fmt.Sprintf("%d*pi", n)
	}
	if d == 1 {
		return sign + num
	}
	return fmt.Sprintf("%s%s/%d", sign, num, d)
}

// formatFloat renders the shortest decimal that parses back to val.
func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}
