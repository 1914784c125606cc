package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// VarPrefix marks a fact argument as a schema variable (e.g. "?x").
const VarPrefix = "?"

// Fact is an atomic proposition: a predicate name applied to an ordered tuple of symbols.
// e.g. at(robot1, roomA)
//
// Facts are values. Equality and hashing go through Key, never through the Args slice.
type Fact struct {
	name string
	args []string
	key  string
}

// NewFact creates a fact. The argument slice is copied.
func NewFact(name string, args ...string) Fact {
	cp := make([]string, len(args))
	copy(cp, args)
	return Fact{
		name: name,
		args: cp,
		key:  factKey(name, cp),
	}
}

// Var returns the variable symbol for a schema parameter name.
func Var(name string) string {
	return VarPrefix + name
}

// IsVar reports whether a symbol is a schema variable.
func IsVar(symbol string) bool {
	return strings.HasPrefix(symbol, VarPrefix)
}

// reserved characters force a symbol to be quoted in keys.
const reserved = "(),;{}\"\\"

func factKey(name string, args []string) string {
	var sb strings.Builder
	writeSymbol(&sb, name)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeSymbol(&sb, a)
	}
	sb.WriteByte(')')
	return sb.String()
}

// writeSymbol writes s bare when it is unambiguous and Go-quoted otherwise,
// so p("a,b") and p(a,b) never share a key.
func writeSymbol(sb *strings.Builder, s string) {
	if needsQuote(s) {
		sb.WriteString(strconv.Quote(s))
		return
	}
	sb.WriteString(s)
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, reserved) {
		return true
	}
	return strings.TrimSpace(s) != s || strings.IndexFunc(s, func(r rune) bool {
		return r < ' ' || r == 0x7f
	}) >= 0
}

// Name returns the predicate name.
func (f Fact) Name() string { return f.name }

// Arity returns the number of arguments.
func (f Fact) Arity() int { return len(f.args) }

// Arg returns the i-th argument.
func (f Fact) Arg(i int) string { return f.args[i] }

// Args returns a copy of the arguments.
func (f Fact) Args() []string {
	cp := make([]string, len(f.args))
	copy(cp, f.args)
	return cp
}

// Key is the canonical structural identity of the fact.
func (f Fact) Key() string {
	if f.key == "" && f.name != "" {
		return factKey(f.name, f.args)
	}
	return f.key
}

// Equal reports structural equality.
func (f Fact) Equal(other Fact) bool {
	return f.Key() == other.Key()
}

// IsGround reports whether the fact has no variables.
func (f Fact) IsGround() bool {
	for _, a := range f.args {
		if IsVar(a) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (f Fact) String() string {
	return f.Key()
}

// Binding maps variable symbols ("?x") to object symbols.
type Binding map[string]string

// Bind substitutes bound variables. Unbound variables are left in place,
// so the result is ground only when every variable is bound.
func (f Fact) Bind(b Binding) Fact {
	if f.IsGround() {
		return f
	}
	args := make([]string, len(f.args))
	for i, a := range f.args {
		if v, ok := b[a]; ok && IsVar(a) {
			args[i] = v
			continue
		}
		args[i] = a
	}
	return NewFact(f.name, args...)
}

// Vars returns the variables used by the fact, in argument order.
func (f Fact) Vars() []string {
	var vars []string
	for _, a := range f.args {
		if IsVar(a) {
			vars = append(vars, a)
		}
	}
	return vars
}

// ParseFact reads the canonical form produced by Key, e.g. "at(robot1,roomA)".
// Whitespace around symbols is ignored; quoted symbols such as p("a,b") are unquoted.
func ParseFact(s string) (Fact, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Fact{}, fmt.Errorf("malformed fact %q", s)
	}
	name, err := parseSymbol(s[:open])
	if err != nil {
		return Fact{}, fmt.Errorf("malformed fact %q: %w", s, err)
	}
	body := strings.TrimSpace(s[open+1 : len(s)-1])
	if body == "" {
		return NewFact(name), nil
	}
	parts, err := splitArgs(body)
	if err != nil {
		return Fact{}, fmt.Errorf("malformed fact %q: %w", s, err)
	}
	for i := range parts {
		if parts[i], err = parseSymbol(parts[i]); err != nil {
			return Fact{}, fmt.Errorf("malformed fact %q: %w", s, err)
		}
	}
	return NewFact(name, parts...), nil
}

// splitArgs splits on commas outside quoted symbols.
func splitArgs(body string) ([]string, error) {
	var parts []string
	start, quoted := 0, false
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case quoted && c == '\\':
			i++
		case c == '"':
			quoted = !quoted
		case !quoted && c == ',':
			parts = append(parts, body[start:i])
			start = i + 1
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote")
	}
	return append(parts, body[start:]), nil
}

func parseSymbol(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty symbol")
	}
	if raw[0] == '"' {
		return strconv.Unquote(raw)
	}
	if strings.ContainsAny(raw, reserved) {
		return "", fmt.Errorf("symbol %q must be quoted", raw)
	}
	return raw, nil
}
