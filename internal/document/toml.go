package document

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

const tomlArrayIndent = "    "

var bareKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DecodeTOML parses a TOML document into an ordered Map.
func DecodeTOML(data []byte) (*Map, error) {
	root := New()
	current := root

	p := &unstable.Parser{}
	p.Reset(data)

	for p.NextExpression() {
		expr := p.Expression()

		switch expr.Kind {
		case unstable.KeyValue:
			if err := setKeyValue(current, expr); err != nil {
				return nil, err
			}
		case unstable.Table:
			keys := keyParts(expr.Key())
			table, err := descend(root, keys, formTable)
			if err != nil {
				return nil, err
			}
			current = table
		case unstable.ArrayTable:
			keys := keyParts(expr.Key())
			parent, err := descend(root, keys[:len(keys)-1], formTable)
			if err != nil {
				return nil, err
			}
			last := keys[len(keys)-1]
			var items []any
			if existing, ok := parent.Get(last); ok {
				items, ok = existing.([]any)
				if !ok {
					return nil, fmt.Errorf("key %q is already defined as a non-array", strings.Join(keys, "."))
				}
			}
			elem := New()
			parent.Set(last, append(items, elem))
			current = elem
		}
	}

	if err := p.Error(); err != nil {
		return nil, err
	}

	return root, nil
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// descend walks keys from root, creating tables of the given form as needed.
// A key holding an array of tables resolves to its last element.
func descend(root *Map, keys []string, form tableForm) (*Map, error) {
	m := root
	for i, k := range keys {
		v, ok := m.Get(k)
		if !ok {
			sub := New()
			sub.form = form
			m.Set(k, sub)
			m = sub
			continue
		}
		switch t := v.(type) {
		case *Map:
			m = t
		case []any:
			if len(t) == 0 {
				return nil, fmt.Errorf("key %q is an empty array", strings.Join(keys[:i+1], "."))
			}
			last, ok := t[len(t)-1].(*Map)
			if !ok {
				return nil, fmt.Errorf("key %q is not an array of tables", strings.Join(keys[:i+1], "."))
			}
			m = last
		default:
			return nil, fmt.Errorf("key %q is already defined as a value", strings.Join(keys[:i+1], "."))
		}
	}
	return m, nil
}

func setKeyValue(table *Map, expr *unstable.Node) error {
	keys := keyParts(expr.Key())
	parent, err := descend(table, keys[:len(keys)-1], formDotted)
	if err != nil {
		return err
	}

	v, err := tomlValue(expr.Value())
	if err != nil {
		return fmt.Errorf("key %q: %w", strings.Join(keys, "."), err)
	}

	parent.Set(keys[len(keys)-1], v)
	return nil
}

func tomlValue(n *unstable.Node) (any, error) {
	switch n.Kind {
	case unstable.String:
		return string(n.Data), nil
	case unstable.Bool:
		return string(n.Data) == "true", nil
	case unstable.Integer:
		return strconv.ParseInt(string(n.Data), 0, 64)
	case unstable.Float:
		return parseTOMLFloat(string(n.Data))
	case unstable.DateTime:
		s := strings.ToUpper(strings.Replace(string(n.Data), " ", "T", 1))
		return time.Parse(time.RFC3339Nano, s)
	case unstable.LocalDate:
		var d toml.LocalDate
		err := d.UnmarshalText(n.Data)
		return d, err
	case unstable.LocalTime:
		var t toml.LocalTime
		err := t.UnmarshalText(n.Data)
		return t, err
	case unstable.LocalDateTime:
		var dt toml.LocalDateTime
		err := dt.UnmarshalText(n.Data)
		return dt, err
	case unstable.Array:
		out := []any{}
		it := n.Children()
		for it.Next() {
			v, err := tomlValue(it.Node())
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case unstable.InlineTable:
		m := NewInline()
		it := n.Children()
		for it.Next() {
			if err := setKeyValue(m, it.Node()); err != nil {
				return nil, err
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported TOML value kind %s", n.Kind)
	}
}

func parseTOMLFloat(s string) (float64, error) {
	switch strings.TrimLeft(s, "+-") {
	case "nan":
		return math.NaN(), nil
	case "inf":
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
}

// EncodeTOML renders m as TOML. Tables and arrays of tables keep their
// order and their header, inline or dotted form; every non-empty array of
// values is written one element per line.
func EncodeTOML(m *Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTable(&buf, nil, m, false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// needsHeader reports whether v is written under its own [table] or
// [[array]] header rather than as a key/value line.
func needsHeader(v any) bool {
	switch t := v.(type) {
	case *Map:
		return t.form == formTable
	case []any:
		if len(t) == 0 {
			return false
		}
		for _, item := range t {
			m, ok := item.(*Map)
			if !ok || m.form != formTable {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func writeTable(buf *bytes.Buffer, path []string, m *Map, arrayElem bool) error {
	var leading, plain, nested []string
	for _, k := range m.keys {
		if !needsHeader(m.values[k]) {
			plain = append(plain, k)
			continue
		}
		// Subtables placed before any key of a named table are written
		// ahead of its header to keep the key order.
		if len(path) > 0 && !arrayElem && len(plain) == 0 {
			leading = append(leading, k)
			continue
		}
		nested = append(nested, k)
	}
	if len(plain) == 0 {
		nested = append(leading, nested...)
		leading = nil
	}

	if err := writeSubtables(buf, path, m, leading); err != nil {
		return err
	}

	if len(path) > 0 && !arrayElem && (len(plain) > 0 || len(nested) == 0) {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "[%s]\n", formatKeyPath(path))
	}

	for _, k := range plain {
		lines, err := keyValueLines([]string{k}, m.values[k], true)
		if err != nil {
			return fmt.Errorf("%s: %w", formatKeyPath(append(path, k)), err)
		}
		for _, line := range lines {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}

	return writeSubtables(buf, path, m, nested)
}

func writeSubtables(buf *bytes.Buffer, path []string, m *Map, keys []string) error {
	for _, k := range keys {
		sub := append(append([]string{}, path...), k)
		switch t := m.values[k].(type) {
		case *Map:
			if err := writeTable(buf, sub, t, false); err != nil {
				return err
			}
		case []any:
			for _, item := range t {
				if buf.Len() > 0 {
					buf.WriteByte('\n')
				}
				fmt.Fprintf(buf, "[[%s]]\n", formatKeyPath(sub))
				if err := writeTable(buf, sub, item.(*Map), true); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// keyValueLines renders key = value pairs for v. A dotted table expands to
// one line per leaf key.
func keyValueLines(key []string, v any, multiline bool) ([]string, error) {
	if sub, ok := v.(*Map); ok && sub.form == formDotted && sub.Len() > 0 {
		var lines []string
		for _, k := range sub.keys {
			more, err := keyValueLines(append(append([]string{}, key...), k), sub.values[k], multiline)
			if err != nil {
				return nil, err
			}
			lines = append(lines, more...)
		}
		return lines, nil
	}

	s, err := formatValue(v, multiline)
	if err != nil {
		return nil, err
	}
	return []string{formatKeyPath(key) + " = " + s}, nil
}

func formatKeyPath(path []string) string {
	parts := make([]string, len(path))
	for i, k := range path {
		parts[i] = formatKey(k)
	}
	return strings.Join(parts, ".")
}

func formatKey(k string) string {
	if bareKeyPattern.MatchString(k) {
		return k
	}
	return quoteTOMLString(k)
}

func formatValue(v any, multiline bool) (string, error) {
	switch t := v.(type) {
	case string:
		return quoteTOMLString(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return formatTOMLFloat(t), nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case toml.LocalDate:
		return t.String(), nil
	case toml.LocalTime:
		return t.String(), nil
	case toml.LocalDateTime:
		return t.String(), nil
	case []any:
		return formatArray(t, multiline)
	case *Map:
		return formatInlineTable(t)
	case nil:
		return "", fmt.Errorf("TOML has no null value")
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func formatArray(items []any, multiline bool) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}

	parts := make([]string, len(items))
	for i, item := range items {
		s, err := formatValue(item, false)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}

	if !multiline {
		return "[" + strings.Join(parts, ", ") + "]", nil
	}

	var b strings.Builder
	b.WriteString("[\n")
	for _, p := range parts {
		b.WriteString(tomlArrayIndent)
		b.WriteString(p)
		b.WriteString(",\n")
	}
	b.WriteString("]")
	return b.String(), nil
}

func formatInlineTable(m *Map) (string, error) {
	if m.Len() == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, m.Len())
	for _, k := range m.keys {
		lines, err := keyValueLines([]string{k}, m.values[k], false)
		if err != nil {
			return "", fmt.Errorf("%s: %w", k, err)
		}
		parts = append(parts, lines...)
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

func formatTOMLFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func quoteTOMLString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
