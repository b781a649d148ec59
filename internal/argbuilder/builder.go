// Package argbuilder turns structured option sets into argv token lists.
//
// A Grammar describes one tool's flag syntax as four ordered tables. Build
// walks them in a fixed order: fixed fields, switches, choices, then
// repeatable lists. Tokens are never joined into a shell string here; see
// Quote for display.
package argbuilder

import (
	"fmt"
	"strings"
)

// FixedField emits Prefix+value when the trimmed value is non-empty. An empty
// Prefix makes the value positional.
type FixedField struct {
	Field  string
	Prefix string
}

// Switch emits Flag when the field is true. False is represented by
// omission only.
type Switch struct {
	Field string
	Flag  string
}

// Choice maps the selected label to a single token. A label mapped to ""
// is known but emits nothing.
type Choice struct {
	Field  string
	Tokens map[string]string
}

// ListField emits Prefix+item for every non-empty trimmed item, in order.
type ListField struct {
	Field  string
	Prefix string
}

// Grammar is the flag table of one tool.
type Grammar struct {
	Name     string
	Fixed    []FixedField
	Switches []Switch
	Choices  []Choice
	Lists    []ListField
}

// Values is an option set. Fields missing from a map read as empty, false
// or unset.
type Values struct {
	Strings map[string]string
	Bools   map[string]bool
	Choices map[string]string
	Lists   map[string][]string
}

// ValidationWarning reports a choice label that no table entry matches.
// Nothing is emitted for it.
type ValidationWarning struct {
	Grammar string
	Field   string
	Label   string
}

func (w ValidationWarning) Error() string {
	return fmt.Sprintf("%s: unknown %s %q ignored", w.Grammar, w.Field, w.Label)
}

// Build returns the tokens for v. The result never contains empty tokens.
func (g Grammar) Build(v Values) ([]string, []ValidationWarning) {
	var (
		tokens   []string
		warnings []ValidationWarning
	)

	for _, f := range g.Fixed {
		if value := strings.TrimSpace(v.Strings[f.Field]); value != "" {
			tokens = append(tokens, f.Prefix+value)
		}
	}

	for _, s := range g.Switches {
		if v.Bools[s.Field] {
			tokens = append(tokens, s.Flag)
		}
	}

	for _, c := range g.Choices {
		label := strings.TrimSpace(v.Choices[c.Field])
		if label == "" {
			continue
		}
		token, ok := c.Tokens[label]
		if !ok {
			warnings = append(warnings, ValidationWarning{Grammar: g.Name, Field: c.Field, Label: label})
			continue
		}
		if token != "" {
			tokens = append(tokens, token)
		}
	}

	for _, l := range g.Lists {
		for _, item := range v.Lists[l.Field] {
			if item = strings.TrimSpace(item); item != "" {
				tokens = append(tokens, l.Prefix+item)
			}
		}
	}

	if tokens == nil {
		tokens = []string{}
	}
	return tokens, warnings
}
