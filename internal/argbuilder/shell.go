package argbuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ErrNotSimpleCommand is returned by SplitArgs for text that holds more than
// a plain list of words, such as pipes or command separators.
var ErrNotSimpleCommand = errors.New("extra arguments must be a plain list of words")

// Quote renders argv for display, quoting each token for a POSIX shell.
func Quote(argv []string) string {
	parts := make([]string, len(argv))
	for i, tok := range argv {
		q, err := syntax.Quote(tok, syntax.LangBash)
		if err != nil {
			// tokens bash cannot represent, such as those holding NUL
			q = strconv.Quote(tok)
		}
		parts[i] = q
	}
	return strings.Join(parts, " ")
}

// SplitArgs splits free text typed into an extra-arguments field into
// tokens using shell word rules. Quotes group words and $VAR is resolved
// through env; a nil env resolves every variable to "". No globbing is done,
// so patterns reach the tool unchanged.
func SplitArgs(text string, env func(string) string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(text), "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse extra arguments: %w", err)
	}
	if len(file.Stmts) != 1 {
		return nil, ErrNotSimpleCommand
	}
	stmt := file.Stmts[0]
	call, ok := stmt.Cmd.(*syntax.CallExpr)
	if !ok || stmt.Negated || stmt.Background || len(stmt.Redirs) > 0 || len(call.Assigns) > 0 {
		return nil, ErrNotSimpleCommand
	}

	if env == nil {
		env = func(string) string { return "" }
	}
	cfg := &expand.Config{Env: expand.FuncEnviron(env)}

	tokens := make([]string, 0, len(call.Args))
	for _, word := range call.Args {
		tok, err := expand.Literal(cfg, word)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", text, err)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
