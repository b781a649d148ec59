package invoker

import (
	"context"
	"fmt"
	"io"

	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
)

// DryRunner prints each command instead of running it.
type DryRunner struct {
	w io.Writer
}

var _ Runner = (*DryRunner)(nil)

// NewDryRunner creates a DryRunner writing to w
func NewDryRunner(w io.Writer) *DryRunner {
	return &DryRunner{w: w}
}

func (d *DryRunner) Run(_ context.Context, cmd Command) (Result, error) {
	if cmd.Dir != "" {
		fmt.Fprintf(d.w, "(cd %s) ", argbuilder.Quote([]string{cmd.Dir}))
	}
	fmt.Fprintln(d.w, argbuilder.Quote(cmd.Argv))
	return Result{}, nil
}
