package invoker

import (
	"context"
	"fmt"

	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
)

// Capture runs cmd and writes its stdout to path. Nothing is written when the
// tool fails.
func Capture(ctx context.Context, r Runner, fs filesystem.FileSystem, cmd Command, path string) error {
	res, err := r.Run(ctx, cmd)
	if err != nil {
		return err
	}

	if err := filesystem.WriteFileAtomic(fs, path, []byte(res.Stdout), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
