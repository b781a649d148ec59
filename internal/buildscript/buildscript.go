// Package buildscript renders nuitka_build.py, a standalone Python script
// that repeats a Nuitka build without ouroboros.
package buildscript

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
)

// FileName is the script written next to the project file.
const FileName = "nuitka_build.py"

// CustomTemplatePath is looked up relative to the project root to replace
// the built-in template.
var CustomTemplatePath = filepath.Join(".ouroboros", "nuitka_build.tmpl")

const defaultTemplate = `# {{ .FileName }} generated by ouroboros
import subprocess
import sys
from pathlib import Path


def main() -> None:
    command = [
        sys.executable,
{{- range .Args }}
        {{ quote . }},
{{- end }}
    ]
    print("build command:", " ".join(command))
    try:
        result = subprocess.run(command, cwd=Path(__file__).parent)
    except FileNotFoundError:
        print("nuitka not found, install it with: pip install nuitka")
        sys.exit(1)
    sys.exit(result.returncode)


if __name__ == "__main__":
    main()
`

// Data is what the template sees.
type Data struct {
	FileName string

	// Args are the tokens after the interpreter, starting with "-m nuitka"
	Args []string
}

// Render returns the script for args. A template at CustomTemplatePath under
// root takes precedence over the built-in one.
func Render(fs filesystem.FileSystem, root string, args []string) (string, error) {
	tmpl, err := loadTemplate(fs, root)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, Data{FileName: FileName, Args: args}); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", FileName, err)
	}
	return buf.String(), nil
}

// Write renders the script and saves it under root. It returns the written
// path.
func Write(fs filesystem.FileSystem, root string, args []string) (string, error) {
	content, err := Render(fs, root, args)
	if err != nil {
		return "", err
	}

	path := filepath.Join(root, FileName)
	if err := filesystem.WriteFileAtomic(fs, path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func loadTemplate(fs filesystem.FileSystem, root string) (*template.Template, error) {
	text := defaultTemplate

	custom := filepath.Join(root, CustomTemplatePath)
	if fs.Exists(custom) {
		data, err := fs.ReadFile(custom)
		if err != nil {
			return nil, fmt.Errorf("failed to read build script template: %w", err)
		}
		text = string(data)
	}

	tmpl, err := template.New(FileName).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse build script template: %w", err)
	}
	return tmpl, nil
}
