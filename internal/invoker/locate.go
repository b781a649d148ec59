package invoker

import (
	"path/filepath"

	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
)

// InterpreterCandidates lists where an environment keeps its Python
// interpreter on goos, most likely first.
func InterpreterCandidates(goos, envDir string) []string {
	if goos == "windows" {
		return []string{
			filepath.Join(envDir, "python.exe"),
			filepath.Join(envDir, "Scripts", "python.exe"),
		}
	}
	return []string{
		filepath.Join(envDir, "bin", "python"),
		filepath.Join(envDir, "bin", "python3"),
		filepath.Join(envDir, "python"),
	}
}

// Locate returns the first candidate that exists.
func Locate(fs filesystem.FileSystem, tool string, candidates []string) (string, error) {
	for _, c := range candidates {
		if fs.Exists(c) {
			return c, nil
		}
	}
	return "", &ToolNotFoundError{Tool: tool, Candidates: candidates}
}

// Interpreter finds the Python interpreter of the environment directory
// envDir, which is resolved against the working directory of fs.
func Interpreter(fs filesystem.FileSystem, goos, envDir string) (string, error) {
	if !filepath.IsAbs(envDir) {
		cwd, err := fs.Getwd()
		if err != nil {
			return "", err
		}
		envDir = filepath.Join(cwd, envDir)
	}
	return Locate(fs, "python interpreter", InterpreterCandidates(goos, envDir))
}
