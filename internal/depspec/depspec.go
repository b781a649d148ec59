// Package depspec converts between the persisted dependencies sequence of
// ouroboros.yml and the three lists shown in the environment form.
package depspec

import (
	"strings"

	"github.com/ouroboros-dev/ouroboros/internal/models"
)

// Split is the form-side view of a dependencies sequence.
type Split struct {
	// Python is the version from the first python= entry; blank when absent
	Python string
	Conda  []string
	Pip    []string
}

// FromPersisted splits entries into the Python version, the conda specs and
// the pip packages. Only the first python= entry sets the version; later ones
// are dropped. Conda specs keep their order.
func FromPersisted(entries []models.DependencyEntry) Split {
	out := Split{Conda: []string{}, Pip: []string{}}
	found := false

	for _, entry := range entries {
		if entry.IsPip() {
			out.Pip = append(out.Pip, entry.PipPackages()...)
			continue
		}

		spec := entry.Spec()
		if version, ok := strings.CutPrefix(spec, models.PythonPrefix); ok {
			if !found {
				out.Python = version
				found = true
			}
			continue
		}
		out.Conda = append(out.Conda, spec)
	}

	return out
}

// ToPersisted builds the dependencies sequence: the python= entry first, then
// the conda specs, then a pip group only when there are pip packages.
func ToPersisted(python string, conda, pip []string) []models.DependencyEntry {
	entries := make([]models.DependencyEntry, 0, len(conda)+2)
	entries = append(entries, models.SpecEntry(models.PythonPrefix+python))

	for _, spec := range conda {
		entries = append(entries, models.SpecEntry(spec))
	}

	if len(pip) > 0 {
		entries = append(entries, models.PipEntry(pip))
	}

	return entries
}

// ToPersisted is the inverse of FromPersisted.
func (s Split) ToPersisted() []models.DependencyEntry {
	return ToPersisted(s.Python, s.Conda, s.Pip)
}
