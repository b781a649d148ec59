// Package document holds the ordered, format-neutral tree that ouroboros.yml
// and pyproject.toml are decoded into.
//
// Values inside a Map are one of: nil, string, bool, int64, float64,
// time.Time, the go-toml local date/time types, []any, or *Map. Key order is
// insertion order and survives a decode/encode round-trip in both formats.
package document
