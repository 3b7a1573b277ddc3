package task

import (
	"strconv"
	"strings"
)

// DifficultyProperty is the property carrying the difficulty metric.
const DifficultyProperty = "gamify_exp"

// DefaultDifficulty is the value threshold filters assume when the metric is missing.
const DefaultDifficulty = 10

// Difficulty categories.
const (
	CategorySimple  = "simple"
	CategoryRegular = "regular"
	CategoryHard    = "hard"
)

// Difficulty returns the parsed difficulty metric of v.
// Accepts a plain integer or a "(X Y)" pair, of which X is used.
func Difficulty(v View) (int, bool) {
	raw, ok := v.Property(DifficultyProperty)
	if !ok {
		return 0, false
	}

	return ParseDifficulty(raw)
}

// ParseDifficulty parses a difficulty property value.
func ParseDifficulty(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)

	if inner, ok := strings.CutPrefix(raw, "("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return 0, false
		}

		fields := strings.Fields(inner)
		if len(fields) != 2 {
			return 0, false
		}

		raw = fields[0]
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}

// DifficultyOrDefault returns the metric, or DefaultDifficulty when missing.
func DifficultyOrDefault(v View) int {
	if n, ok := Difficulty(v); ok {
		return n
	}

	return DefaultDifficulty
}

// Category buckets the difficulty metric. Missing metrics are "regular".
func Category(v View) string {
	n, ok := Difficulty(v)

	switch {
	case !ok:
		return CategoryRegular
	case n < 10:
		return CategorySimple
	case n < 20:
		return CategoryRegular
	default:
		return CategoryHard
	}
}
