package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/retroenv/retrogolib/set"
)

// Recognized quirk configuration keys.
const (
	// QuirkOriginalShiftBehavior makes 8xy6 and 8xyE copy Vy into Vx before shifting.
	QuirkOriginalShiftBehavior = "originalShiftBehavior"

	// QuirkIncrementIndex makes Fx55 and Fx65 advance I once per register processed.
	QuirkIncrementIndex = "incrementIndex"
)

var quirkKeys = newQuirkKeys()

func newQuirkKeys() set.Set[string] {
	keys := set.New[string]()
	keys.Add(QuirkOriginalShiftBehavior)
	keys.Add(QuirkIncrementIndex)
	return keys
}

// Quirks controls the historically divergent opcode behaviors.
// It is fixed for the lifetime of an engine.
type Quirks struct {
	OriginalShiftBehavior bool
	IncrementIndex        bool
}

// QuirkKeys returns the recognized quirk configuration keys in sorted order.
func QuirkKeys() []string {
	return []string{QuirkIncrementIndex, QuirkOriginalShiftBehavior}
}

// QuirksFromMap converts a quirk configuration mapping into Quirks.
// Unrecognized keys are rejected with an error wrapping ErrInvalidQuirkKey,
// a nil or empty mapping disables all quirks.
func QuirksFromMap(m map[string]bool) (Quirks, error) {
	var invalid []string
	for key := range m {
		if !quirkKeys.Contains(key) {
			invalid = append(invalid, key)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return Quirks{}, fmt.Errorf("%w: %v", ErrInvalidQuirkKey, invalid)
	}

	return Quirks{
		OriginalShiftBehavior: m[QuirkOriginalShiftBehavior],
		IncrementIndex:        m[QuirkIncrementIndex],
	}, nil
}

// Map returns the quirk configuration as mapping of key to enabled state.
func (q Quirks) Map() map[string]bool {
	return map[string]bool{
		QuirkOriginalShiftBehavior: q.OriginalShiftBehavior,
		QuirkIncrementIndex:        q.IncrementIndex,
	}
}

// String returns the quirk settings as comma separated key=value list.
func (q Quirks) String() string {
	m := q.Map()
	entries := make([]string, 0, len(m))
	for _, key := range QuirkKeys() {
		entries = append(entries, fmt.Sprintf("%s=%t", key, m[key]))
	}
	return strings.Join(entries, ",")
}
