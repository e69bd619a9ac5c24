package commit

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/maderarasto/cordova-jsx/internal/errors"
	"github.com/maderarasto/cordova-jsx/pkg/shadow"
	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// ChangeType classifies a property change.
type ChangeType uint8

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeRemove
)

// String returns the string representation of the ChangeType.
func (c ChangeType) String() string {
	switch c {
	case ChangeAdd:
		return "Add"
	case ChangeUpdate:
		return "Update"
	case ChangeRemove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// PropChange is one entry of a property diff.
type PropChange struct {
	Type ChangeType
	Name string
	Old  any
	New  any
}

// DiffProps compares two property sets. A nil value counts as absent.
// Changes are ordered by property name.
func DiffProps(oldProps, newProps vdom.Props) []PropChange {
	var changes []PropChange
	for name, nv := range newProps {
		if nv == nil {
			continue
		}
		ov := oldProps[name]
		switch {
		case ov == nil:
			changes = append(changes, PropChange{Type: ChangeAdd, Name: name, New: nv})
		case !shadow.SameValue(ov, nv):
			changes = append(changes, PropChange{Type: ChangeUpdate, Name: name, Old: ov, New: nv})
		}
	}
	for name, ov := range oldProps {
		if ov != nil && newProps[name] == nil {
			changes = append(changes, PropChange{Type: ChangeRemove, Name: name, Old: ov})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Name < changes[j].Name
	})
	return changes
}

// ResolveClass renders a class value: a string as is, a map[string]bool as
// the sorted names mapped to true, a []string with empty and duplicate
// tokens dropped.
func ResolveClass(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]bool:
		names := make([]string, 0, len(t))
		for name, on := range t {
			if on {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		return strings.Join(names, " ")
	case map[string]any:
		names := make([]string, 0, len(t))
		for name, on := range t {
			if b, ok := on.(bool); ok && b {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		return strings.Join(names, " ")
	case []string:
		return strings.Join(dedupe(t), " ")
	case []any:
		tokens := make([]string, len(t))
		for i, token := range t {
			tokens[i] = fmt.Sprint(token)
		}
		return strings.Join(dedupe(tokens), " ")
	default:
		return fmt.Sprint(v)
	}
}

func dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0:0]
	for _, t := range tokens {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// ResolveStyle renders a style value: a string as is, a map as
// "kebab-key: value" pairs sorted by key and joined with "; ". Lists are
// rejected with E205.
func ResolveStyle(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[k] = v
		}
		return styleOf(m), nil
	case map[string]any:
		return styleOf(t), nil
	case []any, []string:
		return "", errors.New("E205")
	default:
		return fmt.Sprint(v), nil
	}
}

func styleOf(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = kebab(k) + ": " + fmt.Sprint(m[k])
	}
	return strings.Join(pairs, "; ")
}

// kebab converts a camelCase key, e.g. "backgroundColor", to kebab-case.
func kebab(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
