package pkgerrtext

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed errors.yaml
var defaultTable []byte

const fallbackText = "Something went wrong."

//nolint:gochecknoglobals // immutable after first use
var loadDefault = sync.OnceValue(func() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("pkgerrtext: embedded table is invalid: %v", err))
	}
	return t
})

// Table resolves codes to display text. A Table is never mutated after it is
// built, so it is safe for concurrent use.
type Table struct {
	texts map[Code]string
}

// Default returns the embedded table. It is parsed on first use.
func Default() *Table {
	return loadDefault()
}

// Parse builds a table from a nested YAML document. Nested keys are joined
// with dots, so {USER: {PASSWORD: {MUST_MATCH: "..."}}} yields the code
// "USER.PASSWORD.MUST_MATCH".
func Parse(data []byte) (*Table, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse error table: %w", err)
	}

	texts := make(map[Code]string)
	if err := flatten("", raw, texts); err != nil {
		return nil, err
	}

	return &Table{texts: texts}, nil
}

// LoadFile reads an override file and merges it over the default table.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read error table: %w", err)
	}

	override, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return Default().Merge(override), nil
}

// Merge returns a new table holding t's entries overridden by other's.
func (t *Table) Merge(other *Table) *Table {
	texts := maps.Clone(t.texts)
	if other != nil {
		maps.Copy(texts, other.texts)
	}
	return &Table{texts: texts}
}

// Text returns the display text for code. Unknown codes resolve to the
// UNKNOWN entry so a raw code never reaches the user.
func (t *Table) Text(code Code) string {
	if text, ok := t.texts[code]; ok {
		return text
	}
	if text, ok := t.texts[CodeUnknown]; ok {
		return text
	}
	return fallbackText
}

// Has reports whether code has its own entry.
func (t *Table) Has(code Code) bool {
	_, ok := t.texts[code]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.texts)
}

func flatten(prefix string, node any, out map[Code]string) error {
	switch val := node.(type) {
	case map[string]any:
		for k, v := range val {
			if err := flatten(join(prefix, k), v, out); err != nil {
				return err
			}
		}
	case map[any]any:
		for k, v := range val {
			if err := flatten(join(prefix, fmt.Sprint(k)), v, out); err != nil {
				return err
			}
		}
	case string:
		if prefix == "" {
			return fmt.Errorf("error table: text %q has no key", val)
		}
		out[Code(prefix)] = plainText(val)
	case nil:
		return nil
	default:
		return fmt.Errorf("error table: unsupported value %T at %q", node, prefix)
	}

	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
