package skills

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed synonyms.yaml
var defaultSynonymsYAML []byte

// SynonymTable maps canonical skills to alternate spellings. Keys and
// alternates are stored normalized, so lookups take normalized input.
type SynonymTable struct {
	alternates map[string]map[string]struct{}
	canonicals map[string][]string
}

// NewSynonymTable builds a table from canonical -> alternates entries.
func NewSynonymTable(entries map[string][]string) *SynonymTable {
	t := &SynonymTable{
		alternates: make(map[string]map[string]struct{}),
		canonicals: make(map[string][]string),
	}
	t.Merge(entries)
	return t
}

// DefaultSynonymTable returns a fresh copy of the built-in vocabulary.
func DefaultSynonymTable() *SynonymTable {
	entries, err := parseSynonyms(defaultSynonymsYAML)
	if err != nil {
		panic(fmt.Sprintf("skills: embedded synonym table is invalid: %v", err))
	}
	return NewSynonymTable(entries)
}

// LoadSynonymTable returns the built-in vocabulary extended with the entries
// in the YAML file at path. An empty path yields the built-in table.
func LoadSynonymTable(path string) (*SynonymTable, error) {
	t := DefaultSynonymTable()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonym file %s: %w", path, err)
	}
	entries, err := parseSynonyms(data)
	if err != nil {
		return nil, fmt.Errorf("parse synonym file %s: %w", path, err)
	}
	t.Merge(entries)
	return t, nil
}

func parseSynonyms(data []byte) (map[string][]string, error) {
	entries := map[string][]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Merge adds entries to the table. Alternates of an existing canonical skill
// are unioned with the new ones.
func (t *SynonymTable) Merge(entries map[string][]string) {
	for canonical, alts := range entries {
		key := Normalize(canonical)
		if key == "" {
			continue
		}
		set, ok := t.alternates[key]
		if !ok {
			set = make(map[string]struct{}, len(alts))
			t.alternates[key] = set
		}
		for _, alt := range alts {
			a := Normalize(alt)
			if a == "" {
				continue
			}
			if _, dup := set[a]; dup {
				continue
			}
			set[a] = struct{}{}
			t.canonicals[a] = insertSorted(t.canonicals[a], key)
		}
	}
}

// IsAlternate reports whether alt is a registered alternate of canonical.
func (t *SynonymTable) IsAlternate(canonical, alt string) bool {
	set, ok := t.alternates[canonical]
	if !ok {
		return false
	}
	_, hit := set[alt]
	return hit
}

// HasSynonyms reports whether canonical has a registered synonym set.
func (t *SynonymTable) HasSynonyms(canonical string) bool {
	_, ok := t.alternates[canonical]
	return ok
}

// CanonicalsOf lists the canonical skills that register alt as an alternate.
func (t *SynonymTable) CanonicalsOf(alt string) []string {
	return t.canonicals[alt]
}

// Len returns the number of canonical skills.
func (t *SynonymTable) Len() int {
	return len(t.alternates)
}

func insertSorted(list []string, v string) []string {
	i := sort.SearchStrings(list, v)
	if i < len(list) && list[i] == v {
		return list
	}
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = v
	return list
}
