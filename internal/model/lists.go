package model

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
)

// CodeList is an ordered list of order codes stored as comma-joined text.
// Order and duplicates are preserved.
type CodeList []string

// Value implements driver.Valuer.
func (l CodeList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

// Scan implements sql.Scanner.
func (l *CodeList) Scan(src any) error {
	s, err := textFromDB(src)
	if err != nil {
		return err
	}
	*l = SplitList(s)
	return nil
}

// MaterialSet is a set of material names stored as comma-joined text.
// Entries are trimmed, de-duplicated and kept sorted so equal sets encode equally.
type MaterialSet []string

// NewMaterialSet normalizes the given names into a set.
func NewMaterialSet(names ...string) MaterialSet {
	seen := make(map[string]struct{}, len(names))
	set := make(MaterialSet, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		set = append(set, n)
	}
	sort.Strings(set)
	return set
}

// Contains reports whether any entry contains material, ignoring case, so a
// bit listed for "Zirconia HT" serves a "Zirconia" block.
func (s MaterialSet) Contains(material string) bool {
	material = strings.ToLower(strings.TrimSpace(material))
	if material == "" {
		return false
	}
	for _, m := range s {
		if strings.Contains(strings.ToLower(m), material) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold the same entries.
func (s MaterialSet) Equal(other MaterialSet) bool {
	a, b := NewMaterialSet(s...), NewMaterialSet(other...)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String returns the storage encoding.
func (s MaterialSet) String() string {
	return strings.Join(NewMaterialSet(s...), ",")
}

// Value implements driver.Valuer.
func (s MaterialSet) Value() (driver.Value, error) {
	return s.String(), nil
}

// Scan implements sql.Scanner.
func (s *MaterialSet) Scan(src any) error {
	str, err := textFromDB(src)
	if err != nil {
		return err
	}
	*s = NewMaterialSet(SplitList(str)...)
	return nil
}

// SplitList splits comma-separated text into trimmed, non-empty tokens.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func textFromDB(src any) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported list column type %T", src)
	}
}
