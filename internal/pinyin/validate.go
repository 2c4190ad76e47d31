package pinyin

import (
	"errors"
	"fmt"
	"unicode"

	"go.uber.org/multierr"
	"golang.org/x/text/unicode/norm"
)

// ErrMalformedCatalog is wrapped by every validation failure.
var ErrMalformedCatalog = errors.New("malformed catalog")

// MalformedError describes one problem found while validating a catalog.
type MalformedError struct {
	Group   Category
	FileKey string
	Reason  string
}

func (e *MalformedError) Error() string {
	switch {
	case e.FileKey != "":
		return fmt.Sprintf("%s: group %q, entry %q: %s", ErrMalformedCatalog, e.Group, e.FileKey, e.Reason)
	case e.Group != "":
		return fmt.Sprintf("%s: group %q: %s", ErrMalformedCatalog, e.Group, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedCatalog, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformedCatalog }

// Validate checks groups loaded from outside the binary. It reports every
// problem it finds, combined with multierr; use multierr.Errors to split them.
func Validate(groups []Group) error {
	var err error
	add := func(g Category, key, format string, args ...any) {
		err = multierr.Append(err, &MalformedError{Group: g, FileKey: key, Reason: fmt.Sprintf(format, args...)})
	}

	total := 0
	seenGroup := make(map[Category]bool)
	seenKey := make(map[string]Category)
	for _, g := range groups {
		if !g.Key.Valid() {
			add(g.Key, "", "unknown category")
			continue
		}
		if seenGroup[g.Key] {
			add(g.Key, "", "duplicate group")
		}
		seenGroup[g.Key] = true
		if g.Title == "" {
			add(g.Key, "", "empty title")
		}

		seenDisplay := make(map[string]bool)
		for _, e := range g.Entries {
			total++
			if e.Category != g.Key {
				add(g.Key, e.FileKey, "category %q does not match group", e.Category)
			}
			if e.Display == "" {
				add(g.Key, e.FileKey, "empty display")
			}
			if e.FileKey == "" {
				add(g.Key, e.FileKey, "empty fileKey")
				continue
			}
			if !asciiKey(e.FileKey) {
				add(g.Key, e.FileKey, "fileKey is not ASCII-safe")
			}
			if prev, dup := seenKey[e.FileKey]; dup {
				add(g.Key, e.FileKey, "duplicate fileKey (also in %q)", prev)
			}
			seenKey[e.FileKey] = g.Key

			d := norm.NFC.String(e.Display)
			if d != "" && seenDisplay[d] {
				add(g.Key, e.FileKey, "duplicate display %q", d)
			}
			seenDisplay[d] = true

			if e.Reading != "" && !hanText(e.Reading) {
				add(g.Key, e.FileKey, "reading %q is not Han text", e.Reading)
			}
		}
	}
	if total == 0 {
		add("", "", "no entries")
	}
	return err
}

// hanText reports whether s consists of Han characters only.
func hanText(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return true
}

// asciiKey reports whether s only uses characters safe in file names and URLs.
func asciiKey(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-') {
			return false
		}
	}
	return true
}
