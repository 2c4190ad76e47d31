// internal/pinyin/catalog.go
//
// The authoritative pinyin token set and its two views:
//   - Groups(): one titled group per category, in catalog order.
//   - All():    every entry flattened (initials, finals, whole syllables).
//
// The built-in catalog is assembled once at package init from the literal
// tables below and never mutated afterwards. Accessors hand out copies so
// callers cannot write through to the shared value.
//
// The flat ordering is load-bearing: the game page indexes into it when
// picking and shuffling tokens.

package pinyin

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// Initials and whole-syllable readings are already ASCII, so display == fileKey.
var initialTokens = []string{
	"b", "p", "m", "f", "d", "t", "n", "l",
	"g", "k", "h", "j", "q", "x", "zh", "ch",
	"sh", "r", "z", "c", "s",
}

// Finals carry an explicit fileKey: ü is spelled v in asset names.
// Only the ü forms differ; there is no general rule.
var finalTokens = []Entry{
	{Display: "a", FileKey: "a"}, {Display: "o", FileKey: "o"}, {Display: "e", FileKey: "e"},
	{Display: "i", FileKey: "i"}, {Display: "u", FileKey: "u"}, {Display: "ü", FileKey: "v"},
	{Display: "ai", FileKey: "ai"}, {Display: "ei", FileKey: "ei"}, {Display: "ui", FileKey: "ui"},
	{Display: "ao", FileKey: "ao"}, {Display: "ou", FileKey: "ou"}, {Display: "iu", FileKey: "iu"},
	{Display: "ie", FileKey: "ie"}, {Display: "üe", FileKey: "ve"}, {Display: "er", FileKey: "er"},
	{Display: "an", FileKey: "an"}, {Display: "en", FileKey: "en"}, {Display: "in", FileKey: "in"},
	{Display: "un", FileKey: "un"}, {Display: "ün", FileKey: "vn"}, {Display: "ang", FileKey: "ang"},
	{Display: "eng", FileKey: "eng"}, {Display: "ing", FileKey: "ing"}, {Display: "ong", FileKey: "ong"},
}

var wholeSyllableTokens = []string{
	"yi", "wu", "yu", "ye", "yue", "yin", "yun",
	"yuan", "ying", "zi", "ci", "si", "zhi", "chi",
	"shi", "ri",
}

var defaultCatalog = mustCatalog(builtinGroups())

// builtinGroups wraps each literal table into its group, tagging every
// entry with the group's category and its reading.
func builtinGroups() []Group {
	return []Group{
		newGroup(CategoryInitial, plainEntries(initialTokens)),
		newGroup(CategoryFinal, finalTokens),
		newGroup(CategoryWholeSyllable, plainEntries(wholeSyllableTokens)),
	}
}

func plainEntries(tokens []string) []Entry {
	out := make([]Entry, len(tokens))
	for i, t := range tokens {
		out[i] = Entry{Display: t, FileKey: t}
	}
	return out
}

func newGroup(c Category, entries []Entry) Group {
	tagged := make([]Entry, len(entries))
	for i, e := range entries {
		e.Category = c
		e.Reading = readings[e.FileKey]
		tagged[i] = e
	}
	return Group{Title: c.Title(), Key: c, Entries: tagged}
}

func mustCatalog(groups []Group) *Catalog {
	c, err := NewCatalog(groups)
	if err != nil {
		panic("pinyin: built-in catalog: " + err.Error())
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog { return defaultCatalog }

// Groups returns the built-in grouped view.
func Groups() []Group { return defaultCatalog.Groups() }

// All returns the built-in flat view (61 entries).
func All() []Entry { return defaultCatalog.All() }

// Catalog is an immutable, validated set of groups plus its flattened view.
type Catalog struct {
	groups []Group
	flat   []Entry
	byKey  map[string]int // fileKey -> index into flat
}

// NewCatalog validates groups and builds a catalog from them.
// Groups are reordered into catalog order (initial, final, whole-syllable);
// entry order inside a group is kept. Displays are stored NFC-normalised.
// Validation failures wrap ErrMalformedCatalog.
func NewCatalog(groups []Group) (*Catalog, error) {
	if err := Validate(groups); err != nil {
		return nil, err
	}

	ordered := make([]Group, 0, len(groups))
	for _, g := range groups {
		entries := make([]Entry, len(g.Entries))
		for i, e := range g.Entries {
			e.Display = norm.NFC.String(e.Display)
			entries[i] = e
		}
		ordered = append(ordered, Group{Title: g.Title, Key: g.Key, Entries: entries})
	}
	slices.SortStableFunc(ordered, func(a, b Group) int {
		return categoryRank(a.Key) - categoryRank(b.Key)
	})

	c := &Catalog{groups: ordered, byKey: make(map[string]int)}
	for _, g := range ordered {
		for _, e := range g.Entries {
			c.byKey[e.FileKey] = len(c.flat)
			c.flat = append(c.flat, e)
		}
	}
	return c, nil
}

func categoryRank(c Category) int {
	return slices.Index(Categories, c)
}

// Groups returns a deep copy of the grouped view.
func (c *Catalog) Groups() []Group {
	out := make([]Group, len(c.groups))
	for i, g := range c.groups {
		out[i] = Group{Title: g.Title, Key: g.Key, Entries: slices.Clone(g.Entries)}
	}
	return out
}

// All returns a copy of the flat view.
func (c *Catalog) All() []Entry { return slices.Clone(c.flat) }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.flat) }

// Lookup finds an entry by its asset key.
func (c *Catalog) Lookup(fileKey string) (Entry, bool) {
	i, ok := c.byKey[fileKey]
	if !ok {
		return Entry{}, false
	}
	return c.flat[i], true
}

// FindDisplay finds an entry of the given category by display form.
// The query is NFC-normalised first, so a decomposed "ü" matches "ü".
func (c *Catalog) FindDisplay(cat Category, display string) (Entry, bool) {
	display = norm.NFC.String(display)
	for _, e := range c.flat {
		if e.Category == cat && e.Display == display {
			return e, true
		}
	}
	return Entry{}, false
}

// Category returns the entries of one category, in order.
func (c *Catalog) Category(cat Category) []Entry {
	var out []Entry
	for _, e := range c.flat {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}
