package pinyin

import (
	"slices"
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Syllable is one Han character split into catalog entries.
// Either Whole is set, or Initial and/or Final are; parts that have no
// catalog entry are left nil.
type Syllable struct {
	Hanzi   string `json:"hanzi"`
	Pinyin  string `json:"pinyin"`
	Whole   *Entry `json:"whole,omitempty"`
	Initial *Entry `json:"initial,omitempty"`
	Final   *Entry `json:"final,omitempty"`
}

// Decomposer maps Chinese text to catalog entries.
type Decomposer struct {
	cat      *Catalog
	args     gopinyin.Args
	initials []Entry // longest display first, so zh wins over z
}

// NewDecomposer creates a decomposer backed by cat.
func NewDecomposer(cat *Catalog) *Decomposer {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Normal // toneless: hǎo -> hao
	args.Heteronym = false       // first reading only

	initials := cat.Category(CategoryInitial)
	slices.SortStableFunc(initials, func(a, b Entry) int {
		return len(b.Display) - len(a.Display)
	})
	return &Decomposer{cat: cat, args: args, initials: initials}
}

// Decompose returns one Syllable per Han character in text.
// Other runes (Latin letters, punctuation, spaces) are skipped.
func (d *Decomposer) Decompose(text string) []Syllable {
	var out []Syllable
	for _, r := range text {
		if !unicode.Is(unicode.Han, r) {
			continue
		}
		readings := gopinyin.Pinyin(string(r), d.args)
		if len(readings) == 0 || len(readings[0]) == 0 {
			continue
		}
		s := d.Split(readings[0][0])
		s.Hanzi = string(r)
		out = append(out, s)
	}
	return out
}

// Split maps a toneless syllable (e.g. "zhong", "nv", "nü") onto the catalog.
func (d *Decomposer) Split(syllable string) Syllable {
	syl := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(syllable)), "v", "ü")
	s := Syllable{Pinyin: syl}

	if e, ok := d.cat.FindDisplay(CategoryWholeSyllable, syl); ok {
		s.Whole = &e
		return s
	}

	rest := syl
	for _, ini := range d.initials {
		if strings.HasPrefix(syl, ini.Display) && len(syl) > len(ini.Display) {
			e := ini
			s.Initial = &e
			rest = syl[len(ini.Display):]
			break
		}
	}

	// j, q and x drop the umlaut in writing: ju is jü.
	if s.Initial != nil && strings.HasPrefix(rest, "u") {
		switch s.Initial.Display {
		case "j", "q", "x":
			rest = "ü" + rest[1:]
		}
	}

	if e, ok := d.cat.FindDisplay(CategoryFinal, rest); ok {
		s.Final = &e
	}
	return s
}
