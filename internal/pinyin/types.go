// internal/pinyin/types.go
//
// Core type definitions for the pinyin catalog.
// Defines:
//   - Category: the closed set of token kinds (initial / final / whole-syllable).
//   - Entry: a single selectable token (display form + asset key).
//   - Group: an ordered, titled bundle of entries sharing a category.

package pinyin

// Category tags every entry with exactly one of three kinds.
// Values double as the stable group keys.
type Category string

const (
	CategoryInitial       Category = "initial"
	CategoryFinal         Category = "final"
	CategoryWholeSyllable Category = "whole-syllable"
)

// Categories lists the categories in catalog order.
var Categories = []Category{CategoryInitial, CategoryFinal, CategoryWholeSyllable}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryInitial, CategoryFinal, CategoryWholeSyllable:
		return true
	}
	return false
}

// Title returns the fixed Chinese label shown for the category.
func (c Category) Title() string {
	switch c {
	case CategoryInitial:
		return "声母"
	case CategoryFinal:
		return "韵母"
	case CategoryWholeSyllable:
		return "整体认读音节"
	}
	return ""
}

// Pinyin returns the romanised name of the category
// (shengmu / yunmu / zhengti).
func (c Category) Pinyin() string {
	switch c {
	case CategoryInitial:
		return "shengmu"
	case CategoryFinal:
		return "yunmu"
	case CategoryWholeSyllable:
		return "zhengti"
	}
	return ""
}

// Entry is the atomic unit of the catalog.
type Entry struct {
	Display  string   `json:"display" yaml:"display"`   // glyphs shown in the UI, may contain ü
	FileKey  string   `json:"fileKey" yaml:"fileKey"`   // ASCII-safe asset key, unique catalog-wide
	Category Category `json:"category" yaml:"category"` // owning group's key

	// Reading is Han text a Mandarin voice pronounces as this sound, used
	// to synthesise the entry's audio. Optional outside the built-in tables.
	Reading string `json:"reading,omitempty" yaml:"reading,omitempty"`
}

// Group is a titled, ordered bundle of entries of one category.
type Group struct {
	Title   string   `json:"title" yaml:"title"`
	Key     Category `json:"key" yaml:"key"`
	Entries []Entry  `json:"pinyins" yaml:"pinyins"`
}
