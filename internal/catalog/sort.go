package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders catalog lists for display. The zero value collates with the
// root locale.
type Sorter struct {
	Locale language.Tag
}

// ByName returns a copy of entries ordered by name using locale-aware,
// case-sensitive collation. Equal names keep their relative order.
func (s Sorter) ByName(entries []Entry) []Entry {
	// collate.Collator is not safe for concurrent use, so build one per call.
	c := collate.New(s.Locale)
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return c.CompareString(a.Name, b.Name)
	})
	return out
}

// YearsDesc returns a copy of year entries ordered most recent first by the
// year at the start of each name. Entries with equal years keep their
// relative order; names without a leading year go last.
func YearsDesc(entries []Entry) []Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(yearKey(b.Name), yearKey(a.Name))
	})
	return out
}
