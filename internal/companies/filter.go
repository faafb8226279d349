package companies

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders accepted by FilterAndSort.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortNameAsc  = "name_asc"
	SortNameDesc = "name_desc"
)

// Filter describes the admin directory view: free-text search over
// name/email/city, exact status and industry matches, and a sort order.
type Filter struct {
	Search   string
	Status   string
	Industry string
	SortBy   string
}

// FilterAndSort returns the companies matching the filter, ordered per
// SortBy. Name ordering is locale-aware (Spanish collation, accent and case
// insensitive). The input slice is never mutated.
func FilterAndSort(companies []*Company, f Filter) []*Company {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]*Company, 0, len(companies))
	for _, c := range companies {
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Industry != "" && c.Industry != f.Industry {
			continue
		}
		out = append(out, c)
	}

	switch f.SortBy {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortNameAsc, SortNameDesc:
		coll := collate.New(language.Spanish, collate.Loose)
		asc := f.SortBy == SortNameAsc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := coll.CompareString(out[i].Name, out[j].Name)
			if asc {
				return cmp < 0
			}
			return cmp > 0
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func matchesSearch(c *Company, search string) bool {
	return strings.Contains(strings.ToLower(c.Name), search) ||
		strings.Contains(strings.ToLower(c.ContactEmail), search) ||
		strings.Contains(strings.ToLower(c.City), search)
}
