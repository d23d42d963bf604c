// Package recent keeps a ranked history of played sources for shell completion.
package recent

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/melodeck/melodeck/filesystem"
	"github.com/melodeck/melodeck/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank   int    `json:"rank"`
	Source string `json:"source"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Recent(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Remember records a played source or increments its rank by weight.
func Remember(source string, weight int) error {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil
	}

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if r, ok := cached[source]; ok {
		r.Rank += weight
	} else {
		cached[source] = &record{Rank: weight, Source: source}
	}

	return cacher.Set(cached)
}

// Suggest returns the best ranked source matching the partial input.
func Suggest(q string) mo.Option[string] {
	return mo.TupleToOption(lo.First(SuggestMany(q)))
}

// SuggestMany returns every remembered source fuzzily matching q, highest rank first.
// Matching ignores case.
func SuggestMany(q string) []string {
	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return []string{}
	}

	q = strings.TrimSpace(q)
	records := lo.Filter(lo.Values(cached), func(r *record, _ int) bool {
		return fuzzy.MatchFold(q, r.Source)
	})

	slices.SortFunc(records, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Source, b.Source)
	})

	return lo.Map(records, func(r *record, _ int) string {
		return r.Source
	})
}

// Clear forgets every source.
func Clear() error {
	return cacher.Set(make(map[string]*record))
}
