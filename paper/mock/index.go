package mock

import (
	"sort"
	"sync"

	"github.com/bobinette/raddaran/paper"
)

// PaperIndex is a map backed paper.Index. When Err is set, every call
// returns it and the index is left untouched.
type PaperIndex struct {
	Err error

	mu     sync.Mutex
	papers map[int]paper.Paper
}

func (i *PaperIndex) Index(p paper.Paper) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.Err != nil {
		return i.Err
	}

	if i.papers == nil {
		i.papers = make(map[int]paper.Paper)
	}
	i.papers[p.ID] = p
	return nil
}

func (i *PaperIndex) Delete(id int) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.Err != nil {
		return i.Err
	}

	delete(i.papers, id)
	return nil
}

func (i *PaperIndex) Facets(ids ...int) (paper.Facets, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.Err != nil {
		return paper.Facets{}, i.Err
	}

	categories := make(map[string]int)
	templates := make(map[string]int)
	for _, id := range ids {
		p, ok := i.papers[id]
		if !ok {
			continue
		}
		categories[string(p.Category)]++
		if p.Template != "" {
			templates[string(p.Template)]++
		}
	}

	return paper.Facets{
		Categories: counts(categories),
		Templates:  counts(templates),
	}, nil
}

// Len returns the number of indexed papers.
func (i *PaperIndex) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.papers)
}

func counts(m map[string]int) []paper.FacetCount {
	res := make([]paper.FacetCount, 0, len(m))
	for term, count := range m {
		res = append(res, paper.FacetCount{Term: term, Count: count})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Term < res[j].Term
	})
	return res
}
