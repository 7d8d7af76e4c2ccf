package bleve

import (
	"sort"
	"strconv"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search"
	"github.com/blevesearch/bleve/search/query"

	"github.com/bobinette/raddaran/paper"
)

const (
	categoryField = "category"
	templateField = "template"
)

// PaperIndex is a memory-only bleve index over the papers of a session. It
// answers the facets of a listing. It implements paper.Index.
type PaperIndex struct {
	index bleve.Index
}

func NewPaperIndex() (*PaperIndex, error) {
	index, err := bleve.NewMemOnly(createMapping())
	if err != nil {
		return nil, err
	}

	return &PaperIndex{index: index}, nil
}

func createMapping() mapping.IndexMapping {
	keywordMapping := bleve.NewTextFieldMapping()
	keywordMapping.Analyzer = keyword.Name

	paperMapping := bleve.NewDocumentMapping()
	paperMapping.AddFieldMappingsAt(categoryField, keywordMapping)
	paperMapping.AddFieldMappingsAt(templateField, keywordMapping)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = paperMapping
	return m
}

func (s *PaperIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

func (s *PaperIndex) Index(p paper.Paper) error {
	data := map[string]interface{}{
		categoryField: string(p.Category),
	}
	if p.Template != "" {
		data[templateField] = string(p.Template)
	}

	return s.index.Index(strconv.Itoa(p.ID), data)
}

func (s *PaperIndex) Delete(id int) error {
	return s.index.Delete(strconv.Itoa(id))
}

// Facets counts the papers per category and per template among ids.
func (s *PaperIndex) Facets(ids ...int) (paper.Facets, error) {
	facets := paper.Facets{
		Categories: make([]paper.FacetCount, 0),
		Templates:  make([]paper.FacetCount, 0),
	}
	if len(ids) == 0 {
		return facets, nil
	}

	docIDs := make([]string, len(ids))
	for i, id := range ids {
		docIDs[i] = strconv.Itoa(id)
	}

	req := bleve.NewSearchRequest(query.NewDocIDQuery(docIDs))
	req.Size = 0
	req.AddFacet(categoryField, bleve.NewFacetRequest(categoryField, len(paper.Categories())))
	req.AddFacet(templateField, bleve.NewFacetRequest(templateField, len(paper.Templates())))

	res, err := s.index.Search(req)
	if err != nil {
		return paper.Facets{}, err
	}

	if f, ok := res.Facets[categoryField]; ok {
		facets.Categories = counts(f.Terms)
	}
	if f, ok := res.Facets[templateField]; ok {
		facets.Templates = counts(f.Terms)
	}
	return facets, nil
}

// counts orders term facets by count, most frequent first, then by term.
func counts(terms search.TermFacets) []paper.FacetCount {
	res := make([]paper.FacetCount, 0, len(terms))
	for _, term := range terms {
		res = append(res, paper.FacetCount{Term: term.Term, Count: term.Count})
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Term < res[j].Term
	})
	return res
}
