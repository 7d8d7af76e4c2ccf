package mock

import (
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/raddaran/paper"
)

func TestPaperIndex(t *testing.T) {
	index := &PaperIndex{}

	papers := []paper.Paper{
		{ID: 1, Category: paper.CategoryComputerScience},
		{ID: 2, Category: paper.CategoryPhysics, Template: paper.TemplateResearch},
		{ID: 3, Category: paper.CategoryComputerScience, Template: paper.TemplateResearch},
	}
	for _, p := range papers {
		require.NoError(t, index.Index(p))
	}

	facets, err := index.Facets(1, 2, 3, 42)
	require.NoError(t, err)
	assert.Equal(t, paper.Facets{
		Categories: []paper.FacetCount{{Term: "Computer Science", Count: 2}, {Term: "Physics", Count: 1}},
		Templates:  []paper.FacetCount{{Term: "research", Count: 2}},
	}, facets)

	require.NoError(t, index.Delete(3))
	assert.Equal(t, 2, index.Len())

	index.Err = goerrors.New("down")
	assert.Error(t, index.Index(paper.Paper{ID: 4}))
	assert.Error(t, index.Delete(1))
	_, err = index.Facets(1)
	assert.Error(t, err)
	assert.Equal(t, 2, index.Len())
}
