package inmem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/raddaran/paper"
)

func TestInMemPaperRepository(t *testing.T) {
	repo := NewPaperRepository()
	paper.TestRepository(t, repo)
}

func TestInMemPaperRepository_DateAdded(t *testing.T) {
	now := time.Date(2024, 2, 25, 18, 30, 0, 0, time.UTC)
	repo := NewPaperRepository(WithClock(func() time.Time { return now }))

	older, err := repo.Insert(paper.Draft{Title: "Older", Author: "A", Category: paper.CategoryPhysics})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-25", older.DateAdded.String())

	now = now.Add(24 * time.Hour)
	newer, err := repo.Insert(paper.Draft{Title: "Newer", Author: "A", Category: paper.CategoryPhysics})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-26", newer.DateAdded.String())

	title := "Renamed"
	updated, err := repo.Update(older.ID, paper.Fields{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, older.DateAdded, updated.DateAdded, "date should be immutable")

	papers, err := repo.List()
	require.NoError(t, err)
	sorted := paper.Sort(papers, paper.SortByDateAdded)
	require.Len(t, sorted, 2)
	assert.Equal(t, newer.ID, sorted[0].ID)
	assert.Equal(t, older.ID, sorted[1].ID)
}

func TestInMemPaperRepository_Len(t *testing.T) {
	repo := NewPaperRepository()
	assert.Equal(t, 0, repo.Len())

	p, err := repo.Insert(paper.Draft{Title: "T", Author: "A", Category: paper.CategoryEngineering})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Len())

	_, err = repo.Insert(paper.Draft{Author: "A", Category: paper.CategoryEngineering})
	assert.Error(t, err)
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Delete(p.ID))
	assert.Equal(t, 0, repo.Len())
}
