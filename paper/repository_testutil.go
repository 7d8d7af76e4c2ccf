package paper

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/raddaran/errors"
)

// TestRepository runs the behaviour every Repository implementation must
// share. repo must be empty.
func TestRepository(t *testing.T, repo Repository) {
	generated, err := Generate(TemplateResearch, "Neural Fields", "Ada Lovelace", CategoryComputerScience, map[string]string{
		"Abstract": "Fields of neurons",
	})
	require.NoError(t, err)

	drafts := []Draft{
		{
			Title:       "Introduction to Machine Learning",
			Author:      "John Doe",
			Category:    CategoryComputerScience,
			Description: "A comprehensive overview of NEURAL networks",
			FileName:    "intro_to_ml.pdf",
			FileData:    []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff},
		},
		generated,
		{
			Title:    "Quantum Gravity",
			Author:   "Emmy Noether",
			Category: CategoryPhysics,
		},
	}

	// Insert all the drafts
	papers := testInsertPapers(t, repo, drafts)

	// Get them back
	for _, p := range papers {
		testGetPaper(t, repo, p)
	}
	testGetMissingPaper(t, repo, papers[len(papers)-1].ID+100)

	// Invalid drafts never reach the store
	testInsertInvalid(t, repo, Draft{Author: "A", Category: CategoryPhysics}, "missing title")
	testInsertInvalid(t, repo, Draft{Title: "T", Category: CategoryPhysics}, "missing author")
	testInsertInvalid(t, repo, Draft{Title: "T", Author: "A"}, "missing category")
	testInsertInvalid(t, repo, Draft{Title: "T", Author: "A", Category: "Biology"}, "unknown category")
	testInsertInvalid(t, repo, Draft{
		Title:    "T",
		Author:   "A",
		Category: CategoryPhysics,
		FileData: []byte("data"),
		Template: TemplateReview,
	}, "file and template")
	testList(t, repo, papers, "list after invalid inserts")

	// Search
	testSearch(t, repo, "", papers, "empty term")
	testSearch(t, repo, "neural", papers[:2], "lower case")
	testSearch(t, repo, "NEURAL", papers[:2], "upper case")
	testSearch(t, repo, "noether", papers[2:], "author")
	testSearch(t, repo, "pizza", []Paper{}, "no match")

	// Returned papers do not share memory with the store
	testIsolation(t, repo, papers[0])

	// Update the title only
	title := "Machine Learning 101"
	expected := papers[0].Clone()
	expected.Title = title
	testUpdatePaper(t, repo, papers[0].ID, Fields{Title: &title}, expected)
	papers[0] = expected

	// Update every editable field of the generated paper
	author, category, description := "Charles Babbage", CategoryEngineering, "Engines"
	expected = papers[1].Clone()
	expected.Author, expected.Category, expected.Description = author, category, description
	testUpdatePaper(t, repo, papers[1].ID, Fields{Author: &author, Category: &category, Description: &description}, expected)
	papers[1] = expected

	// Invalid updates leave the paper untouched
	empty := ""
	_, err = repo.Update(papers[0].ID, Fields{Author: &empty})
	errors.AssertCode(t, err, http.StatusBadRequest)
	testGetPaper(t, repo, papers[0])

	_, err = repo.Update(papers[len(papers)-1].ID+100, Fields{Title: &title})
	errors.AssertCode(t, err, http.StatusNotFound)

	// Delete the last paper
	last := papers[len(papers)-1]
	require.NoError(t, repo.Delete(last.ID), "delete should not fail")
	testGetMissingPaper(t, repo, last.ID)
	errors.AssertCode(t, repo.Delete(last.ID), http.StatusNotFound)
	papers = papers[:len(papers)-1]
	testList(t, repo, papers, "list after delete")

	// Ids are never reused
	inserted := testInsertPapers(t, repo, []Draft{{Title: "Topology", Author: "Henri Poincare", Category: CategoryMathematics}})
	assert.True(t, inserted[0].ID > last.ID, "id %d should be greater than deleted id %d", inserted[0].ID, last.ID)
}

func testInsertPapers(t *testing.T, repo Repository, drafts []Draft) []Paper {
	before, err := repo.List()
	require.NoError(t, err, "list should not fail")

	maxID := 0
	for _, p := range before {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	papers := make([]Paper, len(drafts))
	for i, draft := range drafts {
		p, err := repo.Insert(draft)
		require.NoError(t, err, "insert %q should not fail", draft.Title)

		assert.True(t, p.ID > maxID, "id %d should be greater than %d", p.ID, maxID)
		assert.False(t, p.DateAdded.IsZero(), "date should be set")
		assert.Equal(t, draft.Title, p.Title)
		assert.Equal(t, draft.FileData, p.FileData)
		assert.Equal(t, draft.Sections, p.Sections)

		maxID = p.ID
		papers[i] = p
	}
	return papers
}

func testInsertInvalid(t *testing.T, repo Repository, draft Draft, name string) {
	_, err := repo.Insert(draft)
	errors.AssertCode(t, err, http.StatusBadRequest)
	assert.True(t, errors.IsValidation(err), name)
}

func testGetPaper(t *testing.T, repo Repository, expected Paper) {
	p, err := repo.Get(expected.ID)
	require.NoError(t, err, "get %d should not fail", expected.ID)
	assert.Equal(t, expected, p)
}

func testGetMissingPaper(t *testing.T, repo Repository, id int) {
	_, err := repo.Get(id)
	errors.AssertCode(t, err, http.StatusNotFound)
}

func testList(t *testing.T, repo Repository, expected []Paper, name string) {
	papers, err := repo.List()
	require.NoError(t, err, name)
	assert.Equal(t, expected, papers, name)
}

func testSearch(t *testing.T, repo Repository, term string, expected []Paper, name string) {
	papers, err := repo.Search(term)
	require.NoError(t, err, name)
	assert.Equal(t, expected, papers, name)
}

func testUpdatePaper(t *testing.T, repo Repository, id int, fields Fields, expected Paper) {
	p, err := repo.Update(id, fields)
	require.NoError(t, err, "update %d should not fail", id)
	assert.Equal(t, expected, p)
	testGetPaper(t, repo, expected)
}

func testIsolation(t *testing.T, repo Repository, p Paper) {
	retrieved, err := repo.Get(p.ID)
	require.NoError(t, err)

	retrieved.FileData[0] = 'X'
	retrieved.Title = "changed"
	testGetPaper(t, repo, p)
}
