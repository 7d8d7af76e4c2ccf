package inmem

import (
	"sync"
	"time"

	"github.com/bobinette/raddaran/paper"
)

// PaperRepository keeps the papers of a session in memory, in insertion
// order. It implements paper.Repository.
type PaperRepository struct {
	mu     sync.Locker
	papers []paper.Paper
	maxID  int

	now func() time.Time
}

type Option func(*PaperRepository)

// WithClock sets the function used to date inserted papers.
func WithClock(now func() time.Time) Option {
	return func(r *PaperRepository) {
		r.now = now
	}
}

func NewPaperRepository(opts ...Option) *PaperRepository {
	r := &PaperRepository{
		mu:     &sync.Mutex{},
		papers: make([]paper.Paper, 0),
		maxID:  0,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PaperRepository) Insert(draft paper.Draft) (paper.Paper, error) {
	if err := draft.Validate(); err != nil {
		return paper.Paper{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := draft.Paper()
	r.maxID++
	p.ID = r.maxID
	p.DateAdded = paper.Day(r.now())

	r.papers = append(r.papers, p)
	return p.Clone(), nil
}

func (r *PaperRepository) Get(id int) (paper.Paper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i == -1 {
		return paper.Paper{}, paper.ErrNotFound(id)
	}
	return r.papers[i].Clone(), nil
}

func (r *PaperRepository) List() ([]paper.Paper, error) {
	return r.Search("")
}

func (r *PaperRepository) Search(term string) ([]paper.Paper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	papers := paper.Search(r.papers, term)
	for i, p := range papers {
		papers[i] = p.Clone()
	}
	return papers, nil
}

func (r *PaperRepository) Update(id int, fields paper.Fields) (paper.Paper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i == -1 {
		return paper.Paper{}, paper.ErrNotFound(id)
	}

	p, err := fields.Apply(r.papers[i])
	if err != nil {
		return paper.Paper{}, err
	}

	r.papers[i] = p
	return p.Clone(), nil
}

func (r *PaperRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i == -1 {
		return paper.ErrNotFound(id)
	}

	r.papers = append(r.papers[:i], r.papers[i+1:]...)
	return nil
}

// Len returns the number of papers in the repository.
func (r *PaperRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.papers)
}

func (r *PaperRepository) index(id int) int {
	for i, p := range r.papers {
		if p.ID == id {
			return i
		}
	}
	return -1
}
