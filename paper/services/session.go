package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/bobinette/raddaran/log"
	"github.com/bobinette/raddaran/paper/bleve"
	"github.com/bobinette/raddaran/paper/inmem"
)

// Session scopes the papers of one user interaction. Everything it holds is
// discarded by Close.
type Session struct {
	ID        string
	StartedAt time.Time

	Papers    *PaperService
	Templates *TemplateService

	repository *inmem.PaperRepository
	index      *bleve.PaperIndex
	logger     log.Logger
}

type SessionConfig struct {
	ShareURL string

	// Clock dates inserted papers, time.Now if nil.
	Clock func() time.Time
}

func NewSession(conf SessionConfig, logger log.Logger) (*Session, error) {
	id := uuid.New().String()
	logger = logger.WithField("session", id)

	opts := []inmem.Option{}
	if conf.Clock != nil {
		opts = append(opts, inmem.WithClock(conf.Clock))
	}
	repository := inmem.NewPaperRepository(opts...)

	index, err := bleve.NewPaperIndex()
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        id,
		StartedAt: time.Now(),

		Papers:    NewPaperService(repository, index, conf.ShareURL, logger),
		Templates: NewTemplateService(),

		repository: repository,
		index:      index,
		logger:     logger,
	}

	logger.Print("session started")
	return s, nil
}

type SessionInfo struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	Papers    int       `json:"papers"`
}

func (s *Session) Info() SessionInfo {
	return SessionInfo{
		ID:        s.ID,
		StartedAt: s.StartedAt,
		Papers:    s.repository.Len(),
	}
}

// Close ends the session. Its papers are lost.
func (s *Session) Close() error {
	s.logger.Printf("session ended, %d papers discarded", s.repository.Len())
	return s.index.Close()
}
