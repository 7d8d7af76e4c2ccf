package services

import (
	"fmt"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gabriel-vasile/mimetype"

	"github.com/bobinette/raddaran/errors"
	"github.com/bobinette/raddaran/log"
	"github.com/bobinette/raddaran/paper"
)

// UploadExtensions lists the file extensions accepted on upload.
var UploadExtensions = mapset.NewSet("pdf", "doc", "docx")

type PaperService struct {
	repository paper.Repository
	index      paper.Index

	shareURL string
	logger   log.Logger
}

func NewPaperService(repo paper.Repository, index paper.Index, shareURL string, logger log.Logger) *PaperService {
	return &PaperService{
		repository: repo,
		index:      index,

		shareURL: strings.TrimSuffix(shareURL, "/"),
		logger:   logger,
	}
}

type UploadRequest struct {
	Title       string
	Author      string
	Category    paper.Category
	Description string
	FileName    string
	Data        []byte
}

func (s *PaperService) Upload(req UploadRequest) (paper.Paper, error) {
	if err := checkUploadFile(req.FileName, req.Data); err != nil {
		return paper.Paper{}, err
	}

	p, err := s.insert(paper.Draft{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		FileName:    req.FileName,
		FileData:    req.Data,
	})
	if err != nil {
		return paper.Paper{}, err
	}

	s.logger.Printf("paper %d uploaded from %s (%d bytes)", p.ID, p.FileName, len(p.FileData))
	return p, nil
}

func checkUploadFile(name string, data []byte) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("file is required", errors.BadRequest())
	}
	if len(data) == 0 {
		return errors.New(fmt.Sprintf("file %s is empty", name), errors.BadRequest())
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !UploadExtensions.Contains(ext) {
		return errors.New(fmt.Sprintf("file %s should be one of: pdf, doc, docx", name), errors.BadRequest())
	}
	return nil
}

type GenerateRequest struct {
	Template paper.TemplateKey `json:"template"`
	Title    string            `json:"title"`
	Author   string            `json:"author"`
	Category paper.Category    `json:"category"`
	Sections map[string]string `json:"sections"`
}

func (s *PaperService) Generate(req GenerateRequest) (paper.Paper, error) {
	draft, err := paper.Generate(req.Template, req.Title, req.Author, req.Category, req.Sections)
	if err != nil {
		return paper.Paper{}, err
	}

	p, err := s.insert(draft)
	if err != nil {
		return paper.Paper{}, err
	}

	s.logger.Printf("paper %d generated from template %s", p.ID, p.Template)
	return p, nil
}

// insert stores the draft and indexes it. The paper is removed again if it
// cannot be indexed.
func (s *PaperService) insert(draft paper.Draft) (paper.Paper, error) {
	p, err := s.repository.Insert(draft)
	if err != nil {
		return paper.Paper{}, err
	}

	if err := s.index.Index(p); err != nil {
		if delErr := s.repository.Delete(p.ID); delErr != nil {
			s.logger.Errorf("could not roll back paper %d: %v", p.ID, delErr)
		}
		return paper.Paper{}, errors.New("could not index paper", errors.WithCause(err))
	}

	return p, nil
}

type ListResults struct {
	Papers []paper.Paper `json:"papers"`
	Facets paper.Facets  `json:"facets"`
	Total  int           `json:"total"`
}

// List returns the papers matching q, sorted by sortKey.
func (s *PaperService) List(q string, sortKey paper.SortKey) (ListResults, error) {
	papers, err := s.repository.Search(q)
	if err != nil {
		return ListResults{}, err
	}
	papers = paper.Sort(papers, sortKey)

	ids := make([]int, len(papers))
	for i, p := range papers {
		ids[i] = p.ID
	}

	facets, err := s.index.Facets(ids...)
	if err != nil {
		return ListResults{}, err
	}

	return ListResults{
		Papers: papers,
		Facets: facets,
		Total:  len(papers),
	}, nil
}

func (s *PaperService) Get(id int) (paper.Paper, error) {
	return s.repository.Get(id)
}

func (s *PaperService) Update(id int, fields paper.Fields) (paper.Paper, error) {
	previous, err := s.repository.Get(id)
	if err != nil {
		return paper.Paper{}, err
	}

	p, err := s.repository.Update(id, fields)
	if err != nil {
		return paper.Paper{}, err
	}

	if err := s.index.Index(p); err != nil {
		if _, rbErr := s.repository.Update(id, fieldsOf(previous)); rbErr != nil {
			s.logger.Errorf("could not roll back paper %d: %v", id, rbErr)
		}
		return paper.Paper{}, errors.New("could not index paper", errors.WithCause(err))
	}

	s.logger.Printf("paper %d updated", id)
	return p, nil
}

func fieldsOf(p paper.Paper) paper.Fields {
	return paper.Fields{
		Title:       &p.Title,
		Author:      &p.Author,
		Category:    &p.Category,
		Description: &p.Description,
	}
}

func (s *PaperService) Delete(id int) error {
	if err := s.repository.Delete(id); err != nil {
		return err
	}

	if err := s.index.Delete(id); err != nil {
		// The paper is gone from the store, the facets will only be off
		// for ids that can no longer be listed.
		s.logger.Errorf("could not remove paper %d from the index: %v", id, err)
	}

	s.logger.Printf("paper %d deleted", id)
	return nil
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Download returns the file uploaded with the paper, byte for byte.
func (s *PaperService) Download(id int) (File, error) {
	p, err := s.repository.Get(id)
	if err != nil {
		return File{}, err
	}

	if !p.HasFile() {
		return File{}, errors.New(fmt.Sprintf("paper %d has no file", id), errors.NotFound())
	}

	return File{
		Name:        p.FileName,
		ContentType: mimetype.Detect(p.FileData).String(),
		Data:        p.FileData,
	}, nil
}

// ShareURL returns the link under which the paper can be shared.
func (s *PaperService) ShareURL(id int) (string, error) {
	if _, err := s.repository.Get(id); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%d", s.shareURL, id), nil
}
