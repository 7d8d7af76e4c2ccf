package paper

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bobinette/raddaran/errors"
)

type Paper struct {
	// Core attributes
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	DateAdded   Date     `json:"dateAdded"`

	// Uploaded papers
	FileName string `json:"fileName,omitempty"`
	FileData []byte `json:"-"`

	// Generated papers
	Template       TemplateKey       `json:"template,omitempty"`
	Sections       []string          `json:"sections,omitempty"`
	CitationFormat string            `json:"citationFormat,omitempty"`
	Content        map[string]string `json:"content,omitempty"`
}

// HasFile returns true if the paper was uploaded and can be downloaded.
func (p Paper) HasFile() bool { return p.FileData != nil }

// Generated returns true if the paper was built from a template.
func (p Paper) Generated() bool { return p.Template != "" }

// Clone returns a deep copy of p, so that the copy can be handed out
// without exposing the backing arrays of the original.
func (p Paper) Clone() Paper {
	c := p
	if p.FileData != nil {
		c.FileData = append([]byte{}, p.FileData...)
	}
	if p.Sections != nil {
		c.Sections = append([]string{}, p.Sections...)
	}
	if p.Content != nil {
		c.Content = make(map[string]string, len(p.Content))
		for k, v := range p.Content {
			c.Content[k] = v
		}
	}
	return c
}

// Draft is a paper that has not been inserted yet: it has neither id nor
// date.
type Draft struct {
	Title       string
	Author      string
	Category    Category
	Description string

	FileName string
	FileData []byte

	Template       TemplateKey
	Sections       []string
	CitationFormat string
	Content        map[string]string
}

// Validate checks the required fields of the draft and that it is not both
// an upload and a generated paper.
func (d Draft) Validate() error {
	if err := validateRequired(d.Title, d.Author, d.Category); err != nil {
		return err
	}

	if d.FileData != nil && d.Template != "" {
		return errors.New("a paper cannot hold both a file and a template", errors.BadRequest())
	}

	return nil
}

// Paper builds the paper from the draft. The caller is responsible for
// setting the id and the date.
func (d Draft) Paper() Paper {
	return Paper{
		Title:          strings.TrimSpace(d.Title),
		Author:         strings.TrimSpace(d.Author),
		Category:       d.Category,
		Description:    d.Description,
		FileName:       d.FileName,
		FileData:       d.FileData,
		Template:       d.Template,
		Sections:       d.Sections,
		CitationFormat: d.CitationFormat,
		Content:        d.Content,
	}.Clone()
}

// Fields holds the editable attributes of a paper. A nil field is left
// untouched by an update.
type Fields struct {
	Title       *string   `json:"title"`
	Author      *string   `json:"author"`
	Category    *Category `json:"category"`
	Description *string   `json:"description"`
}

// Apply returns a copy of p with the non-nil fields set, or a validation
// error if one of them is invalid. p is never modified.
func (f Fields) Apply(p Paper) (Paper, error) {
	updated := p.Clone()
	if f.Title != nil {
		updated.Title = strings.TrimSpace(*f.Title)
	}
	if f.Author != nil {
		updated.Author = strings.TrimSpace(*f.Author)
	}
	if f.Category != nil {
		updated.Category = *f.Category
	}
	if f.Description != nil {
		updated.Description = *f.Description
	}

	if err := validateRequired(updated.Title, updated.Author, updated.Category); err != nil {
		return Paper{}, err
	}
	return updated, nil
}

func validateRequired(title, author string, category Category) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required", errors.BadRequest())
	}
	if strings.TrimSpace(author) == "" {
		return errors.New("author is required", errors.BadRequest())
	}
	if category == "" {
		return errors.New("category is required", errors.BadRequest())
	}
	if !category.Valid() {
		return errors.New(fmt.Sprintf("unknown category %q", string(category)), errors.BadRequest())
	}
	return nil
}

// ------------------------------------------------------------------------------------------------
// Date
// ------------------------------------------------------------------------------------------------

const DateLayout = "2006-01-02"

// Date is a calendar day. It is marshalled as an ISO 8601 date.
type Date struct {
	time.Time
}

// Day truncates t to its calendar day.
func Day(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ------------------------------------------------------------------------------------------------
// Storage
// ------------------------------------------------------------------------------------------------

// Repository holds the papers of a session.
type Repository interface {
	Insert(Draft) (Paper, error)
	Get(int) (Paper, error)
	List() ([]Paper, error)
	Search(string) ([]Paper, error)
	Update(int, Fields) (Paper, error)
	Delete(int) error
}

type FacetCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type Facets struct {
	Categories []FacetCount `json:"categories"`
	Templates  []FacetCount `json:"templates"`
}

// Index is a secondary view over the papers of a session used to compute
// listing facets.
type Index interface {
	Index(Paper) error
	Delete(int) error
	Facets(ids ...int) (Facets, error)
}

func ErrNotFound(id int) error {
	return errors.New(fmt.Sprintf("paper %d not found", id), errors.NotFound())
}
