package paper

import (
	"fmt"
	"strings"

	"github.com/bobinette/raddaran/errors"
)

type TemplateKey string

const (
	TemplateResearch  TemplateKey = "research"
	TemplateReview    TemplateKey = "review"
	TemplateTechnical TemplateKey = "technical"
)

// AbstractSection is the section whose content becomes the description of a
// generated paper.
const AbstractSection = "Abstract"

// GeneratedExtension is appended to the file name of generated papers. No
// file is rendered, the name is a placeholder.
const GeneratedExtension = ".pdf"

type Template struct {
	Key            TemplateKey `json:"key"`
	Sections       []string    `json:"sections"`
	CitationFormat string      `json:"citationFormat"`
}

// templates is read-only once the package is initialized. Accessors hand out
// copies.
var templates = []Template{
	{
		Key:            TemplateResearch,
		Sections:       []string{"Abstract", "Introduction", "Methodology", "Results", "Discussion", "Conclusion", "References"},
		CitationFormat: "IEEE",
	},
	{
		Key:            TemplateReview,
		Sections:       []string{"Abstract", "Introduction", "Literature Review", "Analysis", "Conclusion", "References"},
		CitationFormat: "APA",
	},
	{
		Key:            TemplateTechnical,
		Sections:       []string{"Abstract", "Problem Statement", "Solution Approach", "Implementation", "Evaluation", "References"},
		CitationFormat: "ACM",
	},
}

// Templates returns the registered templates: research, review, technical.
func Templates() []Template {
	res := make([]Template, len(templates))
	for i, t := range templates {
		res[i] = t.clone()
	}
	return res
}

func LookupTemplate(key TemplateKey) (Template, error) {
	for _, t := range templates {
		if t.Key == key {
			return t.clone(), nil
		}
	}
	return Template{}, errors.New(fmt.Sprintf("template %q is not registered", string(key)), errors.Unprocessable())
}

func (t Template) clone() Template {
	t.Sections = append([]string{}, t.Sections...)
	return t
}

// Placeholder is the content of a section left empty at generation.
func Placeholder(section string) string {
	return fmt.Sprintf("[%s content will be generated here]", section)
}

// Generate builds the draft of a paper from the template registered under
// key. contents maps section names to their text, sections missing from it
// get a placeholder and keys that are not sections of the template are
// ignored.
func Generate(key TemplateKey, title, author string, category Category, contents map[string]string) (Draft, error) {
	t, err := LookupTemplate(key)
	if err != nil {
		return Draft{}, err
	}

	if err := validateRequired(title, author, category); err != nil {
		return Draft{}, err
	}

	content := make(map[string]string, len(t.Sections))
	for _, section := range t.Sections {
		text := contents[section]
		if strings.TrimSpace(text) == "" {
			text = Placeholder(section)
		}
		content[section] = text
	}

	return Draft{
		Title:          title,
		Author:         author,
		Category:       category,
		Description:    contents[AbstractSection],
		FileName:       GeneratedFileName(strings.TrimSpace(title)),
		Template:       t.Key,
		Sections:       t.Sections,
		CitationFormat: t.CitationFormat,
		Content:        content,
	}, nil
}

// GeneratedFileName lowercases the title and replaces every space with an
// underscore.
func GeneratedFileName(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_") + GeneratedExtension
}
