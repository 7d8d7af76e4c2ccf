package services

import (
	"github.com/bobinette/raddaran/paper"
)

type TemplateService struct{}

func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

func (s *TemplateService) List() []paper.Template {
	return paper.Templates()
}

func (s *TemplateService) Get(key paper.TemplateKey) (paper.Template, error) {
	return paper.LookupTemplate(key)
}
