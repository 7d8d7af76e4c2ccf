package endpoints

import (
	"context"

	"github.com/bobinette/raddaran/paper/services"
)

type TemplateEndpoint struct {
	service *services.TemplateService
}

func NewTemplateEndpoint(service *services.TemplateService) *TemplateEndpoint {
	return &TemplateEndpoint{
		service: service,
	}
}

func (ep *TemplateEndpoint) List(ctx context.Context, r interface{}) (interface{}, error) {
	return map[string]interface{}{
		"data": ep.service.List(),
	}, nil
}
