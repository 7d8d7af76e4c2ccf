package endpoints

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bobinette/raddaran/errors"

	"github.com/bobinette/raddaran/paper"
	"github.com/bobinette/raddaran/paper/services"
)

// Variables and functions for specific errors
var (
	errInvalidRequest = errors.New("invalid request", errors.BadRequest())
)

type PaperEndpoint struct {
	service *services.PaperService
}

func NewPaperEndpoint(service *services.PaperService) *PaperEndpoint {
	return &PaperEndpoint{
		service: service,
	}
}

type ListPaperRequest struct {
	Q    string
	Sort paper.SortKey
}

func (ep *PaperEndpoint) List(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(ListPaperRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	res, err := ep.service.List(req.Q, req.Sort)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data":   res.Papers,
		"facets": res.Facets,
		"total":  res.Total,
	}, nil
}

func (ep *PaperEndpoint) Upload(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(services.UploadRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	p, err := ep.service.Upload(req)
	if err != nil {
		return nil, err
	}

	return created{data: p}, nil
}

func (ep *PaperEndpoint) Generate(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(services.GenerateRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	p, err := ep.service.Generate(req)
	if err != nil {
		return nil, err
	}

	return created{data: p}, nil
}

func (ep *PaperEndpoint) Get(ctx context.Context, r interface{}) (interface{}, error) {
	id, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	p, err := ep.service.Get(id)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": p,
	}, nil
}

type UpdatePaperRequest struct {
	ID     int
	Fields paper.Fields
}

func (ep *PaperEndpoint) Update(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(UpdatePaperRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	p, err := ep.service.Update(req.ID, req.Fields)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": p,
	}, nil
}

func (ep *PaperEndpoint) Delete(ctx context.Context, r interface{}) (interface{}, error) {
	id, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	err := ep.service.Delete(id)
	if err != nil {
		return nil, err
	}

	return statusCoder{code: http.StatusNoContent}, nil
}

func (ep *PaperEndpoint) Download(ctx context.Context, r interface{}) (interface{}, error) {
	id, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Download(id)
}

func (ep *PaperEndpoint) Share(ctx context.Context, r interface{}) (interface{}, error) {
	id, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	url, err := ep.service.ShareURL(id)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": map[string]string{"url": url},
	}, nil
}

// statusCoder is useful to return http responses with a status that is not 200 but is not
// an error either.
type statusCoder struct {
	code int
}

func (s statusCoder) StatusCode() int { return s.code }

// created wraps a newly inserted paper in the data envelope and answers 201.
type created struct {
	data paper.Paper
}

func (c created) StatusCode() int { return http.StatusCreated }

func (c created) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"data": c.data})
}
