package http

import (
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/bobinette/raddaran/paper/endpoints"
	"github.com/bobinette/raddaran/paper/services"
)

func RegisterTemplateEndpoints(srv Server, service *services.TemplateService) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
	}

	ep := endpoints.NewTemplateEndpoint(service)

	listTemplateHandler := kithttp.NewServer(
		ep.List,
		kithttp.NopRequestDecoder,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	srv.RegisterHandler("/raddaran/templates", "GET", listTemplateHandler)
}

func RegisterSessionEndpoints(srv Server, session *services.Session) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
	}

	ep := endpoints.NewSessionEndpoint(session)

	sessionInfoHandler := kithttp.NewServer(
		ep.Info,
		kithttp.NopRequestDecoder,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	srv.RegisterHandler("/raddaran/session", "GET", sessionInfoHandler)
}
