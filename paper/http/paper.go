package http

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/bobinette/raddaran/errors"

	"github.com/bobinette/raddaran/paper"
	"github.com/bobinette/raddaran/paper/endpoints"
	"github.com/bobinette/raddaran/paper/services"
)

// DefaultMaxUpload bounds the size of an uploaded file when none is configured.
const DefaultMaxUpload = 32 << 20

func RegisterPaperEndpoints(srv Server, service *services.PaperService, maxUpload int64) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
	}

	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}

	// Create endpoint
	ep := endpoints.NewPaperEndpoint(service)

	// List papers handler
	listPaperHandler := kithttp.NewServer(
		ep.List,
		decodeListPaperRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Upload paper handler
	uploadPaperHandler := kithttp.NewServer(
		ep.Upload,
		uploadDecoder(maxUpload),
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Generate paper handler
	generatePaperHandler := kithttp.NewServer(
		ep.Generate,
		decodeGeneratePaperRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Get paper handler
	getPaperHandler := kithttp.NewServer(
		ep.Get,
		decodePaperIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Update paper handler
	updatePaperHandler := kithttp.NewServer(
		ep.Update,
		decodeUpdatePaperRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Delete paper handler
	deletePaperHandler := kithttp.NewServer(
		ep.Delete,
		decodePaperIDRequest, // Decoder is the same as get
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Download paper handler
	downloadPaperHandler := kithttp.NewServer(
		ep.Download,
		decodePaperIDRequest,
		encodeFileResponse,
		opts...,
	)

	// Share paper handler
	sharePaperHandler := kithttp.NewServer(
		ep.Share,
		decodePaperIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Register all handlers
	srv.RegisterHandler("/raddaran/papers", "GET", listPaperHandler)
	srv.RegisterHandler("/raddaran/papers", "POST", http.MaxBytesHandler(uploadPaperHandler, maxUpload))
	srv.RegisterHandler("/raddaran/templates/:key/papers", "POST", generatePaperHandler)
	srv.RegisterHandler("/raddaran/papers/:id", "GET", getPaperHandler)
	srv.RegisterHandler("/raddaran/papers/:id", "PUT", updatePaperHandler)
	srv.RegisterHandler("/raddaran/papers/:id", "DELETE", deletePaperHandler)
	srv.RegisterHandler("/raddaran/papers/:id/file", "GET", downloadPaperHandler)
	srv.RegisterHandler("/raddaran/papers/:id/share", "GET", sharePaperHandler)
}

func decodePaperIDRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	return paperID(ctx)
}

func decodeListPaperRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	sortKey, err := paper.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		return nil, err
	}

	return endpoints.ListPaperRequest{
		Q:    r.URL.Query().Get("q"),
		Sort: sortKey,
	}, nil
}

// uploadDecoder reads a multipart form with the fields title, author,
// category, description and file.
func uploadDecoder(maxUpload int64) kithttp.DecodeRequestFunc {
	return func(ctx context.Context, r *http.Request) (interface{}, error) {
		defer r.Body.Close()

		if err := r.ParseMultipartForm(maxUpload); err != nil {
			var tooLarge *http.MaxBytesError
			if goerrors.As(err, &tooLarge) {
				msg := fmt.Sprintf("upload is larger than %d bytes", tooLarge.Limit)
				return nil, errors.New(msg, errors.WithCode(http.StatusRequestEntityTooLarge), errors.WithCause(err))
			}
			return nil, errors.New("invalid multipart form", errors.BadRequest(), errors.WithCause(err))
		}

		category, err := paper.ParseCategory(r.FormValue("category"))
		if err != nil {
			return nil, err
		}

		req := services.UploadRequest{
			Title:       r.FormValue("title"),
			Author:      r.FormValue("author"),
			Category:    category,
			Description: r.FormValue("description"),
		}

		file, header, err := r.FormFile("file")
		if err == http.ErrMissingFile {
			return nil, errors.New("file is required", errors.BadRequest())
		} else if err != nil {
			return nil, errors.New("invalid parameter: file", errors.BadRequest(), errors.WithCause(err))
		}
		defer file.Close()

		req.FileName = header.Filename
		req.Data, err = io.ReadAll(file)
		if err != nil {
			return nil, errors.New("could not read file", errors.BadRequest(), errors.WithCause(err))
		}

		return req, nil
	}
}

func decodeGeneratePaperRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var req services.GenerateRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	key := paper.TemplateKey(param(ctx, "key"))
	if req.Template != "" && req.Template != key {
		return nil, errors.New("templates do not match between url and body", errors.BadRequest())
	}
	req.Template = key

	return req, nil
}

func decodeUpdatePaperRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	id, err := paperID(ctx)
	if err != nil {
		return nil, err
	}

	var fields paper.Fields
	err = json.NewDecoder(r.Body).Decode(&fields)
	if err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	return endpoints.UpdatePaperRequest{ID: id, Fields: fields}, nil
}

// encodeFileResponse writes the file bytes untouched, as an attachment.
func encodeFileResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	file, ok := response.(services.File)
	if !ok {
		return errors.New("invalid response")
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Name})
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(file.Data)
	return err
}
