package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/bobinette/raddaran/paper"
	"github.com/bobinette/raddaran/paper/services"
)

type ListResults struct {
	Papers []paper.Paper
	Facets paper.Facets
	Total  int
}

func (c *Client) ListPapers(q string, sort string) (ListResults, error) {
	qs := url.Values{}
	if q != "" {
		qs.Set("q", q)
	}
	if sort != "" {
		qs.Set("sort", sort)
	}

	req, err := http.NewRequest(http.MethodGet, c.url("/papers", qs), nil)
	if err != nil {
		return ListResults{}, err
	}

	res, err := c.do(req)
	if err != nil {
		return ListResults{}, err
	}
	defer res.Body.Close()

	var body struct {
		Data   []paper.Paper `json:"data"`
		Facets paper.Facets  `json:"facets"`
		Total  int           `json:"total"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return ListResults{}, err
	}

	return ListResults{Papers: body.Data, Facets: body.Facets, Total: body.Total}, nil
}

func (c *Client) GetPaper(id int) (paper.Paper, error) {
	var p paper.Paper
	err := c.get(fmt.Sprintf("/papers/%d", id), nil, &p)
	return p, err
}

// UploadPaper sends the file as a multipart form along with its metadata.
func (c *Client) UploadPaper(req services.UploadRequest) (paper.Paper, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"title", req.Title},
		{"author", req.Author},
		{"category", string(req.Category)},
		{"description", req.Description},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return paper.Paper{}, err
		}
	}

	part, err := w.CreateFormFile("file", req.FileName)
	if err != nil {
		return paper.Paper{}, err
	}
	if _, err := part.Write(req.Data); err != nil {
		return paper.Paper{}, err
	}
	if err := w.Close(); err != nil {
		return paper.Paper{}, err
	}

	r, err := http.NewRequest(http.MethodPost, c.url("/papers", nil), buf)
	if err != nil {
		return paper.Paper{}, err
	}
	r.Header.Set("Content-Type", w.FormDataContentType())

	var p paper.Paper
	err = c.call(r, &p)
	return p, err
}

func (c *Client) GeneratePaper(req services.GenerateRequest) (paper.Paper, error) {
	var p paper.Paper
	path := fmt.Sprintf("/templates/%s/papers", url.PathEscape(string(req.Template)))
	err := c.send(http.MethodPost, path, req, &p)
	return p, err
}

func (c *Client) UpdatePaper(id int, fields paper.Fields) (paper.Paper, error) {
	var p paper.Paper
	err := c.send(http.MethodPut, fmt.Sprintf("/papers/%d", id), fields, &p)
	return p, err
}

func (c *Client) DeletePaper(id int) error {
	req, err := http.NewRequest(http.MethodDelete, c.url(fmt.Sprintf("/papers/%d", id), nil), nil)
	if err != nil {
		return err
	}
	return c.call(req, nil)
}

// DownloadPaper returns the stored file of an uploaded paper, byte for byte.
func (c *Client) DownloadPaper(id int) (services.File, error) {
	req, err := http.NewRequest(http.MethodGet, c.url(fmt.Sprintf("/papers/%d/file", id), nil), nil)
	if err != nil {
		return services.File{}, err
	}

	res, err := c.do(req)
	if err != nil {
		return services.File{}, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return services.File{}, err
	}

	file := services.File{
		ContentType: res.Header.Get("Content-Type"),
		Data:        data,
	}
	if _, params, err := mime.ParseMediaType(res.Header.Get("Content-Disposition")); err == nil {
		file.Name = params["filename"]
	}
	return file, nil
}

func (c *Client) SharePaper(id int) (string, error) {
	var share struct {
		URL string `json:"url"`
	}
	err := c.get(fmt.Sprintf("/papers/%d/share", id), nil, &share)
	return share.URL, err
}

func (c *Client) Templates() ([]paper.Template, error) {
	var templates []paper.Template
	err := c.get("/templates", nil, &templates)
	return templates, err
}

func (c *Client) Session() (services.SessionInfo, error) {
	var info services.SessionInfo
	err := c.get("/session", nil, &info)
	return info, err
}
