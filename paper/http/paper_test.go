package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/raddaran/gin"
	"github.com/bobinette/raddaran/log"
	"github.com/bobinette/raddaran/paper/services"
)

func createServer(t *testing.T) (http.Handler, func()) {
	session, err := services.NewSession(services.SessionConfig{ShareURL: "https://raddaran-paper.com/share"}, log.Discard())
	require.NoError(t, err, "could not create session")

	srv := gin.New("test", log.Discard())
	RegisterPaperEndpoints(srv, session.Papers, 1<<20)
	RegisterTemplateEndpoints(srv, session.Templates)
	RegisterSessionEndpoints(srv, session)

	return srv, func() {
		if err := session.Close(); err != nil {
			t.Log(err)
		}
	}
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, fields map[string]string, fileName string, data []byte) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/raddaran/papers", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type paperResponse struct {
	Data struct {
		ID          int               `json:"id"`
		Title       string            `json:"title"`
		Author      string            `json:"author"`
		Category    string            `json:"category"`
		Description string            `json:"description"`
		DateAdded   string            `json:"dateAdded"`
		FileName    string            `json:"fileName"`
		Template    string            `json:"template"`
		Sections    []string          `json:"sections"`
		Content     map[string]string `json:"content"`
	} `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

var docBytes = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1, 0x00, 0x00, 0xff, 0x0a, 0x0d}

func TestUploadDownload(t *testing.T) {
	srv, f := createServer(t)
	defer f()

	w := do(t, srv, uploadRequest(t, map[string]string{
		"title":       "Introduction to Machine Learning",
		"author":      "John Doe",
		"category":    "Computer Science",
		"description": "A comprehensive overview",
	}, "intro to ml.doc", docBytes))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created paperResponse
	decode(t, w, &created)
	assert.Equal(t, 1, created.Data.ID)
	assert.Equal(t, "Computer Science", created.Data.Category)
	assert.Equal(t, "intro to ml.doc", created.Data.FileName)
	assert.NotContains(t, w.Body.String(), "fileData")

	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/papers/1/file", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Equal(docBytes, w.Body.Bytes()), "downloaded bytes should equal uploaded bytes")
	assert.Equal(t, `attachment; filename="intro to ml.doc"`, w.Header().Get("Content-Disposition"))
}

func TestUploadInvalid(t *testing.T) {
	srv, f := createServer(t)
	defer f()

	fields := map[string]string{"title": "T", "author": "A", "category": "Physics"}

	w := do(t, srv, uploadRequest(t, fields, "paper.txt", []byte("text")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, uploadRequest(t, fields, "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, uploadRequest(t, map[string]string{"title": "T", "author": "A", "category": "Biology"}, "paper.pdf", []byte("%PDF")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, httptest.NewRequest("POST", "/raddaran/papers", strings.NewReader(`{"title": "T"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/session", nil))
	assert.Contains(t, w.Body.String(), `"papers":0`)
}

func TestUploadTooLarge(t *testing.T) {
	srv, f := createServer(t)
	defer f()

	fields := map[string]string{"title": "T", "author": "A", "category": "Physics"}
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{0xff}, 2<<20)...)

	w := do(t, srv, uploadRequest(t, fields, "big.pdf", data))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "larger than 1048576 bytes")

	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/session", nil))
	assert.Contains(t, w.Body.String(), `"papers":0`)
}

func TestGenerate(t *testing.T) {
	srv, f := createServer(t)
	defer f()

	body := `{"title": "Deep Learning", "author": "A", "category": "physics", "sections": {"Abstract": "foo", "Results": "bar"}}`
	w := do(t, srv, httptest.NewRequest("POST", "/raddaran/templates/research/papers", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created paperResponse
	decode(t, w, &created)
	assert.Equal(t, "foo", created.Data.Description)
	assert.Equal(t, "Physics", created.Data.Category)
	assert.Equal(t, "research", created.Data.Template)
	assert.Equal(t, "deep_learning.pdf", created.Data.FileName)
	assert.Equal(t, []string{"Abstract", "Introduction", "Methodology", "Results", "Discussion", "Conclusion", "References"}, created.Data.Sections)
	assert.Equal(t, "bar", created.Data.Content["Results"])

	// Generated papers have no file
	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/papers/1/file", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, httptest.NewRequest("POST", "/raddaran/templates/bogus/papers", strings.NewReader(`{"title": "T", "author": "A", "category": "Physics"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, srv, httptest.NewRequest("POST", "/raddaran/templates/review/papers", strings.NewReader(`{"title": "T", "category": "Physics"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, httptest.NewRequest("POST", "/raddaran/templates/review/papers", strings.NewReader(`{"template": "technical", "title": "T", "author": "A", "category": "Physics"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/session", nil))
	assert.Contains(t, w.Body.String(), `"papers":1`)
}

func TestListEditDelete(t *testing.T) {
	srv, f := createServer(t)
	defer f()

	for _, title := range []string{"Zebra crossing", "Attention is all you need"} {
		w := do(t, srv, uploadRequest(t, map[string]string{"title": title, "author": "A", "category": "Mathematics"}, "p.pdf", []byte("%PDF-1.4")))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	var list struct {
		Data []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
		Total  int `json:"total"`
		Facets struct {
			Categories []struct {
				Term  string `json:"term"`
				Count int    `json:"count"`
			} `json:"categories"`
		} `json:"facets"`
	}

	w := do(t, srv, httptest.NewRequest("GET", "/raddaran/papers?sort=title", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &list)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "Attention is all you need", list.Data[0].Title)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Facets.Categories, 1)
	assert.Equal(t, 2, list.Facets.Categories[0].Count)

	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/papers?q=ZEBRA", nil))
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Data[0].ID)

	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/papers?sort=year", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Edit
	w = do(t, srv, httptest.NewRequest("PUT", "/raddaran/papers/1", strings.NewReader(`{"title": "X"}`)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated paperResponse
	decode(t, w, &updated)
	assert.Equal(t, "X", updated.Data.Title)
	assert.Equal(t, "A", updated.Data.Author)
	assert.Equal(t, "p.pdf", updated.Data.FileName)

	w = do(t, srv, httptest.NewRequest("PUT", "/raddaran/papers/1", strings.NewReader(`{"author": ""}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, httptest.NewRequest("PUT", "/raddaran/papers/99", strings.NewReader(`{"title": "X"}`)))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, httptest.NewRequest("PUT", "/raddaran/papers/abc", strings.NewReader(`{"title": "X"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Share
	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/papers/1/share", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data": {"url": "https://raddaran-paper.com/share/1"}}`, w.Body.String())

	// Delete
	w = do(t, srv, httptest.NewRequest("DELETE", "/raddaran/papers/1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, srv, httptest.NewRequest("GET", "/raddaran/papers/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "paper 1 not found"}`, w.Body.String())

	w = do(t, srv, httptest.NewRequest("DELETE", "/raddaran/papers/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplates(t *testing.T) {
	srv, f := createServer(t)
	defer f()

	w := do(t, srv, httptest.NewRequest("GET", "/raddaran/templates", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data []struct {
			Key            string   `json:"key"`
			Sections       []string `json:"sections"`
			CitationFormat string   `json:"citationFormat"`
		} `json:"data"`
	}
	decode(t, w, &res)
	require.Len(t, res.Data, 3)
	assert.Equal(t, "research", res.Data[0].Key)
	assert.Equal(t, "review", res.Data[1].Key)
	assert.Equal(t, "technical", res.Data[2].Key)
	assert.Equal(t, "ACM", res.Data[2].CitationFormat)
}
