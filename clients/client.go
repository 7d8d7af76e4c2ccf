package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bobinette/raddaran/errors"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client calls the papers API of a running session.
type Client struct {
	baseURL string
	client  HTTPClient
}

func NewClient(c HTTPClient, baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  c,
	}
}

func (c *Client) url(path string, qs url.Values) string {
	u := fmt.Sprintf("%s/raddaran%s", c.baseURL, path)
	if len(qs) > 0 {
		u = fmt.Sprintf("%s?%s", u, qs.Encode())
	}
	return u
}

// do sends req and returns the response if its status is 2xx. Otherwise the
// error message of the body is returned with the response status as code.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer res.Body.Close()

		var callErr struct {
			Message string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&callErr); err != nil {
			return nil, errors.New(fmt.Sprintf("error in call: %s", res.Status), errors.WithCode(res.StatusCode))
		}
		return nil, errors.New(fmt.Sprintf("error in call: %v", callErr.Message), errors.WithCode(res.StatusCode))
	}

	return res, nil
}

// call sends req and decodes the data field of the JSON response into v.
// v can be nil when the response has no body.
func (c *Client) call(req *http.Request, v interface{}) error {
	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if v == nil {
		_, err := io.Copy(io.Discard, res.Body)
		return err
	}

	body := struct {
		Data interface{} `json:"data"`
	}{Data: v}
	return json.NewDecoder(res.Body).Decode(&body)
}

func (c *Client) get(path string, qs url.Values, v interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.url(path, qs), nil)
	if err != nil {
		return err
	}
	return c.call(req, v)
}

func (c *Client) send(method, path string, body interface{}, v interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(method, c.url(path, nil), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.call(req, v)
}
