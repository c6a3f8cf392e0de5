// Package upstream implements the collaborator surfaces of the tracking
// system's REST service: the multi-table bulk fetch and the single-table
// groups CRUD.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"

	"github.com/trezcool/mahafali/core"
)

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(conf core.UpstreamConfig) *Client {
	return &Client{
		baseURL: conf.BaseURL,
		token:   conf.Token,
		client:  &http.Client{Timeout: conf.Timeout},
	}
}

// statusError is a non-2xx upstream response. The body is discarded: raw
// upstream error text never travels further than this package.
type statusError struct {
	code int
}

func (e *statusError) Error() string { return fmt.Sprintf("upstream returned %d", e.code) }

func isStatus(err error, code int) bool {
	se, ok := errors.Cause(err).(*statusError)
	return ok && se.code == code
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshaling request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, path)
	}
	return nil
}
