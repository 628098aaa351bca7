// Package quote downloads daily close prices from the Yahoo Finance chart
// API for Taiwan listings and the TAIEX index.
package quote

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tzuhan/psa/date"
)

// Yahoo rejects Go's default user agent.
const userAgent = "psa/1.0"

// chartPath is the only endpoint worth caching: everything else goes
// straight to the network.
const chartPath = "/v8/finance/chart/"

// chartCache is a RoundTripper that caches successful chart responses on
// disk. Closes for a finished trading day never change, so every entry is
// keyed by today's date and expires with it.
type chartCache struct {
	base http.RoundTripper
	dir  string
}

func newChartCache() *chartCache {
	dir := filepath.Join(os.TempDir(), "psa-quotes")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("quote cache disabled: %v", err)
		dir = ""
	}
	return &chartCache{base: http.DefaultTransport, dir: dir}
}

// file maps a request to its cache file for the current day.
func (c *chartCache) file(req *http.Request) string {
	key := sha1.Sum([]byte(date.Today().String() + " " + req.URL.String()))
	return filepath.Join(c.dir, fmt.Sprintf("%x.json", key))
}

func (c *chartCache) cacheable(req *http.Request) bool {
	return c.dir != "" && req.Method == http.MethodGet && strings.Contains(req.URL.Path, chartPath)
}

func (c *chartCache) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)

	if c.cacheable(req) {
		if body, err := os.ReadFile(c.file(req)); err == nil {
			return cachedResponse(req, body), nil
		}
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)

	if !c.cacheable(req) || resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	// read the body once, cache it, and hand the caller a replay of it
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(c.file(req), body, 0644); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// cachedResponse rebuilds a 200 response around a cached chart body.
func cachedResponse(req *http.Request, body []byte) *http.Response {
	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

// newDailyCachingClient returns an http.Client whose chart downloads are
// cached on disk until the end of the day.
func newDailyCachingClient() *http.Client {
	return &http.Client{Transport: newChartCache()}
}

// getJSON performs an HTTP GET on addr and decodes the JSON body into data.
func getJSON(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}
