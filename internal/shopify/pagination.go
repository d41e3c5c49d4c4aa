package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// Envelope is the platform's collection wrapper, one named array per
// resource kind.
type Envelope[T any] interface {
	Items() []T
}

// FetchAll pulls a collection to completion by following the Link
// header's rel="next" URL until it disappears.
//
// A 2xx page whose body is not JSON ends the walk with whatever was
// accumulated so far: the disputes endpoint answers an empty
// collection with an HTML-typed empty body. Any non-success status or
// undecodable JSON page discards the whole fetch.
func FetchAll[E Envelope[T], T any](ctx context.Context, c *Client, token, resource, startURL string) ([]T, error) {
	var all []T

	pageURL := startURL
	for pageURL != "" {
		items, next, err := fetchPage[E, T](ctx, c, token, resource, pageURL)
		if err != nil {
			return nil, err
		}
		if items == nil {
			break
		}
		all = append(all, items...)
		pageURL = next
	}

	return all, nil
}

// fetchPage returns a nil items slice (with nil error) for the
// non-JSON empty-collection case.
func fetchPage[E Envelope[T], T any](ctx context.Context, c *Client, token, resource, pageURL string) ([]T, string, error) {
	resp, err := c.get(ctx, token, pageURL)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", resource, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &UpstreamError{Op: "fetch " + resource, Status: resp.StatusCode}
	}

	c.metrics.RecordPageFetched(ctx, resource)

	if !isJSONContentType(resp.Header.Get("Content-Type")) {
		return nil, "", nil
	}

	var env E
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, "", fmt.Errorf("decode %s page: %w", resource, err)
	}

	items := env.Items()
	if items == nil {
		items = []T{}
	}
	return items, NextPageURL(resp.Header.Get("Link")), nil
}

func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mediaType == "application/json"
}

// NextPageURL extracts the rel="next" target from a Link header.
// Returns the empty string when there is no next page. A header that
// carries a single bare URL without rel parameters is treated as the
// next page.
func NextPageURL(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	segments := strings.Split(header, ",")
	sawRel := false
	for _, segment := range segments {
		parts := strings.Split(segment, ";")
		target := strings.TrimSpace(parts[0])
		target = strings.TrimPrefix(target, "<")
		target = strings.TrimSuffix(target, ">")

		for _, param := range parts[1:] {
			sawRel = true
			param = strings.TrimSpace(param)
			if param == `rel="next"` || param == "rel=next" {
				return target
			}
		}
	}

	if !sawRel && len(segments) == 1 {
		target := strings.TrimSpace(segments[0])
		target = strings.TrimPrefix(target, "<")
		return strings.TrimSuffix(target, ">")
	}
	return ""
}
