package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cartograph-ai/cartograph/pkg/annotate"
)

const annotatePath = "/annotate"

// HTTPAnnotator sends text to an annotation server (a spaCy-style
// bridge exposing sentence segmentation, part-of-speech tagging,
// dependency parsing and named-entity recognition over HTTP) and
// decodes the response into an annotate.Annotation.
//
// An HTTPAnnotator should be created using NewHTTPAnnotator.
type HTTPAnnotator struct {
	baseURL *url.URL
	apiKey  string

	httpClient *http.Client
}

// NewHTTPAnnotatorParams contains configuration for creating an HTTPAnnotator.
type NewHTTPAnnotatorParams struct {
	BaseURL string
	ApiKey  string
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewHTTPAnnotator creates an annotator backed by the annotation server
// at the given base URL. The optional API key is sent as a bearer token.
func NewHTTPAnnotator(params NewHTTPAnnotatorParams) (*HTTPAnnotator, error) {
	u, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid annotation server url: %w", err)
	}

	httpClient := http.DefaultClient
	if params.ApiKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.ApiKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	return &HTTPAnnotator{
		baseURL:    u,
		apiKey:     params.ApiKey,
		httpClient: httpClient,
	}, nil
}

type annotateRequest struct {
	Text string `json:"text"`
}

// Annotate sends the text to the annotation server and returns its
// analysis. Empty text yields an empty annotation without a request.
func (a *HTTPAnnotator) Annotate(ctx context.Context, text string) (*annotate.Annotation, error) {
	if strings.TrimSpace(text) == "" {
		return &annotate.Annotation{}, nil
	}

	body, err := json.Marshal(annotateRequest{Text: text})
	if err != nil {
		return nil, err
	}

	endpoint := a.baseURL.JoinPath(annotatePath).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf(
			"annotation server returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(payload)),
		)
	}

	var annotation annotate.Annotation
	if err := json.NewDecoder(resp.Body).Decode(&annotation); err != nil {
		return nil, fmt.Errorf("failed to decode annotation: %w", err)
	}

	return &annotation, nil
}
