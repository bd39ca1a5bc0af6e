package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// Source delivers the raw manifest body
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// NewSource picks a source from the location: http(s) URLs, gs://bucket/object, or a local path
func NewSource(location string, httpClient *http.Client) (Source, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, errors.New("empty manifest location")
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, httpClient), nil
	case strings.HasPrefix(location, "gs://"):
		bucket, object, ok := strings.Cut(strings.TrimPrefix(location, "gs://"), "/")
		if !ok || bucket == "" || object == "" {
			return nil, fmt.Errorf("invalid storage location %q: expected gs://bucket/object", location)
		}
		return NewGCSSource(bucket, object), nil
	default:
		return FileSource{Path: strings.TrimPrefix(location, "file://")}, nil
	}
}

// HTTPSource fetches the manifest from a frames endpoint with a single GET
type HTTPSource struct {
	URL    string
	client *http.Client
}

// NewHTTPSource creates an HTTP source; a nil client uses http.DefaultClient
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{URL: url, client: client}
}

func (s *HTTPSource) String() string { return s.URL }

// Fetch performs the request and returns the body of a 2xx response
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &LoadError{Kind: TransportError, Source: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &LoadError{Kind: TransportError, Source: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Kind: ProtocolError, Source: s.URL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Kind: TransportError, Source: s.URL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

type objectOpener func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

// GCSSource reads the manifest object from a Cloud Storage bucket
type GCSSource struct {
	Bucket string
	Object string
	open   objectOpener
}

// NewGCSSource creates a source for gs://bucket/object
func NewGCSSource(bucket, object string) *GCSSource {
	return &GCSSource{Bucket: bucket, Object: object, open: openGCSObject}
}

func (s *GCSSource) String() string { return fmt.Sprintf("gs://%s/%s", s.Bucket, s.Object) }

// Fetch downloads the object
func (s *GCSSource) Fetch(ctx context.Context) ([]byte, error) {
	reader, err := s.open(ctx, s.Bucket, s.Object)
	if err != nil {
		kind := TransportError
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			kind = ProtocolError
		}
		return nil, &LoadError{Kind: kind, Source: s.String(), Err: err}
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &LoadError{Kind: TransportError, Source: s.String(), Err: fmt.Errorf("read object: %w", err)}
	}
	return body, nil
}

// clientReader closes the storage client together with the object reader
type clientReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *clientReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func openGCSObject(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	reader, err := client.Bucket(bucket).Object(strings.TrimPrefix(object, "/")).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("Object(%q).NewReader: %w", object, err)
	}
	return &clientReader{Reader: reader, client: client}, nil
}

// FileSource reads a manifest written by the frame extractor on local disk
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

// Fetch reads the file
func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	body, err := os.ReadFile(s.Path)
	if err != nil {
		kind := TransportError
		if errors.Is(err, os.ErrNotExist) {
			kind = ProtocolError
		}
		return nil, &LoadError{Kind: kind, Source: s.Path, Err: err}
	}
	return body, nil
}
