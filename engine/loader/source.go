package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
)

// AssetSource provides read-only access to the static files a model is built from.
// Paths are slash-separated and relative to the source root.
type AssetSource interface {
	// Open starts reading the asset at p.
	//
	// Parameters:
	//   - ctx: cancels the fetch for sources that support it
	//   - p: slash-separated path relative to the source root
	//
	// Returns:
	//   - io.ReadCloser: the asset contents; the caller must close it
	//   - int64: the asset size in bytes, or -1 when unknown
	//   - error: wraps ErrAssetNotFound when the asset does not exist
	Open(ctx context.Context, p string) (io.ReadCloser, int64, error)

	// String describes the source for log lines.
	String() string
}

// NewSource picks an asset source for root: an HTTP source when root is an http(s) URL,
// otherwise a directory source.
//
// Parameters:
//   - root: directory path or base URL
//
// Returns:
//   - AssetSource: the matching source
func NewSource(root string) AssetSource {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return NewHTTPSource(root, nil)
	}
	return NewDirSource(root)
}

// fsSource reads assets from an fs.FS.
type fsSource struct {
	fsys fs.FS
	name string
}

var _ AssetSource = &fsSource{}

// NewDirSource creates an AssetSource rooted at a directory on disk.
//
// Parameters:
//   - root: the directory holding the assets
//
// Returns:
//   - AssetSource: the directory source
func NewDirSource(root string) AssetSource {
	return &fsSource{fsys: os.DirFS(root), name: root}
}

// NewFSSource creates an AssetSource over any fs.FS, such as an embed.FS or fstest.MapFS.
//
// Parameters:
//   - fsys: the file system holding the assets
//
// Returns:
//   - AssetSource: the file system source
func NewFSSource(fsys fs.FS) AssetSource {
	return &fsSource{fsys: fsys, name: "fs"}
}

func (s *fsSource) Open(ctx context.Context, p string) (io.ReadCloser, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	p = path.Clean(strings.TrimPrefix(p, "/"))
	f, err := s.fsys.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: %s", ErrAssetNotFound, p)
		}
		return nil, 0, fmt.Errorf("failed to open %s: %w", p, err)
	}

	size := int64(-1)
	if info, statErr := f.Stat(); statErr == nil {
		if info.IsDir() {
			f.Close()
			return nil, 0, fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, p)
		}
		size = info.Size()
	}
	return f, size, nil
}

func (s *fsSource) String() string {
	return s.name
}

// httpSource fetches assets with GET requests relative to a base URL.
type httpSource struct {
	base   *url.URL
	raw    string
	client *http.Client
}

var _ AssetSource = &httpSource{}

// NewHTTPSource creates an AssetSource that fetches assets over HTTP(S).
//
// Parameters:
//   - baseURL: the URL assets are resolved against; a trailing slash is implied
//   - client: the HTTP client to use, or nil for http.DefaultClient
//
// Returns:
//   - AssetSource: the HTTP source
func NewHTTPSource(baseURL string, client *http.Client) AssetSource {
	if client == nil {
		client = http.DefaultClient
	}
	raw := baseURL
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("loader: invalid base URL %q: %v", baseURL, err))
	}
	return &httpSource{base: base, raw: raw, client: client}
}

func (s *httpSource) Open(ctx context.Context, p string) (io.ReadCloser, int64, error) {
	ref, err := url.Parse(strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid asset path %q: %w", p, err)
	}
	u := s.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request for %s: %w", u, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch %s: %w", u, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, 0, fmt.Errorf("%w: %s", ErrAssetNotFound, u)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, 0, fmt.Errorf("failed to fetch %s: %s", u, resp.Status)
	}
	return resp.Body, resp.ContentLength, nil
}

func (s *httpSource) String() string {
	return s.raw
}
