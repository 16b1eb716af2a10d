package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// DefaultRegistryURL is the github rest api.
	DefaultRegistryURL = "https://api.github.com"

	useragent = "zed-text-language-server"
)

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name string
	URL  string
}

// Release is a published release and its assets, in the order the registry lists them.
type Release struct {
	Version string
	Assets  []Asset
}

// Asset returns the asset whose name is exactly name.
func (r Release) Asset(name string) (Asset, error) {
	for _, asset := range r.Assets {
		if asset.Name == name {
			return asset, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: %s not found in release %s", ErrAssetNotFound, name, r.Version)
}

// ReleaseOptions filters which releases qualify as latest.
type ReleaseOptions struct {
	// RequireAssets skips releases without any attached asset.
	RequireAssets bool
	// PreRelease allows releases flagged as prerelease.
	PreRelease bool
}

// Registry queries github releases.
type Registry struct {
	baseurl string
	client  *http.Client
	token   string
	log     logger
}

// RegistryOption customizes a [Registry] built by [NewRegistry].
type RegistryOption func(r *Registry)

// WithRegistryURL points the registry at a different api root,
// e.g. a github enterprise instance or a test server.
func WithRegistryURL(url string) RegistryOption {
	return func(r *Registry) {
		r.baseurl = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets the client used for registry requests.
func WithHTTPClient(client *http.Client) RegistryOption {
	return func(r *Registry) {
		r.client = client
	}
}

// WithToken authenticates registry requests, raising github's rate limits.
func WithToken(token string) RegistryOption {
	return func(r *Registry) {
		r.token = token
	}
}

// WithRegistryLog sets where the registry prints its step logs; nil silences them.
func WithRegistryLog(w io.Writer) RegistryOption {
	return func(r *Registry) {
		r.log = newlogger(w)
	}
}

// NewRegistry constructs a registry client for the public github api.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := Registry{
		baseurl: DefaultRegistryURL,
		client:  http.DefaultClient,
		log:     newlogger(os.Stderr),
	}

	for _, opt := range opts {
		opt(&r)
	}

	return &r
}

// Latest returns the newest release of repo ("owner/name") that qualifies under opts.
// Releases are listed newest first by the api; drafts never qualify.
func (r *Registry) Latest(ctx context.Context, repo string, opts ReleaseOptions) (Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", r.baseurl, repo)
	r.log.detail(fmt.Sprintf("looking up latest release of %s", repo))

	body, err := r.get(ctx, url)
	if err != nil {
		return Release{}, fmt.Errorf("%w for %s: %w", ErrRegistry, repo, err)
	}

	if !gjson.ValidBytes(body) {
		return Release{}, fmt.Errorf("%w for %s: malformed response", ErrRegistry, repo)
	}

	listing := gjson.ParseBytes(body)
	if !listing.IsArray() {
		return Release{}, fmt.Errorf("%w for %s: unexpected response: %s", ErrRegistry, repo, listing.Get("message").String())
	}

	var (
		found   bool
		release Release
	)
	listing.ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("draft").Bool() {
			return true
		}
		if entry.Get("prerelease").Bool() && !opts.PreRelease {
			return true
		}

		assets := entry.Get("assets").Array()
		if opts.RequireAssets && len(assets) == 0 {
			return true
		}

		release = Release{Version: entry.Get("tag_name").String()}
		for _, asset := range assets {
			release.Assets = append(
				release.Assets,
				Asset{
					Name: asset.Get("name").String(),
					URL:  asset.Get("browser_download_url").String(),
				},
			)
		}
		found = true
		return false
	})

	if !found {
		return Release{}, fmt.Errorf("%w for %s: no qualifying release", ErrRegistry, repo)
	}

	r.log.detail(fmt.Sprintf("found %s with %d assets", release.Version, len(release.Assets)))
	return release, nil
}

func (r *Registry) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", useragent)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("received unexpected response: http%d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}
