package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/internal/versions"
	"github.com/localstack-dotnet/localstack-nuget-badge-lambda-sub000/util"
)

const (
	githubAccept   = "application/vnd.github.v3+json"
	githubPageSize = 100
	githubMaxPages = 10
)

// GitHub lists package versions from the organization packages API, newest
// first. The ordering is informational only; the resolver re-sorts by semver.
type GitHub struct {
	BaseURL string
	Org     string
	Token   string
	Client  *http.Client
}

// NewGitHub points at an API root, e.g. "https://api.github.com". An empty
// token sends unauthenticated requests, which the packages API rejects.
func NewGitHub(baseURL, org, token string, client *http.Client) *GitHub {
	return &GitHub{BaseURL: strings.TrimRight(baseURL, "/"), Org: org, Token: token, Client: client}
}

// Name identifies the source in queries and badges
func (s *GitHub) Name() string { return versions.SourceGitHub }

// FetchVersions pages through the published versions of pkg. 401 and 403
// surface as ErrAuthRequired so the operator sees a configuration problem
// instead of a flaky badge; 404 surfaces as ErrNotFound.
func (s *GitHub) FetchVersions(ctx context.Context, pkg string) ([]string, error) {
	headers := map[string]string{"Accept": githubAccept}
	if s.Token != "" {
		headers["Authorization"] = "Bearer " + s.Token
	}

	var all []string
	for page := 1; page <= githubMaxPages; page++ {
		url := fmt.Sprintf("%s/orgs/%s/packages/nuget/%s/versions?per_page=%d&page=%d",
			s.BaseURL, s.Org, pkg, githubPageSize, page)

		var batch []struct {
			Name string `json:"name"`
		}
		if err := fetchJSON(ctx, s.Client, url, headers, &batch); err != nil {
			var he *HTTPError
			if errors.As(err, &he) {
				switch he.StatusCode {
				case http.StatusNotFound:
					return nil, &NotFoundError{Purl: githubPurl(s.Org, pkg)}
				case http.StatusUnauthorized, http.StatusForbidden:
					return nil, fmt.Errorf("%w: configure a token with read:packages scope for %s",
						ErrAuthRequired, githubPurl(s.Org, pkg))
				}
			}
			return nil, fmt.Errorf("fetching github versions: %w", err)
		}

		for _, v := range batch {
			all = append(all, v.Name)
		}
		if len(batch) < githubPageSize {
			break
		}
	}

	util.Logger.Sugar().Debugf("fetched %d versions for %s", len(all), githubPurl(s.Org, pkg))
	return all, nil
}
