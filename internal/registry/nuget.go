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

// NuGet reads the v3 flat-container version index. No credential is needed;
// the index is public and unordered.
type NuGet struct {
	BaseURL string
	Client  *http.Client
}

// NewNuGet points at a flat-container root, e.g.
// "https://api.nuget.org/v3-flatcontainer"
func NewNuGet(baseURL string, client *http.Client) *NuGet {
	return &NuGet{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

// Name identifies the source in queries and badges
func (s *NuGet) Name() string { return versions.SourceNuGet }

// FetchVersions lists every published version of pkg. The flat container
// indexes packages by lowercase id.
func (s *NuGet) FetchVersions(ctx context.Context, pkg string) ([]string, error) {
	url := fmt.Sprintf("%s/%s/index.json", s.BaseURL, strings.ToLower(pkg))

	var payload struct {
		Versions []string `json:"versions"`
	}
	if err := fetchJSON(ctx, s.Client, url, nil, &payload); err != nil {
		var he *HTTPError
		if errors.As(err, &he) && he.IsNotFound() {
			return nil, &NotFoundError{Purl: nugetPurl(pkg)}
		}
		return nil, fmt.Errorf("fetching nuget versions: %w", err)
	}

	util.Logger.Sugar().Debugf("fetched %d versions for %s", len(payload.Versions), nugetPurl(pkg))
	return payload.Versions, nil
}
