// Package registry implements the upstream version-list sources consulted
// by the badge endpoints: the NuGet flat-container index and the GitHub
// organization package listing.
package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/package-url/packageurl-go"
)

// packageNamePattern matches the package ids both registries accept
var packageNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidPackageName reports whether name is a well-formed package id
func ValidPackageName(name string) bool {
	return packageNamePattern.MatchString(name)
}

// Sentinel error kinds the handlers translate to the HTTP status policy
var (
	// ErrNotFound marks a package absent upstream. Absence is a valid
	// badge outcome, never a hard failure.
	ErrNotFound = errors.New("package not found")

	// ErrAuthRequired marks a missing or rejected credential, an operator
	// configuration problem rather than a per-request one.
	ErrAuthRequired = errors.New("authentication required")
)

// Source lists all published version strings for a package
type Source interface {
	Name() string
	FetchVersions(ctx context.Context, pkg string) ([]string, error)
}

// HTTPError carries the status and URL of a failed upstream response
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// IsNotFound reports whether the response was a 404
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NotFoundError wraps ErrNotFound with the coordinates that missed
type NotFoundError struct {
	Purl string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found upstream", e.Purl)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func nugetPurl(name string) string {
	p := packageurl.PackageURL{Type: packageurl.TypeNuget, Name: name}
	return p.ToString()
}

func githubPurl(org, name string) string {
	p := packageurl.PackageURL{Type: packageurl.TypeGithub, Namespace: org, Name: name}
	return p.ToString()
}
