package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestNuGetFetchVersions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/newtonsoft.json/index.json" {
			t.Errorf("unexpected path %s, flat container ids must be lowercase", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("expected User-Agent %q, got %q", userAgent, ua)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"versions":["12.0.3","13.0.1","13.0.3"]}`))
	}))
	defer srv.Close()

	src := NewNuGet(srv.URL, srv.Client())
	got, err := src.FetchVersions(context.Background(), "Newtonsoft.Json")
	if err != nil {
		t.Fatalf("FetchVersions failed: %v", err)
	}

	want := []string{"12.0.3", "13.0.1", "13.0.3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNuGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewNuGet(srv.URL, srv.Client())
	_, err := src.FetchVersions(context.Background(), "no.such.package")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNuGetRetriesTransientFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"versions":["1.0.0"]}`))
	}))
	defer srv.Close()

	src := NewNuGet(srv.URL, srv.Client())
	got, err := src.FetchVersions(context.Background(), "flaky.package")
	if err != nil {
		t.Fatalf("FetchVersions failed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected one retry after a 502, saw %d attempts", attempts)
	}
	if len(got) != 1 || got[0] != "1.0.0" {
		t.Errorf("expected [1.0.0], got %v", got)
	}
}

func TestNuGetClientErrorIsPermanent(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	src := NewNuGet(srv.URL, srv.Client())
	_, err := src.FetchVersions(context.Background(), "some.package")
	if err == nil {
		t.Fatal("expected an error for HTTP 400")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("a 400 must not masquerade as not-found: %v", err)
	}
	if attempts != 1 {
		t.Errorf("client errors must not retry, saw %d attempts", attempts)
	}

	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusBadRequest {
		t.Errorf("expected a wrapped HTTPError with status 400, got %v", err)
	}
}
