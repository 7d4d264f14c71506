package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func release(tag string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/r"}`))
	}))
}

func TestCheckNewer(t *testing.T) {
	srv := release("v1.4.0")
	defer srv.Close()

	res, err := Checker{URL: srv.URL}.Check(context.Background(), "v1.3.0")
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.LatestVersion != "1.4.0" || res.URL != "https://example.com/r" {
		t.Errorf("Check = %+v, want 1.4.0", res)
	}
}

func TestCheckCurrent(t *testing.T) {
	srv := release("v1.3.0")
	defer srv.Close()

	res, err := Checker{URL: srv.URL}.Check(context.Background(), "1.3.0")
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Errorf("Check = %+v, want nil for the current version", res)
	}
}

func TestCheckBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := (Checker{URL: srv.URL}).Check(context.Background(), "1.0.0"); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}

func TestCheckOlderReleaseIgnored(t *testing.T) {
	srv := release("v1.2.0")
	defer srv.Close()

	res, err := Checker{URL: srv.URL}.Check(context.Background(), "1.3.0")
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Errorf("Check = %+v, want nil for an older release", res)
	}
}

func TestCheckDevBuild(t *testing.T) {
	srv := release("v0.1.0")
	defer srv.Close()

	res, err := Checker{URL: srv.URL}.Check(context.Background(), "dev")
	if err != nil {
		t.Fatal(err)
	}
	if res == nil || res.LatestVersion != "0.1.0" {
		t.Errorf("Check = %+v, want 0.1.0 for a dev build", res)
	}
}
