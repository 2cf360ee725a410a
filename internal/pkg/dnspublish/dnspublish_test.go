package dnspublish

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"My Web App!":  "my-web-app",
		"  trim--me  ": "trim-me",
		"already-ok":   "already-ok",
		"___":          "service",
		"":              "service",
		"Café 123":     "caf-123",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildHostname(t *testing.T) {
	c := NewClient("http://pihole.local/api", "tok", "lan", true)

	got := c.BuildHostname("My Service", "abcdef1234", "Home WAN")
	want := "my-service.home-wan.abcdef.lan"
	if got != want {
		t.Errorf("BuildHostname = %q, want %q", got, want)
	}

	got = c.BuildHostname("solo", "short", "")
	want = "solo.short.lan"
	if got != want {
		t.Errorf("BuildHostname (no wan) = %q, want %q", got, want)
	}
}

func TestIsConfigured(t *testing.T) {
	if (&Client{}).IsConfigured() {
		t.Fatal("empty client should not be configured")
	}
	c := NewClient("http://x", "tok", "lan", true)
	if !c.IsConfigured() {
		t.Fatal("client with url and token should be configured")
	}
}

func TestAddRecordNoopWhenUnconfigured(t *testing.T) {
	c := NewClient("", "", "lan", true)
	// Must not panic or block even though no server is listening.
	c.AddRecord(context.Background(), "host.lan", "10.0.0.1")
	c.DeleteRecord(context.Background(), "host.lan", "10.0.0.1")
}

func TestAddRecordCallsServer(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token", "lan", false)
	c.AddRecord(context.Background(), "svc.lan", "10.0.0.5")

	if gotQuery.Get("addhostname") != "svc.lan" {
		t.Errorf("addhostname = %q", gotQuery.Get("addhostname"))
	}
	if gotQuery.Get("addip") != "10.0.0.5" {
		t.Errorf("addip = %q", gotQuery.Get("addip"))
	}
	if gotQuery.Get("token") != "secret-token" {
		t.Errorf("token = %q", gotQuery.Get("token"))
	}
}
