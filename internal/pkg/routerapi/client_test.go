package routerapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/wanoverlay/manager/internal/pkg/configgen"
)

type recorderSpy struct {
	records []CallRecord
}

func (r *recorderSpy) Record(c CallRecord) { r.records = append(r.records, c) }

func testClient(t *testing.T, handler http.Handler) (*Client, *recorderSpy) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse test server URL: %v", err)
	}
	host := u.Hostname()
	port, _ := strconv.Atoi(u.Port())

	rec := &recorderSpy{}
	client := NewClient(ConnectionParams{Host: host, Port: port, AuthMethod: "password", Username: "admin", Password: "pw"}, rec)
	return client, rec
}

func TestTestConnection(t *testing.T) {
	client, rec := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Identity{Name: "router1", RouterOSVersion: "7.15"})
	}))

	id, err := client.TestConnection(context.Background())
	if err != nil {
		t.Fatalf("TestConnection() error = %v", err)
	}
	if id.Name != "router1" {
		t.Errorf("identity = %+v", id)
	}
	if len(rec.records) != 1 {
		t.Errorf("expected one audit record, got %d", len(rec.records))
	}
}

func TestTestConnectionAuthFailed(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	if _, err := client.TestConnection(context.Background()); err == nil {
		t.Fatal("TestConnection() succeeded against a 401, want error")
	}
}

func TestRemoveManagedResourcesOnlyDeletesManaged(t *testing.T) {
	foreign := Resource{"id": "*1", "comment": "some-other-tool:rule"}
	managed := Resource{"id": "*2", "comment": configgen.OwnershipPrefix + "rule"}

	var deleted []string
	mux := http.NewServeMux()
	for _, family := range AllFamilies {
		family := family
		mux.HandleFunc("/resource/"+family, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]Resource{foreign, managed})
		})
		mux.HandleFunc("/resource/"+family+"/*1", func(w http.ResponseWriter, r *http.Request) {
			t.Fatalf("foreign resource %s/*1 was deleted", family)
		})
		mux.HandleFunc("/resource/"+family+"/*2", func(w http.ResponseWriter, r *http.Request) {
			deleted = append(deleted, family)
			w.WriteHeader(http.StatusOK)
		})
	}

	client, _ := testClient(t, mux)
	if err := client.RemoveManagedResources(context.Background()); err != nil {
		t.Fatalf("RemoveManagedResources() error = %v", err)
	}
	if len(deleted) != len(AllFamilies) {
		t.Fatalf("deleted %d families, want %d: %v", len(deleted), len(AllFamilies), deleted)
	}
}
