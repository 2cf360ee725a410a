package routerapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	apierrors "github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
)

// Resource family names, each mapping 1:1 to a RouterOS menu per spec §4.5.
const (
	FamilyWireguardInterface = "wireguard-interface"
	FamilyWireguardPeer      = "wireguard-peer"
	FamilyIPAddress          = "ip-address"
	FamilyIPRoute            = "ip-route"
	FamilyFirewallFilter     = "ip-firewall-filter"
	FamilyFirewallNAT        = "ip-firewall-nat"
)

// AllFamilies lists every resource family in deletion order: NAT →
// firewall → routes → addresses → peers → interface. The order is
// load-bearing: deleting the interface first would invalidate dependent
// rules and produce partial failures.
var AllFamilies = []string{
	FamilyFirewallNAT,
	FamilyFirewallFilter,
	FamilyIPRoute,
	FamilyIPAddress,
	FamilyWireguardPeer,
	FamilyWireguardInterface,
}

// Resource is a generic router configuration record: a family-specific
// field set plus an "id" and a "comment" used for ownership filtering.
type Resource map[string]any

func (r Resource) ID() string {
	v, _ := r["id"].(string)
	return v
}

func (r Resource) Comment() string {
	v, _ := r["comment"].(string)
	return v
}

// ConnectionParams describes how to reach one managed device.
type ConnectionParams struct {
	Host       string
	Port       int
	AuthMethod string // "password" or "token"
	Username   string
	Password   string
	Token      string
	UseSSL     bool
	VerifyCert bool
	Timeout    time.Duration
}

func (c ConnectionParams) baseURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// CallRecord is one audit entry for a single HTTP call the client made.
type CallRecord struct {
	Method       string
	Endpoint     string
	RequestBody  string
	ResponseCode int
	ResponseBody string
	Error        string
	Timestamp    time.Time
}

// Recorder captures an audit trail of every call a Client makes. The
// Deployment Engine implements this to persist ApiCallLog rows under the
// running job.
type Recorder interface {
	Record(CallRecord)
}

// Client is a thin, synchronous adapter to a managed router's JSON-over-
// HTTP CRUD API. No RouterOS client library exists anywhere in the
// retrieved example pack, so the transport is hand-rolled on stdlib
// net/http + encoding/json (documented in DESIGN.md).
type Client struct {
	params   ConnectionParams
	http     *http.Client
	recorder Recorder
}

// NewClient builds a Client for one managed device. recorder may be nil.
func NewClient(params ConnectionParams, recorder Recorder) *Client {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{}
	if params.UseSSL && !params.VerifyCert {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &Client{
		params:   params,
		http:     &http.Client{Timeout: timeout, Transport: transport},
		recorder: recorder,
	}
}

func (c *Client) authenticate(req *http.Request) {
	switch c.params.AuthMethod {
	case "token":
		req.Header.Set("Authorization", "Bearer "+c.params.Token)
	default:
		req.SetBasicAuth(c.params.Username, c.params.Password)
	}
}

// do issues one HTTP call and classifies transport failures per spec
// §4.5: auth-failed, connection-refused, timeout, unknown.
func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	endpoint := c.params.baseURL() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authenticate(req)

	record := CallRecord{Method: method, Endpoint: endpoint, RequestBody: string(reqBody), Timestamp: time.Now()}

	resp, err := c.http.Do(req)
	if err != nil {
		record.Error = err.Error()
		if c.recorder != nil {
			c.recorder.Record(record)
		}
		return 0, nil, classifyError(err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	record.ResponseCode = resp.StatusCode
	record.ResponseBody = string(respBody)
	if c.recorder != nil {
		c.recorder.Record(record)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return resp.StatusCode, respBody, apierrors.WithCode(code.ErrRouterAuthFailed, "managed device rejected credentials (status %d)", resp.StatusCode)
	}
	if resp.StatusCode >= 500 {
		return resp.StatusCode, respBody, apierrors.WithCode(code.ErrRouterProtocolError, "managed device returned status %d", resp.StatusCode)
	}
	return resp.StatusCode, respBody, nil
}

func classifyError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apierrors.WithCode(code.ErrRouterTimeout, "managed device call timed out: %v", err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if strings.Contains(urlErr.Err.Error(), "connection refused") || strings.Contains(urlErr.Err.Error(), "no route to host") {
			return apierrors.WithCode(code.ErrRouterUnreachable, "managed device unreachable: %v", err)
		}
	}
	return apierrors.WithCode(code.ErrRouterUnreachable, "managed device call failed: %v", err)
}

// List returns every resource in family, optionally filtered to those
// whose comment contains commentFilter as a substring.
func (c *Client) List(ctx context.Context, family, commentFilter string) ([]Resource, error) {
	path := "/resource/" + family
	if commentFilter != "" {
		path += "?comment_filter=" + url.QueryEscape(commentFilter)
	}
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	var out []Resource
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, apierrors.WithCode(code.ErrRouterProtocolError, "decode list response for %s: %v", family, err)
	}
	return out, nil
}

// Add creates one resource in family.
func (c *Client) Add(ctx context.Context, family string, body Resource) (Resource, error) {
	_, respBody, err := c.do(ctx, http.MethodPost, "/resource/"+family, body)
	if err != nil {
		return nil, err
	}
	var out Resource
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, apierrors.WithCode(code.ErrRouterProtocolError, "decode add response for %s: %v", family, err)
	}
	return out, nil
}

// Update patches one resource in family by id.
func (c *Client) Update(ctx context.Context, family, id string, body Resource) (Resource, error) {
	_, respBody, err := c.do(ctx, http.MethodPatch, "/resource/"+family+"/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	var out Resource
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, apierrors.WithCode(code.ErrRouterProtocolError, "decode update response for %s: %v", family, err)
	}
	return out, nil
}

// Delete removes one resource in family by id.
func (c *Client) Delete(ctx context.Context, family, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, "/resource/"+family+"/"+url.PathEscape(id), nil)
	return err
}
