package dnspublish

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

var slugPattern = regexp.MustCompile(`[^a-zA-Z0-9-]`)
var dashRun = regexp.MustCompile(`-+`)

// Slug lowercases name, replaces every run of non-alphanumeric/dash
// characters with a single dash, and trims leading/trailing dashes.
// Mirrors pihole.py's _slugify.
func Slug(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	s = dashRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "service"
	}
	return s
}

// Client is a thin publisher for a Pi-hole-style local-DNS side channel.
// It is entirely optional: when no API URL/token is configured, every
// method is a no-op, and every call swallows its own errors — a DNS
// record failing to publish must never fail the service create that
// triggered it.
type Client struct {
	apiURL     string
	token      string
	dnsSuffix  string
	verifyCert bool
	http       *http.Client
}

// NewClient builds a Client. apiURL/token empty means "not configured":
// IsConfigured reports false and every publish call is a no-op.
func NewClient(apiURL, token, dnsSuffix string, verifyCert bool) *Client {
	if dnsSuffix == "" {
		dnsSuffix = "lan"
	}
	transport := http.DefaultTransport
	return &Client{
		apiURL:     apiURL,
		token:      token,
		dnsSuffix:  dnsSuffix,
		verifyCert: verifyCert,
		http:       &http.Client{Timeout: 10 * time.Second, Transport: transport},
	}
}

// IsConfigured reports whether both an API URL and a token are set.
func (c *Client) IsConfigured() bool {
	return c.apiURL != "" && c.token != ""
}

// BuildHostname derives the DNS hostname for a published service:
// slug(serviceName) + "." + slug(wanName) + "." + first6(serviceID) + "." + dnsSuffix.
// wanName may be empty, in which case that label is omitted.
func (c *Client) BuildHostname(serviceName, serviceID, wanName string) string {
	labels := []string{Slug(serviceName)}
	if wanName != "" {
		labels = append(labels, Slug(wanName))
	}
	idSuffix := serviceID
	if len(idSuffix) > 6 {
		idSuffix = idSuffix[:6]
	}
	labels = append(labels, idSuffix, c.dnsSuffix)
	return strings.Join(labels, ".")
}

// AddRecord publishes (hostname, ip). A no-op when not configured; any
// transport error is logged and swallowed, never returned.
func (c *Client) AddRecord(ctx context.Context, hostname, ip string) {
	if !c.IsConfigured() {
		return
	}
	c.call(ctx, url.Values{
		"list":        {"1"},
		"addhostname": {hostname},
		"addip":       {ip},
		"token":       {c.token},
	})
}

// DeleteRecord removes a previously published (hostname, ip) pair. Same
// no-op/swallow-errors semantics as AddRecord.
func (c *Client) DeleteRecord(ctx context.Context, hostname, ip string) {
	if !c.IsConfigured() {
		return
	}
	c.call(ctx, url.Values{
		"list":        {"1"},
		"delhostname": {hostname},
		"ip":          {ip},
		"token":       {c.token},
	})
}

func (c *Client) call(ctx context.Context, params url.Values) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		klog.V(2).InfoS("dnspublish: build request failed", "error", err)
		return
	}
	resp, err := c.http.Do(req)
	if err != nil {
		klog.V(2).InfoS("dnspublish: call failed", "error", err)
		return
	}
	defer resp.Body.Close()
}
