// Package ilo reads server health from HPE iLO management processors over
// the Redfish REST API.
package ilo

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ilohealth/hcilo/internal/logger"
)

const (
	// SystemPath is the Redfish resource of the (single) managed server.
	SystemPath = "/redfish/v1/Systems/1/"

	// DefaultTimeout matches the classic iLO client default.
	DefaultTimeout = 60 * time.Second

	maxBodySize = 4 << 20
)

// RedfishClient talks to one iLO over HTTPS with basic authentication.
type RedfishClient struct {
	address       string
	baseURL       string
	creds         Credentials
	http          *http.Client
	retries       int
	retryInterval time.Duration
	log           logger.Logger
}

type options struct {
	timeout    time.Duration
	insecure   bool
	httpClient *http.Client
	retries    int
	log        logger.Logger
}

// Option configures a RedfishClient.
type Option func(*options)

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) Option {
	return func(o *options) { o.insecure = skip }
}

// WithHTTPClient replaces the HTTP client; timeout and TLS options are ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithRetries sets how many extra attempts are made on transport errors and
// 5xx responses. Zero (the default) means a single attempt.
func WithRetries(n int) Option {
	return func(o *options) { o.retries = n }
}

// WithLogger sets the debug logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewRedfishClient creates a client for the iLO at address ("host" or "host:port").
func NewRedfishClient(address string, creds Credentials, opts ...Option) *RedfishClient {
	o := options{
		timeout:  DefaultTimeout,
		insecure: true,
		log:      logger.Noop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: o.timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				// iLOs ship self-signed certificates.
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: o.insecure}, //nolint:gosec
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	return &RedfishClient{
		address:       address,
		baseURL:       baseURL(address),
		creds:         creds,
		http:          httpClient,
		retries:       o.retries,
		retryInterval: 500 * time.Millisecond,
		log:           o.log,
	}
}

// NewDialer returns a Dialer producing Redfish clients with the given options.
func NewDialer(opts ...Option) Dialer {
	return func(address string, creds Credentials) Client {
		return NewRedfishClient(address, creds, opts...)
	}
}

// Address returns the iLO address this client talks to.
func (c *RedfishClient) Address() string {
	return c.address
}

type hpeOem struct {
	AggregateHealthStatus map[string]json.RawMessage `json:"AggregateHealthStatus"`
}

type systemResource struct {
	Name     string `json:"Name"`
	HostName string `json:"HostName"`
	Oem      struct {
		Hpe *hpeOem `json:"Hpe"`
		Hp  *hpeOem `json:"Hp"`
	} `json:"Oem"`
}

// ServerName returns the host name reported by the iLO, falling back to the
// system name and finally to the iLO address.
func (c *RedfishClient) ServerName(ctx context.Context) (string, error) {
	sys, err := c.system(ctx)
	if err != nil {
		return "", err
	}
	for _, name := range []string{sys.HostName, sys.Name} {
		if strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name), nil
		}
	}
	return c.address, nil
}

// HealthAtAGlance returns the aggregate health summary. iLO 5 and later
// publish it under Oem.Hpe, iLO 4 under Oem.Hp.
func (c *RedfishClient) HealthAtAGlance(ctx context.Context) (Glance, error) {
	sys, err := c.system(ctx)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	switch {
	case sys.Oem.Hpe != nil && len(sys.Oem.Hpe.AggregateHealthStatus) > 0:
		raw = sys.Oem.Hpe.AggregateHealthStatus
	case sys.Oem.Hp != nil && len(sys.Oem.Hp.AggregateHealthStatus) > 0:
		raw = sys.Oem.Hp.AggregateHealthStatus
	default:
		return nil, fmt.Errorf("%s: %w", c.address, ErrNoHealthSummary)
	}

	glance := parseAggregateHealth(raw)
	if len(glance) == 0 {
		return nil, fmt.Errorf("%s: %w", c.address, ErrNoHealthSummary)
	}
	return glance, nil
}

func (c *RedfishClient) system(ctx context.Context) (*systemResource, error) {
	var sys systemResource
	if err := c.get(ctx, SystemPath, &sys); err != nil {
		return nil, err
	}
	return &sys, nil
}

// get fetches path and decodes the JSON body into out, retrying transient
// failures when retries are enabled.
func (c *RedfishClient) get(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + path

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("OData-Version", "4.0")

		c.log.Debug("GET %s", url)
		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			// Drain so the connection can be reused.
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
			statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
			if statusErr.Temporary() {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s: %w", url, err))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.retries)), ctx)

	notify := func(err error, wait time.Duration) {
		c.log.Debug("retrying %s in %s: %v", url, wait, err)
	}
	return backoff.RetryNotify(operation, b, notify)
}

func baseURL(address string) string {
	if strings.HasPrefix(address, "https://") || strings.HasPrefix(address, "http://") {
		return strings.TrimSuffix(address, "/")
	}
	return "https://" + address
}

// HostPort returns the host:port a client for address connects to. A port in
// the address wins, then defaultPort, then the scheme's port (443 unless the
// address says http://).
func HostPort(address, defaultPort string) string {
	u, err := url.Parse(baseURL(address))
	if err != nil || u.Hostname() == "" {
		if defaultPort == "" {
			defaultPort = "443"
		}
		return net.JoinHostPort(address, defaultPort)
	}
	if port := u.Port(); port != "" {
		return net.JoinHostPort(u.Hostname(), port)
	}
	if defaultPort == "" {
		defaultPort = "443"
		if u.Scheme == "http" {
			defaultPort = "80"
		}
	}
	return net.JoinHostPort(u.Hostname(), defaultPort)
}
