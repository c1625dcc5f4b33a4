// Copyright 2024 ters-golemi
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package catalyst

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/ters-golemi/Cisco-CCC-PNP/utils"
)

const (
	authURI            = "/dna/system/api/v1/auth/token"
	templateURI        = "/dna/intent/api/v1/template-programmer/template"
	templateVersionURI = "/dna/intent/api/v1/template-programmer/template/version"
	pnpDeviceURI       = "/dna/intent/api/v1/onboarding/pnp-device"
	siteClaimURI       = "/dna/intent/api/v1/onboarding/pnp-device/site-claim"
	siteURI            = "/dna/intent/api/v1/site"
	taskURI            = "/dna/intent/api/v1/task/"

	headerAuthToken = "X-Auth-Token"
)

// tokenExpiryMargin is subtracted from the token lifetime when deciding
// whether a token is still usable
const tokenExpiryMargin = 300 * time.Second

const (
	defaultRequestTimeout = 30 * time.Second
	defaultClaimTimeout   = 60 * time.Second
	defaultTokenLifetime  = 3600 * time.Second
	defaultPollInterval   = 5 * time.Second
)

// Client is the Catalyst Center API client
//
//go:generate ../../utils/mockgen.sh
type Client interface {
	Authenticate(ctx context.Context) error
	CreateTemplate(ctx context.Context, tmpl TemplateRequest) (string, error)
	ListPnPDevices(ctx context.Context) ([]PnPDevice, error)
	DeviceStatus(ctx context.Context, deviceID string) (*PnPDevice, error)
	ClaimDevice(ctx context.Context, claim ClaimRequest) (*ClaimResult, error)
	ListSites(ctx context.Context) ([]Site, error)
	CreateSite(ctx context.Context, name, parentName string) (string, error)
	WaitForTask(
		ctx context.Context, taskID string, maxWait time.Duration,
	) (string, error)
}

// Config holds the connection settings for a Catalyst Center instance.
// Timeouts and lifetimes are in seconds; zero values fall back to the
// package defaults.
type Config struct {
	Host           string
	Username       string
	Password       string
	VerifySSL      bool
	RequestTimeout int
	ClaimTimeout   int
	TokenLifetime  int
	PollInterval   int
}

type ClientOptions struct {
	Client *http.Client
	Clock  utils.Clock
	// PollInterval overrides the configured task poll interval; used by
	// tests to poll at sub-second intervals
	PollInterval time.Duration
}

// session owns the bearer token. Refreshing it is idempotent; every
// authenticated request checks validity first.
type session struct {
	token    string
	issuedAt time.Time
	lifetime time.Duration
}

func (s session) valid(now time.Time) bool {
	if s.token == "" {
		return false
	}
	return now.Sub(s.issuedAt) < s.lifetime-tokenExpiryMargin
}

type client struct {
	baseURL        string
	username       string
	password       string
	requestTimeout time.Duration
	claimTimeout   time.Duration
	tokenLifetime  time.Duration
	pollInterval   time.Duration
	httpClient     *http.Client
	clock          utils.Clock
	sess           session
}

// NewClient returns a new Catalyst Center client
func NewClient(conf Config, opts ...ClientOptions) Client {
	var clientOpts ClientOptions
	for _, opt := range opts {
		if opt.Client != nil {
			clientOpts.Client = opt.Client
		}
		if opt.Clock != nil {
			clientOpts.Clock = opt.Clock
		}
		if opt.PollInterval > 0 {
			clientOpts.PollInterval = opt.PollInterval
		}
	}
	if clientOpts.Client == nil {
		clientOpts.Client = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !conf.VerifySSL,
				},
			},
		}
	}
	if clientOpts.Clock == nil {
		clientOpts.Clock = utils.RealClock{}
	}
	baseURL := conf.Host
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	pollInterval := secondsOrDefault(conf.PollInterval, defaultPollInterval)
	if clientOpts.PollInterval > 0 {
		pollInterval = clientOpts.PollInterval
	}
	return &client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		username:       conf.Username,
		password:       conf.Password,
		requestTimeout: secondsOrDefault(conf.RequestTimeout, defaultRequestTimeout),
		claimTimeout:   secondsOrDefault(conf.ClaimTimeout, defaultClaimTimeout),
		tokenLifetime:  secondsOrDefault(conf.TokenLifetime, defaultTokenLifetime),
		pollInterval:   pollInterval,
		httpClient:     clientOpts.Client,
		clock:          clientOpts.Clock,
	}
}

func secondsOrDefault(seconds int, def time.Duration) time.Duration {
	if seconds <= 0 {
		return def
	}
	return time.Duration(seconds) * time.Second
}

// Authenticate performs one credentialed token exchange and stores the
// token on success
func (c *client) Authenticate(ctx context.Context) error {
	l := log.FromContext(ctx)

	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(
		reqCtx, http.MethodPost, c.baseURL+authURI, nil,
	)
	if err != nil {
		return errors.Wrap(err, "catalyst: error preparing auth request")
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	rsp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer rsp.Body.Close()

	switch {
	case rsp.StatusCode == http.StatusOK:
	case rsp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidCredentials
	case rsp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	default:
		body, _ := io.ReadAll(rsp.Body)
		return &OperationError{Status: rsp.StatusCode, Body: string(body)}
	}

	var auth authResponse
	if err := json.NewDecoder(rsp.Body).Decode(&auth); err != nil {
		return errors.Wrap(err, "catalyst: error parsing auth response")
	}
	if auth.Token == "" {
		return errors.New("catalyst: auth response contains no token")
	}
	c.sess = session{
		token:    auth.Token,
		issuedAt: c.clock.Now(),
		lifetime: c.tokenLifetime,
	}
	l.Info("authenticated with Catalyst Center")
	return nil
}

// ensureAuthenticated refreshes the session only when the current token is
// absent or within the expiry margin
func (c *client) ensureAuthenticated(ctx context.Context) error {
	if c.sess.valid(c.clock.Now()) {
		return nil
	}
	return c.Authenticate(ctx)
}

// do issues one authenticated request. A 401 invalidates the session and
// the request is retried after exactly one re-authentication; a second 401
// is terminal. Any other non-2xx status is terminal for the operation.
func (c *client) do(
	ctx context.Context,
	method, uri string,
	payload interface{},
	timeout time.Duration,
) ([]byte, int, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, 0, errors.Wrap(err, "catalyst: error encoding request payload")
		}
	}
	for attempt := 0; ; attempt++ {
		if err := c.ensureAuthenticated(ctx); err != nil {
			return nil, 0, err
		}
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		req, err := http.NewRequestWithContext(
			reqCtx, method, c.baseURL+uri, bytes.NewReader(body),
		)
		if err != nil {
			cancel()
			return nil, 0, errors.Wrap(err, "catalyst: error preparing request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set(headerAuthToken, c.sess.token)

		rsp, err := c.httpClient.Do(req)
		if err != nil {
			cancel()
			return nil, 0, &TransportError{Err: err}
		}
		rspBody, err := io.ReadAll(rsp.Body)
		rsp.Body.Close()
		cancel()
		if err != nil {
			return nil, 0, &TransportError{Err: err}
		}

		switch {
		case rsp.StatusCode >= http.StatusOK && rsp.StatusCode < 300:
			return rspBody, rsp.StatusCode, nil
		case rsp.StatusCode == http.StatusUnauthorized:
			if attempt == 0 {
				// token rejected mid-flight
				c.sess = session{}
				continue
			}
			return nil, rsp.StatusCode, ErrUnauthorized
		case rsp.StatusCode == http.StatusForbidden:
			return nil, rsp.StatusCode, ErrForbidden
		default:
			return nil, rsp.StatusCode, &OperationError{
				Status: rsp.StatusCode,
				Body:   string(rspBody),
			}
		}
	}
}
