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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ters-golemi/Cisco-CCC-PNP/utils"
)

// controllerStub is a scriptable fake Catalyst Center. Every auth request
// returns a fresh token; other requests are answered by the handler for
// their URI path.
type controllerStub struct {
	srv       *httptest.Server
	authCalls int32
	tokens    int32
	handlers  map[string]http.HandlerFunc
}

func newControllerStub() *controllerStub {
	stub := &controllerStub{
		handlers: map[string]http.HandlerFunc{},
	}
	stub.srv = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == authURI {
				atomic.AddInt32(&stub.authCalls, 1)
				n := atomic.AddInt32(&stub.tokens, 1)
				w.WriteHeader(http.StatusOK)
				_ = json.NewEncoder(w).Encode(authResponse{
					Token: "token-" + strconv.Itoa(int(n)),
				})
				return
			}
			if h, ok := stub.handlers[r.URL.Path]; ok {
				h(w, r)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		},
	))
	return stub
}

func (s *controllerStub) handle(path string, h http.HandlerFunc) {
	s.handlers[path] = h
}

func (s *controllerStub) client(opts ...ClientOptions) Client {
	return NewClient(Config{
		Host:     s.srv.URL,
		Username: "admin",
		Password: "secret",
	}, opts...)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		Name string

		ResponseCode int
		ResponseBody interface{}

		Error error
	}{{
		Name:         "ok",
		ResponseCode: http.StatusOK,
		ResponseBody: authResponse{Token: "token-1"},
	}, {
		Name:         "error, invalid credentials",
		ResponseCode: http.StatusUnauthorized,
		Error:        ErrInvalidCredentials,
	}, {
		Name:         "error, insufficient privileges",
		ResponseCode: http.StatusForbidden,
		Error:        ErrForbidden,
	}, {
		Name:         "error, internal server error",
		ResponseCode: http.StatusInternalServerError,
		Error:        &OperationError{Status: http.StatusInternalServerError},
	}, {
		Name:         "error, empty token",
		ResponseCode: http.StatusOK,
		ResponseBody: authResponse{},
		Error:        assert.AnError,
	}}

	for i := range testCases {
		tc := testCases[i]
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					user, pass, ok := r.BasicAuth()
					assert.True(t, ok)
					assert.Equal(t, "admin", user)
					assert.Equal(t, "secret", pass)
					w.WriteHeader(tc.ResponseCode)
					if tc.ResponseBody != nil {
						_ = json.NewEncoder(w).Encode(tc.ResponseBody)
					}
				},
			))
			defer srv.Close()

			client := NewClient(Config{
				Host:     srv.URL,
				Username: "admin",
				Password: "secret",
			})
			err := client.Authenticate(context.Background())
			if tc.Error == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			switch expected := tc.Error.(type) {
			case *OperationError:
				var opErr *OperationError
				require.ErrorAs(t, err, &opErr)
				assert.Equal(t, expected.Status, opErr.Status)
			default:
				if tc.Error != assert.AnError {
					assert.ErrorIs(t, err, tc.Error)
				}
			}
		})
	}
}

func TestAuthenticateTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {},
	))
	srv.Close()

	client := NewClient(Config{
		Host:     srv.URL,
		Username: "admin",
		Password: "secret",
	})
	err := client.Authenticate(context.Background())
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestTokenReusedWhileValid(t *testing.T) {
	t.Parallel()

	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(pnpDeviceURI, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pnpDeviceListResponse{})
	})

	client := stub.client()
	ctx := context.Background()

	_, err := client.ListPnPDevices(ctx)
	require.NoError(t, err)
	_, err = client.ListPnPDevices(ctx)
	require.NoError(t, err)

	// token age is well below lifetime minus the safety margin: one
	// network authentication for both operations
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.authCalls))
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	t.Parallel()

	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(pnpDeviceURI, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pnpDeviceListResponse{})
	})

	clock := &utils.StubClock{Time: time.Now()}
	client := stub.client(ClientOptions{Clock: clock})
	ctx := context.Background()

	_, err := client.ListPnPDevices(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.authCalls))

	// within lifetime-300s the token stays valid
	clock.Advance(3600*time.Second - 301*time.Second)
	_, err = client.ListPnPDevices(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.authCalls))

	// crossing the margin forces a refresh
	clock.Advance(2 * time.Second)
	_, err = client.ListPnPDevices(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&stub.authCalls))
}

func TestRetryOnceOn401(t *testing.T) {
	t.Parallel()

	var listCalls int32
	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(pnpDeviceURI, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&listCalls, 1) == 1 {
			// token rejected mid-flight
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(pnpDeviceListResponse{
			Response: []PnPDevice{{ID: "dev-1"}},
		})
	})

	client := stub.client()
	devices, err := client.ListPnPDevices(context.Background())
	require.NoError(t, err)
	assert.Len(t, devices, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&listCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&stub.authCalls))
}

func TestSecond401IsTerminal(t *testing.T) {
	t.Parallel()

	var listCalls int32
	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(pnpDeviceURI, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	client := stub.client()
	_, err := client.ListPnPDevices(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	// exactly one retry, never a third attempt
	assert.Equal(t, int32(2), atomic.LoadInt32(&listCalls))
}

func Test403IsTerminal(t *testing.T) {
	t.Parallel()

	var listCalls int32
	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(pnpDeviceURI, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		w.WriteHeader(http.StatusForbidden)
	})

	client := stub.client()
	_, err := client.ListPnPDevices(context.Background())
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))
}

func TestOperationErrorCarriesStatusAndBody(t *testing.T) {
	t.Parallel()

	stub := newControllerStub()
	defer stub.srv.Close()
	stub.handle(pnpDeviceURI, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	})

	client := stub.client()
	_, err := client.ListPnPDevices(context.Background())
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, http.StatusBadGateway, opErr.Status)
	assert.Equal(t, "upstream unavailable", opErr.Body)
}
