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
	"sort"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
)

// ListPnPDevices returns every device currently known to the controller's
// PnP inventory
func (c *client) ListPnPDevices(ctx context.Context) ([]PnPDevice, error) {
	l := log.FromContext(ctx)

	body, _, err := c.do(
		ctx, http.MethodGet, pnpDeviceURI, nil, c.requestTimeout,
	)
	if err != nil {
		return nil, errors.Wrap(err, "PnP device list failed")
	}
	var rsp pnpDeviceListResponse
	if err := json.Unmarshal(body, &rsp); err != nil {
		return nil, errors.Wrap(err, "error parsing PnP device list response")
	}
	l.Debugf("retrieved %d PnP devices", len(rsp.Response))
	return rsp.Response, nil
}

// DeviceStatus fetches the onboarding state of one PnP device
func (c *client) DeviceStatus(
	ctx context.Context,
	deviceID string,
) (*PnPDevice, error) {
	body, _, err := c.do(
		ctx, http.MethodGet, pnpDeviceURI+"/"+deviceID, nil, c.requestTimeout,
	)
	if err != nil {
		return nil, errors.Wrap(err, "PnP device status fetch failed")
	}
	var rsp pnpDeviceResponse
	if err := json.Unmarshal(body, &rsp); err != nil {
		return nil, errors.Wrap(err, "error parsing PnP device status response")
	}
	return &rsp.Response, nil
}

// ClaimDevice submits a site claim for a discovered device. The claim
// request uses the longer claim timeout. An accepted claim without a task
// id is reported as such, not as a confirmed completion.
func (c *client) ClaimDevice(
	ctx context.Context,
	claim ClaimRequest,
) (*ClaimResult, error) {
	l := log.FromContext(ctx)

	payload := claimPayload{
		DeviceID: claim.DeviceID,
		SiteID:   claim.SiteID,
		Type:     "Default",
		ConfigInfo: claimConfigInfo{
			ConfigID:         claim.TemplateID,
			ConfigParameters: claimParameters(claim.Parameters),
		},
	}
	body, _, err := c.do(
		ctx, http.MethodPost, siteClaimURI, payload, c.claimTimeout,
	)
	if err != nil {
		return nil, errors.Wrap(err, "device claim failed")
	}

	var rsp deferredResponse
	if err := json.Unmarshal(body, &rsp); err != nil {
		return nil, errors.Wrap(err, "error parsing device claim response")
	}
	result := &ClaimResult{TaskID: rsp.Response.TaskID}
	if result.Tracked() {
		l.Infof("claimed device %s, tracking task %s",
			claim.DeviceID, result.TaskID)
	} else {
		l.Infof("claim accepted for device %s, no task to track",
			claim.DeviceID)
	}
	return result, nil
}

func claimParameters(params map[string]string) []claimParameter {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]claimParameter, 0, len(keys))
	for _, k := range keys {
		out = append(out, claimParameter{Key: k, Value: params[k]})
	}
	return out
}
