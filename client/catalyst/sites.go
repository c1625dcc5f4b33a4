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
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
)

// siteCreateWait bounds the wait for the deferred site-create task
const siteCreateWait = 5 * time.Minute

// ListSites returns the controller's site hierarchy
func (c *client) ListSites(ctx context.Context) ([]Site, error) {
	body, _, err := c.do(ctx, http.MethodGet, siteURI, nil, c.requestTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "site list failed")
	}
	var rsp siteListResponse
	if err := json.Unmarshal(body, &rsp); err != nil {
		return nil, errors.Wrap(err, "error parsing site list response")
	}
	return rsp.Response, nil
}

// CreateSite creates an area under parentName and waits for the deferred
// execution to finish. Returns the new site id.
func (c *client) CreateSite(
	ctx context.Context,
	name, parentName string,
) (string, error) {
	l := log.FromContext(ctx)

	if parentName == "" {
		parentName = "Global"
	}
	payload := sitePayload{
		Site: siteSpec{
			Area: siteArea{Name: name, ParentName: parentName},
		},
	}
	body, status, err := c.do(
		ctx, http.MethodPost, siteURI, payload, c.requestTimeout,
	)
	if err != nil {
		return "", errors.Wrap(err, "site create failed")
	}

	var rsp deferredResponse
	if err := json.Unmarshal(body, &rsp); err != nil {
		return "", errors.Wrap(err, "error parsing site create response")
	}
	executionID := rsp.Response.ExecutionID
	if executionID == "" {
		executionID = rsp.Response.TaskID
	}
	if status != http.StatusAccepted || executionID == "" {
		return "", errors.Errorf(
			"site create returned status %d without an execution id", status,
		)
	}

	siteID, err := c.WaitForTask(ctx, executionID, siteCreateWait)
	if err != nil {
		return "", errors.Wrapf(err, "site %q create did not complete", name)
	}
	l.Infof("created site %q with ID %s", name, siteID)
	return siteID, nil
}
