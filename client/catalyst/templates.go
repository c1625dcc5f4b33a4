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

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
)

// CreateTemplate uploads a configuration template and commits it. The
// returned identifier is usable even when the commit fails: a created but
// uncommitted template is a degraded success, logged, never unwound.
func (c *client) CreateTemplate(
	ctx context.Context,
	tmpl TemplateRequest,
) (string, error) {
	l := log.FromContext(ctx)

	payload := templateCreatePayload{
		Name:        tmpl.Name,
		Description: "Auto-generated template for " + tmpl.DeviceFamily,
		DeviceTypes: []templateDeviceType{
			{ProductFamily: tmpl.DeviceFamily},
		},
		SoftwareType:    tmpl.SoftwareType,
		SoftwareVariant: "XE",
		TemplateContent: tmpl.Content,
		Version:         "1.0",
		Author:          "pnp-automation",
	}
	body, _, err := c.do(
		ctx, http.MethodPost, templateURI, payload, c.requestTimeout,
	)
	if err != nil {
		return "", errors.Wrap(err, "template create failed")
	}

	var rsp templateCreateResponse
	if err := json.Unmarshal(body, &rsp); err != nil {
		return "", errors.Wrap(err, "error parsing template create response")
	}
	templateID := rsp.Response.TemplateID
	if templateID == "" {
		return "", errors.New("template create response missing templateId")
	}
	l.Infof("created template %q with ID %s", tmpl.Name, templateID)

	if err := c.commitTemplate(ctx, templateID); err != nil {
		l.Warnf("template %s created but not committed: %s",
			templateID, err.Error())
	}
	return templateID, nil
}

func (c *client) commitTemplate(ctx context.Context, templateID string) error {
	payload := templateCommitPayload{
		TemplateID: templateID,
		Comments:   "committed by pnp-automation",
	}
	_, _, err := c.do(
		ctx, http.MethodPost, templateVersionURI, payload, c.requestTimeout,
	)
	return err
}
