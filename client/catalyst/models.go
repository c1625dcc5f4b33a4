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

// authResponse is the body of a successful token exchange
type authResponse struct {
	Token string `json:"Token"`
}

// PnPDevice is a device known to the controller's PnP inventory.
// Read-only from this side.
type PnPDevice struct {
	ID         string        `json:"id"`
	DeviceInfo PnPDeviceInfo `json:"deviceInfo"`
}

// PnPDeviceInfo carries the onboarding attributes of a PnP device
type PnPDeviceInfo struct {
	SerialNumber string `json:"serialNumber"`
	State        string `json:"state"`
	// LastContact is epoch milliseconds as reported by the controller
	LastContact int64 `json:"lastContact"`
}

type pnpDeviceListResponse struct {
	Response []PnPDevice `json:"response"`
}

type pnpDeviceResponse struct {
	Response PnPDevice `json:"response"`
}

// Task is the controller's record of an asynchronous operation. A task is
// terminal once EndTime is set; IsError and FailureReason are only
// meaningful then. Timestamps are epoch milliseconds.
type Task struct {
	ID            string `json:"id"`
	StartTime     int64  `json:"startTime"`
	EndTime       int64  `json:"endTime"`
	IsError       bool   `json:"isError"`
	FailureReason string `json:"failureReason"`
	Progress      string `json:"progress"`
	Data          string `json:"data"`
}

// Terminal reports whether the task has finished, successfully or not
func (t Task) Terminal() bool {
	return t.EndTime != 0
}

type taskResponse struct {
	Response Task `json:"response"`
}

// Site is one node of the controller's location hierarchy
type Site struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	SiteNameHierarchy string `json:"siteNameHierarchy"`
}

type siteListResponse struct {
	Response []Site `json:"response"`
}

// TemplateRequest describes a configuration template to upload
type TemplateRequest struct {
	Name         string
	DeviceFamily string
	SoftwareType string
	Content      string
}

type templateDeviceType struct {
	ProductFamily string `json:"productFamily"`
}

type templateCreatePayload struct {
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	DeviceTypes     []templateDeviceType `json:"deviceTypes"`
	SoftwareType    string               `json:"softwareType"`
	SoftwareVariant string               `json:"softwareVariant"`
	TemplateContent string               `json:"templateContent"`
	Version         string               `json:"version"`
	Author          string               `json:"author"`
}

type templateCreateResponse struct {
	Response struct {
		TemplateID string `json:"templateId"`
	} `json:"response"`
}

type templateCommitPayload struct {
	TemplateID string `json:"templateId"`
	Comments   string `json:"comments"`
}

// ClaimRequest assigns a discovered device to a template, and optionally a
// site, initiating provisioning
type ClaimRequest struct {
	DeviceID   string
	SiteID     string
	TemplateID string
	Parameters map[string]string
}

type claimParameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type claimConfigInfo struct {
	ConfigID         string           `json:"configId"`
	ConfigParameters []claimParameter `json:"configParameters"`
}

type claimPayload struct {
	DeviceID   string          `json:"deviceId"`
	SiteID     string          `json:"siteId,omitempty"`
	Type       string          `json:"type"`
	ConfigInfo claimConfigInfo `json:"configInfo"`
}

// ClaimResult is the controller's answer to a claim. An empty TaskID means
// the claim was accepted with nothing to track; completion is unconfirmed.
type ClaimResult struct {
	TaskID string
}

// Tracked reports whether the claim produced a task to poll
func (r ClaimResult) Tracked() bool {
	return r.TaskID != ""
}

type deferredResponse struct {
	Response struct {
		TaskID      string `json:"taskId"`
		ExecutionID string `json:"executionId"`
	} `json:"response"`
}

type sitePayload struct {
	Site siteSpec `json:"site"`
}

type siteSpec struct {
	Area siteArea `json:"area"`
}

type siteArea struct {
	Name       string `json:"name"`
	ParentName string `json:"parentName"`
}
