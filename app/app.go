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

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/ters-golemi/Cisco-CCC-PNP/client/catalyst"
	"github.com/ters-golemi/Cisco-CCC-PNP/model"
	"github.com/ters-golemi/Cisco-CCC-PNP/utils"
)

// App errors
var (
	ErrTemplateMissing = errors.New("template file not found")
	ErrDeviceNotFound  = errors.New("no PnP device matches the declared serial number")
)

// Device outcomes. ClaimAccepted means the controller took the claim but
// returned no task id; Unconfirmed means the claim's task never reached a
// terminal state within the wait bound. Both count as claimed: completion
// is unknown, which is not the same as Provisioned and never the same as
// Failed.
type DeviceOutcome string

const (
	OutcomeProvisioned   DeviceOutcome = "provisioned"
	OutcomeClaimAccepted DeviceOutcome = "claim-accepted"
	OutcomeUnconfirmed   DeviceOutcome = "claim-unconfirmed"
	OutcomeFailed        DeviceOutcome = "failed"
)

// DeviceResult is the per-device record of one provisioning run
type DeviceResult struct {
	Name    string
	Outcome DeviceOutcome
	Err     error
}

// ProvisionResult aggregates a provisioning run. Succeeded counts devices
// whose claim was at least accepted.
type ProvisionResult struct {
	RunID     string
	Succeeded int
	Total     int
	Devices   []DeviceResult
}

// AllClaimed reports whether every device in the batch reached a
// successful claim
func (r *ProvisionResult) AllClaimed() bool {
	return r.Succeeded == r.Total
}

// App interface describes app objects
//
//go:generate ../utils/mockgen.sh
type App interface {
	ProvisionTopology(
		ctx context.Context, topology *model.Topology,
	) (*ProvisionResult, error)
}

type Config struct {
	TemplatesDir string
	SiteParent   string
	TaskTimeout  time.Duration
}

// app is an app object
type app struct {
	catalyst catalyst.Client
	clock    utils.Clock
	Config
}

// New initializes a new provisioning app
func New(client catalyst.Client, conf Config) App {
	if conf.TaskTimeout <= 0 {
		conf.TaskTimeout = 5 * time.Minute
	}
	return &app{
		catalyst: client,
		clock:    utils.RealClock{},
		Config:   conf,
	}
}

// ProvisionTopology drives the per-device workflow for every device in the
// topology, strictly one device at a time. A device failing at any step is
// recorded and never aborts the batch.
func (a *app) ProvisionTopology(
	ctx context.Context,
	topology *model.Topology,
) (*ProvisionResult, error) {
	l := log.FromContext(ctx)

	// authentication failure before any device is processed is fatal
	if err := a.catalyst.Authenticate(ctx); err != nil {
		return nil, errors.Wrap(err, "authentication failed")
	}

	result := &ProvisionResult{
		RunID: uuid.New().String(),
		Total: len(topology.Devices),
	}

	names := make([]string, 0, len(topology.Devices))
	for name := range topology.Devices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		l.Infof("processing device: %s", name)
		outcome, err := a.provisionDevice(
			ctx, result.RunID, name, topology.Devices[name], topology,
		)
		if err != nil {
			l.Errorf("failed to provision %s: %s", name, err.Error())
			result.Devices = append(result.Devices, DeviceResult{
				Name:    name,
				Outcome: OutcomeFailed,
				Err:     err,
			})
			continue
		}
		result.Succeeded++
		result.Devices = append(result.Devices, DeviceResult{
			Name:    name,
			Outcome: outcome,
		})
	}
	l.Infof("provisioning complete: %d/%d devices successful",
		result.Succeeded, result.Total)
	return result, nil
}

func (a *app) provisionDevice(
	ctx context.Context,
	runID, name string,
	device model.DeviceEntry,
	topology *model.Topology,
) (DeviceOutcome, error) {
	l := log.FromContext(ctx)

	templatePath := filepath.Join(a.TemplatesDir, device.Template)
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(ErrTemplateMissing, templatePath)
		}
		return "", errors.Wrapf(err, "failed to read template %s", templatePath)
	}

	templateID, err := a.catalyst.CreateTemplate(ctx, catalyst.TemplateRequest{
		Name:         a.templateName(runID, name),
		DeviceFamily: device.Family(),
		SoftwareType: device.Software(),
		Content:      string(content),
	})
	if err != nil {
		return "", err
	}

	target, err := a.discoverDevice(ctx, device)
	if err != nil {
		return "", err
	}

	siteID := a.resolveSite(ctx, device.Site)

	claim, err := a.catalyst.ClaimDevice(ctx, catalyst.ClaimRequest{
		DeviceID:   target.ID,
		SiteID:     siteID,
		TemplateID: templateID,
		Parameters: a.claimParameters(name, device, topology),
	})
	if err != nil {
		return "", err
	}
	if !claim.Tracked() {
		return OutcomeClaimAccepted, nil
	}
	if _, err := a.catalyst.WaitForTask(
		ctx, claim.TaskID, a.TaskTimeout,
	); err != nil {
		if errors.Is(err, catalyst.ErrTaskTimeout) {
			// the claim succeeded and the remote task may still be
			// running: outcome unknown, not failed
			l.Warnf("device %s claimed, task %s outcome unknown",
				name, claim.TaskID)
			return OutcomeUnconfirmed, nil
		}
		return "", err
	}
	l.Infof("successfully provisioned %s", name)
	return OutcomeProvisioned, nil
}

// discoverDevice matches the topology entry against the PnP inventory by
// exact serial number equality. An entry without a serial number can never
// match.
func (a *app) discoverDevice(
	ctx context.Context,
	device model.DeviceEntry,
) (*catalyst.PnPDevice, error) {
	if device.SerialNumber == "" {
		return nil, errors.Wrap(ErrDeviceNotFound, "no serial number declared")
	}
	devices, err := a.catalyst.ListPnPDevices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].DeviceInfo.SerialNumber == device.SerialNumber {
			return &devices[i], nil
		}
	}
	return nil, errors.Wrap(ErrDeviceNotFound, device.SerialNumber)
}

// resolveSite maps a declared site name to a controller site id, creating
// the site when it does not exist. Site resolution is best-effort: a claim
// without placement is preferable to a failed device.
func (a *app) resolveSite(ctx context.Context, siteName string) string {
	l := log.FromContext(ctx)

	if siteName == "" {
		return ""
	}
	sites, err := a.catalyst.ListSites(ctx)
	if err != nil {
		l.Warnf("site list failed, claiming without placement: %s", err.Error())
		return ""
	}
	for _, site := range sites {
		if site.Name == siteName || site.SiteNameHierarchy == siteName {
			return site.ID
		}
	}
	siteID, err := a.catalyst.CreateSite(ctx, siteName, a.SiteParent)
	if err != nil {
		l.Warnf("site %q create failed, claiming without placement: %s",
			siteName, err.Error())
		return ""
	}
	return siteID
}

func (a *app) templateName(runID, deviceName string) string {
	return fmt.Sprintf("%s_template_%s_%.8s",
		deviceName, a.clock.Now().Format("20060102_150405"), runID)
}

func (a *app) claimParameters(
	name string,
	device model.DeviceEntry,
	topology *model.Topology,
) map[string]string {
	return map[string]string{
		"device_name": name,
		"mgmt_ip":     device.MgmtIP,
		"role":        device.Role,
		"domain":      topology.CatalystCenter.Settings.Domain,
		"timestamp":   a.clock.Now().Format("2006-01-02 15:04:05"),
	}
}
