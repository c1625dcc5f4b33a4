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
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/ters-golemi/Cisco-CCC-PNP/model"
	"github.com/ters-golemi/Cisco-CCC-PNP/utils"
)

// TemplateExt is the file extension of device configuration templates
const TemplateExt = ".tmpl"

// Generator renders per-device configuration text from templates and
// topology data. Rendering is all-or-nothing: a missing template or a
// syntax error yields an empty result and an error, never a partial
// configuration.
type Generator struct {
	templatesDir string
	outputDir    string
	clock        utils.Clock
}

// NewGenerator returns a new configuration generator
func NewGenerator(templatesDir, outputDir string) *Generator {
	return &Generator{
		templatesDir: templatesDir,
		outputDir:    outputDir,
		clock:        utils.RealClock{},
	}
}

// RenderDevice renders the configuration for a single device
func (g *Generator) RenderDevice(
	name string,
	device model.DeviceEntry,
	topology *model.Topology,
) (string, error) {
	if device.Template == "" {
		return "", errors.Errorf("no template specified for device %s", name)
	}
	path := filepath.Join(g.templatesDir, device.Template)
	tmpl, err := template.New(device.Template).
		Funcs(sprig.TxtFuncMap()).
		ParseFiles(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load template %s", device.Template)
	}

	vars := map[string]interface{}{
		"device":      device,
		"topology":    topology,
		"device_name": name,
		"timestamp":   g.clock.Now().Format("2006-01-02 15:04:05"),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", errors.Wrapf(err, "failed to render config for %s", name)
	}
	return buf.String(), nil
}

// GenerateAll renders and writes a .cfg file for every device in the
// topology. A device that fails to render is skipped; the remaining
// devices are still generated.
func (g *Generator) GenerateAll(
	ctx context.Context,
	topology *model.Topology,
) (map[string]string, error) {
	l := log.FromContext(ctx)

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	names := make([]string, 0, len(topology.Devices))
	for name := range topology.Devices {
		names = append(names, name)
	}
	sort.Strings(names)

	configs := make(map[string]string, len(names))
	for _, name := range names {
		config, err := g.RenderDevice(name, topology.Devices[name], topology)
		if err != nil {
			l.Errorf("failed to generate config for %s: %s", name, err.Error())
			continue
		}
		configs[name] = config

		outputFile := filepath.Join(g.outputDir, name+".cfg")
		if err := os.WriteFile(outputFile, []byte(config), 0644); err != nil {
			l.Errorf("failed to save config file: %s", err.Error())
			continue
		}
		l.Infof("saved configuration to %s", outputFile)
	}
	return configs, nil
}

// ValidateTemplates parses every template in the templates directory and
// returns the valid count and the total count
func (g *Generator) ValidateTemplates(ctx context.Context) (int, int, error) {
	l := log.FromContext(ctx)

	matches, err := filepath.Glob(
		filepath.Join(g.templatesDir, "*"+TemplateExt),
	)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to list templates")
	}
	valid := 0
	for _, path := range matches {
		name := filepath.Base(path)
		_, err := template.New(name).
			Funcs(sprig.TxtFuncMap()).
			ParseFiles(path)
		if err != nil {
			l.Errorf("template %s syntax error: %s", name, err.Error())
			continue
		}
		valid++
	}
	return valid, len(matches), nil
}

// Option43 builds the DHCP Option 43 hex string pointing PnP devices at
// the controller. Format: 5A1D;B2;K4;I<ip>;J<port>, hex encoded.
func Option43(controllerIP string, controllerPort int) string {
	if controllerPort == 0 {
		controllerPort = 80
	}
	raw := fmt.Sprintf("5A1D;B2;K4;I%s;J%d", controllerIP, controllerPort)
	return hex.EncodeToString([]byte(raw))
}

// DeploymentSummary builds the human-readable deployment report for a
// topology
func DeploymentSummary(topology *model.Topology, now time.Time) string {
	var b strings.Builder
	banner := strings.Repeat("=", 60)

	fmt.Fprintln(&b, banner)
	fmt.Fprintln(&b, "CISCO NETWORK PLUG AND PLAY DEPLOYMENT SUMMARY")
	fmt.Fprintln(&b, banner)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	cc := topology.CatalystCenter
	fmt.Fprintln(&b, "CATALYST CENTER CONFIGURATION:")
	fmt.Fprintf(&b, "  IP Address: %s\n", cc.IPAddress)
	fmt.Fprintf(&b, "  Domain: %s\n", cc.Settings.Domain)
	fmt.Fprintf(&b, "  DHCP Option 43: %s\n\n", cc.Settings.DHCPOption43)

	fmt.Fprintln(&b, "NETWORK TOPOLOGY:")
	for _, vlan := range topology.VLANs {
		fmt.Fprintf(&b, "  VLAN %d (%s):\n", vlan.ID, strings.ToUpper(vlan.Name))
		fmt.Fprintf(&b, "    Network: %s\n", vlan.Network)
		fmt.Fprintf(&b, "    Gateway: %s\n", vlan.Gateway)
	}
	fmt.Fprintln(&b)

	names := make([]string, 0, len(topology.Devices))
	for name := range topology.Devices {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(&b, "DEVICES:")
	for _, name := range names {
		device := topology.Devices[name]
		fmt.Fprintf(&b, "  %s:\n", name)
		fmt.Fprintf(&b, "    Type: %s\n", device.Type)
		fmt.Fprintf(&b, "    Role: %s\n", device.Role)
		fmt.Fprintf(&b, "    Management IP: %s\n", device.MgmtIP)
		fmt.Fprintf(&b, "    Template: %s\n", device.Template)
		if device.SerialNumber != "" {
			fmt.Fprintf(&b, "    Serial: %s\n", device.SerialNumber)
		}
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "PnP CONFIGURATION STEPS:")
	fmt.Fprintln(&b, "1. Configure DHCP server with Option 43")
	fmt.Fprintln(&b, "2. Power on devices and wait for PnP discovery")
	fmt.Fprintln(&b, "3. Run the provision command to claim and provision devices")
	fmt.Fprintln(&b, "4. Verify device configurations and network connectivity")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, banner)

	return b.String()
}
