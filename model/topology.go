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

package model

import (
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults applied to device entries that do not declare them
const (
	DefaultDeviceFamily = "Switches and Hubs"
	DefaultSoftwareType = "IOS-XE"
)

// Topology is the declarative description of the network to provision
type Topology struct {
	CatalystCenter CatalystCenter         `yaml:"catalyst_center"`
	VLANs          []VLAN                 `yaml:"vlans"`
	Devices        map[string]DeviceEntry `yaml:"devices"`
}

// CatalystCenter holds the controller settings declared in the topology
type CatalystCenter struct {
	IPAddress string                 `yaml:"ip_address"`
	Port      int                    `yaml:"port"`
	Settings  CatalystCenterSettings `yaml:"settings"`
}

// CatalystCenterSettings are controller-wide deployment settings
type CatalystCenterSettings struct {
	Domain       string `yaml:"domain"`
	DHCPOption43 string `yaml:"dhcp_option_43"`
}

// VLAN describes one layer-2 segment of the topology
type VLAN struct {
	ID      int    `yaml:"vlan_id"`
	Name    string `yaml:"name"`
	Network string `yaml:"network"`
	Gateway string `yaml:"gateway"`
}

// DeviceEntry describes one device to onboard. SerialNumber is optional:
// a device without one can have its configuration generated but can never
// be matched against the controller's PnP inventory.
type DeviceEntry struct {
	Type         string `yaml:"type"`
	Role         string `yaml:"role"`
	DeviceFamily string `yaml:"device_family"`
	SoftwareType string `yaml:"software_type"`
	SerialNumber string `yaml:"serial_number"`
	Template     string `yaml:"template"`
	MgmtIP       string `yaml:"mgmt_ip"`
	Site         string `yaml:"site"`
}

// Validate validates the device entry
func (d DeviceEntry) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Template, validation.Required),
	)
}

// Validate validates the topology
func (t Topology) Validate() error {
	if len(t.Devices) == 0 {
		return errors.New("topology declares no devices")
	}
	for name, dev := range t.Devices {
		if err := dev.Validate(); err != nil {
			return errors.Wrapf(err, "device %q", name)
		}
	}
	return nil
}

// Family returns the declared device family or the default
func (d DeviceEntry) Family() string {
	if d.DeviceFamily == "" {
		return DefaultDeviceFamily
	}
	return d.DeviceFamily
}

// Software returns the declared software type or the default
func (d DeviceEntry) Software() string {
	if d.SoftwareType == "" {
		return DefaultSoftwareType
	}
	return d.SoftwareType
}

// LoadTopology reads and validates a topology YAML file
func LoadTopology(path string) (*Topology, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read topology file")
	}
	var topology Topology
	if err := yaml.Unmarshal(raw, &topology); err != nil {
		return nil, errors.Wrap(err, "failed to parse topology file")
	}
	if err := topology.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid topology")
	}
	return &topology, nil
}
