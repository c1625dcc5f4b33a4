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

package config

import (
	"github.com/mendersoftware/go-lib-micro/config"
)

const (
	// SettingCatalystHost is the config key for the Catalyst Center host
	SettingCatalystHost = "catalyst_host"

	// SettingCatalystUsername is the config key for the API username
	SettingCatalystUsername = "catalyst_username"

	// SettingCatalystPassword is the config key for the API password
	SettingCatalystPassword = "catalyst_password"

	// SettingVerifySSL is the config key for TLS certificate verification
	SettingVerifySSL = "catalyst_verify_ssl"
	// SettingVerifySSLDefault is the default value for TLS verification;
	// lab controllers typically run with self-signed certificates
	SettingVerifySSLDefault = false

	// SettingRequestTimeout is the config key for the per-request timeout,
	// in seconds
	SettingRequestTimeout = "catalyst_request_timeout"
	// SettingRequestTimeoutDefault is the default per-request timeout
	SettingRequestTimeoutDefault = 30

	// SettingClaimTimeout is the config key for the device claim request
	// timeout, in seconds
	SettingClaimTimeout = "catalyst_claim_timeout"
	// SettingClaimTimeoutDefault is the default claim request timeout
	SettingClaimTimeoutDefault = 60

	// SettingTokenLifetime is the config key for the assumed bearer token
	// lifetime, in seconds; the auth endpoint does not advertise one
	SettingTokenLifetime = "catalyst_token_lifetime"
	// SettingTokenLifetimeDefault is the default token lifetime
	SettingTokenLifetimeDefault = 3600

	// SettingTaskPollInterval is the config key for the task poll
	// interval, in seconds
	SettingTaskPollInterval = "catalyst_task_poll_interval"
	// SettingTaskPollIntervalDefault is the default task poll interval
	SettingTaskPollIntervalDefault = 5

	// SettingTaskTimeout is the config key for the maximum time to wait
	// for an asynchronous task, in seconds
	SettingTaskTimeout = "catalyst_task_timeout"
	// SettingTaskTimeoutDefault is the default task wait bound
	SettingTaskTimeoutDefault = 300

	// SettingTopologyFile is the config key for the topology YAML file
	SettingTopologyFile = "topology_file"
	// SettingTopologyFileDefault is the default topology file path
	SettingTopologyFileDefault = "topology.yaml"

	// SettingTemplatesDir is the config key for the templates directory
	SettingTemplatesDir = "templates_dir"
	// SettingTemplatesDirDefault is the default templates directory
	SettingTemplatesDirDefault = "templates"

	// SettingOutputDir is the config key for the generated configuration
	// output directory
	SettingOutputDir = "output_dir"
	// SettingOutputDirDefault is the default output directory
	SettingOutputDirDefault = "generated_configs"

	// SettingSiteParent is the config key for the parent of sites created
	// on demand
	SettingSiteParent = "site_parent"
	// SettingSiteParentDefault is the default site parent
	SettingSiteParentDefault = "Global"

	// SettingDebugLog is the config key for turning on the debug log
	SettingDebugLog = "debug_log"
	// SettingDebugLogDefault is the default value for the debug log
	SettingDebugLogDefault = false
)

var (
	// Defaults are the default configuration settings
	Defaults = []config.Default{
		{Key: SettingVerifySSL, Value: SettingVerifySSLDefault},
		{Key: SettingRequestTimeout, Value: SettingRequestTimeoutDefault},
		{Key: SettingClaimTimeout, Value: SettingClaimTimeoutDefault},
		{Key: SettingTokenLifetime, Value: SettingTokenLifetimeDefault},
		{Key: SettingTaskPollInterval, Value: SettingTaskPollIntervalDefault},
		{Key: SettingTaskTimeout, Value: SettingTaskTimeoutDefault},
		{Key: SettingTopologyFile, Value: SettingTopologyFileDefault},
		{Key: SettingTemplatesDir, Value: SettingTemplatesDirDefault},
		{Key: SettingOutputDir, Value: SettingOutputDirDefault},
		{Key: SettingSiteParent, Value: SettingSiteParentDefault},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
	}
)
