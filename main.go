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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	mlog "github.com/mendersoftware/go-lib-micro/log"
	"github.com/urfave/cli"

	"github.com/ters-golemi/Cisco-CCC-PNP/app"
	"github.com/ters-golemi/Cisco-CCC-PNP/client/catalyst"
	pnpconfig "github.com/ters-golemi/Cisco-CCC-PNP/config"
	"github.com/ters-golemi/Cisco-CCC-PNP/model"
)

var Version string = "unknown"

func main() {
	doMain(os.Args)
}

func doMain(args []string) {
	var configPath string

	cliApp := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name: "config",
				Usage: "Configuration `FILE`. " +
					"Supports JSON, TOML, YAML and HCL " +
					"formatted configs.",
				Value:       "config.yaml",
				Destination: &configPath,
			},
		},
		Commands: []cli.Command{
			{
				Name:   "provision",
				Usage:  "Claim and provision all devices in the topology",
				Action: cmdProvision,
			},
			{
				Name:   "generate",
				Usage:  "Render per-device configuration files",
				Action: cmdGenerate,
			},
			{
				Name:   "validate",
				Usage:  "Check template syntax",
				Action: cmdValidate,
			},
			{
				Name:   "summary",
				Usage:  "Write the deployment summary",
				Action: cmdSummary,
			},
		},
	}
	cliApp.Usage = "Catalyst Center PnP automation"
	cliApp.Version = Version
	cliApp.Action = cmdProvision

	cliApp.Before = func(args *cli.Context) error {
		err := config.FromConfigFile(configPath, pnpconfig.Defaults)
		if err != nil {
			return cli.NewExitError(
				fmt.Sprintf("error loading configuration: %s", err),
				1)
		}

		// Enable setting config values by environment variables
		config.Config.SetEnvPrefix("PNP")
		config.Config.AutomaticEnv()
		config.Config.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

		mlog.Setup(config.Config.GetBool(pnpconfig.SettingDebugLog))
		return nil
	}

	err := cliApp.Run(args)
	if err != nil {
		log.Fatal(err)
	}
}

func newCatalystClient(c config.Reader) (catalyst.Client, error) {
	host := c.GetString(pnpconfig.SettingCatalystHost)
	username := c.GetString(pnpconfig.SettingCatalystUsername)
	password := c.GetString(pnpconfig.SettingCatalystPassword)
	if host == "" || username == "" || password == "" {
		return nil, cli.NewExitError(
			"catalyst_host, catalyst_username and catalyst_password "+
				"must be configured", 1)
	}
	return catalyst.NewClient(catalyst.Config{
		Host:           host,
		Username:       username,
		Password:       password,
		VerifySSL:      c.GetBool(pnpconfig.SettingVerifySSL),
		RequestTimeout: c.GetInt(pnpconfig.SettingRequestTimeout),
		ClaimTimeout:   c.GetInt(pnpconfig.SettingClaimTimeout),
		TokenLifetime:  c.GetInt(pnpconfig.SettingTokenLifetime),
		PollInterval:   c.GetInt(pnpconfig.SettingTaskPollInterval),
	}), nil
}

func loadTopology(c config.Reader) (*model.Topology, error) {
	topology, err := model.LoadTopology(
		c.GetString(pnpconfig.SettingTopologyFile),
	)
	if err != nil {
		return nil, cli.NewExitError(err.Error(), 1)
	}
	return topology, nil
}

func cmdProvision(args *cli.Context) error {
	c := config.Config
	ctx := context.Background()

	topology, err := loadTopology(c)
	if err != nil {
		return err
	}
	client, err := newCatalystClient(c)
	if err != nil {
		return err
	}
	pnpApp := app.New(client, app.Config{
		TemplatesDir: c.GetString(pnpconfig.SettingTemplatesDir),
		SiteParent:   c.GetString(pnpconfig.SettingSiteParent),
		TaskTimeout: time.Duration(
			c.GetInt(pnpconfig.SettingTaskTimeout)) * time.Second,
	})

	result, err := pnpApp.ProvisionTopology(ctx, topology)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	for _, device := range result.Devices {
		switch device.Outcome {
		case app.OutcomeFailed:
			fmt.Printf("%s: FAILED: %s\n", device.Name, device.Err)
		case app.OutcomeClaimAccepted:
			fmt.Printf("%s: claim accepted, completion unconfirmed\n",
				device.Name)
		case app.OutcomeUnconfirmed:
			fmt.Printf("%s: claimed, task still running, outcome unknown\n",
				device.Name)
		default:
			fmt.Printf("%s: provisioned\n", device.Name)
		}
	}
	fmt.Printf("Provisioning complete: %d/%d devices successful\n",
		result.Succeeded, result.Total)
	if !result.AllClaimed() {
		return cli.NewExitError(
			"some devices failed to provision", 1)
	}
	return nil
}

func cmdGenerate(args *cli.Context) error {
	c := config.Config
	ctx := context.Background()

	topology, err := loadTopology(c)
	if err != nil {
		return err
	}
	outputDir := c.GetString(pnpconfig.SettingOutputDir)
	generator := app.NewGenerator(
		c.GetString(pnpconfig.SettingTemplatesDir), outputDir,
	)
	configs, err := generator.GenerateAll(ctx, topology)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if len(configs) == 0 {
		return cli.NewExitError("no configurations generated", 1)
	}
	fmt.Printf("Generated configurations for %d devices\n", len(configs))
	fmt.Printf("Configurations saved to: %s\n", outputDir)
	return nil
}

func cmdValidate(args *cli.Context) error {
	c := config.Config
	ctx := context.Background()

	generator := app.NewGenerator(
		c.GetString(pnpconfig.SettingTemplatesDir),
		c.GetString(pnpconfig.SettingOutputDir),
	)
	valid, total, err := generator.ValidateTemplates(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Printf("Template validation: %d/%d templates valid\n", valid, total)
	if valid != total {
		return cli.NewExitError("some templates are invalid", 1)
	}
	return nil
}

func cmdSummary(args *cli.Context) error {
	c := config.Config

	topology, err := loadTopology(c)
	if err != nil {
		return err
	}
	summary := app.DeploymentSummary(topology, time.Now())

	outputDir := c.GetString(pnpconfig.SettingOutputDir)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	summaryFile := filepath.Join(outputDir, "deployment_summary.txt")
	if err := os.WriteFile(summaryFile, []byte(summary), 0644); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Print(summary)
	fmt.Printf("Deployment summary saved to: %s\n", summaryFile)
	return nil
}
