package cmd

import (
	"fmt"
	"log/slog"

	"trainctl/internal/config"
	"trainctl/internal/controller"
	"trainctl/internal/credentials"
	"trainctl/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newCredentials builds the identity provider from flags, environment and
// config file values.
func newCredentials() (*credentials.Credentials, error) {
	project := viper.GetString("project")
	if project == "" {
		return nil, fmt.Errorf("project not set; use --project or the TRAINCTL_PROJECT environment variable")
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, fmt.Errorf("access token not found; use --token or the TRAINCTL_TOKEN environment variable")
	}

	var opts []credentials.Option
	if endpoint := viper.GetString("endpoint"); endpoint != "" {
		opts = append(opts, credentials.WithEndpoint(endpoint))
	}

	return credentials.New(project, viper.GetString("service_account"), token, opts...)
}

// newLogger builds the CLI logger, honouring TRAINCTL_DEBUG.
func newLogger(envCfg *config.Config) *slog.Logger {
	if envCfg.Debug {
		return logger.NewWithLevel(slog.LevelDebug)
	}
	return logger.New()
}

// addJobFlags registers the per-job configuration flags shared by run and
// preview.
func addJobFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("image", "i", "", "container image to run, e.g. gcr.io/<project>/<repo>:<tag> (required)")
	flags.StringSliceP("command", "c", []string{}, "command to execute in the container")
	flags.StringSlice("args", []string{}, "arguments passed to the command")
	flags.StringToStringP("env", "e", nil, "environment variables passed to the container (KEY=VALUE)")
	flags.String("machine-type", "", "machine type for the run (default n1-standard-4)")
	flags.String("accelerator-type", "", "type of accelerator to attach")
	flags.Int("accelerator-count", 0, "number of accelerators to attach")
	flags.String("boot-disk-type", "", "boot disk type (default pd-ssd)")
	flags.Int("boot-disk-size-gb", 0, "boot disk size in gigabytes (default 100)")
	flags.Duration("max-run-time", 0, "maximum job running time (default 168h)")
	flags.String("network", "", "VPC network to peer the job with")
	flags.StringSlice("reserved-ip-range", []string{}, "reserved IP range names under the VPC network")
	flags.Duration("poll-interval", 0, "time between status reads while watching (default 5s)")
}

// buildJobConfig assembles the controller configuration from command flags
// and environment defaults. Flags win over TRAINCTL_* settings.
func buildJobConfig(cmd *cobra.Command, envCfg *config.Config) (controller.Config, error) {
	flags := cmd.Flags()

	image, _ := flags.GetString("image")
	if image == "" {
		return controller.Config{}, fmt.Errorf("--image is required")
	}

	region := viper.GetString("region")
	if region == "" {
		return controller.Config{}, fmt.Errorf("region not set; use --region or the TRAINCTL_REGION environment variable")
	}

	command, _ := flags.GetStringSlice("command")
	args, _ := flags.GetStringSlice("args")
	env, _ := flags.GetStringToString("env")
	machineType, _ := flags.GetString("machine-type")
	acceleratorType, _ := flags.GetString("accelerator-type")
	acceleratorCount, _ := flags.GetInt("accelerator-count")
	bootDiskType, _ := flags.GetString("boot-disk-type")
	bootDiskSizeGB, _ := flags.GetInt("boot-disk-size-gb")
	network, _ := flags.GetString("network")
	reservedIPRanges, _ := flags.GetStringSlice("reserved-ip-range")

	maxRunTime, _ := flags.GetDuration("max-run-time")
	if maxRunTime <= 0 {
		maxRunTime = envCfg.MaximumRunTime
	}

	pollInterval, _ := flags.GetDuration("poll-interval")
	if pollInterval <= 0 {
		pollInterval = envCfg.PollInterval
	}

	return controller.Config{
		Region:           region,
		Image:            image,
		Command:          command,
		Args:             args,
		Env:              env,
		MachineType:      machineType,
		AcceleratorType:  acceleratorType,
		AcceleratorCount: acceleratorCount,
		BootDiskType:     bootDiskType,
		BootDiskSizeGB:   bootDiskSizeGB,
		MaximumRunTime:   maxRunTime,
		Network:          network,
		ReservedIPRanges: reservedIPRanges,
		ServiceAccount:   viper.GetString("service_account"),
		PollInterval:     pollInterval,
	}, nil
}
