package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trainctl",
	Short: "trainctl submits and supervises custom training jobs",
	Long: `trainctl is the command-line controller for containerized training jobs
running on a remote compute control plane.

It submits a custom job, watches it until it reaches a terminal state, and
supports cooperative cancellation. One invocation manages one job.

Common workflows:

  Inspect the submission payload without submitting:
    trainctl preview --region us-east1 --image gcr.io/my-project/trainers/resnet:latest

  Submit a job and watch it to completion:
    trainctl run --region us-east1 --image gcr.io/my-project/trainers/resnet:latest \
      --command "python,train.py" --machine-type n1-standard-8

  Cancel a previously submitted job by its full resource name:
    trainctl kill projects/my-project/locations/us-east1/customJobs/123

Configuration:
  Set identity and endpoints via flags, environment variables or a config file:
    TRAINCTL_PROJECT           Project that owns submitted jobs
    TRAINCTL_TOKEN             Access token for the control plane
    TRAINCTL_SERVICE_ACCOUNT   Default run-as service account
    TRAINCTL_ENDPOINT          Control plane endpoint override`,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".trainctl"
		viper.AddConfigPath(home)
		viper.SetConfigName(".trainctl")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "TRAINCTL_VARNAME"
	viper.SetEnvPrefix("TRAINCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.trainctl.yaml)")

	rootCmd.PersistentFlags().StringP("project", "p", "", "project that owns submitted jobs")
	viper.BindPFlag("project", rootCmd.PersistentFlags().Lookup("project"))

	rootCmd.PersistentFlags().StringP("region", "r", "", "region the job runs in")
	viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))

	rootCmd.PersistentFlags().StringP("token", "t", "", "access token for the control plane")
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))

	rootCmd.PersistentFlags().String("service-account", "", "default run-as service account")
	viper.BindPFlag("service_account", rootCmd.PersistentFlags().Lookup("service-account"))

	rootCmd.PersistentFlags().String("endpoint", "", "control plane endpoint override (defaults to the regional endpoint)")
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}
