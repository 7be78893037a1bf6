package cmd

import (
	"errors"
	"time"

	"trainctl/internal/apperrors"
	"trainctl/internal/config"
	"trainctl/internal/controller"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var killCmd = &cobra.Command{
	Use:   "kill [job_name]",
	Short: "Request cancellation of a running job",
	Long: `Request cancellation of a previously submitted job, identified by its full
resource name, e.g. "projects/my-project/locations/us-east1/customJobs/123".

The request is acknowledged by the control plane but not awaited: the job
shuts down within the grace period enforced remotely.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jobName := args[0]

		envCfg, err := config.Load()
		if err != nil {
			cmd.Printf("Invalid environment: %v\n", err)
			return
		}

		creds, err := newCredentials()
		if err != nil {
			cmd.Println(err)
			return
		}

		region := viper.GetString("region")
		if region == "" {
			cmd.Println("region not set; use --region or the TRAINCTL_REGION environment variable")
			return
		}

		grace, _ := cmd.Flags().GetInt("grace")

		ctrl := controller.New(controller.Config{Region: region}, creds, newLogger(envCfg))
		err = ctrl.Kill(cmd.Context(), jobName, time.Duration(grace)*time.Second)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrJobNotFound):
				cmd.Printf("Job already gone: %v\n", err)
			case errors.Is(err, apperrors.ErrCancellation):
				cmd.Printf("Cancellation failed: %v\n", err)
			default:
				cmd.Printf("Kill failed: %v\n", err)
			}
			return
		}

		cmd.Printf("Requested cancellation of %s\n", jobName)
	},
}

func init() {
	killCmd.Flags().Int("grace", 30, "seconds the job is given to shut down")
	rootCmd.AddCommand(killCmd)
}
