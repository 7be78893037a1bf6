package cmd

import (
	"trainctl/internal/config"
	"trainctl/internal/controller"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the job submission payload without submitting it",
	Long: `Render the custom job payload that 'run' would submit, as indented JSON,
without contacting the control plane.

Example:
  trainctl preview --region us-east1 --image gcr.io/my-project/trainers/resnet:latest \
    --command "python,train.py" --env EPOCHS=10`,
	Run: func(cmd *cobra.Command, args []string) {
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

		jobCfg, err := buildJobConfig(cmd, envCfg)
		if err != nil {
			cmd.Println(err)
			return
		}

		ctrl := controller.New(jobCfg, creds, newLogger(envCfg))
		payload, err := ctrl.Preview()
		if err != nil {
			cmd.Printf("Preview failed: %v\n", err)
			return
		}

		cmd.Println(payload)
	},
}

func init() {
	addJobFlags(previewCmd)
	rootCmd.AddCommand(previewCmd)
}
