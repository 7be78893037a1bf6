package cmd

import (
	"errors"
	"net/http"

	"trainctl/internal/apperrors"
	"trainctl/internal/config"
	"trainctl/internal/controller"
	"trainctl/internal/observability"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Submit a training job and watch it to completion",
	Long: `Submit a custom training job and block until it reaches a terminal state
or the maximum run time elapses.

The watch deadline is local: when it elapses the job may still be running
remotely. Use 'trainctl kill' with the printed job name to stop it.

Example:
  trainctl run --region us-east1 --image gcr.io/my-project/trainers/resnet:latest \
    --command "python,train.py" --machine-type n1-standard-8 --max-run-time 12h`,
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

		ctx := cmd.Context()

		var opts []controller.Option
		if envCfg.MetricsAddr != "" {
			metrics, handler, shutdown, err := observability.NewMetrics()
			if err != nil {
				cmd.Printf("Failed to init metrics: %v\n", err)
				return
			}
			defer shutdown(ctx)

			mux := http.NewServeMux()
			mux.Handle("/metrics", handler)
			go http.ListenAndServe(envCfg.MetricsAddr, mux)

			opts = append(opts, controller.WithMetrics(metrics))
		}

		if envCfg.OTLPEndpoint != "" {
			shutdown, err := observability.InitTracer(ctx, "trainctl", envCfg.OTLPEndpoint)
			if err != nil {
				cmd.Printf("Failed to init tracing: %v\n", err)
				return
			}
			defer shutdown(ctx)
		}

		ctrl := controller.New(jobCfg, creds, newLogger(envCfg), opts...)
		result, err := ctrl.Run(ctx, func(displayName string) {
			cmd.Printf("🚀 Job %s submitted, watching until it completes...\n", displayName)
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrConfiguration):
				cmd.Printf("Invalid job configuration: %v\n", err)
			case errors.Is(err, apperrors.ErrSubmission):
				cmd.Printf("Submission failed: %v\n", err)
			case errors.Is(err, apperrors.ErrWatchTimeout):
				cmd.Printf("Gave up watching: %v\nThe job may still be running; use 'trainctl kill' to stop it.\n", err)
			case errors.Is(err, apperrors.ErrRemoteExecution):
				cmd.Printf("Job failed remotely: %v\n", err)
			default:
				cmd.Printf("Run failed: %v\n", err)
			}
			return
		}

		if result.StatusCode == 0 {
			cmd.Printf("✓ Job %s succeeded\n", result.Identifier)
		} else {
			cmd.Printf("Job %s finished with status code %d\n", result.Identifier, result.StatusCode)
		}
	},
}

func init() {
	addJobFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
