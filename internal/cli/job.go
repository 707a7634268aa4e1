package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bountyhub/bh/internal/client"
	"github.com/bountyhub/bh/internal/telemetry"
)

// ClientFunc создаёт Client по требованию. Команды, которые не ходят
// в API, его не вызывают и работают без токена.
type ClientFunc func() (client.Client, error)

// OutputFunc создаёт Output после разбора PersistentFlags.
type OutputFunc func() *Output

// NewJobCmd создаёт группу команд для управления jobs.
func NewJobCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Job related commands",
	}

	cmd.AddCommand(
		newJobDeleteCmd(clientFn, outputFn),
		newJobArtifactCmd(clientFn, outputFn),
	)

	return cmd
}

func newJobDeleteCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var jobID uuid.UUID

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := c.DeleteJob(ctx, jobID); err != nil {
				return fmt.Errorf("failed to delete job: %w", err)
			}

			telemetry.WithJobID(telemetry.FromContext(ctx), jobID.String()).Info("job deleted")
			outputFn().Success(fmt.Sprintf("Job deleted: %s", jobID))
			return nil
		},
	}

	cmd.Flags().VarP(newUUIDValue(&jobID), "job-id", "j", "Job ID")

	return bindEnv(cmd, required("job-id", "BOUNTYHUB_JOB_ID"))
}

func newJobArtifactCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Job artifact related commands",
	}

	cmd.AddCommand(
		newJobArtifactDownloadCmd(clientFn, outputFn),
		newJobArtifactDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newJobArtifactDownloadCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var jobID uuid.UUID
	var name string
	var output string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download an artifact uploaded by a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := resolveOutput(output, name)
			if err != nil {
				return err
			}

			c, err := clientFn()
			if err != nil {
				return err
			}

			ctx := telemetry.WithLogger(cmd.Context(),
				telemetry.WithJobID(telemetry.FromContext(cmd.Context()), jobID.String()))

			return saveStream(ctx, outputFn(), dst, func(ctx context.Context) (io.ReadCloser, error) {
				return c.DownloadJobArtifact(ctx, jobID, name)
			})
		},
	}

	cmd.Flags().VarP(newUUIDValue(&jobID), "job-id", "j", "Job ID")
	cmd.Flags().StringVarP(&name, "artifact-name", "a", "", "Artifact name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory (default: current directory)")
	_ = cmd.MarkFlagDirname("output")

	return bindEnv(cmd,
		required("job-id", "BOUNTYHUB_JOB_ID"),
		required("artifact-name", "BOUNTYHUB_JOB_ARTIFACT_NAME"),
		optional("output", "BOUNTYHUB_OUTPUT"),
	)
}

func newJobArtifactDeleteCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var jobID uuid.UUID
	var name string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete job artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}

			if err := c.DeleteJobArtifact(cmd.Context(), jobID, name); err != nil {
				return fmt.Errorf("failed to delete job artifact: %w", err)
			}

			outputFn().Success(fmt.Sprintf("Artifact deleted: %s", name))
			return nil
		},
	}

	cmd.Flags().VarP(newUUIDValue(&jobID), "job-id", "j", "Job ID")
	cmd.Flags().StringVarP(&name, "artifact-name", "a", "", "Artifact name")

	return bindEnv(cmd,
		required("job-id", "BOUNTYHUB_JOB_ID"),
		required("artifact-name", "BOUNTYHUB_JOB_ARTIFACT_NAME"),
	)
}
