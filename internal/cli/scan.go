package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bountyhub/bh/internal/telemetry"
	"github.com/bountyhub/bh/internal/validation"
)

// NewScanCmd создаёт группу команд для scan'ов.
func NewScanCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan related commands",
	}

	cmd.AddCommand(newScanDispatchCmd(clientFn, outputFn))

	return cmd
}

func newScanDispatchCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var workflowID uuid.UUID
	var scanName string
	var inputStrings []string
	var inputBools []string

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch a scan from the latest revision of the workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Проверки до создания клиента: без сети и без токена
			if err := validation.ValidateScanName(scanName); err != nil {
				return err
			}

			inputs, err := BuildInputs(
				inputStrings,
				inputBools,
				cmd.Flags().Changed("input-string"),
				cmd.Flags().Changed("input-bool"),
			)
			if err != nil {
				return err
			}

			c, err := clientFn()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := c.DispatchScan(ctx, workflowID, scanName, inputs); err != nil {
				return fmt.Errorf("failed to dispatch scan: %w", err)
			}

			telemetry.WithWorkflowID(telemetry.FromContext(ctx), workflowID.String()).
				Info("scan dispatched", "scan", scanName, "inputs", len(inputs))
			outputFn().Success(fmt.Sprintf("Scan dispatched: %s", scanName))
			return nil
		},
	}

	cmd.Flags().VarP(newUUIDValue(&workflowID), "workflow-id", "w", "Workflow ID")
	cmd.Flags().StringVarP(&scanName, "scan-name", "s", "", "Scan name")
	cmd.Flags().StringArrayVar(&inputStrings, "input-string", nil, "String input as KEY=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&inputBools, "input-bool", nil, "Boolean input as KEY=true|false (repeatable)")

	return bindEnv(cmd,
		required("workflow-id", "BOUNTYHUB_WORKFLOW_ID"),
		required("scan-name", "BOUNTYHUB_SCAN_NAME"),
	)
}
