package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bountyhub/bh/internal/domain"
)

// NewRunnerCmd создаёт группу команд для runner'ов.
func NewRunnerCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runner",
		Short: "Runner related commands",
	}

	registration := &cobra.Command{
		Use:   "registration",
		Short: "Runner registration commands",
	}
	registration.AddCommand(
		newRegistrationTokenCmd(clientFn, outputFn),
		newRegistrationCommandCmd(clientFn, outputFn),
	)

	cmd.AddCommand(registration)
	return cmd
}

func newRegistrationTokenCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Get newly created runner registration token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := createRegistration(cmd, clientFn)
			if err != nil {
				return err
			}

			// Без перевода строки: вывод подставляется в $(...)
			return outputFn().Raw(reg.Token, RegistrationResult{Token: reg.Token})
		},
	}
}

func newRegistrationCommandCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "command",
		Short: "Get runner registration command with newly created token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := createRegistration(cmd, clientFn)
			if err != nil {
				return err
			}

			line := RegistrationCommand(reg)
			return outputFn().Print(line, RegistrationResult{
				Token:   reg.Token,
				URL:     reg.URL,
				Command: line,
			})
		},
	}
}

// RegistrationCommand возвращает команду настройки runner'а.
func RegistrationCommand(reg *domain.RunnerRegistration) string {
	return fmt.Sprintf(`runner configure --token "%s" --url "%s"`, reg.Token, reg.URL)
}

func createRegistration(cmd *cobra.Command, clientFn ClientFunc) (*domain.RunnerRegistration, error) {
	c, err := clientFn()
	if err != nil {
		return nil, err
	}

	reg, err := c.CreateRunnerRegistration(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to create runner registration: %w", err)
	}
	return reg, nil
}
