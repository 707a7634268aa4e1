package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bountyhub/bh/internal/client"
)

// Ошибки bhlast.
var (
	ErrBhlastLimit        = errors.New("you cannot create more bhlast domains")
	ErrBhlastUnauthorized = errors.New("unauthorized: invalid token")
)

// NewBhlastCmd создаёт группу команд для bhlast.
func NewBhlastCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bhlast",
		Short: "Bhlast related commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a new bhlast server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}

			id, err := c.CreateBhlastDomain(cmd.Context())
			switch {
			case err == nil:
				return outputFn().Print(id, BhlastResult{ID: id})
			case errors.Is(err, client.ErrForbidden):
				return ErrBhlastLimit
			case errors.Is(err, client.ErrUnauthorized):
				return ErrBhlastUnauthorized
			default:
				return fmt.Errorf("failed to create bhlast domain: %w", err)
			}
		},
	})

	return cmd
}
