package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// uuidValue — pflag.Value для UUID.
type uuidValue uuid.UUID

var _ pflag.Value = (*uuidValue)(nil)

func newUUIDValue(p *uuid.UUID) *uuidValue {
	return (*uuidValue)(p)
}

func (v *uuidValue) String() string {
	if uuid.UUID(*v) == uuid.Nil {
		return ""
	}
	return uuid.UUID(*v).String()
}

func (v *uuidValue) Set(s string) error {
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid uuid %q", s)
	}
	*v = uuidValue(id)
	return nil
}

func (v *uuidValue) Type() string {
	return "uuid"
}

// envBinding связывает флаг с переменной окружения.
type envBinding struct {
	flag     string
	env      string
	required bool
}

func required(flag, env string) envBinding {
	return envBinding{flag: flag, env: env, required: true}
}

func optional(flag, env string) envBinding {
	return envBinding{flag: flag, env: env}
}

// bindEnv подключает fallback на переменные окружения и проверку
// обязательных флагов. Явно переданный флаг приоритетнее окружения.
func bindEnv(cmd *cobra.Command, bindings ...envBinding) *cobra.Command {
	for _, b := range bindings {
		if b.env == "" {
			continue
		}
		if f := cmd.Flags().Lookup(b.flag); f != nil {
			f.Usage += fmt.Sprintf(" [env: %s]", b.env)
		}
	}

	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return applyEnv(cmd.Flags(), bindings)
	}
	return cmd
}

func applyEnv(fs *pflag.FlagSet, bindings []envBinding) error {
	var missing []string

	for _, b := range bindings {
		f := fs.Lookup(b.flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", b.flag)
		}

		if !f.Changed && b.env != "" {
			if v, ok := os.LookupEnv(b.env); ok && v != "" {
				if err := fs.Set(b.flag, v); err != nil {
					return fmt.Errorf("invalid value %q for %s: %w", v, b.env, err)
				}
			}
		}

		if b.required && !f.Changed {
			missing = append(missing, b.flag)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf(`required flag(s) "%s" not set`, strings.Join(missing, `", "`))
	}
	return nil
}
