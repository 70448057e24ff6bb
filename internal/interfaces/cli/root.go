// Package cli implementa gymctl, la herramienta de operación: migraciones, consultas rápidas
// sobre la cartera y el libro de ventas, e importación de planillas de la versión anterior.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// Execute ejecuta gymctl con los argumentos del proceso. Termina con código 1 si el comando falla.
func Execute() {
	env := &environment{}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(env).ExecuteContext(ctx)
	stop()
	env.close()
	if err != nil {
		if env.log != nil {
			env.log.Error().Err(err).Msg("comando fallido")
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(env *environment) *cobra.Command {
	root := &cobra.Command{
		Use:   "gymctl",
		Short: "Herramienta de operación de GymDesk",
		Long: `gymctl opera sobre la misma base que la API: aplica migraciones, lista vencimientos,
imprime el libro de ventas e importa planillas de clientes exportadas de la versión anterior.

Lee la configuración de las mismas variables de entorno que la API (DATABASE_URL o DB_*,
REDIS_ADDR, APP_TIMEZONE, LOG_LEVEL).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.load()
		},
	}
	root.AddCommand(
		newMigrateCommand(env),
		newOwnersCommand(env),
		newClientsCommand(env),
		newLedgerCommand(env),
		newImportCommand(env),
	)
	return root
}
