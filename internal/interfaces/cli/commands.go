package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/gymdesk-api/internal/infrastructure/postgres"
)

func newMigrateCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := env.db(ctx)
			if err != nil {
				return err
			}
			applied, err := postgres.Migrate(ctx, pool, env.log.Component("migrate"))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "sin migraciones pendientes")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintf(out, "aplicada %s\n", name)
			}
			return nil
		},
	}
}

func newOwnersCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "owners",
		Short: "Lista las cuentas registradas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := env.db(ctx)
			if err != nil {
				return err
			}
			owners, err := postgres.NewOwnerRepository(pool).List(ctx)
			if err != nil {
				return err
			}
			return printOwners(cmd.OutOrStdout(), owners)
		},
	}
}

func newClientsCommand(env *environment) *cobra.Command {
	clients := &cobra.Command{
		Use:   "clients",
		Short: "Consultas sobre la cartera de clientes",
	}

	expiring := &cobra.Command{
		Use:     "expiring",
		Short:   "Clientes activos que vencen dentro de N días",
		Example: `  gymctl clients expiring --owner 6f1c... --within 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ownerID, _ := cmd.Flags().GetString("owner")
			within, _ := cmd.Flags().GetInt("within")
			if within < 0 {
				return fmt.Errorf("--within no puede ser negativo")
			}
			ctx := cmd.Context()
			if err := env.owner(ctx, ownerID); err != nil {
				return err
			}
			uc, err := env.clientUseCase(ctx)
			if err != nil {
				return err
			}
			list, err := uc.Expiring(ctx, ownerID, within)
			if err != nil {
				return err
			}
			return printExpiring(cmd.OutOrStdout(), list)
		},
	}
	expiring.Flags().String("owner", "", "ID de la cuenta")
	expiring.Flags().Int("within", 7, "ventana en días")
	_ = expiring.MarkFlagRequired("owner")

	clients.AddCommand(expiring)
	return clients
}

func newLedgerCommand(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Imprime el libro de ventas con sus sumas",
		Example: `  gymctl ledger --owner 6f1c...
  gymctl ledger --owner 6f1c... --query "marzo 2024 cuota"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ownerID, _ := cmd.Flags().GetString("owner")
			query, _ := cmd.Flags().GetString("query")
			ctx := cmd.Context()
			if err := env.owner(ctx, ownerID); err != nil {
				return err
			}
			uc, err := env.saleUseCase(ctx)
			if err != nil {
				return err
			}
			ledger, err := uc.Ledger(ctx, ownerID, query)
			if err != nil {
				return err
			}
			return printLedger(cmd.OutOrStdout(), ledger)
		},
	}
	cmd.Flags().String("owner", "", "ID de la cuenta")
	cmd.Flags().String("query", "", "búsqueda: período (\"marzo 2024\"), texto de observaciones o fecha D/M/AAAA")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newImportCommand(env *environment) *cobra.Command {
	imp := &cobra.Command{
		Use:   "import",
		Short: "Importa datos de la versión anterior",
	}

	clients := &cobra.Command{
		Use:   "clients FILE",
		Short: "Importa una planilla CSV de clientes",
		Long: `Importa una planilla CSV de clientes exportada de la versión anterior.

El separador (";" o ",") se detecta en el encabezado. Las planillas guardadas con Excel
en Windows suelen venir en ISO-8859-1: usar --charset latin1. Las filas inválidas o con
DNI repetido se informan y no detienen la importación.`,
		Example: `  gymctl import clients --owner 6f1c... socios.csv --charset latin1
  gymctl import clients --owner 6f1c... socios.csv --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ownerID, _ := cmd.Flags().GetString("owner")
			charset, _ := cmd.Flags().GetString("charset")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			if err := env.owner(ctx, ownerID); err != nil {
				return err
			}
			uc, err := env.clientUseCase(ctx)
			if err != nil {
				return err
			}
			env.log.Info().
				Str("owner_id", ownerID).
				Str("file", args[0]).
				Str("charset", charset).
				Bool("dry_run", dryRun).
				Msg("importando clientes")

			res, err := importClients(ctx, uc, ownerID, f, charset, dryRun)
			if err != nil {
				return err
			}
			return printImport(cmd.OutOrStdout(), res, dryRun)
		},
	}
	clients.Flags().String("owner", "", "ID de la cuenta destino")
	clients.Flags().String("charset", "utf-8", "codificación del archivo: utf-8 o latin1")
	clients.Flags().Bool("dry-run", false, "valida la planilla sin escribir")
	_ = clients.MarkFlagRequired("owner")

	imp.AddCommand(clients)
	return imp
}
