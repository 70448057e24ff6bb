package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/jhoicas/gymdesk-api/internal/application/dto"
	"github.com/jhoicas/gymdesk-api/internal/domain/entity"
	"github.com/jhoicas/gymdesk-api/internal/infrastructure/spreadsheet"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printOwners(w io.Writer, owners []entity.Owner) error {
	if len(owners) == 0 {
		_, err := fmt.Fprintln(w, "no hay cuentas registradas")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tEMAIL\tNEGOCIO\tTIPO\tZONA\tESTADO")
	for _, o := range owners {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.Email, o.BusinessName, o.BusinessKind, o.Timezone, o.Status)
	}
	return tw.Flush()
}

func printExpiring(w io.Writer, list []dto.ClientView) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "ningún cliente vence en ese plazo")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "DNI\tNOMBRE\tVENCE\tDÍAS\tTELÉFONO")
	for _, v := range list {
		days := "?"
		if v.DaysRemaining != nil {
			days = strconv.Itoa(*v.DaysRemaining)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.DNI, v.Name, v.ExpiresOnDisplay, days, v.Phone)
	}
	return tw.Flush()
}

// printLedger imprime el árbol año → mes → día → movimiento con la suma de cada rama.
func printLedger(w io.Writer, l *dto.LedgerResponse) error {
	if l == nil || len(l.Years) == 0 {
		_, err := fmt.Fprintln(w, "sin movimientos")
		return err
	}
	tw := newTable(w)
	for _, y := range l.Years {
		fmt.Fprintf(tw, "%d\t\t%s\n", y.Year, spreadsheet.FormatAmount(y.Sum))
		for _, m := range y.Months {
			fmt.Fprintf(tw, "  %s\t\t%s\n", m.Name, spreadsheet.FormatAmount(m.Sum))
			for _, d := range m.Days {
				fmt.Fprintf(tw, "    %s\t\t%s\n", d.Display, spreadsheet.FormatAmount(d.Sum))
				for _, s := range d.Sales {
					fmt.Fprintf(tw, "      %s\t%s\t%s\n", s.Kind, s.Notes, spreadsheet.FormatAmount(s.Amount))
				}
			}
		}
	}
	fmt.Fprintf(tw, "total\t\t%s\n", spreadsheet.FormatAmount(l.Total))
	return tw.Flush()
}

func printImport(w io.Writer, res importResult, dryRun bool) error {
	if dryRun {
		fmt.Fprintf(w, "%d filas válidas, %d rechazadas (sin escribir)\n", res.Valid, len(res.Rejected))
	} else {
		fmt.Fprintf(w, "%d clientes creados, %d filas rechazadas\n", res.Created, len(res.Rejected))
	}
	for _, r := range res.Rejected {
		fmt.Fprintf(w, "  %s\n", r.Error())
	}
	return nil
}
