package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/spf13/cobra"
)

func newReconcileCmd(a *app) *cobra.Command {
	var companyID, productID string
	var repair bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reproduce el ledger y compara con products.stock",
		Long: `Reproduce los movimientos de cada producto desde stock 0 y reporta la diferencia
con el stock guardado. Con --repair, escribe el stock reproducido.`,
		Example: `  # Toda la empresa, solo reporte
  stockctl reconcile --company 6f1c...

  # Un producto, corrigiendo la diferencia
  stockctl reconcile --company 6f1c... --product 9ab2... --repair`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var reports []*inventory.ReconcileReport
			if productID != "" {
				r, err := a.svc.Reconcile.Reconcile(ctx, companyID, productID, repair)
				if err != nil {
					return err
				}
				reports = append(reports, r)
			} else {
				list, err := a.svc.Reconcile.ReconcileCompany(ctx, companyID, repair)
				if err != nil {
					return err
				}
				reports = list
			}
			drift := printReports(cmd.OutOrStdout(), reports)
			a.log.Info().
				Str("company_id", companyID).
				Int("products", len(reports)).
				Int("drifted", drift).
				Bool("repair", repair).
				Msg("reconciliación terminada")
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "ID de la empresa (obligatorio)")
	cmd.Flags().StringVar(&productID, "product", "", "ID de un producto; vacío = todos")
	cmd.Flags().BoolVar(&repair, "repair", false, "corregir products.stock con el valor reproducido")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

// printReports escribe una tabla y devuelve cuántos productos tenían diferencia.
func printReports(out io.Writer, reports []*inventory.ReconcileReport) int {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCTO\tGUARDADO\tLEDGER\tDIFERENCIA\tMOVIMIENTOS\tCORREGIDO")
	drifted := 0
	for _, r := range reports {
		if !r.InSync() {
			drifted++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%t\n",
			r.ProductID, r.RecordedStock, r.ReplayedStock, r.Drift, r.Movements, r.Repaired)
	}
	_ = w.Flush()
	return drifted
}
