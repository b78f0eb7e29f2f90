package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/spf13/cobra"
)

func newMovementsCmd(a *app) *cobra.Command {
	var companyID, productID string
	var limit int

	cmd := &cobra.Command{
		Use:   "movements",
		Short: "Lista el ledger de un producto (más reciente primero)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.svc.RecordMovement.ListMovements(cmd.Context(), companyID, productID, limit, 0)
			if err != nil {
				return err
			}
			printMovements(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "ID de la empresa (obligatorio)")
	cmd.Flags().StringVar(&productID, "product", "", "ID del producto (obligatorio)")
	cmd.Flags().IntVar(&limit, "limit", inventory.DefaultMovementsLimit, "máximo de movimientos")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func printMovements(out io.Writer, list []*entity.StockMovement) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTIPO\tCANTIDAD\tANTES\tDESPUÉS\tFECHA\tMOTIVO")
	for _, m := range list {
		qty := m.Quantity.String()
		if m.Direction < 0 {
			qty = "-" + qty
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Sequence, m.Type, qty, m.PreviousStock, m.NewStock,
			m.CreatedAt.Format("2006-01-02 15:04:05"), m.Reason)
	}
	_ = w.Flush()
}
