package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample data into empty collections",
		Long:  "Insert sample buildings, properties, tenants, contracts, tasks, activities and rent payments. Collections that already hold documents are left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runSeed(ctx context.Context, out io.Writer) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.stores.SeedAll(ctx); err != nil {
		return err
	}

	s := a.stores
	s.FetchAll(ctx)
	fmt.Fprintf(out, "buildings:    %d\n", s.Buildings.Len())
	fmt.Fprintf(out, "properties:   %d\n", s.Properties.Len())
	fmt.Fprintf(out, "tenants:      %d\n", s.Tenants.Len())
	fmt.Fprintf(out, "contracts:    %d\n", s.Contracts.Len())
	fmt.Fprintf(out, "tasks:        %d\n", s.Tasks.Len())
	fmt.Fprintf(out, "activities:   %d\n", s.Activities.Len())
	fmt.Fprintf(out, "rentPayments: %d\n", s.RentPayments.Len())
	return nil
}
