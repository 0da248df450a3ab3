package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"thermo/internal/ipc"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversion attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.History(limit)
				if err != nil {
					return err
				}
				if len(resp.Records) == 0 {
					fmt.Fprintln(stdout, "Journal is empty")
					return nil
				}

				rows := make([][]string, 0, len(resp.Records))
				for _, rec := range resp.Records {
					rows = append(rows, []string{
						strconv.FormatInt(rec.ID, 10),
						rec.Token,
						rec.Unit,
						optionalInt(rec.InputValue),
						optionalInt(rec.OutputValue),
						rec.Outcome,
						rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"ID", "Token", "Unit", "Input", "Output", "Outcome", "At"},
					rows, 1, 4, 5))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum records to show (defaults to configured limit)")
	return cmd
}

func newTotalsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Show aggregate conversion counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Totals()
				if err != nil {
					return err
				}
				rows := [][]string{
					{"Attempts", strconv.FormatInt(resp.Attempts, 10)},
					{"Converted", strconv.FormatInt(resp.Converted, 10)},
					{"Malformed", strconv.FormatInt(resp.Malformed, 10)},
					{"Unknown unit", strconv.FormatInt(resp.UnknownUnit, 10)},
				}
				fmt.Fprintln(stdout, renderTable([]string{"Outcome", "Count"}, rows, 2))
				return nil
			})
		},
	}
}

func optionalInt(value *int64) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatInt(*value, 10)
}
