package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"thermo/internal/device"
	"thermo/internal/ipc"
)

func newWriteCommand(ctx *commandContext) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "write <token>",
		Short: "Stage a temperature token into the endpoint buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Write(args[0], count)
				if err != nil {
					return err
				}
				printWriteResult(stdout, resp)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "Bytes to transfer (defaults to token length)")
	return cmd
}

func newReadCommand(ctx *commandContext) *cobra.Command {
	var max int
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Drain the endpoint buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Read(max)
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "%s (%d bytes)\n", resp.Data, resp.Bytes)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&max, "max", 0, "Maximum bytes to read (defaults to full buffer)")
	return cmd
}

// newConvertCommand runs a full open, write, read, close cycle so a single
// invocation behaves like a short-lived endpoint consumer.
func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <token>",
		Short: "Convert a temperature token and read back the stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Open("read-write"); err != nil {
					return err
				}
				defer client.CloseEndpoint() //nolint:errcheck

				resp, err := client.Write(args[0], 0)
				if err != nil {
					return err
				}
				printWriteResult(stdout, resp)

				read, err := client.Read(0)
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Buffer now holds %q\n", read.Data)
				return nil
			})
		},
	}
}

func printWriteResult(stdout io.Writer, resp *ipc.WriteResponse) {
	switch resp.Outcome {
	case string(device.OutcomeConverted):
		if resp.Converted != nil {
			fmt.Fprintf(stdout, "Converted to %d (%d bytes transferred)\n", *resp.Converted, resp.Accepted)
			return
		}
		fmt.Fprintf(stdout, "Converted (%d bytes transferred)\n", resp.Accepted)
	case string(device.OutcomeMalformed):
		fmt.Fprintf(stdout, "Token rejected as malformed; %d bytes still transferred, buffer holds %q\n", resp.Accepted, resp.Buffer)
	case string(device.OutcomeUnknownUnit):
		fmt.Fprintf(stdout, "Unknown unit; %d bytes transferred without conversion (unit must be F or C)\n", resp.Accepted)
	default:
		fmt.Fprintf(stdout, "Write accepted (%d bytes)\n", resp.Accepted)
	}
}
