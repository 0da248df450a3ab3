package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"thermo/internal/ipc"
)

func newEndpointCommands(ctx *commandContext) []*cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Register the conversion endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Start()
				if err != nil {
					return err
				}
				if !resp.Started {
					fmt.Fprintf(stdout, "Endpoint not started: %s\n", resp.Message)
					return nil
				}
				fmt.Fprintf(stdout, "Endpoint %s registered (identity %s)\n", resp.Endpoint, resp.Identity)
				return nil
			})
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Deregister the conversion endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Stop()
				if err != nil {
					return err
				}
				if resp.Stopped {
					fmt.Fprintln(stdout, "Endpoint deregistered")
				}
				return nil
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and endpoint status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}

				colorize := shouldColorize(stdout)

				for _, line := range renderSectionHeader("Daemon", colorize) {
					fmt.Fprintln(stdout, line)
				}
				runningKind := statusWarn
				if status.Running {
					runningKind = statusOK
				}
				fmt.Fprintln(stdout, renderStatusLine("Running", runningKind, yesNo(status.Running), colorize))
				fmt.Fprintln(stdout, renderStatusLine("PID", statusInfo, strconv.Itoa(status.PID), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Socket", statusInfo, status.SocketPath, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Lock", statusInfo, status.LockPath, colorize))
				if status.JournalPath != "" {
					fmt.Fprintln(stdout, renderStatusLine("Journal", statusInfo, status.JournalPath, colorize))
				}
				fmt.Fprintln(stdout)

				for _, line := range renderSectionHeader("Endpoint", colorize) {
					fmt.Fprintln(stdout, line)
				}
				if !status.Running {
					fmt.Fprintln(stdout, "Endpoint is offline")
					return nil
				}
				fmt.Fprintln(stdout, renderStatusLine("Name", statusInfo, status.EndpointName, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Identity", statusInfo, status.Identity, colorize))
				fmt.Fprintln(stdout, renderStatusLine("Active", statusInfo, yesNo(status.Active), colorize))
				fmt.Fprintln(stdout, renderStatusLine("Buffer", statusInfo, status.Buffer, colorize))

				rows := [][]string{
					{"Reads", strconv.FormatUint(status.Reads, 10)},
					{"Writes", strconv.FormatUint(status.Writes, 10)},
				}
				fmt.Fprintln(stdout, renderTable([]string{"Counter", "Value"}, rows, 2))
				return nil
			})
		},
	}

	return []*cobra.Command{startCmd, stopCmd, statusCmd}
}
