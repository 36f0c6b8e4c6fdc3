package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"photo-manifest/internal/platform/autostart"
)

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the " + autostart.ServiceName + " Windows service",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: "Register the daemon as an auto-start service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := os.Executable()
			if err != nil {
				return err
			}
			created, err := autostart.InstallService(autostart.DaemonPath(exe))
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Service %s created.\n", autostart.ServiceName)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Service %s updated.\n", autostart.ServiceName)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the service and wait until it runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := autostart.StartService(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Service running.")
			return nil
		},
	})

	var stopTimeout time.Duration
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := autostart.StopService(stopTimeout); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Service stopped.")
			return nil
		},
	}
	stop.Flags().DurationVar(&stopTimeout, "timeout", 20*time.Second, "How long to wait for the service to stop")
	cmd.AddCommand(stop)

	var removeTimeout time.Duration
	uninstall := &cobra.Command{
		Use:   "uninstall",
		Short: "Stop the service and remove its registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := autostart.RemoveService(removeTimeout); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Service %s removed.\n", autostart.ServiceName)
			return nil
		},
	}
	uninstall.Flags().DurationVar(&removeTimeout, "timeout", 20*time.Second, "How long to wait for the service to stop")
	cmd.AddCommand(uninstall)

	return cmd
}
