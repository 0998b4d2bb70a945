package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/systolic/render"
	"github.com/kbukum/systolic/version"
)

func newVersionCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := render.ParseFormat(name)
			if err != nil {
				return err
			}
			if format == render.FormatText {
				_, err := fmt.Fprintln(a.out, version.GetFullVersion())
				return err
			}
			return render.New(format, a.out).Render(version.GetVersionInfo())
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text, json, yaml")
	return cmd
}

func newAboutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Describe how evaluation works",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintln(a.out, version.About())
			return err
		},
	}
}
