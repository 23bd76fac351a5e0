package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/textcheck/internal/app"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

var versionColor = color.New(color.FgYellow, color.Bold)

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := versionPayload{
				Tool:      "textcheck",
				Version:   app.Version,
				Commit:    app.Commit,
				BuildTime: app.BuildTime,
			}

			switch strings.ToLower(format) {
			case "pretty":
				fmt.Fprintf(cmd.OutOrStdout(), "textcheck %s\n", versionColor.Sprint(payload.Version))
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\nbuilt:  %s\n", payload.Commit, payload.BuildTime)
				return nil
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}
