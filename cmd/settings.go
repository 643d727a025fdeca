package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/dealdesk-cli/pkg/dealdesk"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and update backend settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show all backend settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := newClient().GetSettings(cmd.Context())
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s=%s\n", k, settings[k])
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key=value>...",
	Short: "Update backend settings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := dealdesk.Settings{}
		for _, arg := range args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok || key == "" {
				return eris.Errorf("expected key=value, got %q", arg)
			}
			settings[key] = value
		}

		if err := newClient().UpdateSettings(cmd.Context(), settings); err != nil {
			return err
		}
		fmt.Printf("%d setting(s) updated\n", len(settings))
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
