package cmd

import (
	"fmt"

	"github.com/marcus/freeform/internal/config"
	"github.com/marcus/freeform/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Read and change board settings",
	GroupID: "system",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every setting",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		for _, k := range config.Keys() {
			v, _ := cfg.Get(k)
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, v)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		v, err := cfg.Get(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetValue(getBoard(), args[0], args[1]); err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "SET %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd)
}
