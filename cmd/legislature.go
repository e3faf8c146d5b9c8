package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/discorsi-cli/internal/calendar"
	"github.com/sells-group/discorsi-cli/internal/source"
)

var legislatureCmd = &cobra.Command{
	Use:   "legislature <date>",
	Short: "Print the legislature number for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := source.ParseDate(args[0])
		if err != nil {
			return err
		}
		n, err := calendar.New(time.Now()).Resolve(date)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
		return err
	},
}

func init() {
	rootCmd.AddCommand(legislatureCmd)
}
