package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-almanac/internal/config"
	"github.com/tartampluch/go-almanac/internal/feed"
	"github.com/tartampluch/go-almanac/internal/render"
)

// newMonthCmd prints the annotated grid of the month containing the optional
// YYYY-MM-DD argument, today by default.
func newMonthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdMonth,
		Short: config.ShortMonth,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := c.referenceDate(args)
			if err != nil {
				return err
			}
			b, _, err := c.builder(cmd)
			if err != nil {
				return err
			}
			g, err := b.Build(ref)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render.Text(g))
			return err
		},
	}
}

// newICSCmd writes the same month as an iCalendar document to stdout.
func newICSCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdICS,
		Short: config.ShortICS,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := c.referenceDate(args)
			if err != nil {
				return err
			}
			b, _, err := c.builder(cmd)
			if err != nil {
				return err
			}
			g, err := b.Build(ref)
			if err != nil {
				return err
			}
			data, err := (&feed.Generator{Clock: c.clock}).Generate(g)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.ShortVersion,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}
