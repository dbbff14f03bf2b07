package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/itmsdev/itms-client/core/schedule"
)

var dayNames = map[int]string{
	2: "Mon", 3: "Tue", 4: "Wed", 5: "Thu", 6: "Fri", 7: "Sat", 8: "Sun",
}

func (cli *commandLine) schedulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "Browse and manage trainer schedules",
	}
	cmd.AddCommand(
		cli.schedulesListCmd(),
		cli.schedulesAddCmd(),
		cli.schedulesRemoveCmd(),
	)
	return cmd
}

func (cli *commandLine) schedulesListCmd() *cobra.Command {
	var trainer string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedule slots, optionally for one trainer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.api.Schedules.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTRAINER\tCOURSE\tDAY\tTIME\tROOM\tSTATUS")
			for _, s := range env.Data {
				if trainer != "" && s.TrainerUsername != trainer {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s-%s\t%s\t%s\n",
					s.ID, s.TrainerUsername, s.CourseCode, dayNames[s.Day],
					s.StartTime, s.EndTime, s.Room, s.Status)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&trainer, "trainer", "", "only this trainer's slots")
	return cmd
}

func (cli *commandLine) schedulesAddCmd() *cobra.Command {
	var ns schedule.NewTrainerSchedule

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a schedule slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.api.Schedules.Add(cmd.Context(), ns)
			if err != nil {
				return err
			}
			fmt.Printf("Created slot %s (%s %s-%s)\n",
				env.Data.ID, dayNames[env.Data.Day], env.Data.StartTime, env.Data.EndTime)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&ns.TrainerUsername, "trainer", "", "trainer username (required)")
	fl.StringVar(&ns.CourseCode, "course", "", "course code (required)")
	fl.StringVar(&ns.CourseName, "course-name", "", "course display name")
	fl.StringVar(&ns.Room, "room", "", "room")
	fl.IntVar(&ns.Day, "day", 0, "day on the 2..8 grid (2=Mon)")
	fl.StringVar(&ns.StartTime, "start", "", "start time HH:mm (required)")
	fl.StringVar(&ns.EndTime, "end", "", "end time HH:mm (required)")
	fl.StringVar(&ns.Date, "date", "", "date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("trainer")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (cli *commandLine) schedulesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a schedule slot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cli.api.Schedules.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted slot %s\n", args[0])
			return nil
		},
	}
}
