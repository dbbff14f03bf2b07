package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/itmsdev/itms-client/core/course"
)

func (cli *commandLine) coursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse and manage the course catalog",
	}
	cmd.AddCommand(
		cli.coursesListCmd(),
		cli.coursesAddCmd(),
		cli.coursesUpdateCmd(),
		cli.coursesRemoveCmd(),
	)
	return cmd
}

func (cli *commandLine) coursesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.api.Courses.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCODE\tNAME\tLEVEL\tHOURS\tSTATUS\tTRAINER")
			for _, c := range env.Data {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
					c.ID, c.Code, c.Name, c.Level, c.DurationHours, c.Status, c.TrainerName)
			}
			return w.Flush()
		},
	}
}

func (cli *commandLine) coursesAddCmd() *cobra.Command {
	var nc course.NewCourse

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a course",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cli.api.Courses.Add(cmd.Context(), nc)
			if err != nil {
				return err
			}
			fmt.Printf("Created course %d (%s)\n", env.Data.ID, env.Data.Code)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&nc.Code, "code", "", "course code (required)")
	fl.StringVar(&nc.Name, "name", "", "course name (required)")
	fl.StringVar(&nc.Description, "description", "", "description")
	fl.StringVar(&nc.Objectives, "objectives", "", "learning objectives")
	fl.StringVar(&nc.Prerequisites, "prerequisites", "", "prerequisites")
	fl.IntVar(&nc.DurationHours, "hours", 0, "duration in hours")
	fl.StringVar(&nc.Category, "category", "", "category")
	fl.StringVar(&nc.Level, "level", "", "Beginner, Intermediate or Advanced")
	fl.IntVar(&nc.PassingScore, "passing-score", 0, "passing score (0-100)")
	fl.IntVar(&nc.MaxAttempts, "max-attempts", 0, "max exam attempts")
	fl.StringVar(&nc.TrainerName, "trainer", "", "trainer name")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (cli *commandLine) coursesUpdateCmd() *cobra.Command {
	var (
		uc     course.UpdateCourse
		hours  int
		status string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Patch a course; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			if cmd.Flags().Changed("hours") {
				uc.DurationHours = &hours
			}
			uc.Status = status

			env, err := cli.api.Courses.Update(cmd.Context(), id, uc)
			if err != nil {
				return err
			}
			fmt.Printf("Updated course %d (%s)\n", env.Data.ID, env.Data.Code)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&uc.Code, "code", "", "course code")
	fl.StringVar(&uc.Name, "name", "", "course name")
	fl.IntVar(&hours, "hours", 0, "duration in hours")
	fl.StringVar(&status, "status", "", "Draft, Open, Ongoing, Completed or Archived")
	fl.StringVar(&uc.TrainerName, "trainer", "", "trainer name")
	return cmd
}

func (cli *commandLine) coursesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a course",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid course id %q", args[0])
			}
			if _, err = cli.api.Courses.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted course %d\n", id)
			return nil
		},
	}
}
