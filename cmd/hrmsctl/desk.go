package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"hrms-portal/internal/entity"
	"hrms-portal/internal/workflow"
)

func newRegularizationCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regularization",
		Short: "Request and review attendance regularizations",
	}

	desk := func(confirmer workflow.Confirmer) (*entity.ReviewDesk, error) {
		if err := c.requireSession(); err != nil {
			return nil, err
		}
		if confirmer == nil {
			confirmer = c.confirmer
		}
		return c.catalog.ReviewDesk(c.sess, c.backends.Attendance, c.notifier, confirmer), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List regularization requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := desk(nil)
			if err != nil {
				return err
			}
			if err := d.Load(cmd.Context()); err != nil {
				return shown(err)
			}
			return printJSON(c.out, d.Requests())
		},
	})

	var date, reason string
	request := &cobra.Command{
		Use:   "request",
		Short: "Ask for a day to be regularized",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := desk(nil)
			if err != nil {
				return err
			}
			_, _ = d.Set("date", date)
			_, _ = d.Set("reason", reason)
			att, err := d.Request(cmd.Context())
			if err != nil {
				return submitError(c, err)
			}
			return printJSON(c.out, att)
		},
	}
	request.Flags().StringVar(&date, "date", "", "day to regularize, YYYY-MM-DD")
	request.Flags().StringVar(&reason, "reason", "", "why the attendance is wrong")
	cmd.AddCommand(request)

	cmd.AddCommand(&cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := desk(nil)
			if err != nil {
				return err
			}
			return shown(d.Approve(cmd.Context(), args[0]))
		},
	})

	var rejectReason string
	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending request; the reason is prompted when not given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirmer workflow.Confirmer
			if rejectReason != "" {
				confirmer = reasonConfirmer(rejectReason)
			} else if c.yes {
				// --yes cannot invent a reason.
				confirmer = newPrompter(c.in, c.out)
			}
			d, err := desk(confirmer)
			if err != nil {
				return err
			}
			err = d.Reject(cmd.Context(), args[0])
			if errors.Is(err, workflow.ErrDeclined) {
				return nil
			}
			return shown(err)
		},
	}
	reject.Flags().StringVar(&rejectReason, "reason", "", "rejection reason")
	cmd.AddCommand(reject)

	return cmd
}

func newAttendanceCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "attendance", Short: "Clock in and out of your working day"}

	desk := func() (*entity.ClockDesk, error) {
		if err := c.requireSession(); err != nil {
			return nil, err
		}
		return c.catalog.ClockDesk(c.backends.Attendance, c.notifier), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show today's clock entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := desk()
			if err != nil {
				return err
			}
			status, err := d.Load(cmd.Context())
			if err != nil {
				return shown(err)
			}
			return printJSON(c.out, status)
		},
	})

	var workFrom, mode, location string
	clockIn := &cobra.Command{
		Use:   "clock-in",
		Short: "Start today's working day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := desk()
			if err != nil {
				return err
			}
			_, _ = d.Set("workFrom", workFrom)
			_, _ = d.Set("mode", mode)
			_, _ = d.Set("location", location)
			return submitError(c, d.ClockIn(cmd.Context()))
		},
	}
	clockIn.Flags().StringVar(&workFrom, "work-from", "", "OFFICE, HOME or CLIENT_SITE")
	clockIn.Flags().StringVar(&mode, "mode", "WEB", "WEB or MOBILE")
	clockIn.Flags().StringVar(&location, "location", "", "place name, letters only, up to 12")
	cmd.AddCommand(clockIn)

	cmd.AddCommand(&cobra.Command{
		Use:   "clock-out",
		Short: "Close today's working day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := desk()
			if err != nil {
				return err
			}
			return shown(d.ClockOut(cmd.Context()))
		},
	})

	return cmd
}

func newPayrollCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "payroll", Short: "Generate and view monthly payroll"}

	var employeeID, month string
	var year int

	run := func(generate bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			d := c.catalog.PayrollDesk(c.sess, c.backends.Payroll, c.notifier)
			switch {
			case c.sess.CanModify() && employeeID != "":
				_, _ = d.Set("employeeId", employeeID)
			case !c.sess.CanModify() && employeeID != "" && employeeID != c.sess.EmployeeID:
				return entity.ErrNotPermitted
			}
			_, _ = d.Set("month", month)
			if year != 0 {
				_, _ = d.Set("year", strconv.Itoa(year))
			}

			call := d.View
			if generate {
				call = d.Generate
			}
			p, err := call(cmd.Context())
			if err != nil {
				return submitError(c, err)
			}
			return printJSON(c.out, p)
		}
	}

	for _, sub := range []*cobra.Command{
		{Use: "generate", Short: "Generate payroll for an employee and month", RunE: run(true)},
		{Use: "view", Short: "Show generated payroll", RunE: run(false)},
	} {
		sub.Flags().StringVar(&employeeID, "employee", "", "employee id; defaults to your own")
		sub.Flags().StringVar(&month, "month", "", "Jan..Dec")
		sub.Flags().IntVar(&year, "year", 0, "defaults to this year")
		cmd.AddCommand(sub)
	}

	return cmd
}
