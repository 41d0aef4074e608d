package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hrms-portal/internal/entity"
	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/session"
	"hrms-portal/internal/workflow"
)

func newLoginCmd(c *cli) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				p, err := newPrompter(c.in, c.out).ask("Password")
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = p
			}

			page := entity.NewLogin(c.backends.Auth, c.notifier)
			_, _ = page.Set("username", username)
			_, _ = page.Set("password", password)

			sess, route, err := page.Submit(cmd.Context())
			if err != nil {
				return shown(err)
			}
			if err := session.Save(c.cfg.TokenFile, sess); err != nil {
				return err
			}
			c.sess = sess

			c.notifier.Notify(workflow.Notification{
				Severity: workflow.SeveritySuccess,
				Summary:  "Signed in",
				Detail:   fmt.Sprintf("%s (%s), dashboard %s", sess.Username, sess.Role, route),
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password, prompted when empty")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(*cobra.Command, []string) error {
			if err := os.Remove(c.cfg.TokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove session: %w", err)
			}
			c.notifier.Notify(workflow.Notification{Severity: workflow.SeverityInfo, Summary: "Signed out"})
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the saved session",
		RunE: func(*cobra.Command, []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			route, _ := session.Dashboard(c.sess.Role)
			fmt.Fprintf(c.out, "user:      %s\nrole:      %s\nemployee:  %s\ndashboard: %s\n",
				c.sess.Username, c.sess.Role, c.sess.EmployeeID, route)
			return nil
		},
	}
}

func newRegisterCmd(c *cli) *cobra.Command {
	var username, email, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account (administrators only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			if !c.sess.IsAdmin() {
				return entity.ErrNotPermitted
			}

			backend := &capture[model.RegisteredUser]{Backend: c.backends.Users}
			ctrl, err := workflow.New(c.catalog.Register(), backend, c.workflowOptions()...)
			if err != nil {
				return err
			}
			if err := ctrl.Initialize(cmd.Context(), form.ModeCreate); err != nil {
				return shown(err)
			}

			_, _ = ctrl.ValidateField("username", entity.SanitizeUsername(username))
			_, _ = ctrl.ValidateField("email", entity.SanitizeEmail(email))
			_, _ = ctrl.ValidateField("role", role)
			if err := ctrl.Submit(cmd.Context()); err != nil {
				return submitError(c, err)
			}

			if created, ok := backend.Created(); ok {
				fmt.Fprintf(c.out, "temporary password for %s: %s\n", created.Username, created.TemporaryPassword)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "lowercase letters and digits")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&role, "role", model.RoleEmployee, "HR, MANAGER, FINANCE or EMPLOYEE")
	return cmd
}

func newUsersCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			users, err := c.backends.Users.List(cmd.Context())
			if err != nil {
				c.notifier.Notify(workflow.Notification{Severity: workflow.SeverityError, Summary: "Error", Detail: workflow.Describe(err, "Failed to load users.")})
				return shown(err)
			}
			plain := make([]model.User, 0, len(users))
			for _, u := range users {
				plain = append(plain, u.User)
			}
			return printJSON(c.out, plain)
		},
	}
}
