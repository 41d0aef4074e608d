package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hrms-portal/internal/client"
	"hrms-portal/internal/config"
	"hrms-portal/internal/entity"
	"hrms-portal/internal/logger"
	"hrms-portal/internal/notify"
	"hrms-portal/internal/session"
	"hrms-portal/internal/workflow"
)

// cli is the state shared by every command once the root pre-run has loaded
// configuration and the saved session.
type cli struct {
	cfg       *config.Client
	log       *slog.Logger
	in        io.Reader
	out       io.Writer
	notifier  workflow.Notifier
	confirmer workflow.Confirmer
	sess      session.Session
	backends  *client.Backends
	api       *client.Client
	catalog   entity.Catalog

	apiURL string
	yes    bool
	color  bool
}

// shownError marks a failure the user has already seen as a notification.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

func newRootCmd() *cobra.Command {
	c := &cli{in: os.Stdin, out: os.Stdout}

	cmd := &cobra.Command{
		Use:           "hrmsctl",
		Short:         "Manage HR records from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&c.apiURL, "api", "", "API root, overrides HRMS_API_URL")
	cmd.PersistentFlags().BoolVarP(&c.yes, "yes", "y", false, "answer yes to every confirmation")
	cmd.PersistentFlags().BoolVar(&c.color, "color", true, "color notifications")

	cmd.AddCommand(newLoginCmd(c))
	cmd.AddCommand(newLogoutCmd(c))
	cmd.AddCommand(newWhoamiCmd(c))
	cmd.AddCommand(newRegisterCmd(c))
	cmd.AddCommand(newUsersCmd(c))
	cmd.AddCommand(newEmployeesCmd(c))
	cmd.AddCommand(newBenefitsCmd(c))
	cmd.AddCommand(newCompliancesCmd(c))
	cmd.AddCommand(newDepartmentsCmd(c))
	cmd.AddCommand(newLeaveTypesCmd(c))
	cmd.AddCommand(newAttendanceCmd(c))
	cmd.AddCommand(newRegularizationCmd(c))
	cmd.AddCommand(newPayrollCmd(c))
	cmd.AddCommand(newWatchCmd(c))
	return cmd
}

func (c *cli) setup() error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.APIURL = c.apiURL
	}
	c.cfg = cfg
	c.log = logger.New(os.Stderr, cfg.LogLevel)

	c.notifier = notify.Fanout(notify.NewConsole(c.out, c.color), notify.NewLog(c.log))
	c.confirmer = newPrompter(c.in, c.out)
	if c.yes {
		c.confirmer = workflow.AutoConfirm
	}

	sess, err := session.Load(cfg.TokenFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		c.log.Warn("ignoring unreadable session", "file", cfg.TokenFile, "error", err)
	}
	c.sess = sess

	burst := int(cfg.RateLimitRPS)
	if burst < 1 {
		burst = 1
	}
	c.api = client.New(cfg.APIURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RateLimitRPS, burst),
		client.WithToken(func() string { return c.sess.Token }),
		client.WithLogger(c.log),
	)
	c.backends = client.NewBackends(c.api)
	return nil
}

func (c *cli) requireSession() error {
	if !c.sess.Authenticated() {
		return errors.New("not signed in, run hrmsctl login first")
	}
	return nil
}

func (c *cli) workflowOptions() []workflow.Option {
	return []workflow.Option{
		workflow.WithNotifier(c.notifier),
		workflow.WithConfirmer(c.confirmer),
		workflow.WithLogger(c.log),
	}
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		var se *shownError
		if !errors.As(err, &se) {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}
