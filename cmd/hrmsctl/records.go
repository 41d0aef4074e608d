package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"hrms-portal/internal/client"
	"hrms-portal/internal/entity"
	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/util"
	"hrms-portal/internal/workflow"
)

// capture remembers the record returned by the last successful create.
type capture[T any] struct {
	workflow.Backend[T]

	mu      sync.Mutex
	created *T
}

func (b *capture[T]) Create(ctx context.Context, payload T, attachments []workflow.Attachment) (T, error) {
	rec, err := b.Backend.Create(ctx, payload, attachments)
	if err == nil {
		b.mu.Lock()
		b.created = &rec
		b.mu.Unlock()
	}
	return rec, err
}

func (b *capture[T]) Created() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.created == nil {
		var zero T
		return zero, false
	}
	return *b.created, true
}

// page binds one record collection to its definition and backend.
type page[T any] struct {
	use        string
	short      string
	definition func(entity.Catalog) workflow.Definition[T]
	backend    func(*client.Backends) workflow.Backend[T]
}

func newEmployeesCmd(c *cli) *cobra.Command {
	return recordCmd(c, page[model.Employee]{
		use:        "employees",
		short:      "Manage employees",
		definition: entity.Catalog.Employee,
		backend:    func(b *client.Backends) workflow.Backend[model.Employee] { return b.Employees },
	})
}

func newBenefitsCmd(c *cli) *cobra.Command {
	return recordCmd(c, page[model.Benefit]{
		use:        "benefits",
		short:      "Manage benefits",
		definition: entity.Catalog.Benefit,
		backend:    func(b *client.Backends) workflow.Backend[model.Benefit] { return b.Benefits },
	})
}

func newCompliancesCmd(c *cli) *cobra.Command {
	return recordCmd(c, page[model.Compliance]{
		use:        "compliances",
		short:      "Manage compliance rules",
		definition: entity.Catalog.Compliance,
		backend:    func(b *client.Backends) workflow.Backend[model.Compliance] { return b.Compliances },
	})
}

func newDepartmentsCmd(c *cli) *cobra.Command {
	return recordCmd(c, page[model.Department]{
		use:        "departments",
		short:      "Manage departments",
		definition: entity.Catalog.Department,
		backend:    func(b *client.Backends) workflow.Backend[model.Department] { return b.Departments },
	})
}

func newLeaveTypesCmd(c *cli) *cobra.Command {
	return recordCmd(c, page[model.LeaveType]{
		use:        "leave-types",
		short:      "Manage leave types",
		definition: entity.Catalog.LeaveType,
		backend:    func(b *client.Backends) workflow.Backend[model.LeaveType] { return b.LeaveTypes },
	})
}

// recordCmd builds list, create, edit and delete for one collection. Every
// write goes through the form workflow, so field rules, confirmations and
// messages match the web pages.
func recordCmd[T any](c *cli, p page[T]) *cobra.Command {
	cmd := &cobra.Command{Use: p.use, Short: p.short}

	open := func(ctx context.Context) (*workflow.Controller[T], *capture[T], error) {
		if err := c.requireSession(); err != nil {
			return nil, nil, err
		}
		def := p.definition(c.catalog)
		backend := &capture[T]{Backend: p.backend(c.backends)}
		ctrl, err := workflow.New(def, backend, c.workflowOptions()...)
		if err != nil {
			return nil, nil, err
		}
		if err := ctrl.Initialize(ctx, form.ModeCreate); err != nil {
			return nil, nil, shown(err)
		}
		return ctrl, backend, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List " + p.use,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, _, err := open(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(c.out, ctrl.Records())
		},
	})

	var (
		sets  []string
		photo string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a record from --set field=value pairs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireModify(); err != nil {
				return err
			}
			ctrl, backend, err := open(cmd.Context())
			if err != nil {
				return err
			}
			if err := applySets(ctrl, sets); err != nil {
				return err
			}
			if photo != "" {
				a, err := photoAttachment(photo)
				if err != nil {
					return err
				}
				ctrl.Attach(a)
			}
			if err := ctrl.Submit(cmd.Context()); err != nil {
				return submitError(c, err)
			}
			if rec, ok := backend.Created(); ok {
				return printJSON(c.out, rec)
			}
			return nil
		},
	}
	create.Flags().StringArrayVar(&sets, "set", nil, "field=value, repeatable")
	create.Flags().StringVar(&photo, "photo", "", "picture file, required for employees")
	cmd.AddCommand(create)

	var editSets []string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireModify(); err != nil {
				return err
			}
			ctrl, _, err := open(cmd.Context())
			if err != nil {
				return err
			}
			rec, ok := findRecord(ctrl.Records(), p.definition(c.catalog).ID, args[0])
			if !ok {
				return fmt.Errorf("%s %s not found", strings.TrimSuffix(p.use, "s"), args[0])
			}
			if err := ctrl.Edit(rec); err != nil {
				return err
			}
			if err := applySets(ctrl, editSets); err != nil {
				return err
			}
			if err := ctrl.Submit(cmd.Context()); err != nil {
				return submitError(c, err)
			}
			return nil
		},
	}
	edit.Flags().StringArrayVar(&editSets, "set", nil, "field=value, repeatable")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireModify(); err != nil {
				return err
			}
			ctrl, _, err := open(cmd.Context())
			if err != nil {
				return err
			}
			if err := ctrl.Delete(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, workflow.ErrDeclined) {
					return nil
				}
				return shown(err)
			}
			return nil
		},
	})

	return cmd
}

func (c *cli) requireModify() error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if !c.sess.CanModify() {
		return entity.ErrNotPermitted
	}
	return nil
}

func findRecord[T any](records []T, id func(T) string, want string) (T, bool) {
	for _, r := range records {
		if id(r) == want {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// applySets feeds field=value pairs through the form, in the order given.
func applySets[T any](ctrl *workflow.Controller[T], sets []string) error {
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid --set %q, want field=value", kv)
		}
		if _, err := ctrl.ValidateField(strings.TrimSpace(name), value); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func photoAttachment(path string) (workflow.Attachment, error) {
	if !util.IsPhotoExtension(path) {
		return workflow.Attachment{}, fmt.Errorf("%s is not a supported picture", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return workflow.Attachment{}, err
	}
	defer f.Close()
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return workflow.Attachment{}, fmt.Errorf("read %s: %w", path, err)
	}
	contentType := util.DetectMIME(head[:n])
	if !util.IsPhotoMIME(contentType) {
		return workflow.Attachment{}, fmt.Errorf("%s is %s, not a picture", filepath.Base(path), contentType)
	}

	return workflow.Attachment{
		Field:       "photo",
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Open:        func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// submitError prints the invalid fields of a blocked submit. Everything
// else was already reported by the notifier.
func submitError(c *cli, err error) error {
	if errors.Is(err, workflow.ErrDeclined) {
		return nil
	}
	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		names := make([]string, 0, len(verr.Fields))
		for name := range verr.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(c.out, "  %s: %s\n", name, strings.Join(verr.Fields[name], "; "))
		}
		if verr.MissingAttachment != "" {
			fmt.Fprintf(c.out, "  %s: required\n", verr.MissingAttachment)
		}
	}
	return shown(err)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
