package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-portal/internal/entity"
	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/workflow"
)

func TestPrompterYesNo(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("yes\nn\n"), &out)

	d := p.Confirm(context.Background(), workflow.Prompt{Header: "Delete", Message: "Are you sure?"})
	assert.True(t, d.Confirmed)
	assert.Contains(t, out.String(), "Are you sure? [y/N]")

	d = p.Confirm(context.Background(), workflow.Prompt{Message: "Again?"})
	assert.False(t, d.Confirmed)

	// Input exhausted.
	d = p.Confirm(context.Background(), workflow.Prompt{Message: "Once more?"})
	assert.False(t, d.Confirmed)
}

func TestPrompterReason(t *testing.T) {
	p := newPrompter(strings.NewReader("  No proof  "), &bytes.Buffer{})
	d := p.Confirm(context.Background(), workflow.Prompt{Message: "Enter rejection reason:", RequireReason: true})
	assert.True(t, d.Confirmed)
	assert.Equal(t, "No proof", d.Reason)
}

type benefitStore struct {
	created []model.Benefit
}

func (b *benefitStore) Create(_ context.Context, rec model.Benefit, _ []workflow.Attachment) (model.Benefit, error) {
	rec.ID = "b-1"
	b.created = append(b.created, rec)
	return rec, nil
}

func (b *benefitStore) Update(_ context.Context, _ string, rec model.Benefit) (model.Benefit, error) {
	return rec, nil
}

func (b *benefitStore) Delete(context.Context, string) error { return nil }

func (b *benefitStore) List(context.Context) ([]model.Benefit, error) { return b.created, nil }

func TestApplySetsAndCapture(t *testing.T) {
	store := &benefitStore{}
	backend := &capture[model.Benefit]{Backend: store}
	ctrl, err := workflow.New(entity.Catalog{}.Benefit(), backend)
	require.NoError(t, err)
	require.NoError(t, ctrl.Initialize(context.Background(), form.ModeCreate))

	assert.Error(t, applySets(ctrl, []string{"name"}))
	assert.Error(t, applySets(ctrl, []string{"=Gym"}))

	require.NoError(t, applySets(ctrl, []string{"name=Gym", "description=Monthly pass", "type=MONETARY"}))
	require.NoError(t, ctrl.Submit(context.Background()))

	created, ok := backend.Created()
	require.True(t, ok)
	assert.Equal(t, "b-1", created.ID)
	assert.Equal(t, "Gym", created.Name)

	rec, ok := findRecord(ctrl.Records(), func(b model.Benefit) string { return b.ID }, "b-1")
	assert.True(t, ok)
	assert.Equal(t, "Gym", rec.Name)
}
