package services_test

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"committee-tracker/backend/internal/models"
	"committee-tracker/backend/internal/repositories"
	"committee-tracker/backend/internal/seed"
	"committee-tracker/backend/internal/services"
	"committee-tracker/backend/testutil"
)

func TestCommitteeService_LogsMutations(t *testing.T) {
	_, _, repo, _ := testutil.SetupTestDB(t)
	logger, hook := test.NewNullLogger()
	svc := services.NewCommitteeService(repo, logger)
	ctx := context.Background()

	require.NoError(t, svc.UpdateCommittee(ctx, 1, models.CommitteeUpdate{Title: "t", Status: "completed", Percent: 100}))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "committee updated", entry.Message)
	assert.Equal(t, 1, entry.Data["committee_id"])
	assert.Equal(t, "completed", entry.Data["status"])

	require.NoError(t, svc.ReplaceTasks(ctx, 1, []models.TaskInput{{Text: "a"}, {Text: "b"}}))
	assert.Equal(t, 2, hook.LastEntry().Data["tasks"])

	require.NoError(t, svc.DeleteCommittee(ctx, 1))
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)

	_, err := svc.GetCommittee(ctx, 1)
	assert.ErrorIs(t, err, repositories.ErrCommitteeNotFound)
}

func TestCommitteeService_FailedReplaceIsNotLogged(t *testing.T) {
	_, _, repo, _ := testutil.SetupTestDB(t)
	logger, hook := test.NewNullLogger()
	svc := services.NewCommitteeService(repo, logger)

	err := svc.ReplaceTasks(context.Background(), 4242, []models.TaskInput{{Text: "orphan"}})
	require.Error(t, err)
	assert.Empty(t, hook.AllEntries())
}

func TestAdminService_Login(t *testing.T) {
	_, _, _, admins := testutil.SetupTestDB(t)
	logger, hook := test.NewNullLogger()
	svc := services.NewAdminService(admins, logger)
	ctx := context.Background()

	user, err := svc.Login(ctx, models.LoginRequest{Username: seed.DefaultAdminUsername, Password: seed.DefaultAdminPassword})
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultAdminUsername, user.Username)
	assert.Equal(t, log.InfoLevel, hook.LastEntry().Level)

	_, err = svc.Login(ctx, models.LoginRequest{Username: seed.DefaultAdminUsername, Password: "bad"})
	assert.ErrorIs(t, err, repositories.ErrInvalidCredentials)
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.NotContains(t, hook.LastEntry().Data, "password")
}
