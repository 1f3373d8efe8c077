package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samiti/internal/announcement/models"
	"samiti/internal/announcement/store"
	dErrors "samiti/pkg/domain-errors"
	audit "samiti/pkg/platform/audit"
	"samiti/pkg/platform/audit/publisher"
	auditmemory "samiti/pkg/platform/audit/store/memory"
	"samiti/pkg/requestcontext"
)

func TestCreate(t *testing.T) {
	now := time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC)
	auditLog := auditmemory.NewInMemoryStore()
	svc := New(store.NewInMemory(), WithAuditPublisher(publisher.NewPublisher(auditLog)))

	t.Run("requires an authenticated author", func(t *testing.T) {
		_, err := svc.Create(context.Background(), &models.CreateAnnouncementRequest{Title: "t", Content: "c"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("records the caller as author", func(t *testing.T) {
		ctx := requestcontext.WithPrincipal(requestcontext.WithTime(context.Background(), now), 12, "DISTRICT")
		a, err := svc.Create(ctx, &models.CreateAnnouncementRequest{Title: "Meeting", Content: "Friday"})
		require.NoError(t, err)
		assert.Equal(t, int64(12), a.CreatedBy)
		assert.Equal(t, models.AudienceAll, a.Audience)
		assert.Equal(t, now, a.CreatedAt)

		events, err := auditLog.ListByActor(ctx, 12)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, string(audit.EventAnnouncementCreated), events[0].Action)
	})
}

func TestListAndGet(t *testing.T) {
	svc := New(store.NewInMemory())
	ctx := requestcontext.WithPrincipal(context.Background(), 1, "STATE")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first, err := svc.Create(ctx, &models.CreateAnnouncementRequest{Title: "one", Content: "c", Audience: models.AudienceAgency})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CreateAnnouncementRequest{Title: "two", Content: "c"})
	require.NoError(t, err)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "two", list[0].Title)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AudienceAgency, got.Audience)

	_, err = svc.Get(ctx, 404)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Equal(t, "Announcement not found", err.Error())
}
