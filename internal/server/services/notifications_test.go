package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/loopin/internal/common"
	"github.com/dmitrijs2005/loopin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_List(t *testing.T) {
	store := newMemStore()
	for i := range 25 {
		store.notifications = append(store.notifications, &models.Notification{
			ID: fmt.Sprintf("n%d", i), RecipientID: "u1", Type: models.NotificationLike, Read: i < 3,
		})
	}
	store.notifications = append(store.notifications, &models.Notification{ID: "other", RecipientID: "u2"})

	db, _ := newSQLMockDB(t)
	s := NewNotificationService(db, &fakeRepoManager{s: store})

	items, unread, err := s.List(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, items, MaxNotificationLimit)
	assert.Equal(t, "n24", items[0].ID)
	assert.Equal(t, int64(22), unread)

	items, _, err = s.List(context.Background(), "u1", 5)
	require.NoError(t, err)
	assert.Len(t, items, 5)

	items, _, err = s.List(context.Background(), "u1", 500)
	require.NoError(t, err)
	assert.Len(t, items, MaxNotificationLimit)
}

func TestNotificationService_MarkRead(t *testing.T) {
	store := newMemStore()
	store.notifications = []*models.Notification{{ID: "n1", RecipientID: "u1"}}
	db, _ := newSQLMockDB(t)
	s := NewNotificationService(db, &fakeRepoManager{s: store})

	require.ErrorIs(t, s.MarkRead(context.Background(), "u2", "n1"), common.ErrorNotFound)
	assert.False(t, store.notifications[0].Read)

	require.NoError(t, s.MarkRead(context.Background(), "u1", "n1"))
	assert.True(t, store.notifications[0].Read)
}
