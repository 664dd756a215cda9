package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeeznaveed278/myplug/internal/models"
)

func createTestPreorder(t *testing.T, s *Store) *models.Preorder {
	t.Helper()
	p := &models.Preorder{
		CustomerName: "Jane Buyer",
		PhoneNumber:  "+1 555 0100",
		Instagram:    "@janebuyer",
		ProductName:  "Jordan 4",
		Size:         "US 10",
		Status:       models.PreorderPending,
	}
	require.NoError(t, s.CreatePreorder(p))
	return p
}

func TestPreorderLifecycle(t *testing.T) {
	s := newTestStore(t)
	p := createTestPreorder(t, s)
	require.NotEmpty(t, p.ID)

	list, err := s.ListPreorders()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.PreorderPending, list[0].Status)

	require.NoError(t, s.UpdatePreorderStatus(p.ID, models.PreorderContacted))
	list, err = s.ListPreorders()
	require.NoError(t, err)
	assert.Equal(t, models.PreorderContacted, list[0].Status)

	require.NoError(t, s.DeletePreorder(p.ID))
	list, err = s.ListPreorders()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdatePreorderStatusRejectsUnknown(t *testing.T) {
	s := newTestStore(t)
	p := createTestPreorder(t, s)

	err := s.UpdatePreorderStatus(p.ID, "SHIPPED")
	assert.Error(t, err)

	list, err := s.ListPreorders()
	require.NoError(t, err)
	assert.Equal(t, models.PreorderPending, list[0].Status, "invalid status leaves the row untouched")
}

func TestCountPendingPreorders(t *testing.T) {
	s := newTestStore(t)
	createTestPreorder(t, s)
	p := createTestPreorder(t, s)
	require.NoError(t, s.UpdatePreorderStatus(p.ID, models.PreorderClosed))

	count, err := s.CountPendingPreorders()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
