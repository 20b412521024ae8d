package service

import (
	"testing"

	"github.com/confetti-cuisine/confetti/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriberService(t *testing.T) {
	setup(t)
	service := SubscriberService{}

	first, err := service.Create(SubscriberParams{Name: "Jon", Email: "jon@example.com", ZipCode: 12345})
	require.NoError(t, err)
	second, err := service.Create(SubscriberParams{Name: "Chef", Email: "chef@example.com", ZipCode: 12345})
	require.NoError(t, err)
	_, err = service.Create(SubscriberParams{Name: "Far", Email: "far@example.com", ZipCode: 99999})
	require.NoError(t, err)

	_, err = service.Create(SubscriberParams{Name: "Dup", Email: "JON@example.com"})
	assert.True(t, database.IsDuplicate(err))

	_, err = service.Create(SubscriberParams{Email: "noname@example.com", ZipCode: 123})
	ve, ok := database.IsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Errors, 2)

	local, err := service.FindLocal(first)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, second.Id, local[0].Id)

	updated, err := service.Update(first.Id, SubscriberParams{Name: "Jonathan", Email: "jon@example.com", ZipCode: 54321})
	require.NoError(t, err)
	assert.Equal(t, "Jonathan", updated.Name)

	require.NoError(t, service.Delete(second.Id))
	list, err := service.List()
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = service.Get(second.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}
