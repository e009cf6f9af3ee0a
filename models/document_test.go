package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_ID(t *testing.T) {
	assert.Equal(t, "doc-1", Document{FieldID: "doc-1"}.ID())
	assert.Empty(t, Document{}.ID())
	assert.Empty(t, Document{FieldID: 42}.ID(), "mistyped identifier reads as absent")
}

func TestDocument_Clone(t *testing.T) {
	t.Run("top-level mutation does not leak", func(t *testing.T) {
		original := Document{FieldID: "doc-1", "name": "lamp"}

		clone := original.Clone()
		clone["name"] = "changed"
		delete(clone, FieldID)

		assert.Equal(t, "lamp", original["name"])
		assert.Equal(t, "doc-1", original.ID())
	})

	t.Run("nil document clones to nil", func(t *testing.T) {
		var doc Document
		assert.Nil(t, doc.Clone())
	})
}

func TestUserFromDocument(t *testing.T) {
	doc := Document{
		FieldID:        "user-1",
		FieldCreatedAt: "2026-03-14T15:09:26Z",
		"name":         "Nora",
		"email":        "nora@example.com",
		"password":     "$2a$10$digest",
		"isAdmin":      true,
	}

	user := UserFromDocument(doc)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Nora", user.Name)
	assert.Equal(t, "nora@example.com", user.Email)
	assert.Equal(t, "$2a$10$digest", user.Password)
	assert.True(t, user.IsAdmin)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("mistyped fields read as zero values", func(t *testing.T) {
		user := UserFromDocument(Document{"isAdmin": "yes", "email": 42})
		assert.False(t, user.IsAdmin)
		assert.Empty(t, user.Email)
	})
}

func TestPublicDocument(t *testing.T) {
	doc := Document{FieldID: "user-1", "email": "nora@example.com", "password": "$2a$10$digest"}

	public := PublicDocument(doc)

	assert.NotContains(t, public, "password")
	assert.Equal(t, "user-1", public.ID())
	require.Contains(t, doc, "password", "source document is untouched")
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusInProgress, OrderStatusProcessing, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusPaid,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("Teleported").Valid())
	assert.False(t, OrderStatus("in progress").Valid(), "states are case sensitive")
}
