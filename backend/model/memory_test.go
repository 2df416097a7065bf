package model

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	user := &User{Email: "a@example.com", Password: "hash"}
	require.NoError(t, store.Insert(ctx, user))
	assert.False(t, user.ID.IsZero(), "insert assigns an id")

	found, err := store.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash", found.Password)

	err = store.Insert(ctx, &User{Email: "a@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = store.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFileStore_ListByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryFileStore()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	empty, err := store.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"a.txt", "b.txt"} {
		require.NoError(t, store.Insert(ctx, &File{UserID: owner, Filename: name}))
	}
	require.NoError(t, store.Insert(ctx, &File{UserID: other, Filename: "c.txt"}))

	files, err := store.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.txt", files[0].Filename)
	assert.Equal(t, "b.txt", files[1].Filename)
	assert.False(t, files[0].UploadDate.IsZero(), "upload date defaults to now")
}

func TestMemoryFileStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryFileStore()
	uploaded := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	file := &File{
		UserID:     primitive.NewObjectID(),
		Filename:   "old.txt",
		StoredName: "1-old.txt",
		Filepath:   "/uploads/1-old.txt",
		UploadDate: uploaded,
	}
	require.NoError(t, store.Insert(ctx, file))

	file.Filename = "new.txt"
	file.StoredName = "1-new.txt"
	file.Filepath = "/uploads/1-new.txt"
	file.QRCodePath = "/uploads/1-new.txt.png"
	require.NoError(t, store.Update(ctx, file))

	got, err := store.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.txt", got.Filename)
	assert.Equal(t, "1-new.txt", got.StoredName)
	assert.Equal(t, "/uploads/1-new.txt.png", got.QRCodePath)
	assert.True(t, uploaded.Equal(got.UploadDate))

	// mutating the returned copy must not leak into the store
	got.Filename = "mutated"
	again, err := store.FindByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.txt", again.Filename)

	require.NoError(t, store.Delete(ctx, file.ID))
	_, err = store.FindByID(ctx, file.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, file.ID), ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, file), ErrNotFound)
}
