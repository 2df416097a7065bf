package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File is the metadata record of an uploaded file. StoredName is the name the
// bytes live under in blob storage; Filepath and QRCodePath are the public
// URL paths of the file and of its QR image.
type File struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	Filename   string             `json:"filename" bson:"filename"`
	StoredName string             `json:"storedName" bson:"storedName"`
	Filepath   string             `json:"filepath" bson:"filepath"`
	QRCodePath string             `json:"qrCodePath,omitempty" bson:"qrCodePath,omitempty"`
	UploadDate time.Time          `json:"uploadDate" bson:"uploadDate"`
}

type FileStore interface {
	// Insert assigns an ID when the record has none and defaults
	// UploadDate to the current time.
	Insert(ctx context.Context, file *File) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*File, error)
	// ListByOwner returns the owner's records in insertion order, never nil.
	ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]File, error)
	// Update rewrites the mutable name fields of an existing record.
	Update(ctx context.Context, file *File) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

func prepareInsert(file *File) {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	if file.UploadDate.IsZero() {
		file.UploadDate = time.Now()
	}
	// millisecond precision round-trips through BSON dates unchanged
	file.UploadDate = file.UploadDate.Truncate(time.Millisecond)
}
