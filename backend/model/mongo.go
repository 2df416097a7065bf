package model

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

// EnsureIndexes creates the unique email index.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

func (s *MongoUserStore) Insert(ctx context.Context, user *User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

type MongoFileStore struct {
	coll *mongo.Collection
}

func NewMongoFileStore(coll *mongo.Collection) *MongoFileStore {
	return &MongoFileStore{coll: coll}
}

// EnsureIndexes creates the owner index used by ListByOwner.
func (s *MongoFileStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create files userId index: %w", err)
	}
	return nil
}

func (s *MongoFileStore) Insert(ctx context.Context, file *File) error {
	prepareInsert(file)
	if _, err := s.coll.InsertOne(ctx, file); err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

func (s *MongoFileStore) FindByID(ctx context.Context, id primitive.ObjectID) (*File, error) {
	var file File
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&file)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find file: %w", err)
	}
	return &file, nil
}

func (s *MongoFileStore) ListByOwner(ctx context.Context, userID primitive.ObjectID) ([]File, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	files := make([]File, 0)
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("decode files: %w", err)
	}
	return files, nil
}

func (s *MongoFileStore) Update(ctx context.Context, file *File) error {
	update := bson.M{"$set": bson.M{
		"filename":   file.Filename,
		"storedName": file.StoredName,
		"filepath":   file.Filepath,
		"qrCodePath": file.QRCodePath,
	}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": file.ID}, update)
	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoFileStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
