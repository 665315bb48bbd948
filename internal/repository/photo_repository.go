package repository

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/JohirU-coder/landlord-property-service/internal/model"
)

// PhotoRepository keeps listing photos in a GridFS bucket. Each file is
// tagged with the property id in its metadata.
type PhotoRepository struct {
	DB *mongo.Database
}

func NewPhotoRepository(client *mongo.Client, dbName string) *PhotoRepository {
	return &PhotoRepository{DB: client.Database(dbName)}
}

type photoMeta struct {
	PropertyID  int64  `bson:"property_id"`
	ContentType string `bson:"content_type"`
}

type photoFile struct {
	ID       primitive.ObjectID `bson:"_id"`
	Filename string             `bson:"filename"`
	Metadata photoMeta          `bson:"metadata"`
}

func (f photoFile) photo() *model.Photo {
	return &model.Photo{
		ID:          f.ID.Hex(),
		PropertyID:  f.Metadata.PropertyID,
		Filename:    f.Filename,
		ContentType: f.Metadata.ContentType,
	}
}

// photoMetadata is stored on each GridFS file; Latest filters on its
// property_id.
func photoMetadata(propertyID int64, contentType string) bson.D {
	return bson.D{
		{Key: "property_id", Value: propertyID},
		{Key: "content_type", Value: contentType},
	}
}

func (r *PhotoRepository) Upload(ctx context.Context, propertyID int64, filename, contentType string, src io.Reader) (*model.Photo, error) {
	bucket, err := gridfs.NewBucket(r.DB)
	if err != nil {
		return nil, fmt.Errorf("PhotoRepository.Upload bucket: %w", err)
	}

	opts := options.GridFSUpload().SetMetadata(photoMetadata(propertyID, contentType))
	stream, err := bucket.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("PhotoRepository.Upload open: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}

	if _, err := io.Copy(stream, src); err != nil {
		_ = stream.Abort()
		return nil, fmt.Errorf("PhotoRepository.Upload copy: %w", err)
	}
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("PhotoRepository.Upload close: %w", err)
	}

	id, _ := stream.FileID.(primitive.ObjectID)
	return &model.Photo{
		ID:          id.Hex(),
		PropertyID:  propertyID,
		Filename:    filename,
		ContentType: contentType,
	}, nil
}

// Latest returns the most recently uploaded photo of the property and its
// bytes, or ErrNotFound.
func (r *PhotoRepository) Latest(ctx context.Context, propertyID int64) (*model.Photo, []byte, error) {
	bucket, err := gridfs.NewBucket(r.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("PhotoRepository.Latest bucket: %w", err)
	}

	findOpts := options.GridFSFind().
		SetSort(bson.D{{Key: "uploadDate", Value: -1}}).
		SetLimit(1)
	cursor, err := bucket.FindContext(ctx, bson.D{{Key: "metadata.property_id", Value: propertyID}}, findOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("PhotoRepository.Latest find: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, nil, fmt.Errorf("PhotoRepository.Latest cursor: %w", err)
		}
		return nil, nil, ErrNotFound
	}
	var f photoFile
	if err := cursor.Decode(&f); err != nil {
		return nil, nil, fmt.Errorf("PhotoRepository.Latest decode: %w", err)
	}

	stream, err := bucket.OpenDownloadStream(f.ID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("PhotoRepository.Latest open: %w", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, nil, fmt.Errorf("PhotoRepository.Latest read: %w", err)
	}

	return f.photo(), data, nil
}
