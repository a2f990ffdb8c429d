// Package storage implements the consultant picture store on top of MongoDB
// GridFS, addressed by filename key and served publicly under the
// /storage/v1/object/public/consultant-pictures/ path.
package storage

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/pkg/media"
)

const bucketName = "consultant-pictures"

// PictureStore stores uploaded pictures in a GridFS bucket.
type PictureStore struct {
	bucket     *gridfs.Bucket
	publicBase string
}

// NewPictureStore opens (or creates) the consultant-pictures bucket.
// publicBase is the externally visible base URL used to build public links.
func NewPictureStore(db *mongo.Database, publicBase string) (*PictureStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &PictureStore{bucket: bucket, publicBase: publicBase}, nil
}

// Upload stores the object under key. Any previously stored object with the
// same key is removed first, so re-uploading a key replaces it.
func (s *PictureStore) Upload(ctx context.Context, key string, r io.Reader) error {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(deadline)
	}

	if err := s.deleteByKey(ctx, key); err != nil {
		return err
	}

	if _, err := s.bucket.UploadFromStream(key, r); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// Open returns a reader over the stored object; the caller closes it.
func (s *PictureStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(deadline)
	}

	stream, err := s.bucket.OpenDownloadStreamByName(key)
	if err == gridfs.ErrFileNotFound {
		return nil, domain.ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return stream, nil
}

// PublicURL maps a storage key to its public download URL.
func (s *PictureStore) PublicURL(key string) string {
	return media.ResolveImageURL(s.publicBase, key)
}

func (s *PictureStore) deleteByKey(ctx context.Context, key string) error {
	cursor, err := s.bucket.Find(bson.M{"filename": key})
	if err != nil {
		return fmt.Errorf("find %s: %w", key, err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var file struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&file); err != nil {
			return fmt.Errorf("decode file doc: %w", err)
		}
		if err := s.bucket.Delete(file.ID); err != nil && err != gridfs.ErrFileNotFound {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return cursor.Err()
}
