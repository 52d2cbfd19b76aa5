package repository

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/model"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const postObjectPrefix = "post/"

// BlobRepository stores post files in a MinIO bucket under post/<name>.
type BlobRepository struct {
	Log        *zap.Logger
	DBObject   *minio.Client
	BucketName string
}

func NewBlobRepository(zap *zap.Logger, minio *minio.Client, bucketName string) *BlobRepository {
	return &BlobRepository{
		Log:        zap,
		DBObject:   minio,
		BucketName: bucketName,
	}
}

// Upload stores the file under a fresh name and returns that name.
func (repository *BlobRepository) Upload(ctx context.Context, file model.FilePayload) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Name))

	_, err := repository.DBObject.PutObject(ctx, repository.BucketName, postObjectPrefix+name, bytes.NewReader(file.Content), int64(len(file.Content)),
		minio.PutObjectOptions{
			ContentType:  file.ContentType,
			CacheControl: "public, max-age=31536000, immutable",
		})
	if err != nil {
		return "", err
	}

	return name, nil
}

func (repository *BlobRepository) Download(ctx context.Context, name string) (*model.BlobContent, error) {
	object, err := repository.DBObject.GetObject(ctx, repository.BucketName, postObjectPrefix+name, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, err
	}

	// GetObject is lazy, the missing key only shows up on Stat.
	info, err := object.Stat()
	if err != nil {
		_ = object.Close()
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, err
	}

	return &model.BlobContent{
		Reader:      object,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}

func (repository *BlobRepository) Delete(ctx context.Context, name string) error {
	err := repository.DBObject.RemoveObject(ctx, repository.BucketName, postObjectPrefix+name, minio.RemoveObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			repository.Log.Debug("blob already absent", zap.String("name", name))
			return nil
		}
		return err
	}

	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
