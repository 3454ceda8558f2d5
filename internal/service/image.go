package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/platefeed/backend/config"
)

// ImageService stores decoded recipe images in S3 and hands back the object
// URL kept on the recipe.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

func (s *ImageService) StoreImage(ctx context.Context, data []byte, contentType string) (string, error) {
	ext := "jpg"
	if _, sub, found := strings.Cut(contentType, "/"); found && sub != "" {
		ext = sub
	}
	key := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("Stored recipe image at %s", url)
	return url, nil
}
