package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client  *s3.Client
	presigner *s3.PresignClient
	s3Bucket  string
	urlExpiry time.Duration
)

// InitS3 prépare le client du bucket où sont rangées les images des publications.
// endpoint vide : S3 d'AWS ; sinon un service compatible (MinIO...) adressé en path-style.
func InitS3(ctx context.Context, bucket, region, accessKey, secretKey, endpoint string, expiry time.Duration) error {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("chargement config AWS: %w", err)
	}

	s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	presigner = s3.NewPresignClient(s3Client)
	s3Bucket = bucket
	urlExpiry = expiry
	return nil
}

// Enabled indique si InitS3 a été appelé
func Enabled() bool {
	return s3Client != nil
}

// ImageURL renvoie une URL signée pour la clé d'image d'une publication.
// Sans stockage configuré, la clé est renvoyée telle quelle.
func ImageURL(ctx context.Context, key string) (string, error) {
	if key == "" || !Enabled() {
		return key, nil
	}

	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(urlExpiry))
	if err != nil {
		return "", fmt.Errorf("signature URL S3: %w", err)
	}
	return req.URL, nil
}

// DeleteObject supprime l'image rattachée à une publication supprimée
func DeleteObject(ctx context.Context, key string) error {
	if key == "" || !Enabled() {
		return nil
	}

	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("erreur suppression S3 : %w", err)
	}
	return nil
}

// ReplaceObject supprime l'ancienne image d'une publication quand sa clé a changé
func ReplaceObject(ctx context.Context, oldKey, newKey string) error {
	if oldKey == newKey {
		return nil
	}
	return DeleteObject(ctx, oldKey)
}
