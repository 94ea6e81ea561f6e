package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3-compatible object storage settings, taken from the environment.
var (
	storageBucket   = os.Getenv("S3_BUCKET")
	storageRegion   = envOr("S3_REGION", "us-east-1")
	storageEndpoint = os.Getenv("S3_ENDPOINT")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getS3Client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(storageRegion),
		Endpoint: aws.String(storageEndpoint),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("S3_ACCESS_KEY"), os.Getenv("S3_SECRET_KEY"), "",
		),
	}))
	return s3.New(sess)
}

// UploadFile stores a brief attachment in the bucket and returns its public URL.
func UploadFile(file io.Reader, fileName string, folder string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	s3Client := getS3Client()
	_, err = s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(storageBucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", storageEndpoint, storageBucket, filePath), nil
}
