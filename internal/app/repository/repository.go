package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"api_yamdb/internal/app/ds"
	"api_yamdb/internal/app/redis"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db         *gorm.DB
	minio      *minio.Client
	redis      *redis.Client
	bucketName string
}

func New(dsn string, redisHost, redisPort string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Инициализируем Redis
	redisClient, err := redis.New(redisHost, redisPort)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	rep, err := NewWithDB(db, redisClient)
	if err != nil {
		return nil, err
	}

	// Получаем настройки Minio из переменных окружения
	minioEndpoint := getEnv("MINIO_ENDPOINT", "minio:9000")
	minioAccessKey := getEnv("MINIO_ACCESS_KEY", "minioadmin")
	minioSecretKey := getEnv("MINIO_SECRET_KEY", "minioadmin")
	bucketName := getEnv("MINIO_BUCKET", "title-posters")
	useSSL := getEnv("MINIO_USE_SSL", "false") == "true"

	// Инициализация Minio клиента
	minioClient, err := minio.New(minioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioAccessKey, minioSecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Minio client: %w", err)
	}

	// Проверяем доступность бакета
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucketName)
	}

	rep.minio = minioClient
	rep.bucketName = bucketName

	return rep, nil
}

// NewWithDB собирает репозиторий поверх готового подключения.
// Minio не подключается — используется в тестах на sqlite.
func NewWithDB(db *gorm.DB, redisClient *redis.Client) (*Repository, error) {
	err := db.AutoMigrate(
		&ds.User{},
		&ds.Category{},
		&ds.Genre{},
		&ds.Title{},
		&ds.Review{},
		&ds.Comment{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Repository{
		db:    db,
		redis: redisClient,
	}, nil
}

// UploadFile загружает файл в Minio
func (r *Repository) UploadFile(ctx context.Context, fileName string, file io.Reader, fileSize int64) (string, error) {
	contentType := "application/octet-stream"

	// Определяем Content-Type по расширению
	if strings.HasSuffix(strings.ToLower(fileName), ".jpg") || strings.HasSuffix(strings.ToLower(fileName), ".jpeg") {
		contentType = "image/jpeg"
	} else if strings.HasSuffix(strings.ToLower(fileName), ".png") {
		contentType = "image/png"
	} else if strings.HasSuffix(strings.ToLower(fileName), ".gif") {
		contentType = "image/gif"
	}

	_, err := r.minio.PutObject(ctx, r.bucketName, fileName, file, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	// Возвращаем URL для доступа к файлу
	return fmt.Sprintf("http://localhost:9000/%s/%s", r.bucketName, fileName), nil
}

// DeleteFile удаляет файл из Minio
func (r *Repository) DeleteFile(ctx context.Context, fileName string) error {
	err := r.minio.RemoveObject(ctx, r.bucketName, fileName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Вспомогательная функция для получения переменных окружения
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Методы для работы с blacklist токенов
func (r *Repository) AddTokenToBlacklist(ctx context.Context, token string, expiration time.Duration) error {
	return r.redis.AddToBlacklist(ctx, token, expiration)
}

func (r *Repository) IsTokenInBlacklist(ctx context.Context, token string) (bool, error) {
	return r.redis.IsInBlacklist(ctx, token)
}
