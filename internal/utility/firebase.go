package utility

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *auth.Client
)

// findProjectDir tìm thư mục gốc của project (thư mục chứa config/env)
func findProjectDir() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return currentDir, nil
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("không tìm thấy thư mục gốc của project")
		}
		currentDir = parentDir
	}
}

// InitFirebase khởi tạo Firebase Admin SDK với project ID và file credentials.
// Đường dẫn credentials relative được resolve từ thư mục gốc của project.
func InitFirebase(projectID, credentialsPath string) error {
	if projectID == "" {
		return fmt.Errorf("firebase project ID is empty")
	}

	if !filepath.IsAbs(credentialsPath) {
		projectDir, err := findProjectDir()
		if err != nil {
			return fmt.Errorf("không thể resolve đường dẫn credentials: %w", err)
		}
		credentialsPath = filepath.Join(projectDir, credentialsPath)
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conf := &firebase.Config{ProjectID: projectID}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	firebaseApp = app
	firebaseAuth = authClient
	return nil
}

// GetFirebaseAuth trả về Firebase Auth client đã khởi tạo
func GetFirebaseAuth() *auth.Client {
	return firebaseAuth
}

// VerifyIDToken xác thực Firebase ID token và trả về token đã decode
func VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth client chưa được khởi tạo")
	}
	return firebaseAuth.VerifyIDToken(ctx, idToken)
}

// GetUserByUID lấy thông tin user từ Firebase theo UID
func GetUserByUID(ctx context.Context, uid string) (*auth.UserRecord, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth client chưa được khởi tạo")
	}
	return firebaseAuth.GetUser(ctx, uid)
}
