// Package auth 提供基于 JWT 的身份认证
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hvglabs/hvg-assist/internal/model"
	"github.com/hvglabs/hvg-assist/internal/repository"
)

var (
	jwtSecretOnce sync.Once
	jwtSecret     string
)

// getJwtSecret 获取 JWT 密钥
func getJwtSecret(configured string) string {
	jwtSecretOnce.Do(func() {
		if configured != "" {
			jwtSecret = configured
			return
		}

		if envSecret := strings.TrimSpace(os.Getenv("JWT_SECRET")); envSecret != "" {
			jwtSecret = envSecret
			return
		}

		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			panic(fmt.Sprintf("failed to generate JWT secret: %v", err))
		}
		jwtSecret = base64.StdEncoding.EncodeToString(randomBytes)
	})

	return jwtSecret
}

// Service 认证服务
// 令牌由身份平台签发，这里只做校验和用户档案加载
type Service struct {
	repo   *repository.Repositories
	secret string
}

// NewService 创建认证服务
func NewService(repo *repository.Repositories, secret string) *Service {
	return &Service{repo: repo, secret: secret}
}

// ValidateToken 验证令牌并返回对应的用户档案
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.AppUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(getJwtSecret(s.secret)), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid user ID in token")
	}

	user, err := s.repo.User.GetByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if !user.IsActive {
		return nil, errors.New("account is disabled")
	}

	return user, nil
}
