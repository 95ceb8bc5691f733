package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/biolens-ai/bioradar/internal/conf"
)

// User 用户实体
type User struct {
	ID           int
	Username     string
	PasswordHash string
}

// UserRepo 用户仓库接口
type UserRepo interface {
	// CreateUser 创建用户
	CreateUser(ctx context.Context, u *User) error
	// GetUserByUsername 根据用户名获取用户
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// UserUseCase 用户业务逻辑
type UserUseCase struct {
	repo   UserRepo
	log    *log.Helper
	jwtKey string
}

// NewUserUseCase 创建用户业务逻辑实例
func NewUserUseCase(repo UserRepo, auth *conf.Auth, logger log.Logger) *UserUseCase {
	jwtKey := "default-secret"
	if auth != nil && auth.JwtKey != "" {
		jwtKey = auth.JwtKey
	}
	return &UserUseCase{
		repo:   repo,
		log:    log.NewHelper(logger),
		jwtKey: jwtKey,
	}
}

// Register 用户注册
func (uc *UserUseCase) Register(ctx context.Context, username, password string) error {
	if len(username) == 0 || len(password) < 6 {
		return errors.BadRequest("INVALID_CREDENTIALS", "username required and password must be at least 6 characters")
	}
	// 使用 bcrypt 对密码进行哈希处理
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	return uc.repo.CreateUser(ctx, u)
}

// Login 用户登录，成功时返回 JWT Token
func (uc *UserUseCase) Login(ctx context.Context, username, password string) (string, error) {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	// 验证密码哈希
	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": u.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})

	return token.SignedString([]byte(uc.jwtKey))
}

// ParseToken 校验 JWT Token 并返回其中的用户名
func (uc *UserUseCase) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(uc.jwtKey), nil
	})
	if err != nil || !token.Valid {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.Unauthorized("AUTH_FAILED", "invalid token claims")
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", errors.Unauthorized("AUTH_FAILED", "token missing username")
	}
	return username, nil
}
