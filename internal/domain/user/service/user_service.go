package service

import (
	"context"
	"time"
	"zoomies/internal/domain/user/model"
	"zoomies/internal/domain/user/repository"
	"zoomies/pkg/utils"
)

// ProfilePayload 身份源下发的登录信息
type ProfilePayload struct {
	Nickname  string
	AvatarURL string
	Email     string
}

// Session 登录会话
type Session struct {
	Token    string      `json:"token"`
	ExpireAt *time.Time  `json:"expireAt"`
	User     *model.User `json:"user"`
}

// UserService 用户服务接口
type UserService interface {
	EnsureProfile(ctx context.Context, userID string, payload ProfilePayload) (*Session, error)
	GetProfile(ctx context.Context, id string) (*model.User, error)
}

// userService 实现
type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// EnsureProfile 确保用户资料存在（不存在则创建，存在则刷新），并签发会话 Token
func (s *userService) EnsureProfile(ctx context.Context, userID string, payload ProfilePayload) (*Session, error) {
	nickname := payload.Nickname
	if nickname == "" && payload.Email != "" {
		// 默认昵称取邮箱前缀
		for i, ch := range payload.Email {
			if ch == '@' {
				nickname = payload.Email[:i]
				break
			}
		}
	}

	user := &model.User{
		ID:        userID,
		Nickname:  nickname,
		AvatarURL: payload.AvatarURL,
		Email:     payload.Email,
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	token, expireAt, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:    token,
		ExpireAt: expireAt,
		User:     user,
	}, nil
}

// GetProfile 获取单个用户资料
func (s *userService) GetProfile(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}
