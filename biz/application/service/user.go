package service

import (
	"context"
	"strings"
	"time"

	"booklet-show/biz/adaptor"
	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/repository/user"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/jinzhu/copier"
)

type IUserService interface {
	Register(ctx context.Context, req *show.RegisterReq) (*show.RegisterResp, error)
	Login(ctx context.Context, req *show.LoginReq) (*show.LoginResp, error)
	ResetPassword(ctx context.Context, req *show.ResetPasswordReq) (*show.Response, error)
	AuthorizeUser(ctx context.Context, req *show.AuthorizeUserReq) (*show.Response, error)
	ListUsers(ctx context.Context, req *show.ListUsersReq) (*show.ListUsersResp, error)
	HasAnyUsers(ctx context.Context) (bool, error)
}

type UserService struct {
	UserMapper  user.Mapper
	SyncService *SyncService
}

var UserServiceSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),
)

// Register 注册用户 首个注册账号成为超管并直接授权 其余账号等待审核
func (s *UserService) Register(ctx context.Context, req *show.RegisterReq) (*show.RegisterResp, error) {
	email := normalizeEmail(req.Email)

	if existing, _ := s.UserMapper.FindByEmail(ctx, email); existing != nil {
		return nil, consts.ErrEmailTaken
	}

	total, err := s.UserMapper.Count(ctx)
	if err != nil {
		return nil, consts.ErrSignUp
	}

	u := &user.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     email,
		Password:  req.Password,
		Role:      consts.RoleStudent,
		Status:    consts.StatusPending,
		CreatedAt: time.Now().UnixMilli(),
	}
	if req.Grade != "" {
		grade := req.Grade
		u.Grade = &grade
	}
	if total == 0 {
		u.Role = consts.RoleSuperAdmin
		u.Status = consts.StatusAuthorized
	}

	if err = s.UserMapper.Upsert(ctx, u); err != nil {
		log.CtxError(ctx, "register upsert fail, err=%v", err)
		return nil, consts.ErrSignUp
	}
	s.SyncService.Enqueue(consts.CollUsers)

	return &show.RegisterResp{User: userInfo(u)}, nil
}

// Login 登录 密码校验通过后签发jwt
func (s *UserService) Login(ctx context.Context, req *show.LoginReq) (*show.LoginResp, error) {
	u, err := s.UserMapper.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil || u == nil {
		return nil, consts.ErrNoSuchAccount
	}
	if u.Password != req.Password {
		return nil, consts.ErrSignIn
	}

	accessToken, accessExpire, err := adaptor.GenerateJwtToken(u.ID, u.Name, u.Role)
	if err != nil {
		log.CtxError(ctx, "generate jwt fail, err=%v", err)
		return nil, consts.ErrSignIn
	}

	return &show.LoginResp{
		User:         userInfo(u),
		AccessToken:  accessToken,
		AccessExpire: accessExpire,
	}, nil
}

// ResetPassword 自助重置密码
func (s *UserService) ResetPassword(ctx context.Context, req *show.ResetPasswordReq) (*show.Response, error) {
	u, err := s.UserMapper.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil || u == nil {
		return nil, consts.ErrNoSuchAccount
	}
	u.Password = req.NewPassword
	if err = s.UserMapper.Upsert(ctx, u); err != nil {
		return nil, consts.ErrUpdate
	}
	s.SyncService.Enqueue(consts.CollUsers)
	return &show.Response{Msg: "ok"}, nil
}

// AuthorizeUser 审批账号 可同时调整角色
func (s *UserService) AuthorizeUser(ctx context.Context, req *show.AuthorizeUserReq) (*show.Response, error) {
	u, err := s.UserMapper.FindOne(ctx, req.UserID)
	if err != nil || u == nil {
		return nil, consts.ErrNoSuchAccount
	}
	u.Status = req.Status
	if req.Role != "" {
		u.Role = req.Role
	}
	if err = s.UserMapper.Upsert(ctx, u); err != nil {
		return nil, consts.ErrUpdate
	}
	s.SyncService.Enqueue(consts.CollUsers)
	return &show.Response{Msg: "ok"}, nil
}

func (s *UserService) ListUsers(ctx context.Context, _ *show.ListUsersReq) (*show.ListUsersResp, error) {
	us, err := s.UserMapper.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]*show.UserInfo, 0, len(us))
	for _, u := range us {
		infos = append(infos, userInfo(u))
	}
	return &show.ListUsersResp{Users: infos, Total: int64(len(infos))}, nil
}

// HasAnyUsers 客户端据此决定展示注册引导还是登录页
func (s *UserService) HasAnyUsers(ctx context.Context) (bool, error) {
	total, err := s.UserMapper.Count(ctx)
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

// normalizeEmail email作为自然键 统一小写去空白
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// userInfo 密码不外发
func userInfo(u *user.User) *show.UserInfo {
	info := new(show.UserInfo)
	_ = copier.Copy(info, u)
	return info
}
