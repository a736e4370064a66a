package consts

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 定义常量错误
var (
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrNotAuthentication = NewErrno(codes.Code(1000), errors.New("not authentication"))
	ErrSignUp            = NewErrno(codes.Code(1001), errors.New("注册失败，请重试"))
	ErrSignIn            = NewErrno(codes.Code(1002), errors.New("邮箱或密码错误"))
	ErrEmailTaken        = NewErrno(codes.Code(1003), errors.New("该邮箱已注册"))
	ErrNoSuchAccount     = NewErrno(codes.Code(1004), errors.New("未找到该邮箱对应的账号"))
	ErrCreateBooklet     = NewErrno(codes.Code(1010), errors.New("创建册子失败"))
	ErrUpdateBooklet     = NewErrno(codes.Code(1011), errors.New("更新册子失败"))
	ErrQuestionNotFound  = NewErrno(codes.Code(1012), errors.New("题目不存在"))
	ErrCreateAssignment  = NewErrno(codes.Code(1020), errors.New("创建作业任务失败"))
	ErrSubmitWork        = NewErrno(codes.Code(1030), errors.New("提交作答失败"))
	ErrStatusRollback    = NewErrno(codes.Code(1031), errors.New("提交状态不可回退"))
	ErrOverrideMark      = NewErrno(codes.Code(1032), errors.New("修改评分失败"))
	ErrImport            = NewErrno(codes.Code(1040), errors.New("数据导入失败"))
	ErrExport            = NewErrno(codes.Code(1041), errors.New("数据导出失败"))
	ErrSyncBusy          = NewErrno(codes.Code(1050), errors.New("同步进行中，请稍后再试"))
	ErrPresign           = NewErrno(codes.Code(1060), errors.New("生成上传链接失败"))
)

// ErrInvalidParams 调用时错误
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("参数错误"))
	ErrCall          = NewErrno(codes.Unknown, errors.New("调用接口失败，请重试"))
)

// 数据库相关错误
var (
	ErrNotFound = NewErrno(codes.NotFound, errors.New("not found"))
	ErrUpdate   = NewErrno(codes.Code(2001), errors.New("更新失败"))
)
