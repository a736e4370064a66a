package controller

import (
	"context"

	"booklet-show/biz/adaptor"
	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func Ping(_ context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"msg": "pong"})
}

// ---- 用户 ----

func Register(ctx context.Context, c *app.RequestContext) {
	var req show.RegisterReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.UserService.Register(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func Login(ctx context.Context, c *app.RequestContext) {
	var req show.LoginReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.UserService.Login(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ResetPassword(ctx context.Context, c *app.RequestContext) {
	var req show.ResetPasswordReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.UserService.ResetPassword(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func AuthorizeUser(ctx context.Context, c *app.RequestContext) {
	var req show.AuthorizeUserReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.UserService.AuthorizeUser(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// HasAnyUsers 首启引导 库里没有任何账号时前端走注册流程
func HasAnyUsers(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	has, err := p.UserService.HasAnyUsers(adaptor.InjectContext(ctx, c))
	adaptor.PostProcess(ctx, c, nil, &show.HasAnyUsersResp{HasUsers: has}, err)
}

func ListUsers(ctx context.Context, c *app.RequestContext) {
	var req show.ListUsersReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.UserService.ListUsers(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ---- 册子与题目 ----

func CreateBooklet(ctx context.Context, c *app.RequestContext) {
	var req show.CreateBookletReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.BookletService.CreateBooklet(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetBooklet(ctx context.Context, c *app.RequestContext) {
	var req show.GetBookletReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.BookletService.GetBooklet(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListBooklets(ctx context.Context, c *app.RequestContext) {
	var req show.ListBookletsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.BookletService.ListBooklets(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func UpdateBooklet(ctx context.Context, c *app.RequestContext) {
	var req show.UpdateBookletReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.BookletService.UpdateBooklet(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func UpdateBookletSubject(ctx context.Context, c *app.RequestContext) {
	var req show.UpdateBookletSubjectReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.BookletService.UpdateBookletSubject(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func AddQuestion(ctx context.Context, c *app.RequestContext) {
	var req show.AddQuestionReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.BookletService.AddQuestion(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func UpdateQuestion(ctx context.Context, c *app.RequestContext) {
	var req show.UpdateQuestionReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.BookletService.UpdateQuestion(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func RemoveQuestion(ctx context.Context, c *app.RequestContext) {
	var req show.RemoveQuestionReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.BookletService.RemoveQuestion(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ---- 作业任务 ----

func CreateAssignment(ctx context.Context, c *app.RequestContext) {
	var req show.CreateAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.CreateAssignment(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func UpdateAssignment(ctx context.Context, c *app.RequestContext) {
	var req show.UpdateAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.UpdateAssignment(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetAssignment(ctx context.Context, c *app.RequestContext) {
	var req show.GetAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.GetAssignment(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListAssignments(ctx context.Context, c *app.RequestContext) {
	var req show.ListAssignmentsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.ListAssignments(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func DeleteAssignment(ctx context.Context, c *app.RequestContext) {
	var req show.DeleteAssignmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssignmentService.DeleteAssignment(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ---- 提交 ----

func SubmitWork(ctx context.Context, c *app.RequestContext) {
	var req show.SubmitWorkReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SubmissionService.SubmitWork(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListSubmissions(ctx context.Context, c *app.RequestContext) {
	var req show.ListSubmissionsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SubmissionService.ListSubmissions(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func OverrideMark(ctx context.Context, c *app.RequestContext) {
	var req show.OverrideMarkReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SubmissionService.OverrideMark(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func AdvanceStatus(ctx context.Context, c *app.RequestContext) {
	var req show.AdvanceStatusReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SubmissionService.AdvanceStatus(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ---- 导入导出与系统 ----

func ImportData(ctx context.Context, c *app.RequestContext) {
	var req show.ImportDataReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.TransferService.ImportData(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ExportData(ctx context.Context, c *app.RequestContext) {
	var req show.ExportDataReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.TransferService.ExportData(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func FactoryReset(ctx context.Context, c *app.RequestContext) {
	var req show.FactoryResetReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.TransferService.FactoryReset(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func SyncNow(ctx context.Context, c *app.RequestContext) {
	var req show.SyncNowReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SyncService.SyncNow(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetUploadUrl(ctx context.Context, c *app.RequestContext) {
	var req show.GetUploadUrlReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.AssetService.GetUploadUrl(adaptor.InjectContext(ctx, c), &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
