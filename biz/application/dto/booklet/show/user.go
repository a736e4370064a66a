package show

type UserInfo struct {
	ID        string  `json:"id" form:"id" query:"id"`
	Name      string  `json:"name" form:"name" query:"name"`
	Email     string  `json:"email" form:"email" query:"email"`
	Role      string  `json:"role" form:"role" query:"role"`
	Status    string  `json:"status" form:"status" query:"status"`
	Grade     *string `json:"grade,omitempty" form:"grade" query:"grade"`
	CreatedAt int64   `json:"createdAt" form:"createdAt" query:"createdAt"`
}

type RegisterReq struct {
	Name     string `json:"name" form:"name" query:"name" vd:"len($)>0"`
	Email    string `json:"email" form:"email" query:"email" vd:"len($)>0"`
	Password string `json:"password" form:"password" query:"password" vd:"len($)>0"`
	Grade    string `json:"grade" form:"grade" query:"grade"`
}

type RegisterResp struct {
	User *UserInfo `json:"user"`
}

type LoginReq struct {
	Email    string `json:"email" form:"email" query:"email" vd:"len($)>0"`
	Password string `json:"password" form:"password" query:"password" vd:"len($)>0"`
}

type LoginResp struct {
	User         *UserInfo `json:"user"`
	AccessToken  string    `json:"accessToken"`
	AccessExpire int64     `json:"accessExpire"`
}

type ResetPasswordReq struct {
	Email       string `json:"email" form:"email" query:"email" vd:"len($)>0"`
	NewPassword string `json:"newPassword" form:"newPassword" query:"newPassword" vd:"len($)>0"`
}

type AuthorizeUserReq struct {
	UserID string `json:"userId" form:"userId" query:"userId" vd:"len($)>0"`
	Role   string `json:"role" form:"role" query:"role"`
	Status string `json:"status" form:"status" query:"status" vd:"len($)>0"`
}

// UserRecord 导出文档里的完整用户记录 含密码 仅用于导入导出往返
// 对外接口一律用UserInfo
type UserRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
	Grade     *string `json:"grade,omitempty"`
	CreatedAt int64   `json:"createdAt"`
}

type HasAnyUsersResp struct {
	HasUsers bool `json:"hasUsers"`
}

type ListUsersReq struct {
}

type ListUsersResp struct {
	Users []*UserInfo `json:"users"`
	Total int64       `json:"total"`
}
