package show

// ImportDataReq Content为任意来源粘贴的JSON文本 允许包含噪声
type ImportDataReq struct {
	Content string `json:"content" form:"content" query:"content" vd:"len($)>0"`
}

// ImportDataResp 导入从不返回业务错误 失败时Success=false并带可读Message
type ImportDataResp struct {
	Success bool   `json:"success"`
	Count   int64  `json:"count"`
	Message string `json:"message,omitempty"`
}

type ExportDataReq struct {
}

// ExportDataResp 整库快照 同时也是导入接受的规范文档格式
// 用户走全量记录 导入回来登录凭据不丢
type ExportDataResp struct {
	Booklets    []*BookletInfo    `json:"booklets"`
	Users       []*UserRecord     `json:"users"`
	Assignments []*AssignmentInfo `json:"assignments"`
	Submissions []*SubmissionInfo `json:"submissions"`
	Version     int64             `json:"version"`
	ExportedAt  int64             `json:"exportedAt"`
}

type FactoryResetReq struct {
	Confirm string `json:"confirm" form:"confirm" query:"confirm" vd:"len($)>0"`
}
