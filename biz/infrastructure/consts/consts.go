package consts

var PageSize int64 = 10

// 数据库相关
const (
	ID         = "_id"
	Email      = "email"
	Grade      = "grade"
	Status     = "status"
	CreateTime = "created_at"
	UpdateTime = "updated_at"
)

// 集合名 同时也是导入/导出JSON中的键名
const (
	CollBooklets    = "booklets"
	CollUsers       = "users"
	CollAssignments = "assignments"
	CollSubmissions = "submissions"
)

// http
const (
	Post            = "POST"
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
)

// 用户角色
const (
	RoleStudent    = "STUDENT"
	RoleStaff      = "STAFF"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// 用户状态
const (
	StatusPending    = "PENDING"
	StatusAuthorized = "AUTHORIZED"
	StatusDenied     = "DENIED"
)

// 册子类型
const (
	BookletReadingOnly   = "reading-only"
	BookletWithSolutions = "with-solutions"
)

// 提交状态 只允许单向推进
const (
	SubmissionSubmitted = "SUBMITTED"
	SubmissionMarked    = "MARKED"
	SubmissionRecorded  = "RECORDED"
)

// 默认值
const (
	DefaultTopic       = "__default__"
	ExportVersion      = 1
	SyncPageSize       = 200
	SyncIntervalSec    = 90
	BulkThresholdBytes = 1 << 20 // 单册questions负载超过该大小时走直连通道
	OutboxCapacity     = 256
	OutboxMaxAttempts  = 3
)
