package show

// CollectionReport 单个集合在一轮同步中的拉取/推送统计
type CollectionReport struct {
	Pulled int64  `json:"pulled"`
	Pushed int64  `json:"pushed"`
	Error  string `json:"error,omitempty"`
}

type DedupeReport struct {
	Kept    int64 `json:"kept"`
	Removed int64 `json:"removed"`
}

// SyncReport 一轮全量同步的结果 任一步骤失败不影响其余步骤
type SyncReport struct {
	Booklets    CollectionReport `json:"booklets"`
	Users       CollectionReport `json:"users"`
	Assignments CollectionReport `json:"assignments"`
	Submissions CollectionReport `json:"submissions"`
	Dedupe      DedupeReport     `json:"dedupe"`
	Success     bool             `json:"success"`
	StartedAt   int64            `json:"startedAt"`
	FinishedAt  int64            `json:"finishedAt"`
}

type SyncNowReq struct {
}

type SyncNowResp struct {
	Report *SyncReport `json:"report"`
}
