package assignment

// Assignment 指向某册子话题题号区间的作业任务
// 不拥有题目 只是视图规格加排期元数据 bookletId是否存在由调用方保证
type Assignment struct {
	ID               string   `bson:"_id" json:"id"`
	BookletID        string   `bson:"booklet_id" json:"bookletId"`
	BookletTitle     string   `bson:"booklet_title" json:"bookletTitle"`
	Topic            string   `bson:"topic" json:"topic"`
	Topics           []string `bson:"topics,omitempty" json:"topics,omitempty"`
	Grade            string   `bson:"grade" json:"grade"`
	StartNum         int64    `bson:"start_num" json:"startNum"`
	EndNum           int64    `bson:"end_num" json:"endNum"`
	IsPublished      bool     `bson:"is_published" json:"isPublished"`
	OpenDate         *string  `bson:"open_date,omitempty" json:"openDate,omitempty"`
	CloseDate        *string  `bson:"close_date,omitempty" json:"closeDate,omitempty"`
	DueDate          *string  `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	TimeLimitSeconds *int64   `bson:"time_limit_seconds,omitempty" json:"timeLimitSeconds,omitempty"`
	CreatedAt        int64    `bson:"created_at" json:"createdAt"`
}
