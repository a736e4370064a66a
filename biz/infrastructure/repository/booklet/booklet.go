package booklet

// Booklet 内容聚合根 题目只能经由所属册子读写
type Booklet struct {
	ID          string      `bson:"_id" json:"id"`
	Title       string      `bson:"title" json:"title"`
	Subject     string      `bson:"subject" json:"subject"`
	Grade       string      `bson:"grade" json:"grade"`
	Topic       string      `bson:"topic" json:"topic"`
	Type        string      `bson:"type" json:"type"` // reading-only | with-solutions
	Compiler    string      `bson:"compiler" json:"compiler"`
	IsPublished bool        `bson:"is_published" json:"isPublished"`
	CreatedAt   int64       `bson:"created_at" json:"createdAt"` // 毫秒时间戳 与导出格式一致
	UpdatedAt   int64       `bson:"updated_at" json:"updatedAt"`
	Questions   []*Question `bson:"questions" json:"questions"`
}

// Question 册子内某话题下的一道题 number在话题内局部有序
type Question struct {
	ID                string   `bson:"_id" json:"id"`
	Topic             string   `bson:"topic" json:"topic"`
	Term              string   `bson:"term" json:"term"`
	Number            int64    `bson:"number" json:"number"`
	MaxMarks          int64    `bson:"max_marks" json:"maxMarks"`
	ImageUrls         []string `bson:"image_urls" json:"imageUrls"`
	ExtractedQuestion string   `bson:"extracted_question" json:"extractedQuestion"`
	GeneratedSolution *string  `bson:"generated_solution,omitempty" json:"generatedSolution,omitempty"`
	IsProcessing      bool     `bson:"is_processing" json:"isProcessing"`
	CreatedAt         int64    `bson:"created_at" json:"createdAt"`
}
