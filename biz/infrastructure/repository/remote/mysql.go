package remote

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"booklet-show/biz/infrastructure/config"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/util/log"

	_ "github.com/go-sql-driver/mysql"
)

// Mapper 远端关系库的拉取/推送接口
// 拉取分页进行 推送为按id的insert-or-replace
type Mapper interface {
	PullBooklets(ctx context.Context, page, pageSize int64) ([]*BookletRow, error)
	PullUsers(ctx context.Context, page, pageSize int64) ([]*UserRow, error)
	PullAssignments(ctx context.Context, page, pageSize int64) ([]*AssignmentRow, error)
	PullSubmissions(ctx context.Context, page, pageSize int64) ([]*SubmissionRow, error)
	UpsertBooklets(ctx context.Context, rows []*BookletRow) error
	UpsertUsers(ctx context.Context, rows []*UserRow) error
	UpsertAssignments(ctx context.Context, rows []*AssignmentRow) error
	UpsertSubmissions(ctx context.Context, rows []*SubmissionRow) error
	Close() error
}

type MySQLMapper struct {
	db            *sql.DB
	bulkThreshold int64
}

func NewMySQLMapper(config *config.Config) (*MySQLMapper, error) {
	db, err := sql.Open("mysql", config.MySQL.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	// 测试连接
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	threshold := config.Sync.BulkThresholdBytes
	if threshold <= 0 {
		threshold = consts.BulkThresholdBytes
	}

	log.Info("MySQL connection established successfully")
	return &MySQLMapper{db: db, bulkThreshold: threshold}, nil
}

func (m *MySQLMapper) Close() error {
	return m.db.Close()
}

// pageOffset 页号从0开始 首页OFFSET必须是0
func pageOffset(page, pageSize int64) int64 {
	return page * pageSize
}

// PullBooklets 分页拉取册子行 调用方持续翻页直到短页
func (m *MySQLMapper) PullBooklets(ctx context.Context, page, pageSize int64) ([]*BookletRow, error) {
	offset := pageOffset(page, pageSize)
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, title, grade, subject, topic, type, compiler, is_published, created_at, updated_at, questions
		FROM booklets ORDER BY id LIMIT ? OFFSET ?
	`, pageSize, offset)
	if err != nil {
		log.Error("Failed to query booklets: %v", err)
		return nil, fmt.Errorf("failed to query booklets: %w", err)
	}
	defer rows.Close()

	var out []*BookletRow
	for rows.Next() {
		r := new(BookletRow)
		var questions sql.NullString
		err := rows.Scan(&r.ID, &r.Title, &r.Grade, &r.Subject, &r.Topic, &r.Type,
			&r.Compiler, &r.IsPublished, &r.CreatedAt, &r.UpdatedAt, &questions)
		if err != nil {
			log.Error("Failed to scan booklet row: %v", err)
			continue
		}
		if questions.Valid {
			r.QuestionsJSON = []byte(questions.String)
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over booklet rows: %w", err)
	}
	return out, nil
}

func (m *MySQLMapper) PullUsers(ctx context.Context, page, pageSize int64) ([]*UserRow, error) {
	offset := pageOffset(page, pageSize)
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, email, password, role, status, grade, created_at
		FROM users ORDER BY id LIMIT ? OFFSET ?
	`, pageSize, offset)
	if err != nil {
		log.Error("Failed to query users: %v", err)
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var out []*UserRow
	for rows.Next() {
		r := new(UserRow)
		var grade sql.NullString
		err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.Password, &r.Role, &r.Status, &grade, &r.CreatedAt)
		if err != nil {
			log.Error("Failed to scan user row: %v", err)
			continue
		}
		if grade.Valid {
			r.Grade = &grade.String
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over user rows: %w", err)
	}
	return out, nil
}

func (m *MySQLMapper) PullAssignments(ctx context.Context, page, pageSize int64) ([]*AssignmentRow, error) {
	offset := pageOffset(page, pageSize)
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, booklet_id, booklet_title, topic, topics, grade, start_num, end_num,
		       is_published, open_date, close_date, due_date, time_limit_seconds, created_at
		FROM assignments ORDER BY id LIMIT ? OFFSET ?
	`, pageSize, offset)
	if err != nil {
		log.Error("Failed to query assignments: %v", err)
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var out []*AssignmentRow
	for rows.Next() {
		r := new(AssignmentRow)
		var topics, openDate, closeDate, dueDate sql.NullString
		var timeLimit sql.NullInt64
		err := rows.Scan(&r.ID, &r.BookletID, &r.BookletTitle, &r.Topic, &topics, &r.Grade,
			&r.StartNum, &r.EndNum, &r.IsPublished, &openDate, &closeDate, &dueDate, &timeLimit, &r.CreatedAt)
		if err != nil {
			log.Error("Failed to scan assignment row: %v", err)
			continue
		}
		if topics.Valid {
			r.TopicsJSON = []byte(topics.String)
		}
		if openDate.Valid {
			r.OpenDate = &openDate.String
		}
		if closeDate.Valid {
			r.CloseDate = &closeDate.String
		}
		if dueDate.Valid {
			r.DueDate = &dueDate.String
		}
		if timeLimit.Valid {
			r.TimeLimitSeconds = &timeLimit.Int64
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over assignment rows: %w", err)
	}
	return out, nil
}

func (m *MySQLMapper) PullSubmissions(ctx context.Context, page, pageSize int64) ([]*SubmissionRow, error) {
	offset := pageOffset(page, pageSize)
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, assignment_id, student_id, student_name, answers, total_score, max_score,
		       status, started_at, submitted_at
		FROM submissions ORDER BY id LIMIT ? OFFSET ?
	`, pageSize, offset)
	if err != nil {
		log.Error("Failed to query submissions: %v", err)
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var out []*SubmissionRow
	for rows.Next() {
		r := new(SubmissionRow)
		var answers sql.NullString
		var startedAt sql.NullInt64
		err := rows.Scan(&r.ID, &r.AssignmentID, &r.StudentID, &r.StudentName, &answers,
			&r.TotalScore, &r.MaxScore, &r.Status, &startedAt, &r.SubmittedAt)
		if err != nil {
			log.Error("Failed to scan submission row: %v", err)
			continue
		}
		if answers.Valid {
			r.AnswersJSON = []byte(answers.String)
		}
		if startedAt.Valid {
			r.StartedAt = startedAt.Int64
		}
		out = append(out, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over submission rows: %w", err)
	}
	return out, nil
}

// UpsertBooklets 推送册子
// 小负载走批量通道 questions超过阈值的册子绕开批量语句的包大小上限
// 元数据单行upsert后再用专用UPDATE直写questions列
func (m *MySQLMapper) UpsertBooklets(ctx context.Context, rows []*BookletRow) error {
	var small, large []*BookletRow
	for _, r := range rows {
		if r.NeedsDirectPush(m.bulkThreshold) {
			large = append(large, r)
		} else {
			small = append(small, r)
		}
	}

	if err := m.upsertBookletBatch(ctx, small); err != nil {
		return err
	}
	for _, r := range large {
		if err := m.upsertBookletMeta(ctx, r); err != nil {
			return err
		}
		if err := m.pushQuestionsDirect(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (m *MySQLMapper) upsertBookletBatch(ctx context.Context, rows []*BookletRow) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*11)
	for _, r := range rows {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, r.ID, r.Title, r.Grade, r.Subject, r.Topic, r.Type, r.Compiler,
			r.IsPublished, r.CreatedAt, r.UpdatedAt, string(r.QuestionsJSON))
	}
	query := fmt.Sprintf(`
		INSERT INTO booklets (id, title, grade, subject, topic, type, compiler, is_published, created_at, updated_at, questions)
		VALUES %s
		ON DUPLICATE KEY UPDATE
			title = VALUES(title), grade = VALUES(grade), subject = VALUES(subject),
			topic = VALUES(topic), type = VALUES(type), compiler = VALUES(compiler),
			is_published = VALUES(is_published), created_at = VALUES(created_at),
			updated_at = VALUES(updated_at), questions = VALUES(questions)
	`, strings.Join(placeholders, ","))
	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("Failed to upsert booklet batch: %v", err)
		return fmt.Errorf("failed to upsert booklet batch: %w", err)
	}
	return nil
}

// upsertBookletMeta 大负载册子的元数据单行upsert questions不在更新列中
func (m *MySQLMapper) upsertBookletMeta(ctx context.Context, r *BookletRow) error {
	query := `
		INSERT INTO booklets (id, title, grade, subject, topic, type, compiler, is_published, created_at, updated_at, questions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '[]')
		ON DUPLICATE KEY UPDATE
			title = VALUES(title), grade = VALUES(grade), subject = VALUES(subject),
			topic = VALUES(topic), type = VALUES(type), compiler = VALUES(compiler),
			is_published = VALUES(is_published), created_at = VALUES(created_at),
			updated_at = VALUES(updated_at)
	`
	_, err := m.db.ExecContext(ctx, query, r.ID, r.Title, r.Grade, r.Subject, r.Topic, r.Type,
		r.Compiler, r.IsPublished, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		log.Error("Failed to upsert booklet meta %s: %v", r.ID, err)
		return fmt.Errorf("failed to upsert booklet meta: %w", err)
	}
	return nil
}

// pushQuestionsDirect 专用通道直写questions列
func (m *MySQLMapper) pushQuestionsDirect(ctx context.Context, r *BookletRow) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain connection: %w", err)
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx,
		`UPDATE booklets SET questions = ?, updated_at = ? WHERE id = ?`,
		string(r.QuestionsJSON), r.UpdatedAt, r.ID)
	if err != nil {
		log.Error("Failed to push questions for booklet %s (%d bytes): %v", r.ID, len(r.QuestionsJSON), err)
		return fmt.Errorf("failed to push questions: %w", err)
	}
	return nil
}

func (m *MySQLMapper) UpsertUsers(ctx context.Context, rows []*UserRow) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*8)
	for _, r := range rows {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, r.ID, r.Name, r.Email, r.Password, r.Role, r.Status, r.Grade, r.CreatedAt)
	}
	query := fmt.Sprintf(`
		INSERT INTO users (id, name, email, password, role, status, grade, created_at)
		VALUES %s
		ON DUPLICATE KEY UPDATE
			name = VALUES(name), email = VALUES(email), password = VALUES(password),
			role = VALUES(role), status = VALUES(status), grade = VALUES(grade),
			created_at = VALUES(created_at)
	`, strings.Join(placeholders, ","))
	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("Failed to upsert user batch: %v", err)
		return fmt.Errorf("failed to upsert user batch: %w", err)
	}
	return nil
}

func (m *MySQLMapper) UpsertAssignments(ctx context.Context, rows []*AssignmentRow) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*14)
	for _, r := range rows {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, r.ID, r.BookletID, r.BookletTitle, r.Topic, string(r.TopicsJSON), r.Grade,
			r.StartNum, r.EndNum, r.IsPublished, r.OpenDate, r.CloseDate, r.DueDate,
			r.TimeLimitSeconds, r.CreatedAt)
	}
	query := fmt.Sprintf(`
		INSERT INTO assignments (id, booklet_id, booklet_title, topic, topics, grade, start_num, end_num,
			is_published, open_date, close_date, due_date, time_limit_seconds, created_at)
		VALUES %s
		ON DUPLICATE KEY UPDATE
			booklet_id = VALUES(booklet_id), booklet_title = VALUES(booklet_title), topic = VALUES(topic),
			topics = VALUES(topics), grade = VALUES(grade), start_num = VALUES(start_num),
			end_num = VALUES(end_num), is_published = VALUES(is_published), open_date = VALUES(open_date),
			close_date = VALUES(close_date), due_date = VALUES(due_date),
			time_limit_seconds = VALUES(time_limit_seconds), created_at = VALUES(created_at)
	`, strings.Join(placeholders, ","))
	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("Failed to upsert assignment batch: %v", err)
		return fmt.Errorf("failed to upsert assignment batch: %w", err)
	}
	return nil
}

func (m *MySQLMapper) UpsertSubmissions(ctx context.Context, rows []*SubmissionRow) error {
	if len(rows) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(rows))
	args := make([]interface{}, 0, len(rows)*10)
	for _, r := range rows {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, r.ID, r.AssignmentID, r.StudentID, r.StudentName, string(r.AnswersJSON),
			r.TotalScore, r.MaxScore, r.Status, r.StartedAt, r.SubmittedAt)
	}
	query := fmt.Sprintf(`
		INSERT INTO submissions (id, assignment_id, student_id, student_name, answers, total_score,
			max_score, status, started_at, submitted_at)
		VALUES %s
		ON DUPLICATE KEY UPDATE
			assignment_id = VALUES(assignment_id), student_id = VALUES(student_id),
			student_name = VALUES(student_name), answers = VALUES(answers),
			total_score = VALUES(total_score), max_score = VALUES(max_score),
			status = VALUES(status), started_at = VALUES(started_at), submitted_at = VALUES(submitted_at)
	`, strings.Join(placeholders, ","))
	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("Failed to upsert submission batch: %v", err)
		return fmt.Errorf("failed to upsert submission batch: %w", err)
	}
	return nil
}
