package submission

import (
	"context"
	"time"

	"booklet-show/biz/infrastructure/config"
	"booklet-show/biz/infrastructure/consts"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixSubmissionCacheKey = "cache:submission"
	SubmissionCollectionName = "submissions"
)

// Mapper 提交集合的本地存储接口
type Mapper interface {
	FindOne(ctx context.Context, id string) (*Submission, error)
	FindAll(ctx context.Context) ([]*Submission, error)
	FindByAssignment(ctx context.Context, assignmentID string) ([]*Submission, error)
	FindByStudent(ctx context.Context, studentID string) ([]*Submission, error)
	Upsert(ctx context.Context, s *Submission) error
	BulkUpsert(ctx context.Context, ss []*Submission) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewSubmissionMongoMapper collection: %s", SubmissionCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, SubmissionCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Submission, error) {
	var s Submission
	err := m.conn.FindOneNoCache(ctx, &s, bson.M{consts.ID: id})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &s, nil
}

func (m *MongoMapper) FindAll(ctx context.Context) ([]*Submission, error) {
	var ss []*Submission
	err := m.conn.Find(ctx, &ss, bson.M{}, &options.FindOptions{
		Sort: bson.M{"submitted_at": -1},
	})
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func (m *MongoMapper) FindByAssignment(ctx context.Context, assignmentID string) ([]*Submission, error) {
	var ss []*Submission
	err := m.conn.Find(ctx, &ss, bson.M{"assignment_id": assignmentID}, &options.FindOptions{
		Sort: bson.M{"submitted_at": -1},
	})
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func (m *MongoMapper) FindByStudent(ctx context.Context, studentID string) ([]*Submission, error) {
	var ss []*Submission
	err := m.conn.Find(ctx, &ss, bson.M{"student_id": studentID}, &options.FindOptions{
		Sort: bson.M{"submitted_at": -1},
	})
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func (m *MongoMapper) Upsert(ctx context.Context, s *Submission) error {
	if s.SubmittedAt == 0 {
		s.SubmittedAt = time.Now().UnixMilli()
	}
	_, err := m.conn.ReplaceOneNoCache(ctx, bson.M{consts.ID: s.ID}, s,
		options.Replace().SetUpsert(true))
	return err
}

func (m *MongoMapper) BulkUpsert(ctx context.Context, ss []*Submission) error {
	for _, s := range ss {
		if err := m.Upsert(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
	_, err := m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: id})
	return err
}

func (m *MongoMapper) Clear(ctx context.Context) error {
	_, err := m.conn.DeleteMany(ctx, bson.M{})
	return err
}
