package assignment

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
	prefixAssignmentCacheKey = "cache:assignment"
	AssignmentCollectionName = "assignments"
)

// Mapper 作业任务集合的本地存储接口
type Mapper interface {
	FindOne(ctx context.Context, id string) (*Assignment, error)
	FindAll(ctx context.Context) ([]*Assignment, error)
	FindByGrade(ctx context.Context, grade string) ([]*Assignment, error)
	Upsert(ctx context.Context, a *Assignment) error
	BulkUpsert(ctx context.Context, as []*Assignment) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewAssignmentMongoMapper collection: %s", AssignmentCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, AssignmentCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Assignment, error) {
	var a Assignment
	err := m.conn.FindOneNoCache(ctx, &a, bson.M{consts.ID: id})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &a, nil
}

func (m *MongoMapper) FindAll(ctx context.Context) ([]*Assignment, error) {
	var as []*Assignment
	err := m.conn.Find(ctx, &as, bson.M{}, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (m *MongoMapper) FindByGrade(ctx context.Context, grade string) ([]*Assignment, error) {
	var as []*Assignment
	err := m.conn.Find(ctx, &as, bson.M{consts.Grade: grade}, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, err
	}
	return as, nil
}

func (m *MongoMapper) Upsert(ctx context.Context, a *Assignment) error {
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().UnixMilli()
	}
	_, err := m.conn.ReplaceOneNoCache(ctx, bson.M{consts.ID: a.ID}, a,
		options.Replace().SetUpsert(true))
	return err
}

func (m *MongoMapper) BulkUpsert(ctx context.Context, as []*Assignment) error {
	for _, a := range as {
		if err := m.Upsert(ctx, a); err != nil {
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
