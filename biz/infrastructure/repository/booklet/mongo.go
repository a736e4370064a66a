package booklet

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
	prefixBookletCacheKey = "cache:booklet"
	BookletCollectionName = "booklets"
)

// Mapper 册子集合的本地存储接口
type Mapper interface {
	FindOne(ctx context.Context, id string) (*Booklet, error)
	FindAll(ctx context.Context) ([]*Booklet, error)
	Upsert(ctx context.Context, b *Booklet) error
	BulkUpsert(ctx context.Context, bs []*Booklet) error
	Delete(ctx context.Context, id string) error
	DeleteStale(ctx context.Context, id string, stamp int64) (int64, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewBookletMongoMapper collection: %s", BookletCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, BookletCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Booklet, error) {
	var b Booklet
	err := m.conn.FindOneNoCache(ctx, &b, bson.M{consts.ID: id})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &b, nil
}

// FindAll 返回全部册子 按最近更新倒序
func (m *MongoMapper) FindAll(ctx context.Context) ([]*Booklet, error) {
	var bs []*Booklet
	err := m.conn.Find(ctx, &bs, bson.M{}, &options.FindOptions{
		Sort: bson.M{consts.UpdateTime: -1},
	})
	if err != nil {
		return nil, err
	}
	return bs, nil
}

// Upsert 按id插入或整体替换
func (m *MongoMapper) Upsert(ctx context.Context, b *Booklet) error {
	if b.CreatedAt == 0 {
		b.CreatedAt = time.Now().UnixMilli()
	}
	_, err := m.conn.ReplaceOneNoCache(ctx, bson.M{consts.ID: b.ID}, b,
		options.Replace().SetUpsert(true))
	return err
}

// BulkUpsert 导入/拉取时的批量写入
func (m *MongoMapper) BulkUpsert(ctx context.Context, bs []*Booklet) error {
	for _, b := range bs {
		if err := m.Upsert(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
	_, err := m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: id})
	return err
}

// DeleteStale 带时间戳条件的删除 读快照之后被并发更新过的记录不动
// 返回实际删除的条数
func (m *MongoMapper) DeleteStale(ctx context.Context, id string, stamp int64) (int64, error) {
	return m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: id, consts.UpdateTime: stamp})
}

func (m *MongoMapper) Clear(ctx context.Context) error {
	_, err := m.conn.DeleteMany(ctx, bson.M{})
	return err
}

func (m *MongoMapper) Count(ctx context.Context) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{})
}
