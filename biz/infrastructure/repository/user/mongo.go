package user

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
	prefixUserCacheKey = "cache:user"
	UserCollectionName = "users"
)

// Mapper 用户集合的本地存储接口
type Mapper interface {
	FindOne(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Upsert(ctx context.Context, u *User) error
	BulkUpsert(ctx context.Context, us []*User) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewUserMongoMapper collection: %s", UserCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, UserCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{consts.ID: id})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &u, nil
}

func (m *MongoMapper) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{consts.Email: email})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &u, nil
}

func (m *MongoMapper) FindAll(ctx context.Context) ([]*User, error) {
	var us []*User
	err := m.conn.Find(ctx, &us, bson.M{}, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, err
	}
	return us, nil
}

func (m *MongoMapper) Upsert(ctx context.Context, u *User) error {
	if u.CreatedAt == 0 {
		u.CreatedAt = time.Now().UnixMilli()
	}
	_, err := m.conn.ReplaceOneNoCache(ctx, bson.M{consts.ID: u.ID}, u,
		options.Replace().SetUpsert(true))
	return err
}

func (m *MongoMapper) BulkUpsert(ctx context.Context, us []*User) error {
	for _, u := range us {
		if err := m.Upsert(ctx, u); err != nil {
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

func (m *MongoMapper) Count(ctx context.Context) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{})
}
