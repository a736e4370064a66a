package config

import (
	_ "embed"
	"os"

	"booklet-show/biz/infrastructure/util/log"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// //go:embed config.local.yaml
var embeddedConfig []byte

var config *Config

type Auth struct {
	SecretKey    string
	PublicKey    string
	AccessExpire int64
}

type Config struct {
	service.ServiceConf
	ListenOn string
	State    string
	Auth     Auth
	Mongo    struct {
		URL string
		DB  string
	}
	MySQL struct {
		DSN string
	}
	Cache cache.CacheConf
	Redis *redis.RedisConf
	Api   API
	Sync  SyncConfig
	Asset AssetConfig
	Log   LogConfig
}

type LogConfig struct {
	NoLogPaths []string
}

// API 外部AI批改/解题服务地址
type API struct {
	MarkURL  string
	SolveURL string
}

// SyncConfig 远端同步参数
type SyncConfig struct {
	IntervalSeconds    int64 `json:",default=90"`
	PageSize           int64 `json:",default=200"`
	BulkThresholdBytes int64 `json:",default=1048576"`
}

// AssetConfig 题目图片对象存储
type AssetConfig struct {
	Bucket string
	Region string
}

func NewConfig() (*Config, error) {
	c := new(Config)

	if len(embeddedConfig) == 0 {
		path := os.Getenv("CONFIG_PATH")
		log.Info("NewConfig load config from path: %s", path)
		err := conf.Load(path, c)
		if err != nil {
			return nil, err
		}
	} else {
		err := conf.LoadFromYamlBytes(embeddedConfig, c)
		if err != nil {
			return nil, err
		}
	}

	err := c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

func GetConfig() *Config {
	return config
}
