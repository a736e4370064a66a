package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"booklet-show/biz/application/dto/booklet/show"
	"booklet-show/biz/infrastructure/config"
	"booklet-show/biz/infrastructure/redis"

	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	exportCachePrefix = "export_snapshot"
	exportCacheExpire = 3600 // 1小时
)

type IExportCacheMapper interface {
	Get(ctx context.Context) (*show.ExportDataResp, error)
	Set(ctx context.Context, data *show.ExportDataResp) error
	Delete(ctx context.Context) error
}

// ExportCacheMapper 缓存整库导出文档 导入后失效
type ExportCacheMapper struct {
	rds *gozero_redis.Redis
}

func NewExportCacheMapper(config *config.Config) *ExportCacheMapper {
	return &ExportCacheMapper{
		rds: redis.GetRedis(config),
	}
}

// Get 读取缓存的导出快照
func (m *ExportCacheMapper) Get(ctx context.Context) (*show.ExportDataResp, error) {
	cachedData, err := m.rds.GetCtx(ctx, m.buildCacheKey())
	if err != nil {
		return nil, err
	}
	if cachedData == "" {
		return nil, fmt.Errorf("cache miss")
	}

	var result show.ExportDataResp
	if err := json.Unmarshal([]byte(cachedData), &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached data failed: %w", err)
	}
	return &result, nil
}

// Set 写入导出快照
func (m *ExportCacheMapper) Set(ctx context.Context, data *show.ExportDataResp) error {
	resultBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal data failed: %w", err)
	}
	return m.rds.SetexCtx(ctx, m.buildCacheKey(), string(resultBytes), exportCacheExpire)
}

// Delete 使快照失效
func (m *ExportCacheMapper) Delete(ctx context.Context) error {
	_, err := m.rds.DelCtx(ctx, m.buildCacheKey())
	return err
}

// buildCacheKey 构造缓存key
func (m *ExportCacheMapper) buildCacheKey() string {
	return fmt.Sprintf("%s:latest", exportCachePrefix)
}
