package lock

import (
	"booklet-show/biz/infrastructure/config"
	rds "booklet-show/biz/infrastructure/redis"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	syncLockKey     = "lock:sync_all"
	syncLockExpires = 300 // 秒
)

// SyncLock 互斥锁 防止整库同步与去重互相交错
type SyncLock struct {
	lock *redis.RedisLock
}

func NewSyncLock(config *config.Config) *SyncLock {
	lock := redis.NewRedisLock(rds.GetRedis(config), syncLockKey)
	lock.SetExpire(syncLockExpires)
	return &SyncLock{lock: lock}
}

// Acquire 获取锁 返回false说明已有同步在进行
func (l *SyncLock) Acquire() bool {
	ok, err := l.lock.Acquire()
	if err != nil {
		return false
	}
	return ok
}

// Release 释放锁
func (l *SyncLock) Release() {
	_, _ = l.lock.Release()
}
