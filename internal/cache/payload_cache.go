package cache

import (
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// PayloadCache 测资内容缓存。
// 重复执行(repeat > 1)和多轮运行会反复读取同一批 .in/.out 文件,
// 这里按 (修改时间, 大小) 校验后缓存在内存中,文件变化时自动失效。
type PayloadCache struct {
	mu    sync.RWMutex
	files map[string]*cachedPayload

	hits   int64
	misses int64
}

type cachedPayload struct {
	content string    // 文件内容
	modTime time.Time // 缓存时的修改时间
	size    int64     // 缓存时的文件大小
}

var (
	instance *PayloadCache
	once     sync.Once
)

// GetPayloadCache 获取单例缓存实例
func GetPayloadCache() *PayloadCache {
	once.Do(func() {
		instance = NewPayloadCache()
	})
	return instance
}

// NewPayloadCache 创建缓存实例
func NewPayloadCache() *PayloadCache {
	return &PayloadCache{
		files: make(map[string]*cachedPayload),
	}
}

// Read 读取文件内容,命中缓存时不触碰磁盘内容
func (c *PayloadCache) Read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	c.mu.RLock()
	cached, ok := c.files[path]
	c.mu.RUnlock()
	if ok && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		atomic.AddInt64(&c.hits, 1)
		return cached.content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	atomic.AddInt64(&c.misses, 1)

	c.mu.Lock()
	c.files[path] = &cachedPayload{
		content: string(data),
		modTime: info.ModTime(),
		size:    info.Size(),
	}
	c.mu.Unlock()

	zap.L().Debug("测资文件载入缓存",
		zap.String("path", path),
		zap.Int64("size", info.Size()),
	)
	return string(data), nil
}

// Invalidate 移除指定文件的缓存
func (c *PayloadCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.files, path)
	c.mu.Unlock()
}

// Stats 返回命中/未命中计数
func (c *PayloadCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}
