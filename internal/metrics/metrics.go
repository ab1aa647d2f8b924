package metrics

import (
	"sync/atomic"
	"time"

	"github.com/poflygogo/pox5fly-oj/api"
)

// RunMetrics 单轮测试的统计指标
type RunMetrics struct {
	// 各状态统计
	ACCount      int64 // AC数量
	WACount      int64 // WA数量
	TLECount     int64 // TLE数量
	RECount      int64 // RE数量
	MissingCount int64 // MISSING数量

	// 性能指标
	TotalExecutions int64 // 总执行次数(含重复)
	TotalTimeNanos  int64 // 总执行时间(纳秒)
	MaxTimeNanos    int64 // 最大单次执行时间(纳秒)

	// 时间戳
	StartTime time.Time // 本轮开始时间
}

// NewRunMetrics 创建统计实例
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		StartTime: time.Now(),
	}
}

// RecordVerdict 记录一个测试点的终局判定
func (m *RunMetrics) RecordVerdict(v *api.Verdict) {
	switch v.Status {
	case api.StatusAC:
		atomic.AddInt64(&m.ACCount, 1)
	case api.StatusWA:
		atomic.AddInt64(&m.WACount, 1)
	case api.StatusTLE:
		atomic.AddInt64(&m.TLECount, 1)
	case api.StatusRE:
		atomic.AddInt64(&m.RECount, 1)
	case api.StatusMISSING:
		atomic.AddInt64(&m.MissingCount, 1)
	}
	for _, t := range v.Times {
		m.RecordExecution(t)
	}
}

// RecordExecution 记录一次进程执行
func (m *RunMetrics) RecordExecution(elapsed time.Duration) {
	atomic.AddInt64(&m.TotalExecutions, 1)
	atomic.AddInt64(&m.TotalTimeNanos, int64(elapsed))
	for {
		cur := atomic.LoadInt64(&m.MaxTimeNanos)
		if int64(elapsed) <= cur || atomic.CompareAndSwapInt64(&m.MaxTimeNanos, cur, int64(elapsed)) {
			break
		}
	}
}

// TotalCases 已判定的测试点总数
func (m *RunMetrics) TotalCases() int64 {
	return atomic.LoadInt64(&m.ACCount) +
		atomic.LoadInt64(&m.WACount) +
		atomic.LoadInt64(&m.TLECount) +
		atomic.LoadInt64(&m.RECount) +
		atomic.LoadInt64(&m.MissingCount)
}

// AllAccepted 是否全部通过
func (m *RunMetrics) AllAccepted() bool {
	return m.TotalCases() > 0 && m.TotalCases() == atomic.LoadInt64(&m.ACCount)
}

// TotalTime 总执行时间
func (m *RunMetrics) TotalTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&m.TotalTimeNanos))
}
