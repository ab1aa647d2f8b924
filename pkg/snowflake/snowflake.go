package snowflake

import (
	"fmt"
	"os"
	"time"

	"github.com/sony/sonyflake/v2"
)

var node *sonyflake.Sonyflake

// MustInit 初始化 snowflake。
// 本地测试框架没有多机部署,MachineID 直接取进程号低16位,
// 只用于区分同一台机器上并行的多轮测试。
func MustInit() {
	settings := sonyflake.Settings{
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MachineID: func() (int, error) {
			return os.Getpid() & 0xffff, nil
		},
		CheckMachineID: func(int) bool { return true },
	}
	var err error
	node, err = sonyflake.New(settings)
	if err != nil {
		panic(fmt.Errorf("init sonyflake failed, err:%w", err))
	}
}

// NextID 生成下一个运行ID
func NextID() (int64, error) {
	if node == nil {
		MustInit()
	}
	return node.NextID()
}
