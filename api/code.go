package api

// Status 测试点判定状态
type Status = string

// 判定状态常量,与常见 Online Judge 的返回一致
const (
	StatusAC      Status = "AC"      // 答案正确
	StatusWA      Status = "WA"      // 答案错误
	StatusTLE     Status = "TLE"     // 时间超限
	StatusRE      Status = "RE"      // 运行时错误
	StatusMISSING Status = "MISSING" // 缺少期望输出文件
)

var statusDescMap = map[Status]string{
	StatusAC:      "Accepted",
	StatusWA:      "Wrong Answer",
	StatusTLE:     "Time Limit Exceeded",
	StatusRE:      "Runtime Error",
	StatusMISSING: "Missing Expected Output",
}

// StatusDesc 返回状态的完整描述
func StatusDesc(s Status) string {
	desc, ok := statusDescMap[s]
	if !ok {
		return "Unknown"
	}
	return desc
}

// Outcome 单次进程执行的结局,由执行器产出,尚未经过输出比对
type Outcome int

const (
	OutcomeCompleted Outcome = iota // 进程在时限内以退出码0结束
	OutcomeTimedOut                 // 到达时限被强制终止
	OutcomeCrashed                  // 非零退出码或被信号终止
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}
