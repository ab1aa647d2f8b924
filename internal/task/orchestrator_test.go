package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poflygogo/pox5fly-oj/api"
	"github.com/poflygogo/pox5fly-oj/internal/conf"
	"github.com/poflygogo/pox5fly-oj/internal/constants"
	"github.com/poflygogo/pox5fly-oj/internal/model"
	"github.com/poflygogo/pox5fly-oj/internal/task/runner"
	"github.com/poflygogo/pox5fly-oj/pkg/errors"
)

// fakeRunner 按调用次数吐出预置结果,并记录收到的参数
type fakeRunner struct {
	results []*api.ExecutionResult
	err     error
	calls   []model.RunParams
}

func (f *fakeRunner) Execute(params model.RunParams) (*api.ExecutionResult, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	idx := len(f.calls) - 1
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	return f.results[idx], nil
}

// setupCaseDir 构造一个测资目录并写入给定的文件
func setupCaseDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// fakeTarget 创建一个存在的目标文件,满足路径校验
func fakeTarget(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solution")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(caseDir string) *conf.HarnessConfig {
	cfg := conf.GetDefaultHarnessConfig()
	cfg.CaseDir = caseDir
	return cfg
}

func TestOrchestrator_Run_AllCases(t *testing.T) {
	caseDir := setupCaseDir(t, map[string]string{
		"01.in": "1\n", "01.out": "1\n",
		"02.in": "2\n", "02.out": "4\n",
	})
	fr := &fakeRunner{results: []*api.ExecutionResult{
		{Outcome: api.OutcomeCompleted, Stdout: "1\n", TimeUsed: 10 * time.Millisecond},
		{Outcome: api.OutcomeCompleted, Stdout: "4\n", TimeUsed: 12 * time.Millisecond},
	}}

	o := NewOrchestrator(testConfig(caseDir), fr)
	verdicts, err := o.Run(fakeTarget(t), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(verdicts) != 2 {
		t.Fatalf("len(verdicts) = %d, want 2", len(verdicts))
	}
	for i, v := range verdicts {
		if v.Status != api.StatusAC {
			t.Errorf("verdicts[%d].Status = %s, want AC", i, v.Status)
		}
	}
	if !o.Metrics().AllAccepted() {
		t.Error("全AC时统计应为全部通过")
	}
}

func TestOrchestrator_Run_RepeatStopsOnFailure(t *testing.T) {
	caseDir := setupCaseDir(t, map[string]string{
		"01.in": "1\n", "01.out": "1\n",
	})
	// 第二次重复输出错误,应立即停止后续重复
	fr := &fakeRunner{results: []*api.ExecutionResult{
		{Outcome: api.OutcomeCompleted, Stdout: "1\n", TimeUsed: 5 * time.Millisecond},
		{Outcome: api.OutcomeCompleted, Stdout: "wrong\n", TimeUsed: 6 * time.Millisecond},
	}}

	cfg := testConfig(caseDir)
	cfg.Repeat = 5
	o := NewOrchestrator(cfg, fr)
	verdicts, err := o.Run(fakeTarget(t), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(verdicts) != 1 {
		t.Fatalf("len(verdicts) = %d, want 1", len(verdicts))
	}
	if verdicts[0].Status != api.StatusWA {
		t.Errorf("Status = %s, want WA", verdicts[0].Status)
	}
	if len(fr.calls) != 2 {
		t.Errorf("非AC后应立即停止重复, 实际执行 %d 次", len(fr.calls))
	}
	if len(verdicts[0].Times) != 2 {
		t.Errorf("Times 应记录已执行的轮次, len = %d", len(verdicts[0].Times))
	}
}

func TestOrchestrator_Run_RepeatAllAC(t *testing.T) {
	caseDir := setupCaseDir(t, map[string]string{
		"01.in": "1\n", "01.out": "1\n",
	})
	fr := &fakeRunner{results: []*api.ExecutionResult{
		{Outcome: api.OutcomeCompleted, Stdout: "1\n", TimeUsed: 5 * time.Millisecond},
	}}

	cfg := testConfig(caseDir)
	cfg.Repeat = 3
	o := NewOrchestrator(cfg, fr)
	verdicts, err := o.Run(fakeTarget(t), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(fr.calls) != 3 {
		t.Errorf("全AC应执行满 repeat 次, 实际 %d 次", len(fr.calls))
	}
	if len(verdicts[0].Times) != 3 {
		t.Errorf("Times 长度 = %d, want 3", len(verdicts[0].Times))
	}
}

func TestOrchestrator_Run_MissingExpected(t *testing.T) {
	caseDir := setupCaseDir(t, map[string]string{
		"01.in": "1\n", // 没有 01.out
	})
	fr := &fakeRunner{results: []*api.ExecutionResult{
		{Outcome: api.OutcomeCompleted, Stdout: "1\n", TimeUsed: time.Millisecond},
	}}

	o := NewOrchestrator(testConfig(caseDir), fr)
	verdicts, err := o.Run(fakeTarget(t), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if verdicts[0].Status != api.StatusMISSING {
		t.Errorf("Status = %s, want MISSING", verdicts[0].Status)
	}
}

func TestOrchestrator_Run_NoTestCase(t *testing.T) {
	o := NewOrchestrator(testConfig(t.TempDir()), &fakeRunner{})
	_, err := o.Run(fakeTarget(t), nil, nil)
	if err == nil {
		t.Fatal("空测资目录且未指定过滤时应报错")
	}
	if !errors.IsErrorCode(err, errors.ErrCodeNoTestCase) {
		t.Errorf("错误码 = %d, want %d", errors.GetErrorCode(err), errors.ErrCodeNoTestCase)
	}
}

func TestOrchestrator_Run_FilterNoMatch(t *testing.T) {
	caseDir := setupCaseDir(t, map[string]string{
		"01.in": "1\n", "01.out": "1\n",
	})
	o := NewOrchestrator(testConfig(caseDir), &fakeRunner{})
	verdicts, err := o.Run(fakeTarget(t), nil, []string{"999"})
	if err != nil {
		t.Fatalf("过滤无匹配不算故障, got %v", err)
	}
	if verdicts != nil {
		t.Errorf("过滤无匹配应返回空结果, got %+v", verdicts)
	}
}

func TestOrchestrator_Run_MissingCallbackAborts(t *testing.T) {
	caseDir := setupCaseDir(t, map[string]string{
		"01.in": "1\n", "01.out": "1\n",
	})
	// 子进程以哨兵码退出表示 worker 未绑定解题函数,整轮必须中止
	fr := &fakeRunner{results: []*api.ExecutionResult{
		{Outcome: api.OutcomeCrashed, ExitCode: constants.WorkerMissingCallbackExitCode},
	}}

	o := NewOrchestrator(testConfig(caseDir), fr)
	_, err := o.Run(fakeTarget(t), nil, nil)
	if err == nil {
		t.Fatal("worker 缺少解题函数应中止整轮")
	}
	if !errors.IsErrorCode(err, errors.ErrCodeMissingCallback) {
		t.Errorf("错误码 = %d, want %d", errors.GetErrorCode(err), errors.ErrCodeMissingCallback)
	}
}

func TestOrchestrator_Run_OnStartAndOnVerdict(t *testing.T) {
	caseDir := setupCaseDir(t, map[string]string{
		"01.in": "1\n", "01.out": "1\n",
		"02.in": "2\n", "02.out": "2\n",
	})
	fr := &fakeRunner{results: []*api.ExecutionResult{
		{Outcome: api.OutcomeCompleted, Stdout: "1\n"},
		{Outcome: api.OutcomeCompleted, Stdout: "2\n"},
	}}

	o := NewOrchestrator(testConfig(caseDir), fr)
	var started int
	var seen []string
	o.OnStart = func(selected int) { started = selected }
	o.OnVerdict = func(v *api.Verdict) { seen = append(seen, v.CaseName) }

	if _, err := o.Run(fakeTarget(t), nil, []string{"2"}); err != nil {
		t.Fatal(err)
	}
	if started != 1 {
		t.Errorf("OnStart 收到 %d, want 1(过滤后的数量)", started)
	}
	if len(seen) != 1 || seen[0] != "02" {
		t.Errorf("OnVerdict 序列 = %v, want [02]", seen)
	}
}

// 端到端:真实进程执行器 + shell 脚本解题程序
func TestOrchestrator_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "solution.sh")
	script := "#!/bin/sh\nread n\necho $((n * n))\n"
	if err := os.WriteFile(target, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	caseDir := filepath.Join(dir, constants.DefaultCaseDir)
	if err := os.Mkdir(caseDir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"01.in": "2\n", "01.out": "4\n",
		"02.in": "5\n", "02.out": "25\n",
		"03.in": "3\n", "03.out": "10\n", // 故意写错的期望
	} {
		if err := os.WriteFile(filepath.Join(caseDir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// 不设 CaseDir,验证默认解析到目标同层的 test_case
	o := NewOrchestrator(conf.GetDefaultHarnessConfig(), runner.NewProcessRunner())
	verdicts, err := o.Run(target, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(verdicts) != 3 {
		t.Fatalf("len(verdicts) = %d, want 3", len(verdicts))
	}

	want := map[string]api.Status{
		"01": api.StatusAC,
		"02": api.StatusAC,
		"03": api.StatusWA,
	}
	for _, v := range verdicts {
		if v.Status != want[v.CaseName] {
			t.Errorf("case %s: Status = %s, want %s", v.CaseName, v.Status, want[v.CaseName])
		}
	}
}

// 端到端:死循环程序必须在时限处被终止并判TLE
func TestOrchestrator_EndToEnd_TLE(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "loop.sh")
	script := "#!/bin/sh\necho before\nsleep 30\n"
	if err := os.WriteFile(target, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	caseDir := filepath.Join(dir, "cases")
	if err := os.Mkdir(caseDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(caseDir, "01.in"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(caseDir, "01.out"), []byte("before\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(caseDir)
	cfg.TimeLimit = constants.MinTimeLimit
	o := NewOrchestrator(cfg, runner.NewProcessRunner())

	start := time.Now()
	verdicts, err := o.Run(target, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("超时终止耗时过长: %v", elapsed)
	}
	// 部分输出与期望一致也必须判TLE
	if verdicts[0].Status != api.StatusTLE {
		t.Errorf("Status = %s, want TLE", verdicts[0].Status)
	}
}
