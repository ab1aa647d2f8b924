package result

import (
	"strings"
	"testing"
)

func TestFilterTrace(t *testing.T) {
	tests := []struct {
		name       string
		stderr     string
		wantKeep   []string
		wantRemove []string
	}{
		{
			name:   "空输入",
			stderr: "",
		},
		{
			name:     "没有框架帧时原样保留",
			stderr:   "panic: boom\n\nmain.solve()\n\t/sol/main.go:5 +0x10",
			wantKeep: []string{"panic: boom", "main.solve()", "/sol/main.go:5"},
		},
		{
			name: "剔除框架帧及其位置行",
			stderr: strings.Join([]string{
				"panic: divide by zero",
				"main.solve()",
				"\t/sol/main.go:8 +0x14",
				"github.com/poflygogo/pox5fly-oj/pkg/harness.Run(...)",
				"\t/go/pox5fly-oj/pkg/harness/harness.go:60 +0x88",
				"main.main()",
				"\t/sol/main.go:20 +0x30",
			}, "\n"),
			wantKeep:   []string{"main.solve()", "/sol/main.go:8", "main.main()"},
			wantRemove: []string{"pkg/harness", "harness.go:60"},
		},
		{
			name:       "编排器帧同样剔除",
			stderr:     "github.com/poflygogo/pox5fly-oj/internal/task.(*Orchestrator).Run(...)\n\t/go/internal/task/orchestrator.go:50",
			wantRemove: []string{"internal/task", "orchestrator.go"},
		},
		{
			name:     "普通stderr内容不受影响",
			stderr:   "some diagnostic output\nanother line",
			wantKeep: []string{"some diagnostic output", "another line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTrace(tt.stderr)
			for _, keep := range tt.wantKeep {
				if !strings.Contains(got, keep) {
					t.Errorf("过滤后应保留 %q:\n%s", keep, got)
				}
			}
			for _, remove := range tt.wantRemove {
				if strings.Contains(got, remove) {
					t.Errorf("过滤后不应包含 %q:\n%s", remove, got)
				}
			}
		})
	}
}
