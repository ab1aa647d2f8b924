package result

import (
	"testing"
)

func TestComparator_Compare_Lenient(t *testing.T) {
	comparator := NewComparator(false, 10)

	tests := []struct {
		name           string
		actualOutput   string
		expectedOutput string
		want           bool
	}{
		{
			name:           "完全相同",
			actualOutput:   "Hello World\n",
			expectedOutput: "Hello World\n",
			want:           true,
		},
		{
			name:           "忽略行尾空白",
			actualOutput:   "Hello World   \n",
			expectedOutput: "Hello World\n",
			want:           true,
		},
		{
			name:           "忽略多余空行",
			actualOutput:   "1\n\n2\n",
			expectedOutput: "1\n2\n",
			want:           true,
		},
		{
			name:           "Windows换行符",
			actualOutput:   "Hello\r\nWorld\r\n",
			expectedOutput: "Hello\nWorld\n",
			want:           true,
		},
		{
			name:           "内容不同",
			actualOutput:   "Hello World\n",
			expectedOutput: "Hello Universe\n",
			want:           false,
		},
		{
			name:           "行内多余空格不忽略",
			actualOutput:   "Hello  World\n",
			expectedOutput: "Hello World\n",
			want:           false,
		},
		{
			name:           "两边都为空",
			actualOutput:   "",
			expectedOutput: "",
			want:           true,
		},
		{
			name:           "只有空白的输出等价于空",
			actualOutput:   "\n  \n\t\n",
			expectedOutput: "",
			want:           true,
		},
		{
			name:           "空输出不等于非空期望",
			actualOutput:   "",
			expectedOutput: "1\n",
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _ := comparator.Compare(tt.actualOutput, tt.expectedOutput)
			if got != tt.want {
				t.Errorf("Compare() = %v, want %v\nActual: %q\nExpected: %q",
					got, tt.want, tt.actualOutput, tt.expectedOutput)
			}
		})
	}
}

func TestComparator_Compare_Strict(t *testing.T) {
	comparator := NewComparator(true, 10)

	tests := []struct {
		name           string
		actualOutput   string
		expectedOutput string
		want           bool
	}{
		{
			name:           "完全相同",
			actualOutput:   "1\n2\n",
			expectedOutput: "1\n2\n",
			want:           true,
		},
		{
			name:           "行尾空白不忽略",
			actualOutput:   "hello   \n",
			expectedOutput: "hello\n",
			want:           false,
		},
		{
			name:           "多余空行不忽略",
			actualOutput:   "1\n\n2\n",
			expectedOutput: "1\n2\n",
			want:           false,
		},
		{
			name:           "缺少末尾换行",
			actualOutput:   "1\n2",
			expectedOutput: "1\n2\n",
			want:           false,
		},
		{
			name:           "两边都为空",
			actualOutput:   "",
			expectedOutput: "",
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _ := comparator.Compare(tt.actualOutput, tt.expectedOutput)
			if got != tt.want {
				t.Errorf("Compare() = %v, want %v\nActual: %q\nExpected: %q",
					got, tt.want, tt.actualOutput, tt.expectedOutput)
			}
		})
	}
}

func TestComparator_PositionalDiff(t *testing.T) {
	t.Run("逐行位置对齐", func(t *testing.T) {
		comparator := NewComparator(false, 10)
		equal, diffs, omitted := comparator.Compare("1\nX\n3\n", "1\n2\n3\n")
		if equal {
			t.Fatal("期望不相等")
		}
		if len(diffs) != 1 || omitted != 0 {
			t.Fatalf("diffs = %v, omitted = %d", diffs, omitted)
		}
		if diffs[0].Line != 2 || diffs[0].Expected != "2" || diffs[0].Actual != "X" {
			t.Errorf("差异记录错误: %+v", diffs[0])
		}
	})

	t.Run("严格模式多余空行差异在第2行", func(t *testing.T) {
		comparator := NewComparator(true, 10)
		equal, diffs, _ := comparator.Compare("1\n\n2\n", "1\n2\n")
		if equal {
			t.Fatal("期望不相等")
		}
		if len(diffs) == 0 || diffs[0].Line != 2 {
			t.Fatalf("第一条差异应在第2行: %+v", diffs)
		}
	})

	t.Run("超出上限的差异计入省略数", func(t *testing.T) {
		comparator := NewComparator(false, 2)
		equal, diffs, omitted := comparator.Compare("a\nb\nc\nd\n", "1\n2\n3\n4\n")
		if equal {
			t.Fatal("期望不相等")
		}
		if len(diffs) != 2 || omitted != 2 {
			t.Errorf("diffs = %d, omitted = %d, 期望 2/2", len(diffs), omitted)
		}
	})

	t.Run("不限制差异数", func(t *testing.T) {
		comparator := NewComparator(false, -1)
		_, diffs, omitted := comparator.Compare("a\nb\nc\nd\n", "1\n2\n3\n4\n")
		if len(diffs) != 4 || omitted != 0 {
			t.Errorf("diffs = %d, omitted = %d, 期望 4/0", len(diffs), omitted)
		}
	})

	t.Run("实际输出行数不足", func(t *testing.T) {
		comparator := NewComparator(false, 10)
		_, diffs, _ := comparator.Compare("1\n", "1\n2\n3\n")
		if len(diffs) != 1 {
			t.Fatalf("缺行应只记录一条差异: %+v", diffs)
		}
		if diffs[0].Line != 2 || diffs[0].Actual != "<EOF>" {
			t.Errorf("缺行差异记录错误: %+v", diffs[0])
		}
	})

	t.Run("实际输出多出的行", func(t *testing.T) {
		comparator := NewComparator(false, 10)
		_, diffs, _ := comparator.Compare("1\n2\n3\n", "1\n")
		if len(diffs) != 2 {
			t.Fatalf("多出两行应记录两条差异: %+v", diffs)
		}
		if diffs[0].Expected != "<EOF>" || diffs[1].Expected != "<EOF>" {
			t.Errorf("多行差异的期望侧应为 <EOF>: %+v", diffs)
		}
	})
}
