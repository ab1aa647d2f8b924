package model

// TestCase 单个测试用例。
// 由测资仓库发现并配对,加载后只读,编排器不得修改。
type TestCase struct {
	Name       string `json:"name"`        // 测试点名称(输入文件名去掉扩展名,如 "01", "test_01")
	InputFile  string `json:"input_file"`  // 输入数据文件路径
	OutputFile string `json:"output_file"` // 期望输出文件路径,为空表示没有配对的 .out 文件
}

// HasExpected 是否存在配对的期望输出文件。
// 没有 .out 不是错误,判定结果为 MISSING。
func (tc *TestCase) HasExpected() bool {
	return tc.OutputFile != ""
}
