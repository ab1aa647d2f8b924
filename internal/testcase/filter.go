package testcase

import (
	"strconv"
	"strings"

	"github.com/poflygogo/pox5fly-oj/internal/model"
)

// Filter 根据选择标记筛选要执行的测试点,保持原有顺序。
// 标记有两种匹配方式:
//   - 纯数字标记: 数值相等匹配,自动忽略补零(如 "1" 匹配 "01",但只对纯数字名称生效)
//   - 其他标记: 名称包含匹配(如 "test" 匹配 "my_test_01")
//
// 标记列表为空时返回全部测试点。
func Filter(all []model.TestCase, tokens []string) []model.TestCase {
	if len(tokens) == 0 {
		return all
	}

	var filtered []model.TestCase
	for _, tc := range all {
		if matchAny(tc.Name, tokens) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

func matchAny(caseName string, tokens []string) bool {
	for _, token := range tokens {
		if matchToken(caseName, token) {
			return true
		}
	}
	return false
}

func matchToken(caseName, token string) bool {
	if n, err := strconv.Atoi(token); err == nil {
		// 数字标记只对纯数字名称做数值比对
		if m, merr := strconv.Atoi(caseName); merr == nil {
			return m == n
		}
		return false
	}
	return strings.Contains(caseName, token)
}
