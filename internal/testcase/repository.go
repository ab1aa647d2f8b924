package testcase

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/poflygogo/pox5fly-oj/internal/constants"
	"github.com/poflygogo/pox5fly-oj/internal/model"
)

// Repository 测资仓库,负责发现并配对 .in/.out 文件
type Repository struct {
	caseDir string
}

// NewRepository 创建测资仓库实例
func NewRepository(caseDir string) *Repository {
	return &Repository{caseDir: caseDir}
}

// CaseDir 返回测资目录路径
func (r *Repository) CaseDir() string {
	return r.caseDir
}

var numberPattern = regexp.MustCompile(`\d+`)

// Collect 搜索测资目录下的所有 .in 文件并尝试配对同名 .out 文件。
// 目录不存在时返回空列表而不是报错,是否视为致命由调用方决定。
// 返回结果按文件名中的首个数字排序,没有数字的排在其后按字典序。
func (r *Repository) Collect() ([]model.TestCase, error) {
	entries, err := os.ReadDir(r.caseDir)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Debug("测资目录不存在", zap.String("dir", r.caseDir))
			return nil, nil
		}
		return nil, err
	}

	var cases []model.TestCase
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), constants.InputFileExt) {
			continue
		}
		inputPath := filepath.Join(r.caseDir, entry.Name())
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		// 配对同名 .out 文件,不存在则留空
		outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + constants.OutputFileExt
		if _, err := os.Stat(outputPath); err != nil {
			outputPath = ""
		}

		cases = append(cases, model.TestCase{
			Name:       name,
			InputFile:  inputPath,
			OutputFile: outputPath,
		})
	}

	sort.SliceStable(cases, func(i, j int) bool {
		ni, oki := extractNumber(cases[i].Name)
		nj, okj := extractNumber(cases[j].Name)
		switch {
		case oki && okj:
			if ni != nj {
				return ni < nj
			}
			return cases[i].Name < cases[j].Name
		case oki:
			return true
		case okj:
			return false
		default:
			return cases[i].Name < cases[j].Name
		}
	})

	zap.L().Debug("测资收集完成",
		zap.String("dir", r.caseDir),
		zap.Int("count", len(cases)),
	)
	return cases, nil
}

// extractNumber 提取名称中的首个数字串作为排序主键(如 "test_02" -> 2)
func extractNumber(name string) (int, bool) {
	match := numberPattern.FindString(name)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		// 数字串过长溢出时退回字典序
		return 0, false
	}
	return n, true
}
