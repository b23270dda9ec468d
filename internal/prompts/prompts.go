package prompts

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
)

//go:embed *.md
var promptFiles embed.FS

// 必须存在的 prompt 文件（不含扩展名）。
// 摘要指令不在此列：它属于压缩器自身，见 internal/summary。
var required = []string{"persona"}

// GetPrompts 返回所有 prompt 文件的 map，key 为文件名（不含扩展名），value 为文件内容。
// 缺少必需文件时报错，避免带着空 persona 启动。
func GetPrompts() (map[string]string, error) {
	prompts := make(map[string]string)

	err := fs.WalkDir(promptFiles, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		content, err := promptFiles.ReadFile(path)
		if err != nil {
			return err
		}

		fileName := filepath.Base(path)
		key := fileName[:len(fileName)-len(filepath.Ext(fileName))]
		prompts[key] = string(content)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range required {
		if prompts[name] == "" {
			return nil, fmt.Errorf("缺少必需的 prompt 文件: %s.md", name)
		}
	}
	return prompts, nil
}
