package travis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/penwyp/travisify/internal/errors"
	"github.com/penwyp/travisify/internal/version"
)

// ManifestName 项目清单文件名
const ManifestName = "package.json"

// Manifest 只读取生成 CI 配置所需的字段
type Manifest struct {
	// engines 在一些老包里是数组，延迟解析
	Engines json.RawMessage `json:"engines"`
}

// ReadManifest 读取并解析 package.json
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrTypeIO, fmt.Sprintf("failed to read %s", path), err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrTypeIO, fmt.Sprintf("failed to parse %s", path), err)
	}

	return &m, nil
}

// EngineRange returns engines.node, or DefaultEngineRange when it is absent.
func (m *Manifest) EngineRange() string {
	var engines map[string]any
	if len(m.Engines) > 0 && json.Unmarshal(m.Engines, &engines) == nil {
		if node, ok := engines["node"].(string); ok && node != "" {
			return node
		}
	}
	return version.DefaultEngineRange
}
