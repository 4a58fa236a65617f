package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format 故事文件格式
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatFromPath 根据扩展名判断文件格式
//
// 返回:
//   - Format: 文件格式
//   - bool: 扩展名是否受支持（.yaml / .yml / .toml）
func FormatFromPath(p string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return FormatYAML, false
}

// decodeStory 把文件内容解码到 out 中
//
// out 中已有的字段只会被文件里出现的键覆盖，未知的键会报错。
func decodeStory(data []byte, format Format, out *StoryConfig) error {
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("failed to parse toml: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse yaml: %w", err)
		}
	}
	return nil
}

// LoadStoryConfigFromBytes 解析单个故事（不处理 extends）
//
// 参数:
//   - data: 文件内容
//   - format: 文件格式
//   - fallbackID: 文件中没有写 id 时使用的 ID（通常为文件名）
//
// 返回:
//   - *StoryConfig: 已应用默认值并通过验证的配置
//   - error: 解析或验证失败
func LoadStoryConfigFromBytes(data []byte, format Format, fallbackID string) (*StoryConfig, error) {
	var cfg StoryConfig
	if err := decodeStory(data, format, &cfg); err != nil {
		return nil, err
	}
	if cfg.Extends != "" {
		return nil, fmt.Errorf("story %q extends %q: load it through a StoryLibrary", cfg.ID, cfg.Extends)
	}
	if cfg.ID == "" {
		cfg.ID = fallbackID
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid story config %q: %w", cfg.ID, err)
	}
	return &cfg, nil
}

// LoadStoryConfig 从磁盘加载单个故事文件
//
// 参数:
//   - path: 配置文件路径（如 "data/stories/climate-timeline.yaml"）
func LoadStoryConfig(path string) (*StoryConfig, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported story file extension: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story config: %w", err)
	}

	return LoadStoryConfigFromBytes(data, format, storyIDFromPath(path))
}

func storyIDFromPath(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Clone 深拷贝配置
func (c *StoryConfig) Clone() (*StoryConfig, error) {
	var out StoryConfig
	if err := copier.CopyWithOption(&out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy story %q: %w", c.ID, err)
	}
	return &out, nil
}

// storySource 故事源文件
type storySource struct {
	id      string
	path    string
	extends string
	format  Format
	data    []byte
}

// StoryLibrary 一组故事文件，负责解析 extends 继承关系
//
// 子故事先深拷贝父故事的原始字段，再把自己的文件内容解码到拷贝上，
// 因此子故事只需写出需要覆盖的键。列表类字段（waypoints）整体替换。
type StoryLibrary struct {
	sources map[string]*storySource
	order   []string
}

// NewStoryLibrary 创建空的故事库
func NewStoryLibrary() *StoryLibrary {
	return &StoryLibrary{
		sources: make(map[string]*storySource),
	}
}

// LoadStoryLibrary 读取目录下全部故事文件
//
// 参数:
//   - fsys: 文件系统（嵌入资源或 os.DirFS）
//   - dir: 目录路径，"." 表示根目录
//
// 返回:
//   - *StoryLibrary: 故事库，所有故事都已经过解析和验证
//   - error: 任一文件无效时返回错误
func LoadStoryLibrary(fsys fs.FS, dir string) (*StoryLibrary, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read story directory %s: %w", dir, err)
	}

	lib := NewStoryLibrary()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(entry.Name()); !ok {
			continue
		}
		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read story %s: %w", p, err)
		}
		if _, err := lib.AddSource(p, data); err != nil {
			return nil, err
		}
	}

	if len(lib.order) == 0 {
		return nil, fmt.Errorf("no story files found in %s", dir)
	}

	// 提前解析全部故事，尽早暴露 extends 错误
	for _, id := range lib.order {
		if _, err := lib.Get(id); err != nil {
			return nil, err
		}
	}

	return lib, nil
}

// AddSource 加入一个故事源文件，同 ID 的故事会被替换
//
// 返回:
//   - string: 故事 ID
//   - error: 扩展名不受支持或内容无法解析
func (l *StoryLibrary) AddSource(p string, data []byte) (string, error) {
	format, ok := FormatFromPath(p)
	if !ok {
		return "", fmt.Errorf("unsupported story file extension: %s", p)
	}

	var header StoryConfig
	if err := decodeStory(data, format, &header); err != nil {
		return "", fmt.Errorf("story %s: %w", p, err)
	}
	id := header.ID
	if id == "" {
		id = storyIDFromPath(p)
	}

	if _, exists := l.sources[id]; !exists {
		l.order = append(l.order, id)
	}
	l.sources[id] = &storySource{
		id:      id,
		path:    p,
		extends: header.Extends,
		format:  format,
		data:    data,
	}
	return id, nil
}

// IDs 按加载顺序返回全部故事 ID
func (l *StoryLibrary) IDs() []string {
	return slices.Clone(l.order)
}

// Has 故事是否存在
func (l *StoryLibrary) Has(id string) bool {
	_, ok := l.sources[id]
	return ok
}

// Path 返回故事的源文件路径
func (l *StoryLibrary) Path(id string) string {
	if src, ok := l.sources[id]; ok {
		return src.path
	}
	return ""
}

// Source 返回故事的原始文件内容
func (l *StoryLibrary) Source(id string) []byte {
	if src, ok := l.sources[id]; ok {
		return src.data
	}
	return nil
}

// Next 返回 id 之后的故事 ID（循环）
func (l *StoryLibrary) Next(id string) string {
	if len(l.order) == 0 {
		return ""
	}
	i := slices.Index(l.order, id)
	return l.order[(i+1)%len(l.order)]
}

// Get 解析继承关系，应用默认值并验证，返回一份独立的配置
func (l *StoryLibrary) Get(id string) (*StoryConfig, error) {
	cfg, err := l.resolve(id, nil)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid story config %q: %w", id, err)
	}
	return cfg, nil
}

func (l *StoryLibrary) resolve(id string, chain []string) (*StoryConfig, error) {
	src, ok := l.sources[id]
	if !ok {
		if len(chain) > 0 {
			return nil, fmt.Errorf("story %q extends unknown story %q", chain[len(chain)-1], id)
		}
		return nil, fmt.Errorf("unknown story %q", id)
	}
	if slices.Contains(chain, id) {
		return nil, fmt.Errorf("story extends cycle: %s -> %s", strings.Join(chain, " -> "), id)
	}
	chain = append(chain, id)

	cfg := &StoryConfig{}
	if src.extends != "" {
		parent, err := l.resolve(src.extends, chain)
		if err != nil {
			return nil, err
		}
		// 深拷贝，避免子故事的解码复用父故事的切片底层数组
		if err := copier.CopyWithOption(cfg, parent, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("failed to copy parent story %q: %w", src.extends, err)
		}
	}

	if err := decodeStory(src.data, src.format, cfg); err != nil {
		return nil, fmt.Errorf("story %s: %w", src.path, err)
	}
	cfg.ID = id
	cfg.Extends = src.extends
	return cfg, nil
}
