package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load 加载配置并解码为 Config
// 顺序：内置默认值 -> base.yaml -> <env>.yaml -> secrets.env 占位符 -> 系统环境变量
// base.yaml 不存在时只使用默认值和环境变量
func Load(env string, configDir string) (*Config, error) {
	cfg := Default()

	merged, err := LoadConfig(env, configDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// 没有配置文件，使用默认值
	case err != nil:
		return nil, err
	default:
		raw, err := yaml.Marshal(merged)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode merged config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	OverrideFromEnv(&cfg)
	return &cfg, nil
}

// tree 是解码前的 YAML 文档
type tree = map[string]any

// LoadConfig 加载合并后的原始配置
// configDir 为空时使用 "config"；env 为空或 "base" 时只读 base.yaml
func LoadConfig(env string, configDir string) (tree, error) {
	if configDir == "" {
		configDir = "config"
	}

	merged, err := readTree(filepath.Join(configDir, "base.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load base.yaml: %w", err)
	}

	if env != "" && env != "base" {
		overlay, err := readTree(filepath.Join(configDir, env+".yaml"))
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to load %s.yaml: %w", env, err)
		default:
			merged = mergeTrees(merged, overlay)
		}
	}

	// 占位符来源：secrets.env 优先，其次系统环境变量
	lookups := []map[string]string{}
	secrets, err := godotenv.Read(filepath.Join(configDir, "secrets.env"))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to load secrets.env: %w", err)
	default:
		lookups = append(lookups, secrets)
	}

	return mapStrings(merged, func(s string) string {
		return expandPlaceholders(s, lookups)
	}), nil
}

func readTree(path string) (tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := tree{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// mergeTrees 返回 base 被 overlay 覆盖后的新 tree，嵌套 section 递归合并
func mergeTrees(base, overlay tree) tree {
	out := make(tree, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		sub, isTree := v.(tree)
		prev, prevIsTree := out[k].(tree)
		if isTree && prevIsTree {
			out[k] = mergeTrees(prev, sub)
		} else {
			out[k] = v
		}
	}
	return out
}

// mapStrings 对所有字符串叶子应用 fn
func mapStrings(doc tree, fn func(string) string) tree {
	out := make(tree, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case string:
			out[k] = fn(val)
		case tree:
			out[k] = mapStrings(val, fn)
		default:
			out[k] = v
		}
	}
	return out
}

var placeholderPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandPlaceholders 替换 ${VAR}；都找不到时置空，避免把 "${VAR}" 当成真实值
func expandPlaceholders(s string, lookups []map[string]string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		for _, l := range lookups {
			if v, ok := l[name]; ok {
				return v
			}
		}
		return os.Getenv(name)
	})
}

// GetEnv 获取环境变量，如果未设置则返回默认值
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetConfigEnv 获取配置环境（从环境变量 CONFIG_ENV，默认为 local）
func GetConfigEnv() string {
	return GetEnv("CONFIG_ENV", "local")
}
