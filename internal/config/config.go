package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ErrCodeInvalidFeedURL 表示 feed URL 没通过 scheme 校验（唯一的致命输入错误）。
	ErrCodeInvalidFeedURL = "invalid_feed_url"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

const (
	// DefaultOutputDir 是输出目录的最终默认值（当 CLI 与配置文件都未指定时）。
	DefaultOutputDir = "downloads"
	// DefaultEpisodes 是“最多下载几条”的内置默认值。
	DefaultEpisodes = 10

	// configFileName 是工作目录下可选配置文件的固定名字。
	configFileName = "podfetch.json"
)

// CLIArgs 只包含 CLI 暴露的三项入口（feed URL / output / episodes），
// 并保留“是否显式指定”的信息，保证覆盖优先级可实现。
type CLIArgs struct {
	FeedURL string

	Output    string
	OutputSet bool

	Episodes    int
	EpisodesSet bool
}

// FileConfig 对应 podfetch.json 的解析结构。文件整体可选，字段也全部可选。
type FileConfig struct {
	Output   string       `json:"output"`
	Episodes *int         `json:"episodes"`
	Proxy    *ProxyConfig `json:"proxy"`
}

type ProxyConfig struct {
	URL string `json:"url"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置
// （实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	FeedURL string

	// OutputDir 已经是 clean + absolute。
	OutputDir string
	Episodes  int

	// ProxyURL 仅通过 podfetch.json 配置，不暴露 CLI 参数；
	// feed 抓取与音频下载都走它。
	ProxyURL string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeInvalidFeedURL:
		return fmt.Sprintf("%s：feed URL 必须以 http:// 或 https:// 开头：%q", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 校验 feed URL，读取可选的 <cwd>/podfetch.json，
// 然后与 CLI 参数合并为最终配置。
//
// 覆盖优先级（固定）：
// - output：CLI --output/-o > config > 默认 downloads
// - episodes：CLI --episodes/-e > config > 默认 10
// - proxy：仅 config（CLI 不暴露）
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	feedURL := strings.TrimSpace(cli.FeedURL)
	if !strings.HasPrefix(feedURL, "http://") && !strings.HasPrefix(feedURL, "https://") {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalidFeedURL, Path: cli.FeedURL}
	}

	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	cfgPath := filepath.Join(cwdAbs, configFileName)
	fc, _, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	// output：CLI > config > 默认
	output := DefaultOutputDir
	if cli.OutputSet {
		output = cli.Output
	} else if strings.TrimSpace(fc.Output) != "" {
		output = fc.Output
	}
	if strings.TrimSpace(output) == "" {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("output 不能为空")}
	}

	// episodes：CLI > config > 默认；必须 >= 1
	episodes := DefaultEpisodes
	if cli.EpisodesSet {
		episodes = cli.Episodes
	} else if fc.Episodes != nil {
		episodes = *fc.Episodes
	}
	if episodes < 1 {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("episodes 必须 >= 1，实际是 %d", episodes)}
	}

	proxyURL := ""
	if fc.Proxy != nil {
		proxyURL = strings.TrimSpace(fc.Proxy.URL)
	}
	if proxyURL != "" {
		if _, err := url.Parse(proxyURL); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("proxy.url 无效：%w", err)}
		}
	}

	return EffectiveConfig{
		FeedURL:   feedURL,
		OutputDir: absCleanFrom(cwdAbs, output),
		Episodes:  episodes,
		ProxyURL:  proxyURL,
	}, nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}


