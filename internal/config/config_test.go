package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEffective_Defaults(t *testing.T) {
	cwd := t.TempDir()

	eff, err := LoadEffective(cwd, CLIArgs{FeedURL: "https://feeds.test/pod.xml"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.FeedURL != "https://feeds.test/pod.xml" {
		t.Fatalf("feed URL 不符：%q", eff.FeedURL)
	}
	if eff.OutputDir != filepath.Join(cwd, DefaultOutputDir) {
		t.Fatalf("默认输出目录不符：%q", eff.OutputDir)
	}
	if eff.Episodes != DefaultEpisodes {
		t.Fatalf("默认 episodes 不符：%d", eff.Episodes)
	}
	if eff.ProxyURL != "" {
		t.Fatalf("不应有 proxy：%q", eff.ProxyURL)
	}
}

func TestLoadEffective_SchemeCheck(t *testing.T) {
	cwd := t.TempDir()

	for _, bad := range []string{"", "ftp://x/feed.xml", "feeds.test/pod.xml", "  "} {
		_, err := LoadEffective(cwd, CLIArgs{FeedURL: bad})
		if err == nil {
			t.Fatalf("feed URL %q 应被拒绝", bad)
		}
		if Code(err) != ErrCodeInvalidFeedURL {
			t.Fatalf("期望 %s，实际 %s（%v）", ErrCodeInvalidFeedURL, Code(err), err)
		}
	}

	// http:// 也合法（不强制 https）。
	if _, err := LoadEffective(cwd, CLIArgs{FeedURL: "http://feeds.test/pod.xml"}); err != nil {
		t.Fatalf("http:// 应合法：%v", err)
	}
}

func TestLoadEffective_FileAndCLIPriority(t *testing.T) {
	cwd := t.TempDir()
	cfg := `{"output": "from_file", "episodes": 3, "proxy": {"url": "http://127.0.0.1:7890"}}`
	if err := os.WriteFile(filepath.Join(cwd, "podfetch.json"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("写配置失败：%v", err)
	}

	// 无 CLI 覆盖：取配置文件的值。
	eff, err := LoadEffective(cwd, CLIArgs{FeedURL: "https://f.test/x"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.OutputDir != filepath.Join(cwd, "from_file") || eff.Episodes != 3 {
		t.Fatalf("配置文件未生效：%+v", eff)
	}
	if eff.ProxyURL != "http://127.0.0.1:7890" {
		t.Fatalf("proxy 未生效：%q", eff.ProxyURL)
	}

	// CLI 覆盖配置文件。
	eff, err = LoadEffective(cwd, CLIArgs{
		FeedURL:     "https://f.test/x",
		Output:      "cli_dir",
		OutputSet:   true,
		Episodes:    5,
		EpisodesSet: true,
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.OutputDir != filepath.Join(cwd, "cli_dir") || eff.Episodes != 5 {
		t.Fatalf("CLI 覆盖失败：%+v", eff)
	}
}

func TestLoadEffective_InvalidEpisodes(t *testing.T) {
	cwd := t.TempDir()

	_, err := LoadEffective(cwd, CLIArgs{
		FeedURL:     "https://f.test/x",
		Episodes:    0,
		EpisodesSet: true,
	})
	if err == nil || Code(err) != ErrCodeInvalid {
		t.Fatalf("episodes=0 应报 config_invalid：%v", err)
	}
}

func TestLoadEffective_BadConfigFile(t *testing.T) {
	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, "podfetch.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("写配置失败：%v", err)
	}

	_, err := LoadEffective(cwd, CLIArgs{FeedURL: "https://f.test/x"})
	if err == nil || Code(err) != ErrCodeInvalid {
		t.Fatalf("坏配置文件应报 config_invalid：%v", err)
	}
}

func TestLoadEffective_AbsoluteOutputKept(t *testing.T) {
	cwd := t.TempDir()
	abs := filepath.Join(cwd, "elsewhere")

	eff, err := LoadEffective(cwd, CLIArgs{
		FeedURL:   "https://f.test/x",
		Output:    abs,
		OutputSet: true,
	})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if eff.OutputDir != abs {
		t.Fatalf("绝对路径应原样保留：%q", eff.OutputDir)
	}
}


