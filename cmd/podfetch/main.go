package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/John-Robertt/podfetch/internal/app/run"
	"github.com/John-Robertt/podfetch/internal/config"
	"github.com/John-Robertt/podfetch/internal/domain"
	"github.com/John-Robertt/podfetch/internal/extract"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printUsage()
			return 0
		}
	}

	ra, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 2
	}

	eff, err := config.LoadEffective(cwd, config.CLIArgs{
		FeedURL:     ra.FeedURL,
		Output:      ra.Output,
		OutputSet:   ra.OutputSet,
		Episodes:    ra.Episodes,
		EpisodesSet: ra.EpisodesSet,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		// scheme 校验失败是唯一的“致命输入错误”：按约定退出码 1。
		if config.Code(err) == config.ErrCodeInvalidFeedURL {
			return 1
		}
		return 2
	}

	progressW, interactive := pickProgressWriter()
	var obs run.Observer
	if interactive {
		obs = newProgressUI(progressW)
	}

	rr := run.ExecuteWithObserver(context.Background(), eff, extract.Default(), obs)

	emitReport(rr)

	// 个别 episode 失败不影响退出码：正常跑完一律 0。
	return 0
}

type cliArgs struct {
	FeedURL string

	Output    string
	OutputSet bool

	Episodes    int
	EpisodesSet bool
}

func parseArgs(args []string) (cliArgs, error) {
	ra := cliArgs{}

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--output" || a == "-o":
			if i+1 >= len(args) {
				return cliArgs{}, fmt.Errorf("%s 需要一个值", a)
			}
			i++
			ra.Output = args[i]
			ra.OutputSet = true
		case strings.HasPrefix(a, "--output="):
			ra.Output = strings.TrimPrefix(a, "--output=")
			ra.OutputSet = true
		case a == "--episodes" || a == "-e":
			if i+1 >= len(args) {
				return cliArgs{}, fmt.Errorf("%s 需要一个值", a)
			}
			i++
			n, err := parseEpisodes(args[i])
			if err != nil {
				return cliArgs{}, err
			}
			ra.Episodes = n
			ra.EpisodesSet = true
		case strings.HasPrefix(a, "--episodes="):
			n, err := parseEpisodes(strings.TrimPrefix(a, "--episodes="))
			if err != nil {
				return cliArgs{}, err
			}
			ra.Episodes = n
			ra.EpisodesSet = true
		case strings.HasPrefix(a, "-"):
			return cliArgs{}, fmt.Errorf("未知参数 %q", a)
		default:
			if ra.FeedURL != "" {
				return cliArgs{}, fmt.Errorf("重复的 feed URL：%q 与 %q", ra.FeedURL, a)
			}
			ra.FeedURL = a
		}
	}

	if ra.FeedURL == "" {
		return cliArgs{}, fmt.Errorf("缺少 feed URL")
	}

	return ra, nil
}

func parseEpisodes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("--episodes 必须是整数，实际是 %q", s)
	}
	return n, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  podfetch <feed-url> [--output|-o 目录] [--episodes|-e 数量]

参数：
  feed-url         RSS/Atom feed 地址（必须以 http:// 或 https:// 开头）
  --output, -o     下载输出目录（默认 downloads；可在 podfetch.json 配置）
  --episodes, -e   最多下载最近几条（默认 10）
  -h, --help       显示帮助

说明：
  个别 episode 下载失败不影响退出码；只有 feed URL 未通过 scheme 校验才以 1 退出。
  stdout 非交互终端时输出一份 RunReport JSON（过程信息走 stderr）。
`)
}

func emitReport(rr domain.RunReport) {
	if isTTY(os.Stdout) {
		if rr.FeedError != "" {
			fmt.Fprintf(os.Stdout, "解析 feed 失败：%s\n", rr.FeedError)
			fmt.Fprintln(os.Stdout, "未找到任何条目。")
			return
		}
		if rr.Summary.Selected == 0 {
			fmt.Fprintln(os.Stdout, "未找到任何条目。")
			return
		}

		fmt.Fprintf(os.Stdout, "下载完成！%d/%d 个 episode 成功。\n", rr.Summary.Succeeded, rr.Summary.Selected)
		fmt.Fprintf(os.Stdout, "文件保存在：%s\n", rr.OutputDir)

		if rr.Summary.Failed > 0 || rr.Summary.NoAudio > 0 {
			for _, it := range rr.Items {
				if it.Status != domain.StatusFailed && it.Status != domain.StatusNoAudio {
					continue
				}
				fmt.Fprintf(os.Stderr, "[%d] %s %s: %s\n", it.Index, it.Title, it.ErrorCode, it.ErrorMsg)
			}
		}
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（摘要走 stderr）。
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(os.Stderr, "完成：succeeded=%d/%d failed=%d no_audio=%d\n",
		rr.Summary.Succeeded, rr.Summary.Selected, rr.Summary.Failed, rr.Summary.NoAudio,
	)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickProgressWriter() (io.Writer, bool) {
	// 进度输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(os.Stderr) {
		return os.Stderr, true
	}
	// 某些环境（例如仅重定向 stderr）下，stdout 仍是 TTY：退化输出到 stdout。
	if isTTY(os.Stdout) {
		return os.Stdout, true
	}
	return nil, false
}


