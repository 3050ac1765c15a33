package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/John-Robertt/podfetch/internal/app/run"
	"github.com/John-Robertt/podfetch/internal/config"
	"github.com/John-Robertt/podfetch/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是交互终端的进度输出。
//
// 设计目标：
// - 所有过程信息写到 stderr（或 fallback 到 stdout），不污染 stdout 的 JSON 输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - 下载中用 \r 原地刷新百分比，结束时补换行
type progressUI struct {
	w io.Writer

	startedAt time.Time

	// inProgress 表示当前行是一条未换行的进度行（OnItemDone 需要先补 \n）。
	inProgress bool
	lastPct    float64
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	now := time.Now()
	if p.startedAt.IsZero() {
		p.startedAt = now
	}

	fmt.Fprintf(p.w, "[%s] podfetch run\n", now.Format("15:04:05"))
	fmt.Fprintln(p.w, "配置（生效）:")
	fmt.Fprintf(p.w, "  feed: %s\n", eff.FeedURL)
	fmt.Fprintf(p.w, "  output: %s\n", eff.OutputDir)
	fmt.Fprintf(p.w, "  episodes: %d\n", eff.Episodes)
	fmt.Fprintf(p.w, "  proxy: %s\n", formatProxy(eff.ProxyURL))
	fmt.Fprintln(p.w)
}

func (p *progressUI) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	switch name {
	case "feed":
		if msg, ok := fields["error"].(string); ok {
			fmt.Fprintf(p.w, "抓取 feed 失败：%s (%s)\n", truncate(msg, 160), formatShortDuration(dur))
			return
		}
		title, _ := fields["title"].(string)
		fmt.Fprintf(p.w, "feed: %q entries=%d (%s)\n",
			truncate(title, 60), intField(fields, "entries"), formatShortDuration(dur),
		)
		if warn, ok := fields["warning"].(string); ok && warn != "" {
			fmt.Fprintf(p.w, "警告: %s\n", truncate(warn, 160))
		}
	case "plan":
		fmt.Fprintf(p.w, "规划: selected=%d no_audio=%d (%s)\n\n",
			intField(fields, "selected"), intField(fields, "no_audio"), formatShortDuration(dur),
		)
	default:
		// 兜底：未知阶段也不要静默（便于调试/演进）。
		fmt.Fprintf(p.w, "%s (%s)\n", name, formatShortDuration(dur))
	}
}

func (p *progressUI) OnItemStart(idx, total int, title, fileName string) {
	fmt.Fprintf(p.w, "[%d/%d] 下载 %s -> %s\n", idx, total, truncate(title, 60), fileName)
	p.lastPct = -1
}

func (p *progressUI) OnItemProgress(idx int, written, total int64) {
	if total <= 0 {
		return
	}
	pct := float64(written) / float64(total) * 100
	// 每 0.1% 刷一次就够了，避免刷屏开销。
	if pct-p.lastPct < 0.1 && pct < 100 {
		return
	}
	p.lastPct = pct
	fmt.Fprintf(p.w, "\r进度: %.1f%%", pct)
	p.inProgress = true
}

func (p *progressUI) OnItemDone(idx, total int, res domain.EpisodeResult, dur time.Duration) {
	if p.inProgress {
		fmt.Fprintln(p.w)
		p.inProgress = false
	}

	switch res.Status {
	case domain.StatusDownloaded:
		fmt.Fprintf(p.w, "[%d/%d] %s OK %s (%s)\n",
			idx, total, truncate(res.Title, 60), res.FileName, formatShortDuration(dur),
		)
	case domain.StatusExists:
		fmt.Fprintf(p.w, "[%d/%d] %s SKIP (文件已存在：%s)\n",
			idx, total, truncate(res.Title, 60), res.FileName,
		)
	case domain.StatusNoAudio:
		fmt.Fprintf(p.w, "[%d/%d] %s SKIP (没有 audio/* 资源)\n",
			idx, total, truncate(res.Title, 60),
		)
	default:
		fmt.Fprintf(p.w, "[%d/%d] %s FAIL %s: %s (%s)\n",
			idx, total, truncate(res.Title, 60), res.ErrorCode, truncate(res.ErrorMsg, 160), formatShortDuration(dur),
		)
	}
}

func formatProxy(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "off"
	}
	return "on (" + truncate(raw, 120) + ")"
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func formatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func intField(fields map[string]any, key string) int {
	if fields == nil {
		return 0
	}
	v, ok := fields[key]
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	default:
		return 0
	}
}


