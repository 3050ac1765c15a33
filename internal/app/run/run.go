package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/John-Robertt/podfetch/internal/app/planner"
	"github.com/John-Robertt/podfetch/internal/config"
	"github.com/John-Robertt/podfetch/internal/domain"
	"github.com/John-Robertt/podfetch/internal/extract"
	"github.com/John-Robertt/podfetch/internal/feed"
	"github.com/John-Robertt/podfetch/internal/fetch"
	"github.com/John-Robertt/podfetch/internal/infra/fsx"
	"github.com/John-Robertt/podfetch/internal/infra/httpx"
)

// Execute 执行一次下载运行，并返回对外稳定的 RunReport。
// 该函数尽量把错误“降级”为 episode 级失败（单条失败不影响其他条目）。
func Execute(ctx context.Context, eff config.EffectiveConfig, chain extract.Chain) domain.RunReport {
	return ExecuteWithObserver(ctx, eff, chain, nil)
}

// ExecuteWithObserver 与 Execute 相同，但允许传入 Observer 以输出进度/阶段信息
// （由上层决定是否启用）。
//
// 流程（固定顺序）：确保输出目录 → 抓取解析 feed → 规划前 N 条 → 逐条顺序执行。
// feed 整体失败属于“可恢复的全局错误”：结局是空条目 + 干净返回，绝不 panic/退出。
func ExecuteWithObserver(ctx context.Context, eff config.EffectiveConfig, chain extract.Chain, obs Observer) domain.RunReport {
	started := time.Now().UTC()

	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		FeedURL:   eff.FeedURL,
		OutputDir: eff.OutputDir,
		StartedAt: started,
		Items:     []domain.EpisodeResult{},
	}

	if err := fsx.EnsureDir(eff.OutputDir); err != nil {
		code := domain.ErrCodeIOFailed
		if fsx.IsPathTypeConflict(err) {
			code = domain.ErrCodeTargetConflict
		}
		rr.Items = append(rr.Items, syntheticFailed(code, fmt.Sprintf("创建输出目录失败：%v", err)))
		return finish(rr)
	}

	feedClient, err := httpx.NewFeedClient(eff.ProxyURL)
	if err != nil {
		rr.Items = append(rr.Items, syntheticFailed(domain.ErrCodeConfigInvalid, fmt.Sprintf("proxy.url 无效：%v", err)))
		return finish(rr)
	}

	feedStarted := time.Now()
	res, err := feed.Fetch(ctx, feedClient, eff.FeedURL)
	feedDur := time.Since(feedStarted)
	if err != nil {
		// feed 不可达/不可解析：空条目 + 诊断信息，干净收尾。
		rr.FeedError = err.Error()
		if obs != nil {
			obs.OnPhaseDone("feed", map[string]any{
				"entries": 0,
				"error":   err.Error(),
			}, feedDur)
		}
		return finish(rr)
	}

	rr.FeedTitle = res.Title
	rr.Warning = res.Warning
	if obs != nil {
		fields := map[string]any{
			"entries": len(res.Entries),
			"title":   res.Title,
		}
		if res.Warning != "" {
			fields["warning"] = res.Warning
		}
		obs.OnPhaseDone("feed", fields, feedDur)
	}

	if len(res.Entries) == 0 {
		return finish(rr)
	}

	planStarted := time.Now()
	plans := planner.PlanEpisodes(res.Entries, eff.Episodes, chain)
	planDur := time.Since(planStarted)

	rr.Summary.Selected = len(plans)
	if obs != nil {
		noAudio := 0
		for _, p := range plans {
			if p.AudioURL == "" {
				noAudio++
			}
		}
		obs.OnPhaseDone("plan", map[string]any{
			"selected": len(plans),
			"no_audio": noAudio,
		}, planDur)
	}

	audioClient, err := httpx.NewAudioClient(eff.ProxyURL)
	if err != nil {
		rr.Items = append(rr.Items, syntheticFailed(domain.ErrCodeConfigInvalid, fmt.Sprintf("proxy.url 无效：%v", err)))
		return finish(rr)
	}

	for i, p := range plans {
		oneStarted := time.Now()
		r := execOne(ctx, eff, p, audioClient, obs, i+1, len(plans))
		rr.Items = append(rr.Items, r)
		if obs != nil {
			obs.OnItemDone(i+1, len(plans), r, time.Since(oneStarted))
		}
	}

	return finish(rr)
}

func finish(rr domain.RunReport) domain.RunReport {
	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr
}

func syntheticFailed(code, msg string) domain.EpisodeResult {
	return domain.EpisodeResult{
		Index:     0,
		Status:    domain.StatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	}
}

// execOne 处理单个 episode。任何失败都收敛为结果记录，循环由调用方继续。
func execOne(ctx context.Context, eff config.EffectiveConfig, p domain.EpisodePlan, c *http.Client, obs Observer, idx, total int) domain.EpisodeResult {
	r := domain.EpisodeResult{
		Index:    p.Index,
		Title:    p.Title,
		AudioURL: p.AudioURL,
		FileName: p.FileName,
	}

	if p.AudioURL == "" {
		r.Status = domain.StatusNoAudio
		r.ErrorCode = domain.ErrCodeNoAudioURL
		r.ErrorMsg = "条目里没有声明为 audio/* 的资源"
		return r
	}

	dst := filepath.Join(eff.OutputDir, p.FileName)

	// 已存在即成功：不重新下载，也不校验旧文件的完整性。
	// 注意：重名条目（不同内容、相同合成文件名）也会走到这里——保留的已知行为。
	if fsx.FileExists(dst) {
		r.Status = domain.StatusExists
		if fi, err := os.Stat(dst); err == nil {
			r.Bytes = fi.Size()
		}
		return r
	}

	if obs != nil {
		obs.OnItemStart(idx, total, p.Title, p.FileName)
	}

	var onProgress fetch.ProgressFunc
	if obs != nil {
		onProgress = func(written, total64 int64) {
			obs.OnItemProgress(idx, written, total64)
		}
	}

	if err := fetch.File(ctx, c, p.AudioURL, dst, onProgress); err != nil {
		r.Status = domain.StatusFailed
		r.ErrorCode = fetchErrorCode(err)
		r.ErrorMsg = err.Error()
		return r
	}

	r.Status = domain.StatusDownloaded
	if fi, err := os.Stat(dst); err == nil {
		r.Bytes = fi.Size()
	}
	return r
}

func fetchErrorCode(err error) string {
	var hs *fetch.HTTPStatusError
	if errors.As(err, &hs) {
		return domain.ErrCodeFetchFailed
	}
	var pe *os.PathError
	if errors.As(err, &pe) {
		// 打开/写入目标文件失败属于本地 IO 问题，与网络无关。
		return domain.ErrCodeIOFailed
	}
	return domain.ErrCodeFetchFailed
}


