package run

import (
	"time"

	"github.com/John-Robertt/podfetch/internal/config"
	"github.com/John-Robertt/podfetch/internal/domain"
)

// Observer 用于把“运行进度/阶段/条目结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）
// - 运行是单线程顺序执行：事件按序到达，实现不需要考虑并发
type Observer interface {
	// OnStart 在 ExecuteWithObserver 开始时调用（应尽量早，保证用户 1 秒内看到输出）。
	OnStart(eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（用于打印阶段统计与耗时）。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnItemStart 在某个 episode 真正开始下载前调用（已存在/无音频的条目不会触发）。
	OnItemStart(idx, total int, title, fileName string)
	// OnItemProgress 在每个数据块落盘后调用；只有响应带 Content-Length 时才会触发。
	OnItemProgress(idx int, written, total int64)
	// OnItemDone 在某个 episode 处理完成时调用（用于每条结果的一行输出）。
	OnItemDone(idx, total int, res domain.EpisodeResult, dur time.Duration)
}


