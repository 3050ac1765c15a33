package domain

import (
	"encoding/json"
	"time"
)

const (
	// StatusDownloaded 表示本次运行实际下载成功。
	StatusDownloaded = "downloaded"
	// StatusExists 表示目标文件已在磁盘上，按约定计为成功且不发任何网络请求。
	StatusExists = "exists"
	// StatusNoAudio 表示条目里找不到 audio/* 资源；占用选取名额但不计成功。
	StatusNoAudio = "no_audio"
	// StatusFailed 表示下载失败（网络/HTTP/IO）。
	StatusFailed = "failed"
)

const (
	ErrCodeFeedFailed     = "feed_failed"
	ErrCodeNoAudioURL     = "no_audio_url"
	ErrCodeFetchFailed    = "fetch_failed"
	ErrCodeIOFailed       = "io_failed"
	ErrCodeTargetConflict = "target_conflict"
	ErrCodeConfigInvalid  = "config_invalid"
)

// RunReport 是对外稳定输出（stdout JSON）的结构。
type RunReport struct {
	FeedURL   string `json:"feed_url"`
	FeedTitle string `json:"feed_title"`
	OutputDir string `json:"output_dir"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Warning 是 feed 层的非致命告警（例如可疑的 Content-Type）；不影响运行。
	Warning string `json:"warning,omitempty"`
	// FeedError 记录 feed 抓取/解析的整体失败原因。这是“可恢复的全局错误”：
	// 结局是空条目 + 干净退出，不算任何 episode 的失败。
	FeedError string `json:"feed_error,omitempty"`

	Summary ReportSummary   `json:"summary"`
	Items   []EpisodeResult `json:"items"`
}

type ReportSummary struct {
	// Selected 是进入处理名单的条目数：min(N, feed 条目数)。
	Selected int `json:"selected"`
	// Succeeded = downloaded + exists（已存在按约定计为成功）。
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	NoAudio   int `json:"no_audio"`
}

type EpisodeResult struct {
	Index int    `json:"index"`
	Title string `json:"title"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`

	AudioURL string `json:"audio_url"`
	FileName string `json:"file_name"`
	Bytes    int64  `json:"bytes"`
}

// Finalize 做两件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) summary 的计数字段由 items 计算得出（Selected 由 run 层直接设置）
//
// items 不排序：顺序就是 feed 原生顺序，本身已稳定。
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	r.Summary.Succeeded = 0
	r.Summary.Failed = 0
	r.Summary.NoAudio = 0
	for _, it := range r.Items {
		switch it.Status {
		case StatusDownloaded, StatusExists:
			r.Summary.Succeeded++
		case StatusFailed:
			r.Summary.Failed++
		case StatusNoAudio:
			r.Summary.NoAudio++
		}
	}
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
// 当前只是透传 encoding/json 的默认行为。
func (r RunReport) MarshalJSON() ([]byte, error) {
	type Alias RunReport
	return json.Marshal(Alias(r))
}


