package domain

// EpisodePlan 是对单个 episode 的最小执行计划（只描述要下什么、落到哪个文件名；
// 存在性检查与下载由执行阶段完成）。
//
// AudioURL 为空表示规划阶段没有找到 audio/* 资源：该条目仍然占用选取名额
// （行为兼容：跳过不补位），执行阶段直接记为 no_audio。
type EpisodePlan struct {
	Index int // 1-based，按 feed 原生顺序
	Title string

	AudioURL string
	FileName string
}


