package planner

import (
	"fmt"

	"github.com/John-Robertt/podfetch/internal/domain"
	"github.com/John-Robertt/podfetch/internal/extract"
	"github.com/John-Robertt/podfetch/internal/naming"
)

// PlanEpisodes 基于 feed 条目生成确定性的执行计划（不做任何网络/写入）。
//
// 规则（固定）：
// - 取前 min(max, len(entries)) 条，严格按 feed 原生顺序
// - 标题缺失 => 占位标题 Episode_{i}（i 为 1-based 选取序号）
// - 找不到 audio/* 资源 => AudioURL 留空；该条目仍占用名额，不补位
// - 文件名合成只依赖 (title, published, audioURL)：同输入必同输出，
//   跨条目的重名不在规划阶段去重（执行阶段会把重名当“已下载”跳过）
func PlanEpisodes(entries []domain.Entry, max int, chain extract.Chain) []domain.EpisodePlan {
	n := max
	if n > len(entries) {
		n = len(entries)
	}
	if n < 0 {
		n = 0
	}

	plans := make([]domain.EpisodePlan, 0, n)
	for i := 0; i < n; i++ {
		e := entries[i]

		title := e.Title
		if title == "" {
			title = fmt.Sprintf("Episode_%d", i+1)
		}

		p := domain.EpisodePlan{
			Index: i + 1,
			Title: title,
		}

		if u, _, ok := chain.Extract(e); ok {
			p.AudioURL = u
			p.FileName = naming.FileName(title, e.Published, u)
		}

		plans = append(plans, p)
	}
	return plans
}


