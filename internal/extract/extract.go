package extract

import (
	"strings"

	"github.com/John-Robertt/podfetch/internal/domain"
)

// Source 是一种“从条目里找音频资源”的查找策略。
//
// 约束：
// - Pick 必须是纯函数：只读 entry，不做网络、不看 URL 后缀
// - 只有声明了 audio/* 类型的资源才允许命中
type Source interface {
	Name() string
	Pick(e domain.Entry) (url string, ok bool)
}

// Chain 按固定顺序逐个尝试 Source，返回第一个命中。
// 顺序即优先级；核心流程只依赖 Chain，不关心各来源细节。
type Chain struct {
	sources []Source
}

// Default 返回标准提取链：enclosures → media:content → links。
func Default() Chain {
	return NewChain(
		enclosureSource{},
		mediaContentSource{},
		linkSource{},
	)
}

func NewChain(sources ...Source) Chain {
	return Chain{sources: append([]Source(nil), sources...)}
}

// Extract 返回第一个命中的音频 URL 及其来源名；全部落空时 ok=false。
func (c Chain) Extract(e domain.Entry) (url string, source string, ok bool) {
	for _, s := range c.sources {
		if u, hit := s.Pick(e); hit {
			return u, s.Name(), true
		}
	}
	return "", "", false
}

// pickAudio 在资源序列里找第一个声明为 audio/* 的资源。
// Type 为空或非 audio/* 一律跳过——即使 URL 看起来像音频文件。
func pickAudio(rs []domain.Resource) (string, bool) {
	for _, r := range rs {
		if strings.HasPrefix(r.Type, "audio/") {
			return r.URL, true
		}
	}
	return "", false
}

type enclosureSource struct{}

func (enclosureSource) Name() string { return "enclosures" }

func (enclosureSource) Pick(e domain.Entry) (string, bool) {
	return pickAudio(e.Enclosures)
}

type mediaContentSource struct{}

func (mediaContentSource) Name() string { return "media_content" }

func (mediaContentSource) Pick(e domain.Entry) (string, bool) {
	return pickAudio(e.MediaContent)
}

type linkSource struct{}

func (linkSource) Name() string { return "links" }

func (linkSource) Pick(e domain.Entry) (string, bool) {
	return pickAudio(e.Links)
}


