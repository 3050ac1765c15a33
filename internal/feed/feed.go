package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/John-Robertt/podfetch/internal/domain"
)

// Result 是一次 feed 抓取+解析的产物。
//
// Entries 保持 feed 原生顺序（惯例上是新→旧，这里不验证也不重排）。
// Warning 是非致命告警：解析仍然成功，但 feed 有可疑之处。
type Result struct {
	Title   string
	Entries []domain.Entry
	Warning string
}

// Fetch 抓取并解析一个 RSS/Atom feed。
//
// 约束：
// - 解析完全委托给 gofeed（自己手写 XML/RSS/Atom 解析没有价值）
// - 网络错误、非 2xx、无法识别的内容都以 error 返回；
//   调用方（run 层）负责把任何错误降级为“no entries”结局，绝不让它终止进程
// - gofeed 没有“部分解析”通道：坏 feed 要么整体解析成功要么整体失败，
//   Warning 只覆盖可观测的中间地带（Content-Type 可疑/类型未声明）
func Fetch(ctx context.Context, c *http.Client, feedURL string) (Result, error) {
	if c == nil {
		return Result{}, errors.New("feed client 为空")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	f, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("feed 解析失败：%w", err)
	}

	out := Result{
		Title:   f.Title,
		Entries: make([]domain.Entry, 0, len(f.Items)),
	}
	for _, it := range f.Items {
		out.Entries = append(out.Entries, entryFromItem(it))
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if ct != "" && !looksLikeFeedType(ct) {
		out.Warning = fmt.Sprintf("Content-Type 可疑：%q（内容仍按 feed 解析成功）", ct)
	}

	return out, nil
}

// entryFromItem 把 gofeed 的条目摊平成只读的 domain.Entry。
//
// 三组资源的来源：
// - Enclosures：item.Enclosures（gofeed 也会把 Atom 的 rel=enclosure 链接折叠进来）
// - MediaContent：media 扩展的 <media:content>（含 <media:group> 内嵌的）
// - Links：item.Links 只有裸 URL，没有类型声明 => Type 留空。
//   提取规则“无 audio/* 声明绝不选中”由 extract 层保证，这里不做任何猜测。
func entryFromItem(it *gofeed.Item) domain.Entry {
	e := domain.Entry{
		Title:     it.Title,
		Published: it.Published,
	}

	for _, enc := range it.Enclosures {
		if enc == nil {
			continue
		}
		e.Enclosures = append(e.Enclosures, domain.Resource{URL: enc.URL, Type: enc.Type})
	}

	e.MediaContent = mediaContent(it.Extensions)

	for _, l := range it.Links {
		e.Links = append(e.Links, domain.Resource{URL: l})
	}

	return e
}

func mediaContent(exts ext.Extensions) []domain.Resource {
	media, ok := exts["media"]
	if !ok {
		return nil
	}

	var out []domain.Resource
	for _, c := range media["content"] {
		out = appendMedia(out, c)
	}
	// <media:group> 里的 content 追加在顶层 content 之后（保持各自的原生顺序）。
	for _, g := range media["group"] {
		for _, c := range g.Children["content"] {
			out = appendMedia(out, c)
		}
	}
	return out
}

func appendMedia(out []domain.Resource, c ext.Extension) []domain.Resource {
	u := c.Attrs["url"]
	if u == "" {
		return out
	}
	return append(out, domain.Resource{URL: u, Type: c.Attrs["type"]})
}

func looksLikeFeedType(ct string) bool {
	for _, hint := range []string{"xml", "rss", "atom", "json"} {
		if strings.Contains(ct, hint) {
			return true
		}
	}
	return false
}


