package naming

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DefaultExt 是 URL path 上解析不出扩展名时的兜底扩展名。
const DefaultExt = "mp3"

// publishedLayout 是 RSS 惯用的 RFC-822 风格日期格式。
// 只认这一种格式：解析失败就静默退回无日期前缀的文件名（行为兼容，不算错误）。
const publishedLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

var (
	invalidRE = regexp.MustCompile(`[<>:"/\\|?*]`)
	spaceRE   = regexp.MustCompile(`\s+`)
	dashRE    = regexp.MustCompile(`-+`)
)

// Sanitize 把任意字符串映射为文件系统安全的字符串。
//
// 规则（固定）：
// - < > : " / \ | ? * 逐个替换为 _
// - 连续空白折叠为单个空格，并去掉首尾空白
// - 连续 - 折叠为单个 -
//
// 纯函数、不失败，且幂等：Sanitize(Sanitize(x)) == Sanitize(x)。
func Sanitize(raw string) string {
	s := invalidRE.ReplaceAllString(raw, "_")
	s = strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
	s = dashRE.ReplaceAllString(s, "-")
	return s
}

// Ext 从音频 URL 的 path 部分取扩展名（最后一个 . 之后的子串，小写）。
// path 里没有 . 时返回 DefaultExt。
func Ext(audioURL string) string {
	u, err := url.Parse(audioURL)
	if err != nil {
		return DefaultExt
	}
	i := strings.LastIndex(u.Path, ".")
	if i < 0 {
		return DefaultExt
	}
	return strings.ToLower(u.Path[i+1:])
}

// FileName 合成目标文件名：{YYYY-MM-DD}_{title}.{ext} 或 {title}.{ext}。
//
// published 非空且严格匹配 publishedLayout 时才加日期前缀；
// 其余情况（为空/格式不符）一律退回无前缀，不上报错误。
//
// 注意：不做唯一性后缀。两个条目合成出相同文件名时，后者会被执行阶段
// 当作“已下载”跳过——这是已知且保留的行为（见 DESIGN.md）。
func FileName(title, published, audioURL string) string {
	clean := Sanitize(title)
	ext := Ext(audioURL)

	if published != "" {
		if t, err := time.Parse(publishedLayout, published); err == nil {
			return t.Format("2006-01-02") + "_" + clean + "." + ext
		}
	}
	return clean + "." + ext
}


