package domain

// Resource 是条目上挂载的一个资源引用（URL + 声明的 MIME 类型）。
//
// Type 可能为空：feed 里大量 link 不带 type 声明。选择音频资源时
// 只认显式的 audio/* 声明，绝不去猜 URL 后缀。
type Resource struct {
	URL  string
	Type string
}

// Entry 是解析后的单条 feed 条目（episode）的只读快照。
//
// 约束：
// - 字段全部来自 feed 原文，适配层不做任何规范化/排序
// - 三组资源保持 feed 原生顺序（提取优先级依赖该顺序）
// - Published 保留 feed 原始字符串；日期解析推迟到文件名合成阶段
type Entry struct {
	Title     string
	Published string

	Enclosures   []Resource
	MediaContent []Resource
	Links        []Resource
}


