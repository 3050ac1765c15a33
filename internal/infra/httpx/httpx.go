package httpx

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// connectTimeout / firstByteTimeout 共同实现“30 秒连不上或拿不到首字节就放弃”。
	connectTimeout   = 30 * time.Second
	firstByteTimeout = 30 * time.Second

	// feedTimeout 是 feed 请求的总超时：feed 本体很小，整体限时是安全的。
	feedTimeout = 30 * time.Second
)

// NewFeedClient 构造用于 feed 抓取的 HTTP client。
//
// 规则：
// - proxyURL 非空：必须走代理
// - 总超时 30s（feed 文档不会大到需要更久）
// - 不设自定义 header、不做重试（有意保持最简，连失败直接报）
func NewFeedClient(proxyURL string) (*http.Client, error) {
	base, err := newTransport(proxyURL)
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Transport: base,
		Timeout:   feedTimeout,
	}, nil
}

// NewAudioClient 构造用于音频下载的 HTTP client。
//
// 与 feed client 的关键差异：不设总超时。音频文件可能很大、下载很慢，
// 只约束“连接 + 首字节”各 30s；之后只要还在出字节就继续。
func NewAudioClient(proxyURL string) (*http.Client, error) {
	base, err := newTransport(proxyURL)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: base}, nil
}

func newTransport(proxyURL string) (*http.Transport, error) {
	tr := &http.Transport{
		Proxy: nil,
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: firstByteTimeout,
	}

	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		tr.Proxy = http.ProxyURL(u)
	}
	return tr, nil
}


