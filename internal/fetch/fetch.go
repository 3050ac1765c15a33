package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// chunkSize 是读取响应体的固定块大小：约束内存占用，也决定进度回调的粒度。
const chunkSize = 8192

// HTTPStatusError 表示资源端返回了非 2xx 的 HTTP 状态码。
// 上层据此生成更可操作的 error_msg，并把该 episode 记为 fetch_failed。
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// ProgressFunc 在每个块写盘后回调一次。
// total 来自 Content-Length；只有 total > 0 时才会回调（没有就无从算百分比）。
type ProgressFunc func(written, total int64)

// File 把 url 的内容流式写入 dst。
//
// 约束：
// - 按 chunkSize 逐块读、按到达顺序逐块写，不重排、不攒批
// - 任何传输层/HTTP 状态错误都以 error 返回，由调用方记账后继续下一条；
//   本函数绝不 panic、绝不终止进程
// - 失败时已写入的半截文件原样留在磁盘上（不清理、不回滚）
func File(ctx context.Context, c *http.Client, url, dst string, onProgress ProgressFunc) error {
	if c == nil {
		return errors.New("audio client 为空")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	total := resp.ContentLength
	var written int64

	buf := make([]byte, chunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
			written += int64(n)
			if total > 0 && onProgress != nil {
				onProgress(written, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	return out.Close()
}


