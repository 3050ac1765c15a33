package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/John-Robertt/podfetch/internal/domain"
)

func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("读取 cwd 失败：%v", err)
	}
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func TestCLI_NoTTY_StdoutOnlyRunReportJSON(t *testing.T) {
	// 这个测试锁定对外契约：stdout 非 TTY 时只能输出一个 RunReport JSON
	// （进度/配置必须走 stderr 或直接禁用）。
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.xml":
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprintf(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>T</title>`+
				`<item><title>Ep 1</title><enclosure url="%s/audio/ep1.mp3" type="audio/mpeg"/></item>`+
				`</channel></rss>`, srv1URL(r))
		case "/audio/ep1.mp3":
			_, _ = w.Write([]byte("FAKE"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	outDir := t.TempDir()

	cmd := exec.Command("go", "run", "./cmd/podfetch", srv.URL+"/feed.xml", "-o", outDir, "-e", "3")
	cmd.Dir = repoRoot(t)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("命令执行失败：%v\nstderr=%s\nstdout=%s", err, stderr.String(), stdout.String())
	}

	// stdout 必须是单个 JSON。
	var rr domain.RunReport
	if err := json.Unmarshal(stdout.Bytes(), &rr); err != nil {
		t.Fatalf("stdout 不是合法的 RunReport JSON：%v\nstdout=%q", err, stdout.String())
	}
	if rr.Summary.Selected != 1 || rr.Summary.Succeeded != 1 {
		t.Fatalf("report 不符：%+v", rr.Summary)
	}
	if strings.Contains(stdout.String(), "配置（生效）") || strings.Contains(stdout.String(), "进度:") {
		t.Fatalf("stdout 不应包含进度/配置输出：%q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "完成：succeeded=") {
		t.Fatalf("stderr 缺少完成摘要：%q", stderr.String())
	}

	if _, err := os.Stat(filepath.Join(outDir, "Ep 1.mp3")); err != nil {
		t.Fatalf("产物缺失：%v", err)
	}
}

// srv1URL 从请求里还原服务自身的 base URL（feed 里的音频地址要指回同一个测试服务）。
func srv1URL(r *http.Request) string {
	return "http://" + r.Host
}

func TestCLI_BadSchemeExitCode1(t *testing.T) {
	cmd := exec.Command("go", "run", "./cmd/podfetch", "ftp://feeds.test/pod.xml")
	cmd.Dir = repoRoot(t)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	ee, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("期望非零退出：%v", err)
	}
	if ee.ExitCode() != 1 {
		t.Fatalf("scheme 校验失败应以 1 退出，实际 %d（stderr=%s）", ee.ExitCode(), stderr.String())
	}
	if !strings.Contains(stderr.String(), "http://") {
		t.Fatalf("错误信息应提示 scheme 要求：%q", stderr.String())
	}
}

func TestCLI_FeedUnreachableStillExitsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	cmd := exec.Command("go", "run", "./cmd/podfetch", srv.URL+"/feed.xml", "-o", t.TempDir())
	cmd.Dir = repoRoot(t)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	// feed 不可达属于“可恢复的全局错误”：干净退出 0。
	if err := cmd.Run(); err != nil {
		t.Fatalf("feed 失败不应影响退出码：%v", err)
	}

	var rr domain.RunReport
	if err := json.Unmarshal(stdout.Bytes(), &rr); err != nil {
		t.Fatalf("stdout 不是合法 JSON：%v", err)
	}
	if rr.FeedError == "" || rr.Summary.Selected != 0 {
		t.Fatalf("report 不符：%+v", rr)
	}
}


