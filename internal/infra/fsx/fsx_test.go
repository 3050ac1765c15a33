package fsx

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir_CreatesAndIdempotent(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "downloads")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	// 已存在的目录不是错误。
	if err := EnsureDir(dir); err != nil {
		t.Fatalf("重复创建不应报错：%v", err)
	}

	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		t.Fatalf("目录未创建：%v", err)
	}
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "downloads")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}

	err := EnsureDir(p)
	if err == nil {
		t.Fatalf("路径被文件占用时必须报错")
	}
	if !IsPathTypeConflict(err) {
		t.Fatalf("期望类型冲突错误，实际：%v", err)
	}
}

func TestFileExists(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "a.mp3")

	if FileExists(p) {
		t.Fatalf("不存在的文件不应判真")
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}
	if !FileExists(p) {
		t.Fatalf("存在的常规文件应判真")
	}
	if FileExists(root) {
		t.Fatalf("目录不应判真")
	}
}


