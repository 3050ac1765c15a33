package main

import (
	"testing"
)

func TestParseArgs_Basic(t *testing.T) {
	ra, err := parseArgs([]string{"https://feeds.test/pod.xml"})
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if ra.FeedURL != "https://feeds.test/pod.xml" || ra.OutputSet || ra.EpisodesSet {
		t.Fatalf("解析结果不符：%+v", ra)
	}
}

func TestParseArgs_FlagsAllForms(t *testing.T) {
	cases := [][]string{
		{"https://f.test/x", "--output", "my_podcasts", "--episodes", "5"},
		{"https://f.test/x", "-o", "my_podcasts", "-e", "5"},
		{"https://f.test/x", "--output=my_podcasts", "--episodes=5"},
		{"--output", "my_podcasts", "-e", "5", "https://f.test/x"}, // 位置参数顺序无关
	}
	for _, args := range cases {
		ra, err := parseArgs(args)
		if err != nil {
			t.Fatalf("args=%v 不期望错误：%v", args, err)
		}
		if ra.FeedURL != "https://f.test/x" || ra.Output != "my_podcasts" || !ra.OutputSet ||
			ra.Episodes != 5 || !ra.EpisodesSet {
			t.Fatalf("args=%v 解析结果不符：%+v", args, ra)
		}
	}
}

func TestParseArgs_Errors(t *testing.T) {
	cases := [][]string{
		{},                              // 缺少 feed URL
		{"--output"},                    // 缺少值
		{"-e", "abc", "https://f.t/x"},  // episodes 非整数
		{"--bad-flag", "https://f.t/x"}, // 未知参数
		{"https://a", "https://b"},      // 重复的位置参数
	}
	for _, args := range cases {
		if _, err := parseArgs(args); err == nil {
			t.Fatalf("args=%v 应报错", args)
		}
	}
}

func TestParseArgs_HelpNotConsumedHere(t *testing.T) {
	// help 在 realMain 里先于 parseArgs 处理；parseArgs 自身把 -h 当未知参数。
	if _, err := parseArgs([]string{"-h"}); err == nil {
		t.Fatalf("parseArgs 不负责 help")
	}
}


