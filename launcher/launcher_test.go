package launcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// run drives a Launcher against buffers and returns everything it printed.
func run(t *testing.T, l *Launcher, keys string) string {
	t.Helper()
	var out strings.Builder
	l.Out = &out
	l.In = strings.NewReader(keys)
	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not terminate")
	}
	return out.String()
}

func TestRunSuccess(t *testing.T) {
	started := false
	l := New(func() error { started = true; return nil })
	l.Open = nil
	out := run(t, l, "x")

	if !started {
		t.Error("the application was never started")
	}
	if strings.Contains(out, "啟動失敗") {
		t.Errorf("failure message printed on success:\n%s", out)
	}
	for _, want := range []string{"🚀 啟動投資組合分析系統", "http://localhost:8501", "🛑 服務已停止", "按任意鍵結束"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestRunStartFailure(t *testing.T) {
	l := New(func() error { return errors.New("listen tcp 127.0.0.1:8501: bind: address already in use") })
	l.Open = nil
	out := run(t, l, "x")

	banner := strings.Index(out, "🚀 啟動投資組合分析系統")
	failure := strings.Index(out, "❌ 啟動失敗")
	hint := strings.Index(out, "💡 請嘗試手動執行")
	prompt := strings.Index(out, "按任意鍵結束")

	if banner < 0 || failure < 0 || hint < 0 || prompt < 0 {
		t.Fatalf("output is missing a required message:\n%s", out)
	}
	// banner, then the failure report, then the final prompt
	if !(banner < failure && failure < hint && hint < prompt) {
		t.Errorf("messages out of order:\n%s", out)
	}
}

func TestRunMissingFile(t *testing.T) {
	started := false
	l := New(func() error { started = true; return nil })
	l.Open = nil
	l.Files = []string{filepath.Join(t.TempDir(), "great_reward.jsonl")}
	out := run(t, l, "x")

	if started {
		t.Error("the application started despite a missing file")
	}
	if !strings.Contains(out, "❌ 找不到") {
		t.Errorf("output is missing the file check report:\n%s", out)
	}
	// the final prompt is reached regardless
	if !strings.Contains(out, "按任意鍵結束") {
		t.Errorf("output is missing the keypress prompt:\n%s", out)
	}
}

func TestRunChecksExistingFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "great_reward.jsonl")
	if err := os.WriteFile(file, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	l := New(func() error { return nil })
	l.Open = nil
	l.Files = []string{file}
	out := run(t, l, "x")

	if !strings.Contains(out, "✅ 檔案檢查完成") {
		t.Errorf("output is missing the file check confirmation:\n%s", out)
	}
}

func TestRunConsumesOneKey(t *testing.T) {
	l := New(func() error { return nil })
	l.Open = nil
	in := strings.NewReader("ab")
	var out strings.Builder
	l.Out = &out
	l.In = in
	l.Run()
	if in.Len() != 1 {
		t.Errorf("remaining input = %d bytes, want 1 (exactly one key consumed)", in.Len())
	}
}

func TestRunTerminatesOnClosedInput(t *testing.T) {
	l := New(func() error { return nil })
	l.Open = nil
	// empty input means stdin is closed, Run must still return
	run(t, l, "")
}

func TestRunOpensBrowser(t *testing.T) {
	var mu sync.Mutex
	opened := ""
	l := New(func() error { return nil })
	l.Delay = time.Millisecond
	l.Open = func(url string) {
		mu.Lock()
		opened = url
		mu.Unlock()
	}
	run(t, l, "x")

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		got := opened
		mu.Unlock()
		if got != "" {
			if got != DefaultURL {
				t.Errorf("opened %q, want %q", got, DefaultURL)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("the browser was never opened")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
