// Package launcher implements the one-command startup flow: print a status
// banner, check the input files, start the web application, open a browser,
// and wait for a final keypress so a double-clicked terminal window does not
// vanish before the user reads the output.
package launcher

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// DefaultURL is where the web application is reachable once started.
const DefaultURL = "http://localhost:8501"

// Launcher starts the web application and reports progress on Out. All the
// fields are injectable so the flow can be tested without a real server,
// browser or terminal.
type Launcher struct {
	Out io.Writer
	In  io.Reader

	// Files must all exist before the application is started.
	Files []string

	// Start runs the web application and blocks until it stops. An error
	// means the application could not be started or died early.
	Start func() error

	// Open opens the browser on the given URL, best effort. Nil disables
	// the automatic browser.
	Open func(url string)

	URL   string
	Delay time.Duration // pause before opening the browser
}

// New returns a Launcher wired to the terminal and the system browser.
func New(start func() error) *Launcher {
	return &Launcher{
		Out:   os.Stdout,
		In:    os.Stdin,
		Start: start,
		Open:  OpenBrowser,
		URL:   DefaultURL,
		Delay: 3 * time.Second,
	}
}

// Run drives the whole flow. It never fails: every problem is reported on
// Out and the final keypress wait is always reached.
func (l *Launcher) Run() {
	fmt.Fprintln(l.Out, "🚀 啟動投資組合分析系統...")
	fmt.Fprintln(l.Out, strings.Repeat("=", 50))

	if l.checkFiles() {
		fmt.Fprintln(l.Out, "✅ 檔案檢查完成")
		fmt.Fprintln(l.Out, "📊 啟動網頁服務...")
		fmt.Fprintf(l.Out, "🌐 瀏覽器將自動打開 %s\n", l.URL)
		fmt.Fprintln(l.Out, "⏹️  按 Ctrl+C 停止服務")
		fmt.Fprintln(l.Out, strings.Repeat("=", 50))

		if l.Open != nil {
			// give the server a moment to come up first
			go func() {
				time.Sleep(l.Delay)
				l.Open(l.URL)
			}()
		}

		if err := l.Start(); err != nil {
			fmt.Fprintf(l.Out, "❌ 啟動失敗: %v\n", err)
			fmt.Fprintln(l.Out, "💡 請嘗試手動執行: psa web")
		} else {
			fmt.Fprintln(l.Out, "🛑 服務已停止")
		}
	}

	fmt.Fprintln(l.Out, "按任意鍵結束...")
	// a closed stdin counts as a keypress, the program must still exit
	var key [1]byte
	l.In.Read(key[:])
}

// checkFiles reports every missing file and whether all of them exist.
func (l *Launcher) checkFiles() bool {
	ok := true
	for _, f := range l.Files {
		if _, err := os.Stat(f); err != nil {
			fmt.Fprintf(l.Out, "❌ 找不到 %s\n", f)
			ok = false
		}
	}
	return ok
}
