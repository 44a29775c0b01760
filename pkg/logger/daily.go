package logger

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"

	"dstclan/config"
)

// dailyFile a size-rotated lumberjack file that also moves to a new name every day.
// Writes and the daily switch are serialized by mu.
type dailyFile struct {
	mu   sync.Mutex
	dir  string
	out  *lumberjack.Logger
	stop chan struct{}
	once sync.Once
}

func newDailyFile(dir string, fileCfg config.LogFileConfig, now time.Time) *dailyFile {
	return &dailyFile{
		dir: dir,
		out: &lumberjack.Logger{
			Filename:   dailyFileName(dir, now),
			MaxSize:    fileCfg.MaxSize,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAge,
			Compress:   fileCfg.Compress,
			LocalTime:  true,
		},
		stop: make(chan struct{}),
	}
}

func dailyFileName(dir string, t time.Time) string {
	return filepath.Join(dir, t.Format("2006-01-02")+".log")
}

func (f *dailyFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Write(p)
}

func (f *dailyFile) Sync() error { return nil }

// rollover closes the current file; the next write opens the file for day t
func (f *dailyFile) rollover(t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := f.out.Close()
	f.out.Filename = dailyFileName(f.dir, t)
	return err
}

// run switches files at every local midnight until Close
func (f *dailyFile) run() {
	for {
		now := time.Now()
		next := now.Add(24 * time.Hour)
		next = time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-f.stop:
			timer.Stop()
			return
		case t := <-timer.C:
			_ = f.rollover(t)
		}
	}
}

func (f *dailyFile) Close() error {
	f.once.Do(func() { close(f.stop) })
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Close()
}
