package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log entries bất đồng bộ qua channel buffer.
// Khi buffer đầy, entry bị drop thay vì block caller.
type AsyncHook struct {
	writers   []io.Writer
	entryChan chan *logrus.Entry
	wg        sync.WaitGroup
	closeOnce sync.Once
	done      chan struct{}
}

// NewAsyncHookWithWriters tạo AsyncHook ghi ra danh sách writers với buffer size cho trước.
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	hook := &AsyncHook{
		writers:   writers,
		entryChan: make(chan *logrus.Entry, bufferSize),
		done:      make(chan struct{}),
	}
	hook.wg.Add(1)
	go hook.process()
	return hook
}

// Levels trả về tất cả levels mà hook xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đẩy entry vào channel. Drop entry nếu buffer đầy để không block caller.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	// Copy entry vì logrus tái sử dụng entry sau khi Fire trả về
	copied := entry.Dup()
	copied.Level = entry.Level
	copied.Message = entry.Message

	select {
	case h.entryChan <- copied:
	case <-h.done:
	default:
		// Buffer đầy, drop entry
	}
	return nil
}

// process chạy trong goroutine riêng, đọc entries từ channel và ghi ra writers
func (h *AsyncHook) process() {
	defer h.wg.Done()
	for {
		select {
		case entry := <-h.entryChan:
			h.write(entry)
		case <-h.done:
			// Flush các entries còn lại trước khi dừng
			for {
				select {
				case entry := <-h.entryChan:
					h.write(entry)
				default:
					return
				}
			}
		}
	}
}

// write serialize entry và ghi ra tất cả writers
func (h *AsyncHook) write(entry *logrus.Entry) {
	line, err := entry.Bytes()
	if err != nil {
		return
	}
	for _, w := range h.writers {
		_, _ = w.Write(line)
	}
}

// Close dừng hook và chờ flush hết entries trong buffer
func (h *AsyncHook) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
	h.wg.Wait()
}
