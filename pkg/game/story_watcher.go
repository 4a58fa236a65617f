package game

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gonewx/scrollstory/pkg/config"
)

// StoryWatcher 监视故事目录，文件改动时通知重新加载
//
// 事件在后台 goroutine 中接收，通过带缓冲的 Changes 通道传给游戏循环。
// 游戏循环每帧非阻塞地读取通道，因此重载总是在主线程执行。
type StoryWatcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewStoryWatcher 开始监视目录
//
// 参数：
//   - dir: 故事目录（磁盘路径）
//
// 返回：
//   - *StoryWatcher: 已启动的监视器，使用完后需调用 Close
//   - error: 目录无法监视时返回错误
func NewStoryWatcher(dir string) (*StoryWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	sw := &StoryWatcher{
		watcher: watcher,
		changes: make(chan string, 8),
		done:    make(chan struct{}),
	}
	sw.wg.Add(1)
	go sw.run()

	log.Printf("[StoryWatcher] Watching %s", dir)
	return sw, nil
}

func (sw *StoryWatcher) run() {
	defer sw.wg.Done()
	for {
		select {
		case <-sw.done:
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if _, supported := config.FormatFromPath(event.Name); !supported {
				continue
			}
			select {
			case sw.changes <- filepath.Clean(event.Name):
			default:
				// 游戏循环来不及读取时丢弃，下一帧会合并处理
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[StoryWatcher] Warning: %v", err)
		}
	}
}

// Changes 返回改动文件路径的通道
func (sw *StoryWatcher) Changes() <-chan string {
	return sw.changes
}

// Poll 非阻塞地取出全部待处理的改动，重复路径只返回一次
func (sw *StoryWatcher) Poll() []string {
	var paths []string
	seen := make(map[string]bool)
	for {
		select {
		case p := <-sw.changes:
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		default:
			return paths
		}
	}
}

// Close 停止监视，可重复调用
func (sw *StoryWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.done)
		err = sw.watcher.Close()
		sw.wg.Wait()
	})
	return err
}
