package cli

import (
	"context"
	"time"

	"go.uber.org/zap"

	"habittracker/internal/habit"
	"habittracker/internal/service"
	"habittracker/pkg/config"
	"habittracker/pkg/kv"
	"habittracker/pkg/logger"
	"habittracker/pkg/mq"
)

const closeTimeout = 30 * time.Second

// app 一次命令执行期间的依赖
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend kv.Backend
	store   *habit.Store
	closers []func()
}

// openApp 加载配置、打开存储并创建 store，不做 Load
func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.env, opts.configDir)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	backend, closeBackend, err := kv.Open(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  log,
		backend: backend,
		closers: []func(){closeBackend},
	}
	a.store = habit.NewStore(backend, log).WithKey(cfg.Storage.Key)

	if cfg.MQ.URL != "" {
		pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			// 事件是尽力而为的，MQ 不可用不影响记录习惯
			log.Warn("Failed to init MQ publisher, habit events disabled", zap.Error(err))
		} else {
			a.store.WithNotifier(service.NewEventPublisher(pub, log))
			a.closers = append(a.closers, pub.Close)
		}
	}

	return a, nil
}

// load 读取快照并等待完成
func (a *app) load(ctx context.Context) *habit.Store {
	a.store.Load(ctx)
	return a.store
}

// close 等待未完成的保存和事件后释放连接
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := a.store.Flush(ctx); err != nil {
		a.logger.Warn("Pending habit saves did not finish before exit", zap.Error(err))
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}
