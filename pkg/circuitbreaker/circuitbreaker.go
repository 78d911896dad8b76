package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State 表示熔断器状态
type State int

const (
	StateClosed   State = iota // 关闭：正常放行
	StateOpen                  // 打开：快速失败
	StateHalfOpen              // 半开：放行少量探测请求
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// ErrCircuitBreakerOpen 熔断器打开时返回
var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	// 连续失败多少次后打开
	FailureThreshold int `yaml:"failure_threshold"`
	// 半开状态下连续成功多少次后关闭
	SuccessThreshold int `yaml:"success_threshold"`
	// 打开状态持续多久后进入半开
	Timeout time.Duration `yaml:"timeout"`
	// 半开状态下同时放行的最大请求数
	HalfOpenMaxRequests int `yaml:"half_open_max_requests"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		FailureThreshold:    5,
		SuccessThreshold:    2,
		Timeout:             30 * time.Second,
		HalfOpenMaxRequests: 3,
	}
}

// withDefaults 用默认值补齐未设置的字段
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.SuccessThreshold <= 0 {
		c.SuccessThreshold = d.SuccessThreshold
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.HalfOpenMaxRequests <= 0 {
		c.HalfOpenMaxRequests = d.HalfOpenMaxRequests
	}
	return c
}

// CircuitBreaker 熔断器，保护对外部存储的调用
type CircuitBreaker struct {
	config        Config
	now           func() time.Time
	onStateChange func(from, to State)

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time
	// generation 每次状态切换加一，用来识别切换前放行的调用
	generation uint64
}

// NewCircuitBreaker 创建熔断器，零值字段使用默认配置
func NewCircuitBreaker(config Config) *CircuitBreaker {
	return &CircuitBreaker{
		config: config.withDefaults(),
		now:    time.Now,
	}
}

// OnStateChange 注册状态变化回调（在持锁时调用，回调内不要再调用熔断器）
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) *CircuitBreaker {
	cb.onStateChange = fn
	return cb
}

// Execute 在熔断保护下执行 fn。ctx 被取消导致的错误不计入失败。
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	generation, probe, err := cb.allow()
	if err != nil {
		return err
	}

	err = fn(ctx)

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if generation != cb.generation {
		// 调用期间状态已切换，结果不影响当前状态和半开名额
		return err
	}
	if probe {
		cb.inFlight--
	}
	switch {
	case err == nil:
		cb.onSuccess()
	case errors.Is(err, context.Canceled):
		// 调用方主动取消，不代表后端故障
	default:
		cb.onFailure()
	}
	return err
}

// State 获取当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.advance()
	return cb.state
}

// Reset 重置为关闭状态
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transition(StateClosed)
}

// allow 返回放行时的 generation，以及是否占用了半开名额
func (cb *CircuitBreaker) allow() (generation uint64, probe bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.advance()
	switch cb.state {
	case StateOpen:
		return 0, false, ErrCircuitBreakerOpen
	case StateHalfOpen:
		if cb.inFlight >= cb.config.HalfOpenMaxRequests {
			return 0, false, ErrCircuitBreakerOpen
		}
		cb.inFlight++
		return cb.generation, true, nil
	}
	return cb.generation, false, nil
}

// advance 打开状态超时后进入半开
func (cb *CircuitBreaker) advance() {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.config.Timeout {
		cb.transition(StateHalfOpen)
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transition(StateClosed)
		}
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) onFailure() {
	switch cb.state {
	case StateHalfOpen:
		// 半开状态下失败，立即重新打开
		cb.transition(StateOpen)
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.FailureThreshold {
			cb.transition(StateOpen)
		}
	}
}

func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	cb.state = to
	cb.failures = 0
	cb.successes = 0
	cb.inFlight = 0
	cb.generation++
	if to == StateOpen {
		cb.openedAt = cb.now()
	}
	if from != to && cb.onStateChange != nil {
		cb.onStateChange(from, to)
	}
}
