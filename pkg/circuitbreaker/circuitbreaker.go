// Package circuitbreaker 熔断器,用于保护对外部依赖(Redis)的调用
//
// 三种状态:
//   - Closed  正常放行,统计连续失败次数
//   - Open    直接返回ErrOpen,经过OpenTimeout后进入HalfOpen
//   - HalfOpen 放行少量探测请求,成功则关闭,失败则重新打开
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrOpen 熔断器打开,请求未执行
var ErrOpen = errors.New("circuit breaker is open")

// Config 熔断器配置,零值字段使用默认值
type Config struct {
	// FailureThreshold 连续失败多少次后打开,默认5
	FailureThreshold uint32
	// OpenTimeout 打开状态持续时间,默认30s
	OpenTimeout time.Duration
	// HalfOpenRequests 半开状态允许的探测请求数,默认1
	HalfOpenRequests uint32
	// OnStateChange 状态变化回调(记录日志)
	OnStateChange func(name string, from, to State)
}

// Breaker 熔断器,并发安全
type Breaker struct {
	name string
	cfg  Config
	now  func() time.Time

	mu          sync.Mutex
	state       State
	generation  uint64
	failures    uint32
	inFlight    uint32
	openedUntil time.Time
}

// New 创建熔断器
func New(name string, cfg Config) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}
	return &Breaker{name: name, cfg: cfg, now: time.Now}
}

// Execute 执行fn并记录结果;熔断器打开时不执行fn,直接返回ErrOpen
//
//	err := breaker.Execute(func() error {
//	    return client.Set(ctx, key, "1", ttl).Err()
//	})
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}
	err = fn()
	b.after(generation, err == nil)
	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current(b.now())
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current(b.now()) {
	case StateOpen:
		return b.generation, ErrOpen
	case StateHalfOpen:
		if b.inFlight >= b.cfg.HalfOpenRequests {
			return b.generation, ErrOpen
		}
		b.inFlight++
	}
	return b.generation, nil
}

func (b *Breaker) after(generation uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state := b.current(now)
	// 期间状态已切换,结果作废
	if generation != b.generation {
		return
	}

	if success {
		b.failures = 0
		if state == StateHalfOpen {
			b.transition(StateClosed, now)
		}
		return
	}

	b.failures++
	if state == StateHalfOpen || b.failures >= b.cfg.FailureThreshold {
		b.transition(StateOpen, now)
	}
}

// current 打开超时后自动进入半开,调用方需持有锁
func (b *Breaker) current(now time.Time) State {
	if b.state == StateOpen && !now.Before(b.openedUntil) {
		b.transition(StateHalfOpen, now)
	}
	return b.state
}

func (b *Breaker) transition(to State, now time.Time) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.generation++
	b.failures = 0
	b.inFlight = 0
	if to == StateOpen {
		b.openedUntil = now.Add(b.cfg.OpenTimeout)
	}
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(b.name, from, to)
	}
}
