// Package notify - временные уведомления об успехе и ошибке.
// Каждое сообщение сбрасывается через Delay после установки.
package notify

import (
	"sync"
	"time"
)

// DefaultDelay - время жизни сообщения по умолчанию
const DefaultDelay = 3 * time.Second

// Kind - вид уведомления
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Timer - отменяемый таймер
type Timer interface {
	Stop() bool
}

// AfterFunc запускает f через d
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Messages - текущее состояние обоих слотов
type Messages struct {
	Success string
	Error   string
}

type slot struct {
	message string
	gen     uint64
	timer   Timer
}

// Channel хранит не более одного сообщения каждого вида.
// Новое сообщение того же вида перезаписывает старое и перезапускает таймер.
type Channel struct {
	delay     time.Duration
	afterFunc AfterFunc

	mu       sync.Mutex
	slots    [2]slot
	onChange func(Kind, string)
}

// Option настраивает Channel
type Option func(*Channel)

// WithAfterFunc подменяет источник таймеров
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Channel) {
		c.afterFunc = fn
	}
}

// WithOnChange регистрирует обработчик изменения слота (в том числе автосброса)
func WithOnChange(fn func(Kind, string)) Option {
	return func(c *Channel) {
		c.onChange = fn
	}
}

// New создаёт канал уведомлений. delay <= 0 заменяется на DefaultDelay.
func New(delay time.Duration, opts ...Option) *Channel {
	if delay <= 0 {
		delay = DefaultDelay
	}
	c := &Channel{
		delay:     delay,
		afterFunc: stdAfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Success показывает сообщение об успехе
func (c *Channel) Success(msg string) {
	c.set(KindSuccess, msg)
}

// Error показывает сообщение об ошибке
func (c *Channel) Error(msg string) {
	c.set(KindError, msg)
}

// Current возвращает активные сообщения
func (c *Channel) Current() Messages {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Messages{
		Success: c.slots[KindSuccess].message,
		Error:   c.slots[KindError].message,
	}
}

// Stop отменяет все таймеры и очищает слоты
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.slots {
		if c.slots[i].timer != nil {
			c.slots[i].timer.Stop()
		}
		c.slots[i] = slot{gen: c.slots[i].gen + 1}
	}
}

func (c *Channel) set(kind Kind, msg string) {
	c.mu.Lock()
	s := &c.slots[kind]
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.message = msg
	s.timer = c.afterFunc(c.delay, func() {
		c.expire(kind, gen)
	})
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(kind, msg)
	}
}

// expire очищает слот, только если с момента запуска таймера сообщение не менялось
func (c *Channel) expire(kind Kind, gen uint64) {
	c.mu.Lock()
	s := &c.slots[kind]
	if s.gen != gen {
		c.mu.Unlock()
		return
	}
	s.message = ""
	s.timer = nil
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(kind, "")
	}
}
