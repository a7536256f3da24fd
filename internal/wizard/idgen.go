package wizard

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator 產生票種 id
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator 正式環境使用
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// CounterGenerator 單調遞增 id，讓測試可以斷言固定值
type CounterGenerator struct {
	Prefix string
	n      atomic.Int64
}

func NewCounterGenerator(prefix string) *CounterGenerator {
	return &CounterGenerator{Prefix: prefix}
}

func (g *CounterGenerator) NewID() string {
	return fmt.Sprintf("%s%d", g.Prefix, g.n.Add(1))
}
