package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes the work done to choose one action.
type SearchMetric struct {
	Strategy    string
	Depth       int
	Duration    time.Duration
	Nodes       int // Tree nodes valued, cutoffs included
	Evaluations int // Calls to the evaluation function
	Prunes      int // Children skipped by alpha-beta cutoffs
}

type MoveMetric struct {
	Step  int
	Agent int // Agent index
	SearchMetric
}

type GameMetric struct {
	Seed       uint64
	Outcome    string // "win", "lose" or "timeout"
	Score      float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(strategy string, depth int)
	AddNode()
	AddEvaluation()
	AddPrunes(n int)
	Complete() SearchMetric
}

type collector struct {
	strategy    string
	depth       int
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	prunes      atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, depth int) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.depth = depth
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddPrunes(n int) {
	m.prunes.Add(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:    m.strategy,
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		Prunes:      int(m.prunes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, depth int) {}
func (m *dummyCollector) AddNode()                         {}
func (m *dummyCollector) AddEvaluation()                   {}
func (m *dummyCollector) AddPrunes(n int)                  {}
func (m *dummyCollector) Complete() SearchMetric           { return SearchMetric{} }
