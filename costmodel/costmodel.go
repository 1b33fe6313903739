// Package costmodel attaches a per-opcode cycle cost to COMET2 execution,
// as a flat accumulator — not a pipeline simulator. It supplements
// spec.md, which never prices an instruction (see SPEC_FULL.md §3).
package costmodel

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/AumyF/comet2/isa"
)

// Table maps an opcode kind to its cycle cost. An absent entry costs
// DefaultCycles.
type Table struct {
	Costs         map[string]uint64 `yaml:"costs"`
	DefaultCycles uint64            `yaml:"default_cycles"`
}

// Load parses a YAML cycle-cost table from r. DefaultCycles is 1 unless the
// YAML sets it; an empty stream yields a Table with no explicit costs and
// DefaultCycles 1.
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("costmodel: read config: %w", err)
	}

	t := &Table{DefaultCycles: 1}
	if len(data) == 0 {
		return t, nil
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("costmodel: parse config: %w", err)
	}
	return t, nil
}

// CostOf returns the configured cycle cost for kind, falling back to
// DefaultCycles when kind has no explicit entry.
func (t *Table) CostOf(kind isa.Kind) uint64 {
	if t == nil {
		return 1
	}
	if c, ok := t.Costs[kind.String()]; ok {
		return c
	}
	return t.DefaultCycles
}

// Counter accumulates cycle cost across a run. It holds no reference to
// any vm.Machine — the caller feeds it the kind of whatever instruction
// just completed.
type Counter struct {
	table   *Table
	cycles  uint64
	retired uint64
}

// NewCounter returns a Counter priced by table. A nil table prices every
// instruction at 1 cycle.
func NewCounter(table *Table) *Counter {
	return &Counter{table: table}
}

// Add accounts for one retired instruction of the given kind.
func (c *Counter) Add(kind isa.Kind) {
	c.cycles += c.table.CostOf(kind)
	c.retired++
}

// Cycles returns the total accumulated cycle count.
func (c *Counter) Cycles() uint64 { return c.cycles }

// Retired returns the number of instructions accounted for.
func (c *Counter) Retired() uint64 { return c.retired }
