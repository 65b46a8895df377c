// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"math/rand"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/spf13/cobra"

	"github.com/ontograph/ontograph/columnar"
	"github.com/ontograph/ontograph/logging"
	"github.com/ontograph/ontograph/pipeline"
)

var populationSchema = columnar.NewSchema(
	arrow.Field{Name: "agent_id", Type: arrow.PrimitiveTypes.Int64},
	arrow.Field{Name: "energy", Type: arrow.PrimitiveTypes.Float64},
	arrow.Field{Name: "alive", Type: arrow.FixedWidthTypes.Boolean},
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the agent population forward for a fixed number of ticks",
		RunE:  runSimulate,
	}

	cmd.Flags().Int("agents", 1000, "Number of agents in the population")
	cmd.Flags().Int("ticks", 100, "Number of simulation ticks to run")
	cmd.Flags().Float64("decay", 1.0, "Energy lost per tick per agent")
	cmd.Flags().Float64("replenish-chance", 0.1, "Chance per tick an agent regains energy")
	cmd.Flags().Int64("seed", 1, "Random seed driving agent energy decay/replenishment")

	return cmd
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	agents, _ := cmd.Flags().GetInt("agents")
	ticks, _ := cmd.Flags().GetInt("ticks")
	decay, _ := cmd.Flags().GetFloat64("decay")
	replenishChance, _ := cmd.Flags().GetFloat64("replenish-chance")
	seed, _ := cmd.Flags().GetInt64("seed")

	log := logging.New()
	rng := rand.New(rand.NewSource(seed))

	state := newPopulation(agents)
	batch := columnar.NewBatch(state.record(), nil, 0)
	defer batch.Release()

	for tick := 0; tick < ticks; tick++ {
		state.step(rng, decay, replenishChance)

		next := state.record()
		if err := batch.GrowColumns(next, columnar.Resized); err != nil {
			next.Release()
			return fmt.Errorf("simulate: advance batch at tick %d: %w", tick, err)
		}

		alive := pipeline.BoolEquals(true)(pipeline.NewColumn(batch.Column("alive")))
		meanEnergy := pipeline.Mean(pipeline.NewColumn(batch.Column("energy")), alive, 0)

		log.Info("tick complete", "tick", tick, "alive", len(alive), "mean_energy", meanEnergy, "metaversion", batch.Version.String())
	}

	return nil
}

// population holds the agent-based simulation's per-agent state as plain Go slices; record
// rebuilds it into the Arrow layout the columnar batch and output pipeline operate over.
type population struct {
	id     []int64
	energy []float64
	alive  []bool
}

func newPopulation(n int) *population {
	p := &population{
		id:     make([]int64, n),
		energy: make([]float64, n),
		alive:  make([]bool, n),
	}
	for i := range p.id {
		p.id[i] = int64(i)
		p.energy[i] = 100
		p.alive[i] = true
	}
	return p
}

// step advances every live agent one tick: energy decays, an agent whose energy reaches zero
// dies, and a dead agent has a chance to be replenished back into the population.
func (p *population) step(rng *rand.Rand, decay, replenishChance float64) {
	for i := range p.id {
		if p.alive[i] {
			p.energy[i] -= decay
			if p.energy[i] <= 0 {
				p.energy[i] = 0
				p.alive[i] = false
			}
			continue
		}
		if rng.Float64() < replenishChance {
			p.alive[i] = true
			p.energy[i] = 100
		}
	}
}

func (p *population) record() arrow.Record {
	b := columnar.NewBuilder(populationSchema)
	defer b.Release()

	idBuilder := b.Field(0).(*array.Int64Builder)
	energyBuilder := b.Field(1).(*array.Float64Builder)
	aliveBuilder := b.Field(2).(*array.BooleanBuilder)

	idBuilder.AppendValues(p.id, nil)
	energyBuilder.AppendValues(p.energy, nil)
	aliveBuilder.AppendValues(p.alive, nil)

	return b.NewRecord()
}
