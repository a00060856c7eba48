package sat

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// Builder assembles a SAT instance from a boolean circuit plus plain clauses over the circuit's literals.
// Cardinality constraints are expressed with sorting networks and tseitinized on Build
type Builder struct {
	circuit *logic.C
	clauses [][]z.Lit
}

func NewBuilder() *Builder {
	return &Builder{circuit: logic.NewC()}
}

// Lit allocates a fresh input variable
func (builder *Builder) Lit() z.Lit {
	return builder.circuit.Lit()
}

func (builder *Builder) True() z.Lit {
	return builder.circuit.T
}

func (builder *Builder) False() z.Lit {
	return builder.circuit.F
}

func (builder *Builder) Or(lits ...z.Lit) z.Lit {
	if len(lits) == 0 {
		return builder.circuit.F
	}
	return builder.circuit.Ors(lits...)
}

func (builder *Builder) And(lits ...z.Lit) z.Lit {
	if len(lits) == 0 {
		return builder.circuit.T
	}
	return builder.circuit.Ands(lits...)
}

func (builder *Builder) Implies(antecedent, consequent z.Lit) z.Lit {
	return builder.circuit.Implies(antecedent, consequent)
}

// Cardinality sorts lits once so that several bounds over the same set share the network
func (builder *Builder) Cardinality(lits []z.Lit) *Cardinality {
	cardinality := &Cardinality{builder: builder, size: len(lits)}
	if len(lits) > 0 {
		cardinality.sort = builder.circuit.CardSort(lits)
	}
	return cardinality
}

// Clause adds a disjunction that must hold
func (builder *Builder) Clause(lits ...z.Lit) {
	builder.clauses = append(builder.clauses, lits)
}

// Assert adds a unit clause
func (builder *Builder) Assert(lit z.Lit) {
	builder.Clause(lit)
}

// Dimacs converts a circuit literal into its signed DIMACS form
func (builder *Builder) Dimacs(lit z.Lit) int64 {
	return int64(lit.Dimacs())
}

// Build tseitinizes the circuit and appends the explicit clauses
func (builder *Builder) Build() *SAT {
	collector := &clauseCollector{}
	builder.circuit.ToCnf(collector)
	collector.Add(builder.circuit.T)
	collector.Add(z.LitNull)

	for _, clause := range builder.clauses {
		for _, lit := range clause {
			collector.Add(lit)
		}
		collector.Add(z.LitNull)
	}

	return &SAT{
		Variables: collector.variables,
		Clauses:   collector.clauses,
	}
}

type clauseCollector struct {
	variables uint64
	current   []int64
	clauses   [][]int64
}

// Add implements gini's inter.Adder: literals accumulate until z.LitNull closes the clause
func (collector *clauseCollector) Add(lit z.Lit) {
	if lit == z.LitNull {
		collector.clauses = append(collector.clauses, collector.current)
		collector.current = nil
		return
	}
	if variable := uint64(lit.Var()); variable > collector.variables {
		collector.variables = variable
	}
	collector.current = append(collector.current, int64(lit.Dimacs()))
}

// Cardinality exposes bounds on the number of true literals of a fixed set
type Cardinality struct {
	builder *Builder
	sort    *logic.CardSort
	size    int
}

func (cardinality *Cardinality) Size() int {
	return cardinality.size
}

// AtLeast is true iff at least n literals are true
func (cardinality *Cardinality) AtLeast(n int) z.Lit {
	switch {
	case n <= 0:
		return cardinality.builder.True()
	case n > cardinality.size:
		return cardinality.builder.False()
	}
	return cardinality.sort.Geq(n)
}

// AtMost is true iff at most n literals are true
func (cardinality *Cardinality) AtMost(n int) z.Lit {
	switch {
	case n < 0:
		return cardinality.builder.False()
	case n >= cardinality.size:
		return cardinality.builder.True()
	}
	return cardinality.sort.Leq(n)
}

// Exactly is true iff exactly n literals are true
func (cardinality *Cardinality) Exactly(n int) z.Lit {
	return cardinality.builder.And(cardinality.AtLeast(n), cardinality.AtMost(n))
}
