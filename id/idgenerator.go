// Package id generates identifiers for events, sessions and trace files.
package id

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator can generate IDs.
type Generator interface {
	// Generate an ID
	Generate() string
}

var (
	generatorMutex        sync.Mutex
	generatorInstantiated bool
	generator             Generator
)

// NewSequentialGenerator returns a generator whose first emitted ID is "1".
// Sequential IDs keep virtual-time runs reproducible.
func NewSequentialGenerator() Generator {
	return &sequentialGenerator{}
}

// NewParallelGenerator returns a generator backed by xid. The IDs are
// globally unique but not deterministic.
func NewParallelGenerator() Generator {
	return parallelGenerator{}
}

// UseParallelGenerator switches the package-level generator to xid. It must
// be called before the first ID is generated.
func UseParallelGenerator() {
	generatorMutex.Lock()
	defer generatorMutex.Unlock()

	if generatorInstantiated {
		panic("cannot change id generator type after using it")
	}

	generator = NewParallelGenerator()
	generatorInstantiated = true
}

// Generate returns an ID from the package-level generator, which is
// sequential unless UseParallelGenerator was called first.
func Generate() string {
	generatorMutex.Lock()
	if !generatorInstantiated {
		generator = NewSequentialGenerator()
		generatorInstantiated = true
	}
	g := generator
	generatorMutex.Unlock()

	return g.Generate()
}

type sequentialGenerator struct {
	nextID uint64
}

func (g *sequentialGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	return strconv.FormatUint(idNumber, 10)
}

type parallelGenerator struct{}

func (parallelGenerator) Generate() string {
	return xid.New().String()
}
