package pool_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/cardfan/pkg/fan/pool"
)

func Example() {
	// bytes.Buffer has a Reset method, so released buffers come back empty
	p := pool.New(func() *bytes.Buffer { return new(bytes.Buffer) })

	a := p.Acquire()
	a.WriteString("AS")
	fmt.Println("Kept:", p.Release(a, 3))

	b := p.Acquire()
	fmt.Println("Same handle:", a == b)
	fmt.Println("Length after reuse:", b.Len())
	fmt.Printf("%+v\n", p.Stats())
	// Output:
	// Kept: true
	// Same handle: true
	// Length after reuse: 0
	// {Created:1 Reused:1 Kept:1 Discarded:0}
}

func ExampleWithKeepPolicy() {
	// Never keep more than one handle
	p := pool.New(
		func() *bytes.Buffer { return new(bytes.Buffer) },
		pool.WithKeepPolicy[*bytes.Buffer](func(poolSize, _ int) bool { return poolSize < 1 }),
	)
	a, b := p.Acquire(), p.Acquire()
	fmt.Println(p.Release(a, 0), p.Release(b, 0), p.Len())
	// Output:
	// true false 1
}
