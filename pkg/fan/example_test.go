package fan_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/cardfan/pkg/card"
	"github.com/matzehuels/cardfan/pkg/fan"
	"github.com/matzehuels/cardfan/pkg/host"
)

func ExampleFan() {
	// A headless 800x600 fan driven by a virtual clock
	r, err := host.NewRig(800, 600)
	if err != nil {
		panic(err)
	}
	added := 0
	r.Fan.On(fan.EventAdded, func(fan.Event) { added++ })

	for i, c := range card.Deck("AS", "KH", "QD") {
		if err := r.Fan.Insert(i, c); err != nil {
			panic(err)
		}
	}
	r.Settle(time.Minute)

	fmt.Println("Added:", added)
	for i, it := range r.Fan.Items() {
		st, _ := r.Fan.State(it.Key())
		x, y := st.Handle.(*host.Sprite).Position()
		fmt.Printf("%d %v %s x=%.0f y=%.0f\n", i, it, st.Status, x, y)
	}
	// Output:
	// Added: 3
	// 0 AS settled x=292 y=210
	// 1 KH settled x=340 y=210
	// 2 QD settled x=388 y=210
}

func ExampleFan_Pop() {
	r, err := host.NewRig(800, 600)
	if err != nil {
		panic(err)
	}
	for i, c := range card.Deck("AS", "KH", "QD") {
		if err := r.Fan.Insert(i, c); err != nil {
			panic(err)
		}
	}
	r.Settle(time.Minute)

	// A recycled pop fades the card out before its sprite returns to the pool
	r.Fan.On(fan.EventRemoved, func(ev fan.Event) {
		fmt.Printf("removed %v recycled=%v\n", ev.Item, ev.Handle == nil)
	})
	item, _, err := r.Fan.Pop(0, true)
	if err != nil {
		panic(err)
	}
	fmt.Println("Popped:", item, "Len:", r.Fan.Len(), "Pooled:", r.Fan.PoolLen())
	r.Settle(time.Minute)
	fmt.Println("Pooled:", r.Fan.PoolLen())
	// Output:
	// Popped: AS Len: 2 Pooled: 0
	// removed AS recycled=true
	// Pooled: 1
}
