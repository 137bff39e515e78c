// Package pkg provides the core libraries for Cardfan card fan layout and
// animation.
//
// # Overview
//
// Cardfan arranges an ordered collection of items (typically playing cards)
// along a line or an arc, and keeps their on-screen handles moving toward the
// computed arrangement as items are added, removed, reordered and dragged.
// The pkg directory is organized as:
//
//  1. [fan] - The fan itself: lifecycle state machine, animation choreography,
//     gesture classification, events and the redraw queue
//  2. [fan/layout] - Pure layout math (linear and arc modes)
//  3. [fan/pool] - Free list of reusable visual handles
//  4. [card] - Card data and the display overlay bound to handles
//  5. [host] - A single-threaded reference host: virtual clock, sprites, stage
//  6. [cache], [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The data flow through one redraw:
//
//	Collection change (Insert, Pop, Move, Replace, SetConfig, SetSize)
//	         ↓
//	    redraw request (coalesced on the scheduler)
//	         ↓
//	    [fan/layout] package (target transform per item)
//	         ↓
//	    [fan] package (classify new/moving/settled, acquire or recycle handles)
//	         ↓
//	    Tweener collaborator (position, rotation, opacity, size tracks)
//	         ↓
//	    added / removed events
//
// The fan never touches a clock or a renderer directly. A host supplies a
// [fan.Env] with a scheduler, a tweener, a container and a hit tester;
// [host.Rig] wires all four to an in-memory stage for tests and headless
// tools.
//
// # Quick Start
//
// Lay out five cards and let them settle:
//
//	import (
//	    "time"
//	    "github.com/matzehuels/cardfan/pkg/card"
//	    "github.com/matzehuels/cardfan/pkg/host"
//	)
//
//	rig, _ := host.NewRig(960, 540)
//	for _, c := range card.Deck("AS", "KS", "QS", "JS", "10S") {
//	    _ = rig.Fan.Insert(rig.Fan.Len(), c)
//	}
//	rig.Settle(10 * time.Second)
//
// # Main Packages
//
//   - [fan]: Fan, Config, Event, Contact and the collaborator interfaces
//   - [fan/layout]: Calculate, Config, Transform, Result
//   - [fan/pool]: Pool, KeepPolicy, DefaultKeepPolicy
//   - [card]: Card, Face, Field
//   - [host]: Clock, Sprite, Stage, Rig
//   - [cache]: Cache, MemoryCache, FileCache, NullCache
//   - [errors]: Error, Code, validation helpers
//   - [observability]: FanHooks, PoolHooks, GestureHooks
//   - [buildinfo]: version information set via ldflags
package pkg
