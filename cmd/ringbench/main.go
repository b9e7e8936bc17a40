/*
 * Copyright 2025 The ringbuffer Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// ringbench measures producer/observer throughput of a shared-memory
// ring under contention. Observers run either as goroutines or as child
// processes of the same binary; a pipe barrier lines everyone up before
// the producer starts pushing.
//
// Example:
//
//	ringbench -capacity 4096 -items 1000000 -observers 4 -procs
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexeiz/ringbuffer"
	"github.com/alexeiz/ringbuffer/internal/mdata"
	"github.com/alexeiz/ringbuffer/internal/scope"
)

var (
	ringName  = flag.String("name", "", "shared memory ring name (default: random)")
	capacity  = flag.Uint64("capacity", 4096, "ring capacity in items (power of two)")
	items     = flag.Uint64("items", 1_000_000, "number of items to publish")
	observers = flag.Int("observers", 2, "number of observers")
	procs     = flag.Bool("procs", false, "run observers as child processes instead of goroutines")
	fixup     = flag.Uint("fixup", ringbuffer.DefaultUnderflowFixup, "observer underflow fixup, in items")

	observerMode = flag.Bool("observer", false, "run as an observer child (internal)")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("ringbench: ")
	flag.Parse()

	if *observerMode {
		if err := childMain(); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := parentMain(); err != nil {
		log.Fatal(err)
	}
}

// report is what one observer measured over a full run.
type report struct {
	seen    uint64 // items actually read
	gaps    uint64 // items lost to laps
	reorder uint64 // sequence regressions; must stay 0
	elapsed time.Duration
}

func (r report) String() string {
	return fmt.Sprintf("seen=%d gaps=%d reorder=%d elapsed=%s", r.seen, r.gaps, r.reorder, r.elapsed)
}

func parentMain() error {
	name := *ringName
	if name == "" {
		name = "ringbench-" + uuid.NewString()[:8]
	}
	lastSeq := *items - 1

	prod, err := ringbuffer.New[mdata.Tick](name, *capacity, ringbuffer.WithRemoveOnClose())
	if err != nil {
		return err
	}
	defer prod.Close()

	ready, err := newBarrier()
	if err != nil {
		return err
	}
	defer ready.Close()
	start, err := newBarrier()
	if err != nil {
		return err
	}
	defer start.Close()

	var wg sync.WaitGroup
	reports := make([]report, *observers)
	errs := make([]error, *observers)

	if *procs {
		for i := 0; i < *observers; i++ {
			cmd := exec.Command(os.Args[0],
				"-observer",
				"-name", name,
				"-items", fmt.Sprint(*items),
				"-fixup", fmt.Sprint(*fixup))
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			// fd 3: ready write end, fd 4: start read end.
			cmd.ExtraFiles = []*os.File{ready.w, start.r}
			if err := cmd.Start(); err != nil {
				return fmt.Errorf("spawn observer: %w", err)
			}
			wg.Add(1)
			go func(i int, cmd *exec.Cmd) {
				defer wg.Done()
				errs[i] = cmd.Wait()
			}(i, cmd)
		}
	} else {
		for i := 0; i < *observers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				reports[i], errs[i] = runObserver(name, uint32(*fixup), lastSeq, ready, start)
			}(i)
		}
	}

	// Everyone attached?
	if err := ready.Wait(*observers); err != nil {
		return err
	}
	// Go.
	if err := start.Signal(*observers); err != nil {
		return err
	}

	began := time.Now()
	for seq := uint64(0); seq < *items; seq++ {
		prod.PushWith(func(t *mdata.Tick) {
			t.Seq = seq
			t.Price = 100 + float64(seq%500)/100
			t.Qty = uint32(seq%1000 + 1)
			t.Time = time.Now().UnixNano()
			t.SetSymbol("BENCH")
		})
	}
	pushed := time.Since(began)

	wg.Wait()

	log.Printf("pushed %d items in %s (%.0f items/s, %s/item)",
		*items, pushed.Round(time.Millisecond),
		float64(*items)/pushed.Seconds(), pushed/time.Duration(*items))
	for i := range errs {
		if errs[i] != nil {
			return fmt.Errorf("observer %d: %w", i, errs[i])
		}
		if !*procs {
			log.Printf("observer %d: %s", i, reports[i])
		}
	}
	return nil
}

// childMain runs one observer in a spawned process. The ready and start
// pipe ends arrive as fds 3 and 4.
func childMain() error {
	ready := barrierFromFiles(nil, os.NewFile(3, "ready"))
	start := barrierFromFiles(os.NewFile(4, "start"), nil)
	defer ready.Close()
	defer start.Close()

	// Region removal belongs to the parent; the child only detaches.
	rep, err := runObserver(*ringName, uint32(*fixup), *items-1, ready, start)
	if err != nil {
		return err
	}
	log.Printf("observer pid %d: %s", os.Getpid(), rep)
	return nil
}

// runObserver attaches to the ring, reports ready, waits for the start
// broadcast and then reads until the final sequence number shows up.
// Items the producer overwrote before this observer reached them are
// gaps; sequence numbers must otherwise be strictly increasing.
func runObserver(name string, fix uint32, lastSeq uint64, ready, start *barrier) (report, error) {
	obs, err := ringbuffer.Attach[mdata.Tick](name, ringbuffer.WithUnderflowFixup(fix))
	if err != nil {
		return report{}, err
	}
	closeObs := scope.Exit(func() { obs.Close() })
	defer closeObs.Now()

	if err := ready.Signal(1); err != nil {
		return report{}, err
	}
	if err := start.Wait(1); err != nil {
		return report{}, err
	}

	var rep report
	began := time.Now()
	prev := int64(-1)
	for {
		tick := obs.Get()
		rep.seen++
		if int64(tick.Seq) <= prev {
			rep.reorder++
		}
		prev = int64(tick.Seq)
		if tick.Seq >= lastSeq {
			break
		}
		obs.Advance(1)
	}
	rep.elapsed = time.Since(began)
	rep.gaps = obs.Gaps()
	return rep, nil
}
