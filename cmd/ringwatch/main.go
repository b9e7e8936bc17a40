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

// ringwatch attaches an observer to a live tick ring and prints records
// as they arrive. With -follow it blocks for new items; otherwise it
// drains what is currently live and exits.
//
// Example:
//
//	ringwatch -name mdfeed -follow
package main

import (
	"flag"
	"log"
	"os"

	"github.com/alexeiz/ringbuffer"
	"github.com/alexeiz/ringbuffer/internal/mdata"
)

var (
	ringName = flag.String("name", "", "shared memory ring name (required)")
	count    = flag.Int("n", 0, "stop after this many records (0 = unlimited)")
	follow   = flag.Bool("follow", false, "block waiting for new records instead of exiting when drained")
	fixup    = flag.Uint("fixup", ringbuffer.DefaultUnderflowFixup, "observer underflow fixup, in items")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("ringwatch: ")
	flag.Parse()

	if *ringName == "" {
		flag.Usage()
		os.Exit(2)
	}

	obs, err := ringbuffer.Attach[mdata.Tick](*ringName, ringbuffer.WithUnderflowFixup(uint32(*fixup)))
	if err != nil {
		log.Fatal(err)
	}
	defer obs.Close()

	printed := 0
	emit := func(t mdata.Tick) bool {
		printRecord(os.Stdout, t)
		printed++
		return *count == 0 || printed < *count
	}

	if *follow {
		for {
			tick := obs.Get()
			obs.Advance(1)
			if !emit(tick) {
				break
			}
		}
	} else {
		for tick := range obs.All() {
			if !emit(tick) {
				break
			}
		}
	}

	if gaps := obs.Gaps(); gaps > 0 {
		log.Printf("%d records lost to overwrite", gaps)
	}
}
