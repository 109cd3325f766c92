//                           _       _
// __      _____  __ ___   ___  __ _| |_ ___
// \ \ /\ / / _ \/ _` \ \ / / |/ _` | __/ _ \
//  \ V  V /  __/ (_| |\ V /| | (_| | ||  __/
//   \_/\_/ \___|\__,_| \_/ |_|\__,_|\__\___|
//
//  Copyright © 2016 - 2024 Weaviate B.V. All rights reserved.
//
//  CONTACT: hello@weaviate.io
//

package lineage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func nullLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

type fakeBlobStore struct {
	sync.Mutex
	objects map[string][]byte
	getErr  error
	putErr  error
	puts    int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	f.Lock()
	defer f.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	content, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, fmt.Errorf("object %s/%s not found", bucket, key)
	}
	return content, nil
}

func (f *fakeBlobStore) Put(ctx context.Context, bucket, key string, content []byte) error {
	f.Lock()
	defer f.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.objects[bucket+"/"+key] = content
	return nil
}

func (f *fakeBlobStore) Location(bucket, key string) string {
	return "mem://" + bucket + "/" + key
}

type edge struct {
	from, to string
}

// fakeGraph behaves like a graph database answering match-or-insert queries.
type fakeGraph struct {
	sync.Mutex
	vertices map[string]int
	edges    map[edge]int

	dropErr   error
	countErr  error
	failOn    map[string]error
	inFlight  int
	peak      int
	drops     int
	onUpsert  func()
	edgeCalls int
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		vertices: map[string]int{},
		edges:    map[edge]int{},
		failOn:   map[string]error{},
	}
}

func (g *fakeGraph) DropAll(ctx context.Context) error {
	g.Lock()
	defer g.Unlock()
	if g.dropErr != nil {
		return g.dropErr
	}
	g.drops++
	g.vertices = map[string]int{}
	g.edges = map[edge]int{}
	return nil
}

func (g *fakeGraph) CountVertices(ctx context.Context) (int64, error) {
	g.Lock()
	defer g.Unlock()
	if g.countErr != nil {
		return 0, g.countErr
	}
	return int64(len(g.vertices)), nil
}

func (g *fakeGraph) enter() {
	g.Lock()
	g.inFlight++
	if g.inFlight > g.peak {
		g.peak = g.inFlight
	}
	hook := g.onUpsert
	g.Unlock()
	if hook != nil {
		hook()
	}
}

func (g *fakeGraph) leave() {
	g.Lock()
	g.inFlight--
	g.Unlock()
}

func (g *fakeGraph) UpsertVertex(ctx context.Context, name string) error {
	g.enter()
	defer g.leave()
	if err := ctx.Err(); err != nil {
		return err
	}

	g.Lock()
	defer g.Unlock()
	if err, ok := g.failOn[name]; ok {
		return err
	}
	if _, ok := g.vertices[name]; !ok {
		g.vertices[name] = len(g.vertices) + 1
	}
	return nil
}

func (g *fakeGraph) UpsertEdge(ctx context.Context, parent, child string) error {
	g.enter()
	defer g.leave()
	if err := ctx.Err(); err != nil {
		return err
	}

	g.Lock()
	defer g.Unlock()
	g.edgeCalls++
	if err, ok := g.failOn[parent+"->"+child]; ok {
		return err
	}
	if _, ok := g.vertices[parent]; !ok {
		return fmt.Errorf("edge source %q missing", parent)
	}
	if _, ok := g.vertices[child]; !ok {
		return fmt.Errorf("edge target %q missing", child)
	}
	if _, ok := g.edges[edge{parent, child}]; !ok {
		g.edges[edge{parent, child}] = len(g.edges) + 1
	}
	return nil
}

func (g *fakeGraph) vertexNames() []string {
	g.Lock()
	defer g.Unlock()
	names := make([]string, 0, len(g.vertices))
	for n := range g.vertices {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (g *fakeGraph) edgeList() []string {
	g.Lock()
	defer g.Unlock()
	out := make([]string, 0, len(g.edges))
	for e := range g.edges {
		out = append(out, e.from+"->"+e.to)
	}
	sort.Strings(out)
	return out
}

type countingObserver struct {
	sync.Mutex
	ok, failed int
}

func (o *countingObserver) ObserveUnit(err error) {
	o.Lock()
	defer o.Unlock()
	if err != nil {
		o.failed++
		return
	}
	o.ok++
}
