package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Network routes messages to registered worker inboxes by id.
type Network[TMsg any] struct {
	peers map[int]chan TMsg
	ids   []int
	next  int
	mu    sync.RWMutex
}

func NewNetwork[TMsg any]() *Network[TMsg] {
	return &Network[TMsg]{
		peers: make(map[int]chan TMsg),
	}
}

func (n *Network[TMsg]) Register(id int, ch chan TMsg) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.peers[id]; !ok {
		n.ids = append(n.ids, id)
		sort.Ints(n.ids)
	}
	n.peers[id] = ch
}

// Send delivers msg to peer id, blocking until the inbox accepts it or ctx is done.
func (n *Network[TMsg]) Send(ctx context.Context, id int, msg TMsg) error {
	n.mu.RLock()
	ch, ok := n.peers[id]
	n.mu.RUnlock()
	if !ok {
		return fmt.Errorf("network: unknown peer %d", id)
	}

	select {
	case ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch sends msg to the next peer in round-robin order and returns its id.
func (n *Network[TMsg]) Dispatch(ctx context.Context, msg TMsg) (int, error) {
	n.mu.Lock()
	if len(n.ids) == 0 {
		n.mu.Unlock()
		return 0, fmt.Errorf("network: no peers registered")
	}
	id := n.ids[n.next%len(n.ids)]
	n.next++
	n.mu.Unlock()

	return id, n.Send(ctx, id, msg)
}
