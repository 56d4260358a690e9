package services

// Service handles one message at a time on behalf of a ServiceManager.
type Service[TMsg any, TRes any] interface {
	OnMessage(msg TMsg, ctx ServiceContext[TRes])
}

type ServiceContext[TRes any] interface {
	// SendResult must only be called from OnMessage. The pending queue is owned
	// by the manager loop and is not synchronized.
	SendResult(res TRes)
}

// ServiceManager drives a Service from its own goroutine. Results are queued
// so a slow reader of Result never blocks the inbox.
type ServiceManager[TMsg any, TRes any] struct {
	service Service[TMsg, TRes]
	inbox   chan TMsg
	outbox  chan TRes
	pending []TRes
	stop    chan struct{}
}

func NewServiceManager[TMsg any, TRes any](service Service[TMsg, TRes], capacity int) *ServiceManager[TMsg, TRes] {
	return &ServiceManager[TMsg, TRes]{
		service: service,
		inbox:   make(chan TMsg, capacity),
		outbox:  make(chan TRes, capacity),
		pending: make([]TRes, 0),
		stop:    make(chan struct{}),
	}
}

func (sm *ServiceManager[TMsg, TRes]) Start() {
	go sm.loop()
}

func (sm *ServiceManager[TMsg, TRes]) Stop() {
	select {
	case <-sm.stop:
		// Already closed
	default:
		close(sm.stop)
	}
}

func (sm *ServiceManager[TMsg, TRes]) Result() <-chan TRes {
	return sm.outbox
}

func (sm *ServiceManager[TMsg, TRes]) Inbox() chan TMsg {
	return sm.inbox
}

func (sm *ServiceManager[TMsg, TRes]) loop() {
	for {
		if len(sm.pending) > 0 {
			next := sm.pending[0]
			select {
			case msg := <-sm.inbox:
				sm.service.OnMessage(msg, sm)
			case sm.outbox <- next:
				sm.pending = sm.pending[1:]
			case <-sm.stop:
				return
			}
			continue
		}

		select {
		case msg := <-sm.inbox:
			sm.service.OnMessage(msg, sm)
		case <-sm.stop:
			return
		}
	}
}

func (sm *ServiceManager[TMsg, TRes]) SendResult(res TRes) {
	sm.pending = append(sm.pending, res)
}
