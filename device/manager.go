package device

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-smf/debug"
	"go-smf/midi"
)

// DeviceEvent is emitted when an input connects or disconnects.
type DeviceEvent struct {
	Type  DeviceEventType
	Input Input
	ID    string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// Message is a decoded event tagged with the input it came from.
type Message struct {
	Port  string
	Event midi.Event
	At    time.Time
}

// Manager watches the system input ports, opens the ones that match, and
// merges their events.
type Manager struct {
	inputs   map[string]Input
	mu       sync.RWMutex
	events   chan DeviceEvent
	messages chan Message
	forward  sync.WaitGroup

	pollRate    time.Duration
	scanTimeout time.Duration
	queuePoll   time.Duration
	match       []string
	listen      []ListenerOption

	list func() []string
	open func(name string) (Input, error)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithPorts restricts the manager to ports whose name contains one of
// substrs. With no substrs every port is opened.
func WithPorts(substrs ...string) ManagerOption {
	return func(m *Manager) { m.match = substrs }
}

func WithPollRate(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.pollRate = d
		}
	}
}

// WithQueuePoll sets how often each opened port is checked for bytes.
func WithQueuePoll(d time.Duration) ManagerOption {
	return func(m *Manager) { m.queuePoll = d }
}

// WithListenerOptions applies opts to every opened input.
func WithListenerOptions(opts ...ListenerOption) ManagerOption {
	return func(m *Manager) { m.listen = opts }
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		inputs:      make(map[string]Input),
		events:      make(chan DeviceEvent, 16),
		messages:    make(chan Message, 256),
		pollRate:    time.Second,
		scanTimeout: 3 * time.Second,
		list:        InPortNames,
	}
	m.open = m.openPort
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) openPort(name string) (Input, error) {
	in, err := FindInPort(name)
	if err != nil {
		return nil, err
	}
	p, err := OpenPortInput(in)
	if err != nil {
		return nil, err
	}
	p.SetPollInterval(m.queuePoll)
	return NewStream(name, p, m.listen...), nil
}

// Events returns connect and disconnect notifications. It is closed when
// Run returns.
func (m *Manager) Events() <-chan DeviceEvent {
	return m.events
}

// Messages returns events from every connected input. It is closed when
// Run returns.
func (m *Manager) Messages() <-chan Message {
	return m.messages
}

// Inputs returns the IDs of the connected inputs in order.
func (m *Manager) Inputs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.inputs))
	for id := range m.inputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Run scans for ports until ctx is cancelled (blocking - run in goroutine).
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.pollRate)
	defer ticker.Stop()

	m.scan()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			m.forward.Wait()
			close(m.events)
			close(m.messages)
			return
		case <-ticker.C:
			m.scan()
		}
	}
}

func (m *Manager) wanted(name string) bool {
	if len(m.match) == 0 {
		return true
	}
	for _, s := range m.match {
		if matchName(name, s) {
			return true
		}
	}
	return false
}

func (m *Manager) scan() {
	// port enumeration can hang in some drivers
	ch := make(chan []string, 1)
	go func() { ch <- m.list() }()

	var names []string
	select {
	case names = <-ch:
	case <-time.After(m.scanTimeout):
		debug.Log("device", "port scan timed out")
		return
	}

	seen := make(map[string]bool)
	changes := m.prune()

	for _, name := range names {
		if !m.wanted(name) {
			continue
		}
		seen[name] = true

		m.mu.RLock()
		_, exists := m.inputs[name]
		m.mu.RUnlock()
		if exists {
			continue
		}

		in, err := m.open(name)
		if err != nil {
			debug.Log("device", "open %s: %v", name, err)
			continue
		}
		m.mu.Lock()
		m.inputs[name] = in
		m.mu.Unlock()

		m.forward.Add(1)
		go m.pump(in)
		changes = append(changes, DeviceEvent{Type: DeviceConnected, Input: in, ID: name})
	}

	m.mu.Lock()
	for id, in := range m.inputs {
		if seen[id] {
			continue
		}
		in.Close()
		delete(m.inputs, id)
		changes = append(changes, DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
	m.mu.Unlock()

	for _, ev := range changes {
		debug.Log("device", "%s %s", ev.ID, ev.Type)
		m.events <- ev
	}
}

// prune drops inputs that stopped on their own so the next pass can
// reopen them.
func (m *Manager) prune() []DeviceEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var changes []DeviceEvent
	for id, in := range m.inputs {
		select {
		case <-in.Done():
		default:
			continue
		}
		debug.Log("device", "%s stopped, will reopen", id)
		in.Close()
		delete(m.inputs, id)
		changes = append(changes, DeviceEvent{Type: DeviceDisconnected, ID: id})
	}
	return changes
}

func (m *Manager) pump(in Input) {
	defer m.forward.Done()
	for ev := range in.Events() {
		select {
		case m.messages <- Message{Port: in.ID(), Event: ev, At: time.Now()}:
		default:
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, in := range m.inputs {
		in.Close()
	}
	m.inputs = make(map[string]Input)
}
