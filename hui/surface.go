package hui

import (
	"sync"

	"github.com/PKsong/MIDIKit/event"
	"github.com/PKsong/MIDIKit/value"
)

// SurfaceModel is the aggregate state of every controllable HUI element:
// switches, V-Pot rings, faders and LCD text. Like mtc.Decoder, it is a
// single-writer, multi-reader object guarded by a mutex: exactly one
// producer goroutine should call Apply; any number of reader
// goroutines may call SwitchState, VPotState, FaderState and LCDState
// concurrently.
type SurfaceModel struct {
	mu sync.RWMutex

	switches map[Addr]bool
	vpots    map[value.U4]VPotDisplay
	faders   map[value.U4]value.U14
	lcd      map[lcdKey]string

	havePing   bool
	lastToggle bool
}

type lcdKey struct {
	target  LCDTarget
	channel value.U4
}

// NewSurfaceModel constructs an empty surface: every switch released,
// every fader at 0, every V-Pot ring off.
func NewSurfaceModel() *SurfaceModel {
	return &SurfaceModel{
		switches: make(map[Addr]bool),
		vpots:    make(map[value.U4]VPotDisplay),
		faders:   make(map[value.U4]value.U14),
		lcd:      make(map[lcdKey]string),
	}
}

// Apply mutates exactly one slot of the model according to msg and
// reports whether the slot's value actually changed.
func (m *SurfaceModel) Apply(msg Message) (UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch msg := msg.(type) {
	case SwitchMessage:
		prev, had := m.switches[msg.Addr]
		m.switches[msg.Addr] = msg.State
		known, isKnown := Lookup(msg.Addr)
		return UpdateResult{
			Changed: !had || prev != msg.State,
			Notification: SwitchNotification{
				Addr: msg.Addr, Known: known, IsKnown: isKnown, State: msg.State,
			},
		}, nil

	case VPotMessage:
		prev := m.vpots[msg.Channel]
		next := prev.ApplyDelta(msg.Delta)
		m.vpots[msg.Channel] = next
		return UpdateResult{
			Changed:      next != prev,
			Notification: VPotNotification{Channel: msg.Channel, Ring: next},
		}, nil

	case VPotDisplayMessage:
		prev, had := m.vpots[msg.Channel]
		m.vpots[msg.Channel] = msg.Display
		return UpdateResult{
			Changed:      !had || prev != msg.Display,
			Notification: VPotNotification{Channel: msg.Channel, Ring: msg.Display},
		}, nil

	case FaderMessage:
		prev, had := m.faders[msg.Channel]
		m.faders[msg.Channel] = msg.Value
		return UpdateResult{
			Changed:      !had || prev != msg.Value,
			Notification: FaderNotification{Channel: msg.Channel, Value: msg.Value},
		}, nil

	case LCDMessage:
		key := lcdKey{target: msg.Target, channel: msg.Channel}
		if msg.Target != LCDChannelStrip {
			key.channel = 0
		}
		prev, had := m.lcd[key]
		m.lcd[key] = msg.Text
		return UpdateResult{
			Changed:      !had || prev != msg.Text,
			Notification: LCDNotification{Target: msg.Target, Channel: msg.Channel, Text: msg.Text},
		}, nil

	case PingMessage:
		changed := !m.havePing || m.lastToggle != msg.Toggle
		m.havePing, m.lastToggle = true, msg.Toggle
		return UpdateResult{
			Changed:      changed,
			Notification: PingNotification{Toggle: msg.Toggle},
		}, nil

	default:
		return UpdateResult{}, event.NewUnsupported("unrecognized HUI message")
	}
}

// SwitchState reads addr's last-applied state.
func (m *SurfaceModel) SwitchState(addr Addr) (state, known bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, known = m.switches[addr]
	return state, known
}

// VPotState reads channel's last-applied V-Pot ring display.
func (m *SurfaceModel) VPotState(channel value.U4) VPotDisplay {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vpots[channel]
}

// FaderState reads channel's last-applied fader position.
func (m *SurfaceModel) FaderState(channel value.U4) value.U14 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.faders[channel]
}

// LCDState reads the last-applied text for (target, channel); channel is
// ignored for every target but LCDChannelStrip.
func (m *SurfaceModel) LCDState(target LCDTarget, channel value.U4) string {
	if target != LCDChannelStrip {
		channel = 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lcd[lcdKey{target: target, channel: channel}]
}
