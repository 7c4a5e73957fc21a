package gamepad

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/soar/inputnav/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntry struct {
	loads   int
	slots   map[uint32]PadState
	err     error
	queried []uint32
}

func (f *fakeEntry) probe(name string) Probe {
	return Probe{
		Name: name,
		Load: func() (*Entry, error) {
			f.loads++
			return &Entry{
				State: func(slot uint32) (PadState, error) {
					f.queried = append(f.queried, slot)
					if f.err != nil {
						return PadState{}, f.err
					}
					st, ok := f.slots[slot]
					if !ok {
						return PadState{}, ErrNotConnected
					}
					return st, nil
				},
			}, nil
		},
	}
}

func missingProbe(name string, loads *int) Probe {
	return Probe{
		Name: name,
		Load: func() (*Entry, error) {
			*loads++
			return nil, fmt.Errorf("%s: %w", name, ErrUnavailable)
		},
	}
}

func TestPadStateSnapshot(t *testing.T) {
	st := PadState{
		Buttons:      0x1000 | 0x0001 | 0x0200,
		RightTrigger: 255,
		ThumbLX:      -100,
		ThumbLY:      32767,
		ThumbRY:      -32768,
	}
	s := st.Snapshot()

	assert.True(t, s.Buttons["a"])
	assert.True(t, s.Buttons["dpad_up"])
	assert.True(t, s.Buttons["rb"])
	assert.False(t, s.Buttons["b"])
	assert.Len(t, s.Buttons, 14)

	assert.Equal(t, int16(-100), s.Axes["left_x"])
	assert.Equal(t, int16(-32767), s.Axes["left_y"], "stick up reads negative")
	assert.Equal(t, int16(32767), s.Axes["right_y"])
	assert.Equal(t, int16(32767), s.Axes["rt"])
	assert.Equal(t, int16(0), s.Axes["lt"])
}

func TestAPIBackendProbeOrder(t *testing.T) {
	var missing int
	first := &fakeEntry{slots: map[uint32]PadState{2: {Buttons: 0x1000}}}
	second := &fakeEntry{}

	b := NewAPIBackend([]Probe{
		missingProbe("xinput1_4.dll", &missing),
		first.probe("xinput1_3.dll"),
		second.probe("xinput9_1_0.dll"),
	}, APIConfig{})

	connected, snap := b.Poll()
	require.True(t, connected)
	assert.True(t, snap.Buttons["a"])
	assert.Equal(t, "xinput1_3.dll", b.ProbeName())
	assert.Equal(t, "xinput1_3.dll slot 2", b.Describe())

	first.queried = nil
	connected, _ = b.Poll()
	assert.True(t, connected)
	assert.Equal(t, []uint32{2}, first.queried, "connected slot is sticky")

	assert.Equal(t, 1, missing)
	assert.Equal(t, 1, first.loads, "probe is cached")
	assert.Equal(t, 0, second.loads)
}

func TestAPIBackendNoProbes(t *testing.T) {
	var loads int
	now := time.Unix(0, 0)
	b := NewAPIBackend([]Probe{missingProbe("a", &loads)}, APIConfig{ReprobeInterval: time.Second})
	b.now = func() time.Time { return now }

	connected, _ := b.Poll()
	assert.False(t, connected)
	b.Poll()
	assert.Equal(t, 1, loads, "list is not re-walked within the interval")

	now = now.Add(time.Second)
	b.Poll()
	assert.Equal(t, 2, loads)
	assert.Empty(t, b.Describe())
}

func TestAPIBackendFailuresDropProbe(t *testing.T) {
	entry := &fakeEntry{slots: map[uint32]PadState{0: {}}}
	b := NewAPIBackend([]Probe{entry.probe("p")}, APIConfig{MaxFailures: 2})

	connected, _ := b.Poll()
	require.True(t, connected)

	entry.err = errors.New("bus error")
	connected, _ = b.Poll()
	assert.False(t, connected)
	assert.Equal(t, "p", b.ProbeName())

	b.Poll()
	assert.Empty(t, b.ProbeName(), "dropped after consecutive failures")

	entry.err = nil
	connected, _ = b.Poll()
	assert.True(t, connected)
	assert.Equal(t, 2, entry.loads)
}

func TestAPIBackendNotConnectedIsNotAFailure(t *testing.T) {
	entry := &fakeEntry{}
	b := NewAPIBackend([]Probe{entry.probe("p")}, APIConfig{MaxFailures: 1})

	for range 5 {
		connected, _ := b.Poll()
		assert.False(t, connected)
	}
	assert.Equal(t, "p", b.ProbeName())
	assert.Equal(t, 1, entry.loads)
}

func TestSubTypeName(t *testing.T) {
	assert.Equal(t, "gamepad", SubTypeName(0x01))
	assert.Equal(t, "wheel", SubTypeName(0x02))
	assert.Equal(t, "subtype 0x42", SubTypeName(0x42))
}

func TestAPIBackendSlotLossReportsDisconnect(t *testing.T) {
	entry := &fakeEntry{slots: map[uint32]PadState{
		0: {Buttons: 0x1000},
		1: {Buttons: 0x1000},
	}}
	b := NewAPIBackend([]Probe{entry.probe("p")}, APIConfig{})
	d := NewDetector(b, NewDecoder(DefaultDeadzone))

	u := d.Tick()
	require.NotNil(t, u.Change)
	assert.Equal(t, ConnectionEvent{Connected: true, Descriptor: "p slot 0"}, *u.Change)
	assert.Equal(t, []nav.Intent{nav.Confirm}, u.Intents)

	delete(entry.slots, 0)
	u = d.Tick()
	require.NotNil(t, u.Change)
	assert.Equal(t, ConnectionEvent{Connected: false}, *u.Change)
	assert.Empty(t, u.Intents)
	assert.Empty(t, b.Describe())

	u = d.Tick()
	require.NotNil(t, u.Change)
	assert.Equal(t, ConnectionEvent{Connected: true, Descriptor: "p slot 1"}, *u.Change)
	assert.Equal(t, []nav.Intent{nav.Confirm}, u.Intents, "held button on the new pad fires once")

	u = d.Tick()
	assert.Nil(t, u.Change)
	assert.Empty(t, u.Intents)
}
