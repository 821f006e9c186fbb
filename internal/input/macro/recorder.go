package macro

import (
	"github.com/dshills/modekeys/internal/input/key"
)

// LastRunRegister replays the most recently run macro again.
const LastRunRegister = "@"

// ReplayFunc re-injects a recorded event into the input pipeline.
type ReplayFunc func(ev key.Event)

// Recorder records key events into named registers and replays them.
// It implements the macro half of the register capture modes:
// RecordMacro toggles recording, RunMacro replays.
type Recorder struct {
	replay ReplayFunc

	recording bool
	register  string
	events    []key.Event

	registers map[string][]key.Event
	lastRun   string
}

// NewRecorder creates a recorder replaying through fn.
func NewRecorder(fn ReplayFunc) *Recorder {
	return &Recorder{
		replay:    fn,
		registers: make(map[string][]key.Event),
	}
}

// Recording reports whether a macro is being recorded.
func (r *Recorder) Recording() bool {
	return r.recording
}

// RecordingRegister returns the register being recorded to, or "".
func (r *Recorder) RecordingRegister() string {
	if !r.recording {
		return ""
	}
	return r.register
}

// RecordMacro toggles recording. The first call starts recording into
// name; the next call stops and saves, whatever name it carries.
func (r *Recorder) RecordMacro(name string) error {
	if r.recording {
		r.stop()
		return nil
	}
	name, err := checkRegister(name)
	if err != nil {
		return err
	}
	r.recording = true
	r.register = name
	r.events = nil
	return nil
}

func (r *Recorder) stop() {
	r.recording = false
	if len(r.events) > 0 {
		saved := make([]key.Event, len(r.events))
		copy(saved, r.events)
		r.registers[r.register] = saved
	}
	r.events = nil
}

// Feed appends an event to the active recording. The event loop feeds
// every handled key press through here; playback events are excluded by
// the caller so a replay cannot record itself.
func (r *Recorder) Feed(ev key.Event) {
	if r.recording {
		r.events = append(r.events, ev)
	}
}

// RunMacro replays the macro stored under name. The "@" register reruns
// the most recently run macro.
func (r *Recorder) RunMacro(name string) error {
	if r.recording {
		return registerErr(name, "still recording a macro")
	}

	if name == LastRunRegister {
		if r.lastRun == "" {
			return registerErr(name, "no macro run yet")
		}
		name = r.lastRun
	} else {
		var err error
		name, err = checkRegister(name)
		if err != nil {
			return err
		}
	}

	events, ok := r.registers[name]
	if !ok {
		return registerErr(name, "no macro recorded")
	}
	r.lastRun = name

	for _, ev := range events {
		r.replay(ev)
	}
	return nil
}

// Get returns a copy of the events stored under name.
func (r *Recorder) Get(name string) []key.Event {
	events := r.registers[NormalizeRegister(name)]
	if len(events) == 0 {
		return nil
	}
	out := make([]key.Event, len(events))
	copy(out, events)
	return out
}
