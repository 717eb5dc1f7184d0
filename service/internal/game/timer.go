package game

import "time"

// TimerKind names what a room timer does when it fires.
type TimerKind uint8

const (
	TimerNone       TimerKind = iota
	TimerTurnTick             // One second of a human turn elapsed.
	TimerBotMove              // A bot finished "thinking".
	TimerResolve              // The resolution delay of a full trick elapsed.
	TimerSwapAccept           // A bot swap target accepts.
	TimerRematch              // Everyone is ready; start the next game.
)

func (k TimerKind) String() string {
	switch k {
	case TimerTurnTick:
		return "turn-tick"
	case TimerBotMove:
		return "bot-move"
	case TimerResolve:
		return "resolve"
	case TimerSwapAccept:
		return "swap-accept"
	case TimerRematch:
		return "rematch"
	default:
		return "none"
	}
}

// Timing holds the room delays.
type Timing struct {
	Turn         time.Duration // Human turn countdown; zero disables it.
	Tick         time.Duration // Countdown granularity.
	BotDelay     time.Duration
	ResolveDelay time.Duration
	SwapBotDelay time.Duration
	RematchDelay time.Duration
}

// DefaultTiming returns the production delays.
func DefaultTiming() Timing {
	return Timing{
		Turn:         15 * time.Second,
		Tick:         time.Second,
		BotDelay:     1200 * time.Millisecond,
		ResolveDelay: 1500 * time.Millisecond,
		SwapBotDelay: time.Second,
		RematchDelay: 3 * time.Second,
	}
}

// turnSeconds returns how many ticks a human turn lasts.
func (t Timing) turnSeconds() int {
	if t.Turn <= 0 {
		return 0
	}
	return int((t.Turn + time.Second - 1) / time.Second)
}

// roomTimer is the single timer slot of a room. Starting a timer replaces any
// pending one. Each start bumps gen; a firing whose gen no longer matches is
// stale and must be ignored.
type roomTimer struct {
	t    *time.Timer
	gen  uint64
	kind TimerKind
	fire func(kind TimerKind, gen uint64)
}

func (rt *roomTimer) start(d time.Duration, kind TimerKind) {
	rt.stop()
	rt.gen++
	rt.kind = kind
	gen, fire := rt.gen, rt.fire
	rt.t = time.AfterFunc(d, func() {
		if fire != nil {
			fire(kind, gen)
		}
	})
}

func (rt *roomTimer) stop() {
	if rt.t != nil {
		rt.t.Stop()
		rt.t = nil
	}
	rt.kind = TimerNone
}

// claim reports whether a firing is the live timer and, if so, clears the slot.
func (rt *roomTimer) claim(kind TimerKind, gen uint64) bool {
	if kind == TimerNone || rt.kind != kind || rt.gen != gen {
		return false
	}
	if rt.t != nil {
		rt.t.Stop()
		rt.t = nil
	}
	rt.kind = TimerNone
	return true
}
