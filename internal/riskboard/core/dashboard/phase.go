package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	fsmutil "github.com/autopeer-io/riskboard/internal/pkg/util/fsm"
)

// Phase is the lifecycle of one kind of fetch.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

const (
	// phaseBegin starts (or restarts) a fetch.
	phaseBegin = "begin"
	// phaseSucceed records a completion. Args: token, latest token.
	phaseSucceed = "succeed"
	// phaseFail records a failed completion. Args: token, latest token.
	phaseFail = "fail"
	// phaseReset forgets the fetch, e.g. when its selection is cleared.
	phaseReset = "reset"
)

var anyPhase = []string{string(PhaseIdle), string(PhaseLoading), string(PhaseLoaded), string(PhaseFailed)}

func newPhaseMachine(p Phase) *fsm.FSM {
	events := fsm.Events{
		{Name: phaseBegin, Src: anyPhase, Dst: string(PhaseLoading)},
		{Name: phaseSucceed, Src: []string{string(PhaseLoading)}, Dst: string(PhaseLoaded)},
		{Name: phaseFail, Src: []string{string(PhaseLoading)}, Dst: string(PhaseFailed)},
		{Name: phaseReset, Src: anyPhase, Dst: string(PhaseIdle)},
	}

	callbacks := fsm.Callbacks{
		"before_" + phaseSucceed: fsmutil.WrapEvent(guardLatest),
		"before_" + phaseFail:    fsmutil.WrapEvent(guardLatest),
	}

	return fsm.NewFSM(string(p), events, callbacks)
}

// guardLatest cancels a completion whose token is not the latest issued.
func guardLatest(_ context.Context, e *fsm.Event) error {
	if len(e.Args) != 2 {
		return fmt.Errorf("%s: want token and latest token, got %d args", e.Event, len(e.Args))
	}
	token, _ := e.Args[0].(uint64)
	latest, _ := e.Args[1].(uint64)
	if token != latest {
		e.Cancel(ErrStale)
	}
	return nil
}

// next applies event to the phase. Completions that are stale or arrive
// while nothing is loading yield ErrStale. Firing an event that leaves the
// phase unchanged is not an error.
func (p Phase) next(event string, args ...any) (Phase, error) {
	if p == "" {
		p = PhaseIdle
	}

	m := newPhaseMachine(p)
	err := m.Event(context.Background(), event, args...)
	switch {
	case err == nil:
		return Phase(m.Current()), nil
	case fsmutil.IsCanceled(err):
		return p, ErrStale
	case !fsmutil.IsRealError(err):
		return p, nil
	}

	var invalid fsm.InvalidEventError
	if errors.As(err, &invalid) {
		return p, ErrStale
	}
	return p, err
}

// mustNext is next for begin and reset, which are valid from every phase.
func (p Phase) mustNext(event string) Phase {
	n, err := p.next(event)
	if err != nil {
		panic(err)
	}
	return n
}
