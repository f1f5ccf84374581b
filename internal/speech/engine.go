package speech

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrInterrupted is reported for an utterance stopped by Cancel.
var ErrInterrupted = errors.New("speech interrupted")

// Utterance is one piece of text plus the voice settings to read it with.
// Rate and Pitch are relative to the engine default (1.0).
type Utterance struct {
	Text  string
	Rate  float64
	Pitch float64
}

// Engine is a speech synthesiser shared by the whole process. Speak starts an
// utterance and returns a channel that receives exactly one value when it
// ends: nil on completion, an error otherwise. Cancel stops whatever is
// playing and is a no-op when idle.
type Engine interface {
	Speak(u Utterance) <-chan error
	Cancel()
	Speaking() bool
}

// Profile describes how to drive one speech binary.
type Profile struct {
	Name string
	// Args builds the argument list for an utterance.
	Args func(u Utterance) []string
	// Stdin feeds the text on standard input instead of as an argument.
	Stdin bool
	// CancelArgs, when set, is run on Cancel in addition to killing the
	// process, for engines that hand speech to a daemon.
	CancelArgs []string
}

const defaultWPM = 175

// Profiles lists the binaries probed by DetectEngine, in order.
var Profiles = []Profile{
	{
		Name:  "espeak-ng",
		Args:  espeakArgs,
		Stdin: true,
	},
	{
		Name:  "espeak",
		Args:  espeakArgs,
		Stdin: true,
	},
	{
		Name: "say",
		Args: func(u Utterance) []string {
			return []string{"-r", strconv.Itoa(wordsPerMinute(u.Rate)), "-f", "-"}
		},
		Stdin: true,
	},
	{
		Name: "spd-say",
		Args: func(u Utterance) []string {
			return []string{
				"--wait",
				"-r", strconv.Itoa(relativePercent(u.Rate)),
				"-p", strconv.Itoa(relativePercent(u.Pitch)),
				"--", u.Text,
			}
		},
		CancelArgs: []string{"--cancel"},
	},
}

func espeakArgs(u Utterance) []string {
	pitch := int(math.Round(50 * orDefault(u.Pitch)))
	return []string{
		"-s", strconv.Itoa(wordsPerMinute(u.Rate)),
		"-p", strconv.Itoa(clamp(pitch, 0, 99)),
		"--stdin",
	}
}

func wordsPerMinute(rate float64) int {
	return int(math.Round(defaultWPM * orDefault(rate)))
}

// relativePercent maps 1.0 to 0, 0.5 to -50, capped to [-100, 100].
func relativePercent(v float64) int {
	return clamp(int(math.Round((orDefault(v)-1)*100)), -100, 100)
}

func orDefault(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// ProfileByName returns the profile with the given binary name.
func ProfileByName(name string) (Profile, bool) {
	for _, p := range Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// DetectEngine resolves an engine name from config. "auto" (or empty) probes
// Profiles in order; "none" disables speech. A nil Engine means no speech is
// available, which the Narrator handles.
func DetectEngine(name string) (Engine, error) {
	choice := strings.ToLower(strings.TrimSpace(name))
	switch choice {
	case "none", "off":
		return nil, nil
	case "", "auto":
		for _, p := range Profiles {
			if path, err := exec.LookPath(p.Name); err == nil {
				return NewExecEngine(path, p), nil
			}
		}
		return nil, nil
	}

	profile, ok := ProfileByName(choice)
	if !ok {
		return nil, fmt.Errorf("unknown speech engine %q", name)
	}
	path, err := exec.LookPath(profile.Name)
	if err != nil {
		return nil, fmt.Errorf("speech engine %s: %w", profile.Name, err)
	}
	return NewExecEngine(path, profile), nil
}

// Ensure ExecEngine implements Engine at compile time.
var _ Engine = (*ExecEngine)(nil)

// ExecEngine speaks by running an external binary, one process per utterance.
type ExecEngine struct {
	path    string
	profile Profile

	mu      sync.Mutex
	current *playback
}

type playback struct {
	cmd         *exec.Cmd
	interrupted bool
}

const cancelTimeout = 2 * time.Second

// NewExecEngine returns an engine that runs the binary at path.
func NewExecEngine(path string, profile Profile) *ExecEngine {
	return &ExecEngine{path: path, profile: profile}
}

// Name returns the profile name.
func (e *ExecEngine) Name() string {
	return e.profile.Name
}

// Speak starts the binary. A previous utterance still playing is not
// stopped here; callers Cancel first.
func (e *ExecEngine) Speak(u Utterance) <-chan error {
	done := make(chan error, 1)

	var args []string
	if e.profile.Args != nil {
		args = e.profile.Args(u)
	}
	cmd := exec.Command(e.path, args...)
	if e.profile.Stdin {
		cmd.Stdin = strings.NewReader(u.Text)
	}

	e.mu.Lock()
	if err := cmd.Start(); err != nil {
		e.mu.Unlock()
		done <- fmt.Errorf("start %s: %w", e.profile.Name, err)
		return done
	}
	p := &playback{cmd: cmd}
	e.current = p
	e.mu.Unlock()

	go func() {
		err := cmd.Wait()

		e.mu.Lock()
		interrupted := p.interrupted
		if e.current == p {
			e.current = nil
		}
		e.mu.Unlock()

		switch {
		case interrupted:
			done <- ErrInterrupted
		case err != nil:
			done <- fmt.Errorf("%s: %w", e.profile.Name, err)
		default:
			done <- nil
		}
	}()
	return done
}

// Cancel kills the running utterance, if any.
func (e *ExecEngine) Cancel() {
	e.mu.Lock()
	p := e.current
	e.current = nil
	if p != nil {
		p.interrupted = true
	}
	e.mu.Unlock()

	if p != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	if len(e.profile.CancelArgs) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
		defer cancel()
		_ = exec.CommandContext(ctx, e.path, e.profile.CancelArgs...).Run()
	}
}

// Speaking reports whether an utterance is in flight.
func (e *ExecEngine) Speaking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current != nil
}
