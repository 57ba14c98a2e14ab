// Package theme describes the opening animation of each storefront theme as
// a table of timed stages. Clients drive their own rendering from it.
package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type Mode string

const (
	ModeDark    Mode = "dark"
	ModeLight   Mode = "light"
	ModeCard    Mode = "card"
	ModeSeal    Mode = "seal"
	ModeCompany Mode = "company"
)

var ErrUnknownMode = errors.New("unknown theme mode")

// Modes lists every theme in display order.
func Modes() []Mode {
	return []Mode{ModeDark, ModeLight, ModeCard, ModeSeal, ModeCompany}
}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type Stage string

const (
	// dark
	StageIntro   Stage = "intro"
	StageCorners Stage = "corners"
	StageQuote   Stage = "quote"
	StageFadeOut Stage = "fade-out"

	// light, card, company
	StageStrokes Stage = "strokes"
	StageFill    Stage = "fill"
	StageReveal  Stage = "reveal"

	// seal
	StageHover   Stage = "hover"
	StageDescend Stage = "descend"
	StageContact Stage = "contact"
	StageLift    Stage = "lift"
	StageDone    Stage = "done"

	// StageComplete is reported once every step has elapsed.
	StageComplete Stage = "complete"
)

type Step struct {
	Stage    Stage
	Duration time.Duration
}

type Timeline struct {
	Mode  Mode
	Steps []Step
}

var timelines = map[Mode][]Step{
	ModeDark: {
		{StageIntro, 500 * time.Millisecond},
		{StageCorners, 2000 * time.Millisecond},
		{StageQuote, 2500 * time.Millisecond},
		{StageFadeOut, 200 * time.Millisecond},
	},
	ModeLight:   brushSteps(),
	ModeCard:    brushSteps(),
	ModeCompany: brushSteps(),
	ModeSeal: {
		{StageHover, 500 * time.Millisecond},
		{StageDescend, 2000 * time.Millisecond},
		{StageContact, 1500 * time.Millisecond},
		{StageLift, 1500 * time.Millisecond},
		{StageDone, 1000 * time.Millisecond},
	},
}

func brushSteps() []Step {
	return []Step{
		{StageStrokes, 2000 * time.Millisecond},
		{StageFill, 1500 * time.Millisecond},
		{StageReveal, 1000 * time.Millisecond},
	}
}

// TimelineFor returns a copy of the stage table for mode.
func TimelineFor(mode Mode) (Timeline, error) {
	steps, ok := timelines[mode]
	if !ok {
		return Timeline{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return Timeline{Mode: mode, Steps: append([]Step(nil), steps...)}, nil
}

func (t Timeline) Total() time.Duration {
	var total time.Duration
	for _, s := range t.Steps {
		total += s.Duration
	}
	return total
}

// At returns the stage active at elapsed. Negative offsets clamp to the first
// stage.
func (t Timeline) At(elapsed time.Duration) Stage {
	var start time.Duration
	for _, s := range t.Steps {
		if elapsed < start+s.Duration {
			return s.Stage
		}
		start += s.Duration
	}
	return StageComplete
}

// StartOf returns the offset at which stage begins.
func (t Timeline) StartOf(stage Stage) (time.Duration, bool) {
	var start time.Duration
	for _, s := range t.Steps {
		if s.Stage == stage {
			return start, true
		}
		start += s.Duration
	}
	if stage == StageComplete {
		return start, true
	}
	return 0, false
}

type stepJSON struct {
	Stage      Stage `json:"stage"`
	StartMs    int64 `json:"startMs"`
	DurationMs int64 `json:"durationMs"`
}

type timelineJSON struct {
	Mode    Mode       `json:"mode"`
	Steps   []stepJSON `json:"steps"`
	TotalMs int64      `json:"totalMs"`
}

func (t Timeline) MarshalJSON() ([]byte, error) {
	out := timelineJSON{Mode: t.Mode, Steps: make([]stepJSON, 0, len(t.Steps))}
	var start time.Duration
	for _, s := range t.Steps {
		out.Steps = append(out.Steps, stepJSON{
			Stage:      s.Stage,
			StartMs:    start.Milliseconds(),
			DurationMs: s.Duration.Milliseconds(),
		})
		start += s.Duration
	}
	out.TotalMs = start.Milliseconds()
	return json.Marshal(out)
}
