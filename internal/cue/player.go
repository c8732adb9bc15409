package cue

import (
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Player plays one cue and returns when playback ends or ctx is done.
type Player interface {
	Play(ctx context.Context, c Cue) error
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(context.Context, Cue) error { return nil }

// volumeToken in a player command is replaced by the cue volume in percent.
const volumeToken = "{volume}"

// CommandPlayer plays tracks with an external command such as
// "mpv --no-video --really-quiet --volume={volume}". The source is
// appended as the last argument.
type CommandPlayer struct {
	Command  []string
	MediaDir string // base for relative sources
}

// NewCommandPlayer splits a command line into a CommandPlayer.
func NewCommandPlayer(command, mediaDir string) (*CommandPlayer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty player command")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("find player %q: %w", fields[0], err)
	}
	return &CommandPlayer{Command: fields, MediaDir: mediaDir}, nil
}

// Args returns the full argument list for c.
func (p *CommandPlayer) Args(c Cue) []string {
	vol := strconv.Itoa(int(math.Round(c.Volume * 100)))
	args := make([]string, 0, len(p.Command))
	for _, a := range p.Command[1:] {
		args = append(args, strings.ReplaceAll(a, volumeToken, vol))
	}
	return append(args, p.resolve(c.Source))
}

func (p *CommandPlayer) resolve(src string) string {
	if strings.Contains(src, "://") || filepath.IsAbs(src) || p.MediaDir == "" {
		return src
	}
	return filepath.Join(p.MediaDir, src)
}

func (p *CommandPlayer) Play(ctx context.Context, c Cue) error {
	if c.Synth() {
		return nil
	}
	cmd := exec.CommandContext(ctx, p.Command[0], p.Args(c)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("play %s: %w: %s", c.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// BellPlayer rings the terminal bell for the louder synthesized sounds.
type BellPlayer struct {
	W io.Writer
}

func (b BellPlayer) Play(_ context.Context, c Cue) error {
	if !c.Synth() {
		return nil
	}
	switch c.Name {
	case "success", "error":
		if _, err := io.WriteString(b.W, "\a"); err != nil {
			return fmt.Errorf("ring bell: %w", err)
		}
	}
	return nil
}
