package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

var ErrUnsupported = errors.New("unsupported audio format")

// Transport is a decoded track ready to play. Its playback position is the
// session clock.
type Transport struct {
	Log *log.Logger

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
}

func open(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %v", ErrUnsupported, file)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %v: %w", file, err)
	}
	return streamer, format, nil
}

func newTransport(streamer beep.StreamSeekCloser, format beep.Format, l *log.Logger) *Transport {
	return &Transport{
		Log:      l,
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer, Paused: true},
	}
}

// Prepare decodes the track and opens the speaker. It must finish before the
// session starts.
func Prepare(ctx context.Context, file string, l *log.Logger) (*Transport, error) {
	streamer, format, err := open(file)
	if nil != err {
		return nil, err
	}
	if err := ctx.Err(); nil != err {
		streamer.Close()
		return nil, err
	}
	l.Infof("opening %v (%v Hz, %v channels)", file, format.SampleRate, format.NumChannels)
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, fmt.Errorf("unable to open speaker: %w", err)
	}
	t := newTransport(streamer, format, l)
	speaker.Play(t.ctrl)
	return t, nil
}

// Play starts the track from its current position.
func (t *Transport) Play() error {
	speaker.Lock()
	defer speaker.Unlock()
	if err := t.streamer.Err(); nil != err {
		return err
	}
	t.ctrl.Paused = false
	return nil
}

func (t *Transport) Pause() {
	speaker.Lock()
	defer speaker.Unlock()
	t.ctrl.Paused = true
}

// Now is the playback position.
func (t *Transport) Now() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return t.format.SampleRate.D(t.streamer.Position())
}

// Length is the duration of the whole track.
func (t *Transport) Length() time.Duration {
	return t.format.SampleRate.D(t.streamer.Len())
}

// Finished reports whether the whole track has been played.
func (t *Transport) Finished() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return t.streamer.Position() >= t.streamer.Len()
}

func (t *Transport) Close() error {
	speaker.Clear()
	if err := t.streamer.Close(); nil != err {
		t.Log.Warnf("unable to close audio stream: %v", err)
		return err
	}
	return nil
}
