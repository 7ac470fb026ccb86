package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/hexbeat/internal/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

func writeSilence(t *testing.T, d time.Duration) string {
	file := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(file)
	if nil != err {
		t.Fatal(err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(format.SampleRate.N(d)), format); nil != err {
		t.Fatal(err)
	}
	return file
}

func TestOpenWav(t *testing.T) {
	streamer, format, err := open(writeSilence(t, time.Second))
	if nil != err {
		t.Fatal(err)
	}
	defer streamer.Close()

	if format.SampleRate != 44100 {
		t.Fatalf("expected 44100 Hz, got %v", format.SampleRate)
	}
	tr := newTransport(streamer, format, log.Discard())
	if tr.Length() != time.Second {
		t.Fatalf("expected a one second track, got %v", tr.Length())
	}
}

func TestNowFollowsPosition(t *testing.T) {
	streamer, format, err := open(writeSilence(t, time.Second))
	if nil != err {
		t.Fatal(err)
	}
	defer streamer.Close()

	tr := newTransport(streamer, format, log.Discard())
	if tr.Now() != 0 {
		t.Fatalf("expected 0 before playing, got %v", tr.Now())
	}
	if err := streamer.Seek(22050); nil != err {
		t.Fatal(err)
	}
	if tr.Now() != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %v", tr.Now())
	}
}

func TestFinished(t *testing.T) {
	streamer, format, err := open(writeSilence(t, time.Second))
	if nil != err {
		t.Fatal(err)
	}
	defer streamer.Close()

	tr := newTransport(streamer, format, log.Discard())
	if tr.Finished() {
		t.Fatal("expected a fresh track not to be finished")
	}
	if err := streamer.Seek(streamer.Len()); nil != err {
		t.Fatal(err)
	}
	if !tr.Finished() {
		t.Fatal("expected the track to be finished at its end")
	}
}

func TestClickGenerator(t *testing.T) {
	g := NewClickGenerator(44100, 1500, 40*time.Millisecond)
	buf := make([][2]float64, 1000)

	total, peak := 0, 0.0
	for {
		n, ok := g.Stream(buf)
		if !ok {
			break
		}
		for _, s := range buf[:n] {
			if s[0] != s[1] {
				t.Fatal("expected both channels to match")
			}
			if s[0] > peak {
				peak = s[0]
			}
		}
		total += n
	}
	if total != 1764 {
		t.Fatalf("expected 1764 samples, got %d", total)
	}
	if peak <= 0 || peak > 0.3 {
		t.Fatalf("unexpected peak %v", peak)
	}
}

func TestOpenUnsupported(t *testing.T) {
	file := filepath.Join(t.TempDir(), "track.flac")
	if err := os.WriteFile(file, []byte("fLaC"), 0o644); nil != err {
		t.Fatal(err)
	}
	if _, _, err := open(file); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, _, err := open(filepath.Join(t.TempDir(), "missing.mp3")); nil == err {
		t.Fatal("expected an error for a missing file")
	}
}
