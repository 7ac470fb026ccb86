package input

import (
	"fmt"
	"sync"
	"unicode"

	"git.lost.host/meutraa/hexbeat/internal/log"
	"github.com/eiannone/keyboard"
)

// Keymap maps runes to zones. The n-th rune of keys targets zone n.
func Keymap(keys string) map[rune]int {
	m := map[rune]int{}
	for i, r := range []rune(keys) {
		m[unicode.ToLower(r)] = i
	}
	return m
}

// Keyboard reads terminal key presses. A terminal only reports presses, so
// each key event is one actuation.
type Keyboard struct {
	Buffer
	Log *log.Logger

	keys   map[rune]int
	escape chan struct{}
	once   sync.Once
}

func OpenKeyboard(keys map[rune]int, l *log.Logger) (*Keyboard, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	k := &Keyboard{
		Log:    l,
		keys:   keys,
		escape: make(chan struct{}),
	}
	go k.read(events)
	return k, nil
}

func (k *Keyboard) read(events <-chan keyboard.KeyEvent) {
	for ev := range events {
		if nil != ev.Err {
			k.Log.Errorf("unable to read key: %v", ev.Err)
			continue
		}
		if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
			k.once.Do(func() { close(k.escape) })
			continue
		}
		zone, ok := k.keys[unicode.ToLower(ev.Rune)]
		if !ok {
			continue
		}
		k.Actuate(zone)
	}
}

// Escape is closed once the player presses escape.
func (k *Keyboard) Escape() <-chan struct{} {
	return k.escape
}

func (k *Keyboard) Close() error {
	return keyboard.Close()
}
