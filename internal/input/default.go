package input

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"git.lost.host/meutraa/hexbeat/internal/log"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const evKey = 0x01

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// ParseCodes reads a comma separated list of event codes, the n-th code
// targets zone n.
func ParseCodes(s string) (map[uint16]int, error) {
	codes := map[uint16]int{}
	if strings.TrimSpace(s) == "" {
		return codes, nil
	}
	for i, field := range strings.Split(s, ",") {
		code, err := strconv.ParseUint(strings.TrimSpace(field), 10, 16)
		if nil != err {
			return nil, fmt.Errorf("invalid event code %q: %w", field, err)
		}
		codes[uint16(code)] = i
	}
	return codes, nil
}

// ReadDevice feeds presses from a linux input device (keyboard or gamepad)
// into buf until the returned closer is closed.
func ReadDevice(device string, codes map[uint16]int, buf *Buffer, l *log.Logger) (io.Closer, error) {
	file, err := os.Open(device)
	if err != nil {
		return nil, fmt.Errorf("unable to open input device: %w", err)
	}
	go func() {
		if err := readEvents(file, codes, buf); nil != err {
			l.Debugf("stopped reading %v: %v", device, err)
		}
	}()
	return file, nil
}

func readEvents(r io.Reader, codes map[uint16]int, buf *Buffer) error {
	var ev keyEvent
	for {
		if err := binary.Read(r, binary.LittleEndian, &ev); nil != err {
			return err
		}
		// Value 1 is a press, 0 a release and 2 an autorepeat
		if ev.Type != evKey || ev.Value != 1 {
			continue
		}
		if zone, ok := codes[ev.Code]; ok {
			buf.Actuate(zone)
		}
	}
}
