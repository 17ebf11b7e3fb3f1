package minder

import (
	"os"

	"golang.org/x/sys/unix"
)

// KeyboardReader delivers single keypresses from the controlling terminal in
// raw mode. This is the local control surface (pause, clear, quit); the
// global hotkey path does not go through here.
type KeyboardReader struct {
	oldState *unix.Termios
	input    chan rune
	stop     chan struct{}
}

// NewKeyboardReader switches the terminal to raw mode and starts reading.
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := &KeyboardReader{
		input: make(chan rune, 10),
		stop:  make(chan struct{}),
	}

	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	go kr.readInput()

	return kr, nil
}

// readInput reads keyboard input in a goroutine.
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 3)

	for {
		select {
		case <-kr.stop:
			return
		default:
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}

			// Escape sequences (arrows etc.) are not bound to anything.
			if buf[0] == 27 {
				continue
			}

			select {
			case kr.input <- rune(buf[0]):
			case <-kr.stop:
				return
			}
		}
	}
}

// Events returns the keypress channel.
func (kr *KeyboardReader) Events() <-chan rune {
	return kr.input
}

// Close stops the reader and restores the terminal.
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return kr.disableRawMode()
}
