package event

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PKsong/MIDIKit/value"
)

var noteLetters = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName renders a note number in scientific pitch notation, where
// middle C (MIDI note 60) is "C4".
func NoteName(n value.U7) string {
	octave := int(n)/12 - 1
	letter := noteLetters[int(n)%12]
	return fmt.Sprintf("%s%d", letter, octave)
}

// ParseNoteName parses scientific pitch notation (e.g. "C4", "F#3", "Bb5")
// back into a note number. It returns OutOfRange if the resulting note
// number would fall outside [0, 127].
func ParseNoteName(s string) (value.U7, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, NewMalformed(0, "empty note name")
	}
	letter := strings.ToUpper(s[:1])
	rest := s[1:]

	semitone, ok := letterSemitone[letter]
	if !ok {
		return 0, NewMalformed(0, "unrecognized note letter: "+letter)
	}

	if len(rest) > 0 && (rest[0] == '#' || rest[0] == 's' || rest[0] == 'S') {
		semitone++
		rest = rest[1:]
	} else if len(rest) > 0 && (rest[0] == 'b' || rest[0] == 'B') {
		semitone--
		rest = rest[1:]
	}
	semitone = ((semitone % 12) + 12) % 12

	if rest == "" {
		return 0, NewMalformed(0, "missing octave in note name: "+s)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, NewMalformed(0, "invalid octave in note name: "+s)
	}

	n := (octave+1)*12 + semitone
	if n < 0 || n > 127 {
		return 0, NewOutOfRange("note number", int64(n), 127)
	}
	return value.U7(n), nil
}

var letterSemitone = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}
