package panel

import "time"

// TapTempo averages the intervals between the last few taps of the TAP
// button into a tempo. The blink timer itself belongs to the host; the
// model only computes the tempo and the blink interval (two blinks per
// beat).
type TapTempo struct {
	times []time.Time
}

// tapWindow is how many tap instants are kept for averaging.
const tapWindow = 4

// Tap records one tap instant.
func (t *TapTempo) Tap(now time.Time) {
	t.times = append(t.times, now)
	if len(t.times) > tapWindow {
		t.times = t.times[1:]
	}
}

// Reset forgets all taps.
func (t *TapTempo) Reset() { t.times = nil }

func (t *TapTempo) interval() (time.Duration, bool) {
	if len(t.times) < 2 {
		return 0, false
	}
	total := time.Duration(0)
	for i := 1; i < len(t.times); i++ {
		total += t.times[i].Sub(t.times[i-1])
	}
	avg := total / time.Duration(len(t.times)-1)
	if avg <= 0 {
		return 0, false
	}
	return avg, true
}

// BPM returns the averaged tempo; ok is false until two taps have been
// recorded.
func (t *TapTempo) BPM() (bpm float64, ok bool) {
	avg, ok := t.interval()
	if !ok {
		return 0, false
	}
	return float64(time.Minute) / float64(avg), true
}

// BlinkInterval returns half the averaged tap interval, the rate at
// which the host should blink the tap indicator.
func (t *TapTempo) BlinkInterval() (time.Duration, bool) {
	avg, ok := t.interval()
	if !ok {
		return 0, false
	}
	return avg / 2, true
}
