package userphrase

import "time"

// HalfLifeSecs is the time span over which an unused user phrase decays
// back to its original system frequency: about four months.
const HalfLifeSecs = 4 * 30 * 24 * 3600

// timeNow is replaced in tests.
var timeNow = time.Now

// effectiveFreq computes the aged frequency of a record at a point in
// time.
//
// Given the last-used timestamp t, the highest recorded frequency m and
// the original system frequency o, the effective frequency is
//
//	f = clamp(o + decay(now-t)·(m-o), o, m)
//	decay(Δ) = max(0, 1 - Δ/HalfLifeSecs)
//
// so that a freshly used phrase ranks at its personal maximum and an
// abandoned one falls back to what the system dictionary says.
func effectiveFreq(rec *Record, now int64) uint32 {
	o, m := rec.OrigFreq, rec.MaxFreq
	if m <= o {
		return o
	}
	delta := now - rec.Time
	if delta <= 0 {
		return m
	}
	if delta >= HalfLifeSecs {
		return o
	}
	decayed := float64(m-o) * (1 - float64(delta)/float64(HalfLifeSecs))
	f := o + uint32(decayed+0.5)
	if f < o {
		return o
	}
	if f > m {
		return m
	}
	return f
}
