package audio

import (
	"testing"
	"time"
)

func TestStreamerLength(t *testing.T) {
	sr := sampleRate
	for snd := range cues {
		st, err := Streamer(snd, sr)
		if err != nil {
			t.Fatalf("Streamer(%s): %v", snd, err)
		}

		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := st.Stream(buf)
			total += n
			for i := 0; i < n; i++ {
				if buf[i][0] < -1 || buf[i][0] > 1 {
					t.Fatalf("%s: sample %f out of range", snd, buf[i][0])
				}
			}
			if !ok {
				break
			}
		}

		want := 0
		for _, n := range cues[snd] {
			want += sr.N(n.dur)
		}
		if total != want {
			t.Errorf("%s: streamed %d samples, want %d", snd, total, want)
		}
	}
}

func TestStreamerUnknown(t *testing.T) {
	if _, err := Streamer("kazoo", sampleRate); err == nil {
		t.Error("expected error for unknown sound")
	}
}

func TestEveryCueDefined(t *testing.T) {
	all := []Sound{BeeTap, BugSpray, FlySwat, HiveTrap, Bucket, Fire, FireOut, Cough, Heal, CovidSquish, CovidDie}
	for _, s := range all {
		if Duration(s) <= 0 {
			t.Errorf("%s has no notes", s)
		}
		if Duration(s) > time.Second {
			t.Errorf("%s is longer than a second", s)
		}
	}
}

func TestOpenMuted(t *testing.T) {
	out := Open(true, nil)
	if _, ok := out.(Nop); !ok {
		t.Fatalf("muted Open returned %T, want Nop", out)
	}
	out.PlayOnce(BeeTap)
}


func TestRecorderSatisfiesOutput(t *testing.T) {
	var r Recorder
	var out Output = &r
	out.PlayOnce(Heal)
	out.PlayOnce(Heal)
	if got := r.Count(Heal); got != 2 {
		t.Errorf("Count(Heal) = %d, want 2", got)
	}
}
