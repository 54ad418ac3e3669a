package player

import (
	"context"
	"errors"
	"testing"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStart_Sequence(t *testing.T) {
	m := NewMock()

	if err := Start(context.Background(), m, "jazz", 70); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	want := []string{"clear", "setvolume 70", "load jazz", "play"}
	got := m.Calls()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
	if m.State() != Playing {
		t.Errorf("state = %v, want Playing", m.State())
	}
}

func TestStart_StopsOnError(t *testing.T) {
	m := NewMock()
	m.SetError("load", errors.New("no such playlist"))

	if err := Start(context.Background(), m, "gone", 70); err == nil {
		t.Fatal("Start() expected error")
	}
	for _, c := range m.Calls() {
		if c == "play" {
			t.Error("play should not be called after load failed")
		}
	}
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	m := NewMock()

	s, err := Toggle(ctx, m, Playing)
	if err != nil || s != Paused {
		t.Fatalf("Toggle(Playing) = %v, %v; want Paused", s, err)
	}
	s, err = Toggle(ctx, m, s)
	if err != nil || s != Playing {
		t.Fatalf("Toggle(Paused) = %v, %v; want Playing", s, err)
	}
	s, err = Toggle(ctx, m, Stopped)
	if err != nil || s != Playing {
		t.Fatalf("Toggle(Stopped) = %v, %v; want Playing", s, err)
	}
}

func TestToggle_ErrorKeepsState(t *testing.T) {
	m := NewMock()
	m.SetError("pause", errors.New("mpd gone"))

	s, err := Toggle(context.Background(), m, Playing)
	if err == nil {
		t.Fatal("Toggle() expected error")
	}
	if s != Playing {
		t.Errorf("state = %v, want Playing", s)
	}
}
