package engine

import (
	"context"
	"errors"
	"testing"
)

type countingUpdater struct {
	calls int
}

func (u *countingUpdater) Update() bool {
	u.calls++
	return false
}

func TestRenderLoopDrawsOncePerFrame(t *testing.T) {
	for _, frames := range []int{0, 1, 7, 60} {
		win := newFakeWindow(frames)
		draws := 0
		u := &countingUpdater{}
		l := NewRenderLoop(win, DrawerFunc(func() error {
			draws++
			return nil
		}), WithUpdater(u))

		if err := l.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if draws != frames {
			t.Errorf("%d frames: draws = %d", frames, draws)
		}
		if u.calls != frames {
			t.Errorf("%d frames: updates = %d", frames, u.calls)
		}
		if got := l.Frames(); got != uint64(frames) {
			t.Errorf("%d frames: Frames() = %d", frames, got)
		}
	}
}

func TestRenderLoopRunsPostedBeforeDraw(t *testing.T) {
	win := newFakeWindow(3)
	var order []string
	var l RenderLoop
	l = NewRenderLoop(win, DrawerFunc(func() error {
		order = append(order, "draw")
		return nil
	}))
	win.onFrame = func(n int) {
		if n == 2 {
			l.Post(func() { order = append(order, "posted-a") })
			l.Post(func() { order = append(order, "posted-b") })
		}
	}

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"draw", "posted-a", "posted-b", "draw", "draw"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRenderLoopStop(t *testing.T) {
	win := newFakeWindow(100)
	var l RenderLoop
	draws := 0
	l = NewRenderLoop(win, DrawerFunc(func() error {
		draws++
		if draws == 3 {
			l.Stop()
			l.Stop()
		}
		return nil
	}))

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if draws != 3 {
		t.Errorf("draws = %d, want 3", draws)
	}
	if l.Post(func() {}) {
		t.Error("expected Post to fail after Stop")
	}
}

func TestRenderLoopRefusesPostAfterRunReturns(t *testing.T) {
	l := NewRenderLoop(newFakeWindow(2), DrawerFunc(func() error { return nil }))

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.Post(func() {}) {
		t.Error("expected Post to fail once the window stopped serving frames")
	}
}

func TestRenderLoopRunsAcceptedPostsOnExit(t *testing.T) {
	win := newFakeWindow(2)
	var l RenderLoop
	ran := 0
	l = NewRenderLoop(win, DrawerFunc(func() error {
		if l.Frames() == 1 {
			if !l.Post(func() { ran++ }) {
				t.Error("Post during the last frame was refused")
			}
		}
		return nil
	}))

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ran != 1 {
		t.Errorf("completion posted on the last frame ran %d times, want 1", ran)
	}
}

func TestRenderLoopContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	win := newFakeWindow(100)
	draws := 0
	l := NewRenderLoop(win, DrawerFunc(func() error {
		draws++
		if draws == 2 {
			cancel()
		}
		return nil
	}))

	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if draws != 2 {
		t.Errorf("draws = %d, want 2", draws)
	}
}

func TestRenderLoopDrawErrorsContinue(t *testing.T) {
	win := newFakeWindow(4)
	draws := 0
	l := NewRenderLoop(win, DrawerFunc(func() error {
		draws++
		return errors.New("surface lost")
	}))

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if draws != 4 {
		t.Errorf("draws = %d, want 4", draws)
	}
}

func TestRenderLoopRejectsReentrantRun(t *testing.T) {
	win := newFakeWindow(1)
	var l RenderLoop
	var nested error
	l = NewRenderLoop(win, DrawerFunc(func() error {
		nested = l.Run(context.Background())
		return nil
	}))

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !errors.Is(nested, ErrRenderLoopRunning) {
		t.Errorf("nested Run() error = %v, want ErrRenderLoopRunning", nested)
	}
}

func TestRenderLoopRecoversPanic(t *testing.T) {
	win := newFakeWindow(5)
	l := NewRenderLoop(win, DrawerFunc(func() error {
		panic("boom")
	}))

	if err := l.Run(context.Background()); err == nil {
		t.Fatal("expected Run to report the recovered panic")
	}
}

func TestNewRenderLoopPanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected NewRenderLoop to panic on a nil drawer")
		}
	}()
	NewRenderLoop(newFakeWindow(1), nil)
}
