package scene

import (
	"reflect"
	"testing"
)

func TestLoginWaitPasswordAfterUsername(t *testing.T) {
	sink := &countSink{}
	l := NewLogin(sink)
	f := &frames{dt: 0.02}

	// 0.18s per character at 0.02s frames, the first frame carries no delta
	l.Update(f.next())
	perChar := 9
	for i := 0; i < perChar*len(LoginUsername)-1; i++ {
		l.Update(f.next())
	}
	if l.Stage() != StageShowUsername {
		t.Fatalf("stage = %v one frame early, want ShowUsername", l.Stage())
	}
	if got := l.TypedUsername(); got != LoginUsername[:len(LoginUsername)-1] {
		t.Errorf("typed = %q", got)
	}

	l.Update(f.next())
	if l.Stage() != StageWaitPassword {
		t.Fatalf("stage = %v, want WaitPassword", l.Stage())
	}
	if l.TypedUsername() != LoginUsername {
		t.Errorf("typed = %q, want %q", l.TypedUsername(), LoginUsername)
	}
	if sink.n != len(LoginUsername) {
		t.Errorf("typed events = %d, want %d", sink.n, len(LoginUsername))
	}
}

func TestLoginFullSequence(t *testing.T) {
	sink := &countSink{}
	l := NewLogin(sink)
	f := &frames{dt: 0.02}

	seen := map[LoginStage]bool{}
	for i := 0; i < 500 && !l.Finished(); i++ {
		l.Update(f.next())
		seen[l.Stage()] = true
	}
	if !l.Finished() {
		t.Fatalf("login not finished, stage %v", l.Stage())
	}
	for s := StageShowUsername; s <= StageFinished; s++ {
		if !seen[s] && s != StageShowUsername {
			t.Errorf("stage %v never observed", s)
		}
	}
	if want := len(LoginUsername) + len(LoginPassword); sink.n != want {
		t.Errorf("typed events = %d, want %d", sink.n, want)
	}
	if l.TypedUsername() != LoginUsername || l.TypedPassword() != LoginPassword {
		t.Errorf("typed %q / %q", l.TypedUsername(), l.TypedPassword())
	}

	// 1.44 + 0.5 + 1.44 + 1.5 + 1.5
	elapsed := float64(f.i-1) * f.dt
	if elapsed < 6.3 || elapsed > 6.5 {
		t.Errorf("finished after %.2fs, want about 6.38s", elapsed)
	}

	before := *l
	l.Update(f.next())
	if !reflect.DeepEqual(before, *l) {
		t.Error("update after finish changed state")
	}
}

func TestLoginVerifyingDots(t *testing.T) {
	l := NewLogin(nil)
	l.stage = StageVerifying

	c := newRecordCanvas()
	lay := Layout{Y: 540, LineSpacing: 40}
	for _, tt := range []struct {
		dots float64
		want string
	}{
		{0, "Verifying"},
		{1.5, "Verifying."},
		{3.2, "Verifying..."},
		{4.1, "Verifying"},
	} {
		l.dots = tt.dots
		c.texts = nil
		l.Render(c, lay, 0)
		got, ok := c.find("Verifying")
		if !ok || got.s != tt.want {
			t.Errorf("dots %v: text %q, want %q", tt.dots, got.s, tt.want)
		}
		if got.y != 540+3*40 {
			t.Errorf("verifying y = %v", got.y)
		}
	}
}

func TestLoginRenderLayout(t *testing.T) {
	l := NewLogin(nil)
	c := newRecordCanvas()
	lay := Layout{Y: 540, LineSpacing: 40}

	l.Render(c, lay, 0)
	title, ok := c.find("LOGIN:")
	if !ok || title.x != (1920-60)/2 || title.y != 540 {
		t.Errorf("title = %+v", title)
	}
	label, ok := c.find("Username: ")
	if !ok {
		t.Fatal("username label missing")
	}
	if want := (1920.0 - 100 - 112) / 2; label.x != want || label.y != 580 {
		t.Errorf("username label at (%v,%v), want (%v,580)", label.x, label.y, want)
	}
	// value follows the label, cursor visible at time 0 with nothing typed
	var value textCall
	for _, tc := range c.texts {
		if tc.x == label.x+100 && tc.y == label.y {
			value = tc
		}
	}
	if value.s != "_" {
		t.Errorf("username value = %q, want cursor", value.s)
	}

	l.stage = StageAccessGranted
	c.texts = nil
	l.Render(c, lay, 0)
	granted, ok := c.find("ACCESS GRANTED")
	if !ok {
		t.Fatal("ACCESS GRANTED missing")
	}
	if granted.scale != loginGrantedScale || granted.y != 620+80-12 {
		t.Errorf("granted = %+v", granted)
	}
	pass, _ := c.find(LoginPassword)
	if pass.s != LoginPassword {
		t.Error("full password should show after typing")
	}
}

func TestLoginResetIdempotent(t *testing.T) {
	sink := &countSink{}
	l := NewLogin(sink)
	f := &frames{dt: 0.05}
	for i := 0; i < 80; i++ {
		l.Update(f.next())
	}
	if l.Stage() == StageShowUsername {
		t.Fatal("login did not progress")
	}

	l.Reset()
	once := *l
	l.Reset()
	if !reflect.DeepEqual(once, *l) {
		t.Error("second Reset changed state")
	}
	if fresh := NewLogin(sink); !reflect.DeepEqual(*fresh, *l) {
		t.Error("reset login differs from a new one")
	}
}
