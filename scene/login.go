package scene

import (
	"strings"

	"github.com/lixenwraith/retro-terminal/engine"
	"github.com/lixenwraith/retro-terminal/render"
)

// LoginStage is the login sub-state
type LoginStage int

const (
	StageShowUsername LoginStage = iota
	StageWaitPassword
	StageShowPassword
	StageVerifying
	StageAccessGranted
	StageFinished
)

var loginStageNames = [...]string{
	"ShowUsername",
	"WaitPassword",
	"ShowPassword",
	"Verifying",
	"AccessGranted",
	"Finished",
}

func (s LoginStage) String() string {
	if s < 0 || int(s) >= len(loginStageNames) {
		return "LoginStage(?)"
	}
	return loginStageNames[s]
}

const (
	LoginUsername = "htw saar"
	LoginPassword = "********"

	loginCharInterval = 0.18
	loginPasswordWait = 0.5
	loginVerifyTime   = 1.5
	loginGrantedTime  = 1.5
	loginDotRate      = 2.0

	// Horizontal room reserved right of a field label when centering it
	loginValueAllowance = 112.0
	loginGrantedScale   = 1.2
	loginGrantedLift    = 12.0
)

// Login types a fixed username and masked password, verifies and grants access
type Login struct {
	sink TypeSink

	stage     LoginStage
	timer     float64
	charIndex int
	username  string // revealed prefix
	password  string
	dots      float64
	granted   float64
}

// NewLogin creates a login scene; sink may be nil
func NewLogin(sink TypeSink) *Login {
	if sink == nil {
		sink = nopSink{}
	}
	l := &Login{sink: sink}
	l.Reset()
	return l
}

// Stage returns the current sub-state
func (l *Login) Stage() LoginStage { return l.stage }

// TypedUsername returns the revealed part of the username
func (l *Login) TypedUsername() string { return l.username }

// TypedPassword returns the revealed part of the password
func (l *Login) TypedPassword() string { return l.password }

// Update advances the login by the frame delta
func (l *Login) Update(ft engine.FrameTime) {
	dt := ft.Delta
	switch l.stage {
	case StageShowUsername:
		l.timer += dt
		if l.reveal(LoginUsername, &l.username) {
			l.stage = StageWaitPassword
			l.timer = 0
		}
	case StageWaitPassword:
		l.timer += dt
		if reached(l.timer, loginPasswordWait) {
			l.stage = StageShowPassword
			l.timer = 0
			l.charIndex = 0
		}
	case StageShowPassword:
		l.timer += dt
		if l.reveal(LoginPassword, &l.password) {
			l.stage = StageVerifying
			l.timer = 0
			l.dots = 0
		}
	case StageVerifying:
		l.timer += dt
		l.dots += dt * loginDotRate
		if reached(l.timer, loginVerifyTime) {
			l.stage = StageAccessGranted
			l.timer = 0
			l.granted = 0
		}
	case StageAccessGranted:
		l.granted += dt
		if reached(l.granted, loginGrantedTime) {
			l.stage = StageFinished
		}
	}
}

// reveal types at most one character of full into typed and reports completion
func (l *Login) reveal(full string, typed *string) bool {
	if l.charIndex < len(full) && reached(l.timer, loginCharInterval) {
		*typed += full[l.charIndex : l.charIndex+1]
		l.charIndex++
		l.timer = 0
		l.sink.Typed()
	}
	return l.charIndex >= len(full)
}

// Render draws the login block with its top row at l.Y
func (l *Login) Render(c render.Canvas, lay Layout, time float64) {
	color := render.ColorText
	ls := lay.LineSpacing
	blink := cursor(time, 8)

	const title = "LOGIN:"
	c.Text(title, centered(c, title, 1), lay.Y, 1, color)

	userY := lay.Y + ls
	user := LoginUsername
	if l.stage == StageShowUsername {
		user = l.username + blink
	}
	l.field(c, "Username: ", user, userY, color)

	passY := userY + ls
	var pass string
	switch {
	case l.stage == StageShowPassword:
		pass = l.password + blink
	case l.stage > StageShowPassword:
		pass = LoginPassword
	}
	l.field(c, "Password: ", pass, passY, color)

	switch l.stage {
	case StageVerifying:
		msg := "Verifying" + strings.Repeat(".", int(l.dots)%4)
		c.Text(msg, centered(c, msg, 1), passY+ls, 1, color)
	case StageAccessGranted, StageFinished:
		const msg = "ACCESS GRANTED"
		c.Text(msg, centered(c, msg, loginGrantedScale), passY+2*ls-loginGrantedLift, loginGrantedScale, color)
	}
}

func (l *Login) field(c render.Canvas, label, value string, y float64, color render.Color) {
	w := c.TextWidth(label, 1)
	x := (c.Width() - w - loginValueAllowance) / 2
	c.Text(label, x, y, 1, color)
	c.Text(value, x+w, y, 1, color)
}

// Finished reports whether access has been granted and held
func (l *Login) Finished() bool { return l.stage == StageFinished }

// Reset returns to the first stage with nothing typed
func (l *Login) Reset() {
	l.stage = StageShowUsername
	l.timer = 0
	l.charIndex = 0
	l.username = ""
	l.password = ""
	l.dots = 0
	l.granted = 0
}
