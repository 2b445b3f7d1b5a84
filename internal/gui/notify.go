package gui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Notifier surfaces domain warnings to the user. Alerts never abort the
// operation that raised them.
type Notifier interface {
	Alert(title, message string)
}

type Notification struct {
	Title   string
	Message string
	At      time.Time
}

// Notifications keeps the alert history and flashes the latest one.
type Notifications struct {
	logger   *zap.Logger
	messages []Notification
	now      func() time.Time
	ttl      time.Duration
}

func NewNotifications(logger *zap.Logger) *Notifications {
	return &Notifications{
		logger: logger.Named("alerts"),
		now:    time.Now,
		ttl:    3 * time.Second,
	}
}

func (n *Notifications) Alert(title, message string) {
	n.logger.Warn(message, zap.String("title", title))
	n.messages = append(n.messages, Notification{Title: title, Message: message, At: n.now()})
}

func (n *Notifications) Messages() []Notification { return n.messages }

func (n *Notifications) Last() (Notification, bool) {
	if len(n.messages) == 0 {
		return Notification{}, false
	}
	return n.messages[len(n.messages)-1], true
}

func (n *Notifications) Draw(bounds rl.Rectangle) {
	last, ok := n.Last()
	if !ok || n.now().Sub(last.At) > n.ttl {
		return
	}
	const w, h = 420, 56
	r := rl.Rectangle{X: bounds.X + (bounds.Width-w)/2, Y: bounds.Y + 48, Width: w, Height: h}
	rl.DrawRectangleRounded(r, 0.2, 6, ColorWarning)
	drawText(editorFontBold, last.Title, int32(r.X)+12, int32(r.Y)+6, 16, ColorTextPrimary)
	drawText(editorFont, last.Message, int32(r.X)+12, int32(r.Y)+28, 15, ColorTextSecondary)
}
