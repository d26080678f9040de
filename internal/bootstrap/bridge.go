package bootstrap

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ubytes/appplatform/pkg/platform"
)

// Bridge command types understood from hosted content.
const (
	CommandPing             = "ping"
	CommandEcho             = "echo"
	CommandSetTitle         = "set_title"
	CommandGetWindow        = "get_window"
	CommandMinimize         = "minimize"
	CommandToggleMaximize   = "toggle_maximize"
	CommandToggleBorderless = "toggle_borderless"
	CommandClose            = "close"
)

// Command is a JSON message sent by hosted content, e.g.
// {"type":"set_title","title":"Inbox","id":3}.
type Command struct {
	Type  string          `json:"type"`
	ID    json.RawMessage `json:"id,omitempty"`
	Title string          `json:"title,omitempty"`
	Text  string          `json:"text,omitempty"`
}

// Reply answers a Command. ID echoes the command's id.
type Reply struct {
	Type  string          `json:"type"`
	ID    json.RawMessage `json:"id,omitempty"`
	Error string          `json:"error,omitempty"`
	Text  string          `json:"text,omitempty"`

	Window *WindowState `json:"window,omitempty"`
}

// WindowState is the payload of a get_window reply.
type WindowState struct {
	Title      string `json:"title"`
	Width      uint32 `json:"width"`
	Height     uint32 `json:"height"`
	Maximized  bool   `json:"maximized"`
	Minimized  bool   `json:"minimized"`
	Borderless bool   `json:"borderless"`
}

// Bridge executes window commands posted by hosted content and answers
// through the web view.
type Bridge struct {
	window  *platform.Window
	webview *platform.WebView
	logger  zerolog.Logger
}

func NewBridge(window *platform.Window, webview *platform.WebView, logger zerolog.Logger) *Bridge {
	return &Bridge{window: window, webview: webview, logger: logger.With().Str("component", "bridge").Logger()}
}

// Handle runs text as a command. It returns false for text that is not a JSON
// object so the caller can treat it as a plain message.
func (b *Bridge) Handle(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}

	var cmd Command
	if err := json.Unmarshal([]byte(trimmed), &cmd); err != nil {
		b.reply(Reply{Type: "error", Error: "invalid command: " + err.Error()})
		return true
	}

	b.logger.Debug().Str("type", cmd.Type).Msg("bridge command")
	switch cmd.Type {
	case CommandPing:
		b.reply(Reply{Type: "pong", ID: cmd.ID})
	case CommandEcho:
		b.reply(Reply{Type: CommandEcho, ID: cmd.ID, Text: cmd.Text})
	case CommandSetTitle:
		b.window.SetTitle(cmd.Title)
		b.ack(cmd)
	case CommandGetWindow:
		b.reply(Reply{Type: "window", ID: cmd.ID, Window: b.windowState()})
	case CommandMinimize:
		b.window.RequestMinimize()
		b.ack(cmd)
	case CommandToggleMaximize:
		b.window.RequestToggleMaximize()
		b.ack(cmd)
	case CommandToggleBorderless:
		b.window.SetBorderless(!b.window.IsBorderless())
		b.ack(cmd)
	case CommandClose:
		b.ack(cmd)
		b.window.RequestClose()
	default:
		b.reply(Reply{Type: "error", ID: cmd.ID, Error: "unknown command " + cmd.Type})
	}
	return true
}

func (b *Bridge) ack(cmd Command) {
	if len(cmd.ID) == 0 {
		return
	}
	b.reply(Reply{Type: "ok", ID: cmd.ID})
}

func (b *Bridge) windowState() *WindowState {
	size := b.window.Size()
	return &WindowState{
		Title:      b.window.Title(),
		Width:      size.X,
		Height:     size.Y,
		Maximized:  b.window.IsMaximized(),
		Minimized:  b.window.IsMinimized(),
		Borderless: b.window.IsBorderless(),
	}
}

func (b *Bridge) reply(r Reply) {
	if err := b.webview.SendMessageJSON(r); err != nil {
		b.logger.Warn().Err(err).Str("type", r.Type).Msg("failed to send bridge reply")
	}
}
