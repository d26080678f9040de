package headless

import (
	"errors"

	"github.com/ubytes/appplatform/pkg/platform/driver"
)

var errParentGone = errors.New("headless: parent window is not alive")

// Prompt is a simulated native permission prompt.
type Prompt struct {
	kind          driver.PermissionKind
	url           string
	userInitiated bool

	completions int
	response    driver.PermissionResponse
	saved       bool
	onComplete  func(driver.PermissionResponse)
}

var _ driver.PermissionPrompt = (*Prompt)(nil)

func NewPrompt(kind driver.PermissionKind, url string, userInitiated bool) *Prompt {
	return &Prompt{kind: kind, url: url, userInitiated: userInitiated}
}

func (p *Prompt) Kind() driver.PermissionKind { return p.kind }
func (p *Prompt) URL() string                 { return p.url }
func (p *Prompt) UserInitiated() bool         { return p.userInitiated }

func (p *Prompt) Complete(response driver.PermissionResponse, saveInProfile bool) {
	p.completions++
	p.response = response
	p.saved = saveInProfile
	if p.onComplete != nil {
		p.onComplete(response)
	}
}

// Completions counts Complete calls. A correct host makes exactly one.
func (p *Prompt) Completions() int { return p.completions }

func (p *Prompt) Completed() bool                     { return p.completions > 0 }
func (p *Prompt) Response() driver.PermissionResponse { return p.response }
func (p *Prompt) Saved() bool                         { return p.saved }
