package platform

import (
	"net/url"

	"github.com/rs/zerolog"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// PermissionRequest is one pending capability prompt raised by hosted
// content. The handler sets a response and calls MarkCompleted exactly once;
// the prompt stays pending in the native layer until then.
type PermissionRequest struct {
	prompt        driver.PermissionPrompt
	response      PermissionResponse
	saveInProfile bool
	completed     bool

	strict bool
	logger zerolog.Logger
}

// NewPermissionRequest wraps a native prompt. Backends and tests use it; the
// WebView wraps prompts itself before calling OnPermissionRequest.
func NewPermissionRequest(prompt driver.PermissionPrompt) *PermissionRequest {
	return &PermissionRequest{prompt: prompt, logger: zerolog.Nop()}
}

func (r *PermissionRequest) Kind() PermissionKind {
	return r.prompt.Kind()
}

func (r *PermissionRequest) Response() PermissionResponse {
	return r.response
}

func (r *PermissionRequest) SavesInProfile() bool {
	return r.saveInProfile
}

func (r *PermissionRequest) UserInitiated() bool {
	return r.prompt.UserInitiated()
}

// URL is the address of the content that raised the prompt.
func (r *PermissionRequest) URL() string {
	return r.prompt.URL()
}

// Origin reduces URL to scheme://host[:port]. It returns the raw URL when it
// cannot be parsed.
func (r *PermissionRequest) Origin() string {
	raw := r.prompt.URL()
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}

// Completed reports whether MarkCompleted has run.
func (r *PermissionRequest) Completed() bool {
	return r.completed
}

func (r *PermissionRequest) SetResponse(response PermissionResponse) error {
	if r.completed {
		return r.violation("PermissionRequest.SetResponse")
	}
	r.response = response
	return nil
}

func (r *PermissionRequest) SetSavesInProfile(save bool) error {
	if r.completed {
		return r.violation("PermissionRequest.SetSavesInProfile")
	}
	r.saveInProfile = save
	return nil
}

// MarkCompleted hands the decision to the native layer and releases the
// prompt.
func (r *PermissionRequest) MarkCompleted() error {
	if r.completed {
		return r.violation("PermissionRequest.MarkCompleted")
	}
	r.completed = true
	r.prompt.Complete(r.response, r.saveInProfile)
	r.logger.Debug().
		Str("kind", r.Kind().String()).
		Str("response", r.response.String()).
		Bool("save", r.saveInProfile).
		Msg("permission request completed")
	return nil
}

// deny completes a still-pending request with ResponseDeny and no
// persistence. It does nothing once the request is completed.
func (r *PermissionRequest) deny() {
	if r.completed {
		return
	}
	r.response = ResponseDeny
	r.saveInProfile = false
	r.completed = true
	r.prompt.Complete(ResponseDeny, false)
	r.logger.Debug().Str("kind", r.Kind().String()).Msg("pending permission request auto-denied")
}

func (r *PermissionRequest) violation(op string) error {
	err := &PreconditionError{Op: op, State: "completed"}
	r.logger.Error().Str("op", op).Msg(err.Error())
	if r.strict {
		panic(err)
	}
	return err
}
