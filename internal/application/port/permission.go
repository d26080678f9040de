package port

import (
	"context"

	"github.com/ubytes/appplatform/internal/domain/entity"
)

// PermissionQuestion describes a request that has no stored decision.
type PermissionQuestion struct {
	Origin        string
	URL           string
	Type          entity.PermissionType
	UserInitiated bool
}

// PermissionAnswer is the prompter's decision.
type PermissionAnswer struct {
	// Decision is granted, denied, or prompt to leave it to the backend default.
	Decision entity.PermissionDecision

	// Persistent asks for the decision to be stored for the origin.
	Persistent bool
}

// PermissionPrompter decides permission requests that have no stored
// decision. It is called on the UI thread and must not block on user input
// that needs the same thread.
type PermissionPrompter interface {
	Prompt(ctx context.Context, question PermissionQuestion) (PermissionAnswer, error)
}
