// Package permission answers permission prompts from the configured policy.
package permission

import (
	"context"
	"slices"

	"github.com/ubytes/appplatform/internal/application/port"
	"github.com/ubytes/appplatform/internal/domain/entity"
	"github.com/ubytes/appplatform/internal/infrastructure/config"
	"github.com/ubytes/appplatform/internal/logging"
)

// PolicyPrompter decides from the [permissions] config section: the deny
// list wins over the allow list, then the policy applies.
type PolicyPrompter struct {
	policy   config.PermissionPolicy
	allow    []string
	deny     []string
	remember bool
}

var _ port.PermissionPrompter = (*PolicyPrompter)(nil)

// NewPolicyPrompter copies the lists out of cfg.
func NewPolicyPrompter(cfg config.PermissionsConfig) *PolicyPrompter {
	return &PolicyPrompter{
		policy:   cfg.Policy,
		allow:    slices.Clone(cfg.Allow),
		deny:     slices.Clone(cfg.Deny),
		remember: cfg.Remember,
	}
}

// Prompt never fails. Only user-initiated requests are marked persistent.
func (p *PolicyPrompter) Prompt(ctx context.Context, q port.PermissionQuestion) (port.PermissionAnswer, error) {
	decision := p.decide(q.Type)
	answer := port.PermissionAnswer{
		Decision:   decision,
		Persistent: p.remember && q.UserInitiated && decision.CanStore(),
	}

	logging.FromContext(ctx).Debug().
		Str("origin", q.Origin).
		Str("type", string(q.Type)).
		Str("decision", string(decision)).
		Bool("persistent", answer.Persistent).
		Msg("permission decided by policy")
	return answer, nil
}

func (p *PolicyPrompter) decide(permType entity.PermissionType) entity.PermissionDecision {
	switch {
	case slices.Contains(p.deny, string(permType)):
		return entity.PermissionDenied
	case slices.Contains(p.allow, string(permType)):
		return entity.PermissionGranted
	}
	switch p.policy {
	case config.PolicyAllow:
		return entity.PermissionGranted
	case config.PolicyDeny:
		return entity.PermissionDenied
	default:
		return entity.PermissionPrompt
	}
}
