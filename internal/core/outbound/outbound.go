// Package outbound defines the send-side collaborators the pipeline invokes
// for approved actions. Live transports (Gmail, LinkedIn) are external to
// this system; the interfaces here are the seam, and the dry-run
// implementations are the only ones shipped.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Receipt is the synthetic or real acknowledgement of a send/post action.
type Receipt struct {
	ID       string `json:"message_id"`
	Status   string `json:"status"`
	SentAt   string `json:"sent_at,omitempty"`
	PostedAt string `json:"posted_at,omitempty"`
	Mode     string `json:"mode"`
}

// Mailer sends an email on behalf of the pipeline.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) (Receipt, error)
}

// Poster publishes a social post on behalf of the pipeline.
type Poster interface {
	Post(ctx context.Context, content string) (Receipt, error)
}

// DryRunMailer performs no network action and returns a synthetic success.
type DryRunMailer struct {
	Log zerolog.Logger
}

func (m DryRunMailer) Send(_ context.Context, to, subject, _ string) (Receipt, error) {
	m.Log.Info().
		Str("to", to).
		Str("subject", subject).
		Msg("[dry run] email send simulated")

	return Receipt{
		ID:     uuid.NewString(),
		Status: "sent",
		SentAt: time.Now().Format(time.RFC3339),
		Mode:   "dry_run",
	}, nil
}

// DryRunPoster performs no network action and returns a synthetic success.
type DryRunPoster struct {
	Log zerolog.Logger
}

func (p DryRunPoster) Post(_ context.Context, content string) (Receipt, error) {
	preview := content
	if len(preview) > 80 {
		preview = preview[:80]
	}
	p.Log.Info().
		Str("preview", preview).
		Int("chars", len(content)).
		Msg("[dry run] social post simulated")

	return Receipt{
		ID:       uuid.NewString(),
		Status:   "posted",
		PostedAt: time.Now().Format(time.RFC3339),
		Mode:     "dry_run",
	}, nil
}
