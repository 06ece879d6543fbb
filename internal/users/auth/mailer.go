// Copyright (c) 2026 Manov. All rights reserved.
// Author: contact@manov.app

package auth

import (
	"context"
	"log/slog"
)

// # Outbound Delivery

// Mailer delivers account lifecycle tokens to the user's email address.
//
// The deployment does not ship an email provider, so the contract stays
// narrow: one call per token kind, fire-and-forget from the service's
// point of view.
type Mailer interface {

	/*
		SendVerification delivers an email verification token.

		Parameters:
		  - context: context.Context
		  - email: string (Recipient address)
		  - token: string (Verification token to embed in the link)

		Returns:
		  - error: Delivery failures
	*/
	SendVerification(context context.Context, email, token string) error

	/*
		SendPasswordReset delivers a password reset token.

		Parameters:
		  - context: context.Context
		  - email: string (Recipient address)
		  - token: string (Reset token to embed in the link)

		Returns:
		  - error: Delivery failures
	*/
	SendPasswordReset(context context.Context, email, token string) error
}

// LogMailer is the stand-in [Mailer] used while no email provider is
// configured. It records the delivery as a structured log event so that
// operators (and local development flows) can pick the token up from the
// log stream and complete the verification or reset manually.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a [LogMailer] writing to the given logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendVerification logs the verification token instead of emailing it.
func (mailer *LogMailer) SendVerification(context context.Context, email, token string) error {
	mailer.logger.InfoContext(context, "verification_email_queued",
		slog.String("email", email),
		slog.String("token", token),
	)
	return nil
}

// SendPasswordReset logs the reset token instead of emailing it.
func (mailer *LogMailer) SendPasswordReset(context context.Context, email, token string) error {
	mailer.logger.InfoContext(context, "password_reset_email_queued",
		slog.String("email", email),
		slog.String("token", token),
	)
	return nil
}
