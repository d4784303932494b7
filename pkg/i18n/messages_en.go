package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// generic
	message.SetString(lang, "error.unauthenticated", "Authentication required")
	message.SetString(lang, "error.forbidden", "You are not allowed to perform this action")
	message.SetString(lang, "error.not_found", "Not found")
	message.SetString(lang, "error.internal", "Internal server error")
	message.SetString(lang, "error.upstream", "The server could not complete the request")
	message.SetString(lang, "error.invalid_body", "Invalid request body")
	message.SetString(lang, "error.missing_permission", "You do not have permission to perform this action")

	// messaging
	message.SetString(lang, "error.conversation_id_required", "Conversation id is required")
	message.SetString(lang, "error.not_participant", "You do not have access to this conversation")
	message.SetString(lang, "error.user_id_required", "User id is required")
	message.SetString(lang, "error.invalid_user_id", "User id is not valid")
	message.SetString(lang, "error.invalid_message_id", "Message id is not valid")
	message.SetString(lang, "error.cannot_block_self", "You cannot block yourself")
	message.SetString(lang, "error.reported_user_required", "Reported user is required")
	message.SetString(lang, "error.report_reason_required", "A reason is required")
	message.SetString(lang, "error.cannot_report_self", "You cannot report yourself")

	// status
	message.SetString(lang, "error.status_id_required", "Status id is required")
	message.SetString(lang, "error.status_not_found", "Status not found")

	// member
	message.SetString(lang, "error.invalid_credentials", "Invalid email or password")
	message.SetString(lang, "error.login_not_allowed", "Login is not allowed: %s")
	message.SetString(lang, "error.email_password_required", "Email and password are required")

	// admin
	message.SetString(lang, "error.invalid_penalty", "Penalty type and reason are required")
	message.SetString(lang, "error.invalid_suspension", "Suspension reason and a positive number of days are required")
	message.SetString(lang, "error.role_required", "Role is required")

	// sms
	message.SetString(lang, "sms.suspended", "Your Qsite account was suspended for %d days. Reason: %s")
	message.SetString(lang, "sms.penalty", "A %s penalty was applied to your Qsite account. Reason: %s")
}
