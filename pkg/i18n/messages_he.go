package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Hebrew

	message.SetString(lang, "error.unauthenticated", "נדרשת התחברות")
	message.SetString(lang, "error.forbidden", "אין לך הרשאה לבצע פעולה זו")
	message.SetString(lang, "error.not_found", "לא נמצא")
	message.SetString(lang, "error.internal", "שגיאת שרת פנימית")
	message.SetString(lang, "error.upstream", "השרת לא הצליח להשלים את הבקשה")
	message.SetString(lang, "error.invalid_body", "גוף הבקשה אינו תקין")
	message.SetString(lang, "error.missing_permission", "אין לך הרשאה לבצע פעולה זו")

	message.SetString(lang, "error.conversation_id_required", "נדרש מזהה שיחה")
	message.SetString(lang, "error.not_participant", "אין לך גישה לשיחה זו")
	message.SetString(lang, "error.user_id_required", "נדרש מזהה משתמש")
	message.SetString(lang, "error.invalid_user_id", "מזהה משתמש לא תקין")
	message.SetString(lang, "error.invalid_message_id", "מזהה הודעה לא תקין")
	message.SetString(lang, "error.cannot_block_self", "לא ניתן לחסום את עצמך")
	message.SetString(lang, "error.reported_user_required", "נדרש משתמש מדווח")
	message.SetString(lang, "error.report_reason_required", "נדרשת סיבה")
	message.SetString(lang, "error.cannot_report_self", "לא ניתן לדווח על עצמך")

	message.SetString(lang, "error.status_id_required", "נדרש מזהה סטטוס")
	message.SetString(lang, "error.status_not_found", "הסטטוס לא נמצא")

	message.SetString(lang, "error.invalid_credentials", "אימייל או סיסמה שגויים")
	message.SetString(lang, "error.login_not_allowed", "ההתחברות אינה מותרת: %s")
	message.SetString(lang, "error.email_password_required", "נדרשים אימייל וסיסמה")

	message.SetString(lang, "error.invalid_penalty", "נדרשים סוג עונש וסיבה")
	message.SetString(lang, "error.invalid_suspension", "נדרשים סיבת השעיה ומספר ימים חיובי")
	message.SetString(lang, "error.role_required", "נדרש תפקיד")

	message.SetString(lang, "sms.suspended", "חשבון ה-Qsite שלך הושעה ל-%d ימים. סיבה: %s")
	message.SetString(lang, "sms.penalty", "הוטל עונש מסוג %s על חשבון ה-Qsite שלך. סיבה: %s")
}
