package core

import (
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
)

// user-facing message keys
const (
	MsgRequestFailed      = "request_failed"
	MsgLoginFailed        = "login_failed"
	MsgMissingToken       = "missing_token"
	MsgRegisterFailed     = "register_failed"
	MsgSuspendedComment   = "suspended_comment"
	MsgSuspendedPurchase  = "suspended_purchase"
	MsgCommentFailed      = "comment_failed"
	MsgPurchaseFailed     = "purchase_failed"
	MsgLessonFailed       = "lesson_failed"
	MsgLessonCompleted    = "lesson_completed"
	MsgLessonCreateFailed = "lesson_create_failed"
	MsgQuestionsFailed    = "questions_failed"
	MsgPermissionsUpdated = "permissions_updated"
	MsgPermissionsFailed  = "permissions_failed"
	MsgWalletFailed       = "wallet_failed"
)

var messageTexts = map[string]map[string]string{
	"en": {
		MsgRequestFailed:      "Something went wrong, please try again.",
		MsgLoginFailed:        "An error occurred while logging in.",
		MsgMissingToken:       "Failed to obtain an access token.",
		MsgRegisterFailed:     "An error occurred while registering.",
		MsgSuspendedComment:   "Your account is suspended. You cannot post comments.",
		MsgSuspendedPurchase:  "Your account is suspended. You cannot purchase courses.",
		MsgCommentFailed:      "Failed to post comment.",
		MsgPurchaseFailed:     "Failed to purchase courses.",
		MsgLessonFailed:       "An error occurred while completing the lesson.",
		MsgLessonCompleted:    "Lesson completed successfully.",
		MsgLessonCreateFailed: "Failed to create lesson.",
		MsgQuestionsFailed:    "Failed to save questions.",
		MsgPermissionsUpdated: "Admin permissions updated successfully.",
		MsgPermissionsFailed:  "An error occurred while updating permissions.",
		MsgWalletFailed:       "The wallet operation failed.",
	},
	"ar": {
		MsgRequestFailed:      "حدث خطأ ما، يرجى المحاولة مرة أخرى",
		MsgLoginFailed:        "حدث خطأ أثناء تسجيل الدخول",
		MsgMissingToken:       "فشل الحصول على رمز الدخول",
		MsgRegisterFailed:     "حدث خطأ أثناء التسجيل",
		MsgSuspendedComment:   "حسابك موقوف. لا يمكنك نشر التعليقات",
		MsgSuspendedPurchase:  "حسابك موقوف. لا يمكنك شراء الدورات",
		MsgCommentFailed:      "فشل نشر التعليق",
		MsgPurchaseFailed:     "فشل شراء الدورات",
		MsgLessonFailed:       "حدث خطأ أثناء إكمال الدرس",
		MsgLessonCompleted:    "تم إكمال الدرس بنجاح",
		MsgLessonCreateFailed: "فشل إنشاء الدرس",
		MsgQuestionsFailed:    "فشل حفظ الأسئلة",
		MsgPermissionsUpdated: "تم تحديث صلاحيات المسؤول بنجاح",
		MsgPermissionsFailed:  "حدث خطأ أثناء تحديث الصلاحيات",
		MsgWalletFailed:       "فشلت عملية المحفظة",
	},
}

// Messages translates user-facing messages into the configured locale.
type Messages struct {
	trans ut.Translator
}

// NewMessages returns the Messages for locale ("en" or "ar").
func NewMessages(locale string) (*Messages, error) {
	_en := en.New()
	uni := ut.New(_en, _en, ar.New())

	trans, found := uni.GetTranslator(locale)
	if !found {
		return nil, errors.Errorf("unsupported locale %q", locale)
	}
	texts, ok := messageTexts[trans.Locale()]
	if !ok {
		texts = messageTexts["en"]
	}
	for key, text := range texts {
		if err := trans.Add(key, text, false); err != nil {
			return nil, errors.Wrapf(err, "adding message %q", key)
		}
	}
	return &Messages{trans: trans}, nil
}

// Locale returns the locale messages are translated into.
func (m *Messages) Locale() string {
	if m == nil {
		return "en"
	}
	return m.trans.Locale()
}

// Get returns the translated message for key, or key itself when unknown.
func (m *Messages) Get(key string) string {
	if m == nil {
		return messageTexts["en"][key]
	}
	s, err := m.trans.T(key)
	if err != nil || s == "" {
		return key
	}
	return s
}
