// Package i18n holds the en/zh message catalog for texts the client core
// surfaces to users.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
)

const (
	KeyAppName         = "app.name"
	KeyLoading         = "common.loading"
	KeySuccess         = "common.success"
	KeyError           = "common.error"
	KeyNetworkError    = "common.networkError"
	KeyLoginFailed     = "auth.loginFailed"
	KeyNoToken         = "auth.noToken"
	KeySignInOK        = "dash.signInOk"
	KeySignOutOK       = "dash.signOutOk"
	KeyOperationFailed = "dash.operationFailed"
	KeyBackendOffline  = "dash.backendOffline"
	KeyMockMode        = "dash.mockMode"
	KeyLeaveSuccess    = "leave.success"
	KeyStatusActive    = "emp.status.active"
	KeyStatusLeave     = "emp.status.leave"
	KeyStatusInactive  = "emp.status.inactive"
)

var messages = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		KeyAppName:         "Enterprise OA System",
		KeyLoading:         "Loading...",
		KeySuccess:         "Success",
		KeyError:           "Error",
		KeyNetworkError:    "Network Error",
		KeyLoginFailed:     "Login failed",
		KeyNoToken:         "Login succeeded but no token was received.",
		KeySignInOK:        "Sign in successful",
		KeySignOutOK:       "Sign out successful",
		KeyOperationFailed: "Operation failed",
		KeyBackendOffline:  "Backend Connection Failed",
		KeyMockMode:        "The application is running in Mock Mode.",
		KeyLeaveSuccess:    "Leave application submitted successfully.",
		KeyStatusActive:    "Active",
		KeyStatusLeave:     "On Leave",
		KeyStatusInactive:  "Inactive",
	},
	domain.LanguageChinese: {
		KeyAppName:         "企业 OA 系统",
		KeyLoading:         "加载中...",
		KeySuccess:         "成功",
		KeyError:           "错误",
		KeyNetworkError:    "网络错误",
		KeyLoginFailed:     "登录失败",
		KeyNoToken:         "登录成功，但未收到令牌。",
		KeySignInOK:        "签到成功",
		KeySignOutOK:       "签退成功",
		KeyOperationFailed: "操作失败",
		KeyBackendOffline:  "后端连接失败",
		KeyMockMode:        "系统正在运行于演示模式 (Mock Mode)。",
		KeyLeaveSuccess:    "请假申请提交成功",
		KeyStatusActive:    "在职",
		KeyStatusLeave:     "休假中",
		KeyStatusInactive:  "离职",
	},
}

var tags = map[domain.Language]language.Tag{
	domain.LanguageEnglish: language.English,
	domain.LanguageChinese: language.Chinese,
}

var (
	supported = []domain.Language{domain.LanguageEnglish, domain.LanguageChinese}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Chinese})
	printers  = newPrinters()
)

func newPrinters() map[domain.Language]*message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for lang, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tags[lang], key, msg); err != nil {
				panic("i18n: " + err.Error())
			}
		}
	}
	out := make(map[domain.Language]*message.Printer, len(tags))
	for lang, tag := range tags {
		out[lang] = message.NewPrinter(tag, message.Catalog(b))
	}
	return out
}

// T returns the text for key in lang. Unsupported languages read as
// English; unknown keys come back unchanged.
func T(lang domain.Language, key string) string {
	p, ok := printers[lang]
	if !ok {
		p = printers[domain.LanguageEnglish]
	}
	return p.Sprintf(message.Key(key, key))
}

// Match maps a language tag such as "zh-CN", "zh_Hans" or "en-GB" to a
// supported UI language.
func Match(s string) (domain.Language, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return supported[idx], true
}

// StatusLabel returns the badge text for a user status.
func StatusLabel(lang domain.Language, s domain.UserStatus) string {
	return T(lang, "emp.status."+s.String())
}

// OfflineNotice is the banner shown while the client serves fallback data.
func OfflineNotice(lang domain.Language) string {
	return T(lang, KeyBackendOffline) + ": " + T(lang, KeyMockMode)
}
