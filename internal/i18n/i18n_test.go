package i18n

import (
	"testing"

	"github.com/oaworkspace/oaclient/internal/core/domain"
)

func TestT_Languages(t *testing.T) {
	if got := T(domain.LanguageEnglish, KeyLoginFailed); got != "Login failed" {
		t.Fatalf("unexpected en text: %q", got)
	}
	if got := T(domain.LanguageChinese, KeyLoginFailed); got != "登录失败" {
		t.Fatalf("unexpected zh text: %q", got)
	}
}

func TestT_Fallbacks(t *testing.T) {
	if got := T(domain.Language("fr"), KeyNetworkError); got != "Network Error" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	if got := T(domain.LanguageEnglish, "no.such.key"); got != "no.such.key" {
		t.Fatalf("expected key echo, got %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[domain.UserStatus]string{
		domain.UserStatusActive:   "Active",
		domain.UserStatusOnLeave:  "On Leave",
		domain.UserStatusInactive: "Inactive",
		domain.UserStatus(9):      "Inactive",
	}
	for status, want := range cases {
		if got := StatusLabel(domain.LanguageEnglish, status); got != want {
			t.Fatalf("status %d: expected %q, got %q", status, want, got)
		}
	}
}

func TestOfflineNotice(t *testing.T) {
	want := "Backend Connection Failed: The application is running in Mock Mode."
	if got := OfflineNotice(domain.LanguageEnglish); got != want {
		t.Fatalf("OfflineNotice(en) = %q, want %q", got, want)
	}
	if got := OfflineNotice(domain.LanguageChinese); got != "后端连接失败: 系统正在运行于演示模式 (Mock Mode)。" {
		t.Fatalf("unexpected zh notice: %q", got)
	}
}

func TestMatch(t *testing.T) {
	cases := map[string]domain.Language{
		"en":      domain.LanguageEnglish,
		"en-GB":   domain.LanguageEnglish,
		"zh":      domain.LanguageChinese,
		"zh-CN":   domain.LanguageChinese,
		"zh_Hans": domain.LanguageChinese,
	}
	for in, want := range cases {
		got, ok := Match(in)
		if !ok || got != want {
			t.Errorf("Match(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "fr", "not a tag"} {
		if got, ok := Match(in); ok {
			t.Errorf("Match(%q) = %q, want no match", in, got)
		}
	}
}
