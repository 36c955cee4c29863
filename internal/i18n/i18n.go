package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 支持的语言
const (
	LocaleEnUS    = "en-US"
	LocaleZhCN    = "zh-CN"
	DefaultLocale = LocaleEnUS
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.SimplifiedChinese}
	matcher       = language.NewMatcher(supportedTags)
)

// ResolveLocale 解析请求语言：query 参数 lang 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if cached, ok := c.Get("locale"); ok {
		if locale, ok := cached.(string); ok && locale != "" {
			return locale
		}
	}
	locale := MatchLocale(c.Query("lang"), c.GetHeader("Accept-Language"))
	c.Set("locale", locale)
	return locale
}

// MatchLocale 按优先级匹配语言，无法识别时回退到默认语言
func MatchLocale(candidates ...string) string {
	filtered := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			filtered = append(filtered, candidate)
		}
	}
	if len(filtered) == 0 {
		return DefaultLocale
	}
	tag, _ := language.MatchStrings(matcher, filtered...)
	base, _ := tag.Base()
	if base.String() == "zh" {
		return LocaleZhCN
	}
	return LocaleEnUS
}

// T 获取翻译文案，缺失时回退默认语言，再缺失返回 key 本身
func T(locale, key string) string {
	if msgs, ok := catalogs[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 获取带参数的翻译文案
func Sprintf(locale, key string, args ...interface{}) string {
	tag := language.AmericanEnglish
	if locale == LocaleZhCN {
		tag = language.SimplifiedChinese
	}
	return message.NewPrinter(tag).Sprintf(T(locale, key), args...)
}
