package service

import (
	"strings"
	"unicode/utf8"
)

const summaryLimit = 120

// summarizeContent 去掉常见 markdown 符号后截取前 120 个字符作为摘要。
func summarizeContent(markdown string) string {
	replacer := strings.NewReplacer(
		"#", " ",
		"*", " ",
		"`", " ",
		"_", " ",
		">", " ",
		"[", " ",
		"]", " ",
		"(", " ",
		")", " ",
	)
	plain := strings.Join(strings.Fields(replacer.Replace(markdown)), " ")
	if plain == "" {
		return ""
	}

	if utf8.RuneCountInString(plain) <= summaryLimit {
		return plain
	}

	runes := []rune(plain)
	return string(runes[:summaryLimit]) + "…"
}
