package util

import "strings"

const (
	KakaoSeeMorePadding = 500
	KakaoZeroWidthSpace = "\u200b"
)

// SeeMore keeps header visible and folds body behind KakaoTalk's "전체보기" by
// padding with zero-width spaces. A copy of header at the top of body is dropped.
func SeeMore(header, body string) string {
	if strings.TrimSpace(body) == "" {
		return body
	}
	header = strings.TrimSpace(header)
	body = StripLeadingHeader(body, header)

	var b strings.Builder
	b.Grow(len(header) + len(body) + KakaoSeeMorePadding*len(KakaoZeroWidthSpace) + 1)
	b.WriteString(header)
	b.WriteString(strings.Repeat(KakaoZeroWidthSpace, KakaoSeeMorePadding))
	if !strings.HasPrefix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(body)
	return b.String()
}

// 첫 줄에 중복된 헤더가 있으면 제거한다.
func StripLeadingHeader(text, header string) string {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(header) == "" {
		return text
	}
	if !strings.HasPrefix(text, header) {
		return text
	}
	rest := strings.TrimPrefix(text, header)
	for _, nl := range []string{"\r\n\r\n", "\n\n", "\r\n", "\n"} {
		if strings.HasPrefix(rest, nl) {
			return strings.TrimPrefix(rest, nl)
		}
	}
	return rest
}
