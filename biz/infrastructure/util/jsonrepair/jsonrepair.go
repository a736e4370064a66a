// Package jsonrepair 从带噪声的文本中修复并提取JSON负载
// 导入来源包括手工编辑的文件、AI输出和客户端拼接的分块下载
// 每个修复步骤都是独立的纯函数 便于单独测试和扩展
package jsonrepair

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const snippetRadius = 50

var (
	ErrNoRoot    = errors.New("invalid format: no JSON root ({ or [) detected")
	ErrNoClosing = errors.New("invalid format: closing character not found")
)

// trailingComma 匹配收尾括号前的多余逗号
var trailingComma = regexp.MustCompile(`,(\s*[\]}])`)

// StripInvisible 去除控制字符/零宽字符/BOM
// 这些字符常在复制粘贴时混入
func StripInvisible(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 0x00 && r <= 0x08,
			r == 0x0B, r == 0x0C,
			r >= 0x0E && r <= 0x1F,
			r >= 0x7F && r <= 0x9F,
			r >= 0x200B && r <= 0x200D,
			r == 0xFEFF:
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Bound 定位JSON边界 取第一个根符号到最后一个匹配收尾符之间的子串
// 取最后一个收尾符可以容忍负载之后附加的日志行等垃圾
func Bound(s string) (string, error) {
	firstBrace := strings.Index(s, "{")
	firstBracket := strings.Index(s, "[")

	start := -1
	closer := ""
	if firstBrace != -1 && (firstBracket == -1 || firstBrace < firstBracket) {
		start = firstBrace
		closer = "}"
	} else if firstBracket != -1 {
		start = firstBracket
		closer = "]"
	}
	if start == -1 {
		return "", ErrNoRoot
	}

	last := strings.LastIndex(s, closer)
	if last == -1 || last <= start {
		return "", fmt.Errorf("%w: expected '%s'", ErrNoClosing, closer)
	}
	return s[start : last+1], nil
}

// StripTrailingCommas 去除 ]} 前的尾随逗号
// 这是导出文件最常见的畸形形态
func StripTrailingCommas(s string) string {
	return trailingComma.ReplaceAllString(s, "$1")
}

// Repair 组合 strip → bound → de-comma 三个修复步骤
func Repair(raw string) (string, error) {
	cleaned := StripInvisible(raw)
	bounded, err := Bound(cleaned)
	if err != nil {
		return "", err
	}
	return StripTrailingCommas(bounded), nil
}

// Parse 标准JSON解析 失败时带上出错位置前后的上下文片段
// 片段是运维排查坏导入的主要线索 只要拿得到位置就必须给出
func Parse(s string) (any, error) {
	var data any
	if err := json.Unmarshal([]byte(s), &data); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			pos := int(syntaxErr.Offset)
			return nil, fmt.Errorf("data format error near position %d. check for hidden characters or truncation. snippet: \"...%s...\"",
				pos, Snippet(s, pos))
		}
		return nil, err
	}
	return data, nil
}

// Snippet 截取位置前后各50字符
func Snippet(s string, pos int) string {
	start := pos - snippetRadius
	if start < 0 {
		start = 0
	}
	end := pos + snippetRadius
	if end > len(s) {
		end = len(s)
	}
	if start > len(s) {
		start = len(s)
	}
	return s[start:end]
}
