package textutil

import "strings"

// StripMarkdown flattens LLM output to plain text: fenced code blocks are
// dropped, emphasis markers and inline code ticks removed, headers unwrapped,
// links reduced to their text, and list markers normalized to "•".
func StripMarkdown(text string) string {
	text = dropFencedBlocks(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = rewriteLine(line)
	}
	text = strings.Join(lines, "\n")

	text = unwrapLinks(text)
	for _, marker := range []string{"**", "__", "`", "*"} {
		text = strings.ReplaceAll(text, marker, "")
	}
	text = stripItalicUnderscores(text)

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}

func rewriteLine(line string) string {
	if strings.HasPrefix(line, "#") {
		stripped := strings.TrimLeft(line, "#")
		if strings.HasPrefix(stripped, " ") {
			return strings.TrimLeft(stripped, " ")
		}
		return line
	}

	trimmed := strings.TrimLeft(line, " \t")
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(trimmed, marker) {
			return "• " + trimmed[len(marker):]
		}
	}

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(trimmed) && trimmed[digits] == '.' && trimmed[digits+1] == ' ' {
		return strings.TrimLeft(trimmed[digits+2:], " ")
	}

	return line
}

// stripItalicUnderscores removes _italic_ pairs. The opening underscore must
// start a word and the closing one must end it, so snake_case keys like
// customers_total pass through untouched.
func stripItalicUnderscores(text string) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '_' {
			out.WriteByte(c)
			i++
			continue
		}
		openOK := (i == 0 || !isAlphaNum(text[i-1])) &&
			i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '_'
		if !openOK {
			out.WriteByte(c)
			i++
			continue
		}
		j := strings.IndexByte(text[i+1:], '_')
		if j < 0 {
			out.WriteByte(c)
			i++
			continue
		}
		j += i + 1
		closeOK := text[j-1] != ' ' && (j+1 >= len(text) || !isAlphaNum(text[j+1]))
		if !closeOK {
			out.WriteByte(c)
			i++
			continue
		}
		out.WriteString(text[i+1 : j])
		i = j + 1
	}
	return out.String()
}

func dropFencedBlocks(text string) string {
	for {
		open := strings.Index(text, "```")
		if open < 0 {
			return text
		}
		close := strings.Index(text[open+3:], "```")
		if close < 0 {
			return text
		}
		text = text[:open] + text[open+3+close+3:]
	}
}

func unwrapLinks(text string) string {
	var out strings.Builder
	for {
		open := strings.Index(text, "[")
		if open < 0 {
			break
		}
		mid := strings.Index(text[open:], "](")
		if mid < 0 {
			break
		}
		end := strings.Index(text[open+mid:], ")")
		if end < 0 {
			break
		}
		out.WriteString(text[:open])
		out.WriteString(text[open+1 : open+mid])
		text = text[open+mid+end+1:]
	}
	out.WriteString(text)
	return out.String()
}
