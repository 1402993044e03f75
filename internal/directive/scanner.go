package directive

import (
	"strconv"
	"strings"
)

// Маркеры мини-языка управляющих тегов в ответе модели.
const (
	openTag       = "<<<"
	closeTag      = ">>>"
	keywordUpdate = "UPDATE"
	keywordRoll   = "ROLL"
)

// Kind - тип директивы.
type Kind int

const (
	KindRoll Kind = iota + 1
	KindUpdate
)

func (k Kind) String() string {
	switch k {
	case KindRoll:
		return "roll"
	case KindUpdate:
		return "update"
	}
	return "unknown"
}

// Token - структурно корректная директива, найденная в тексте.
// Start/End - байтовые смещения всего фрагмента от "<<<" до ">>>" включительно.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Sides int    // для ROLL
	Body  string // для UPDATE: текст JSON-объекта вместе с фигурными скобками
}

// Next ищет следующую директиву заданного типа, начиная с позиции from.
// Сканер двухшаговый: находит "<<<", классифицирует по ключевому слову и ищет закрывающий ">>>".
// Всё, что не сложилось в корректную директиву, пропускается и остается в тексте как есть.
func Next(text string, from int, kind Kind) (Token, bool) {
	pos := from
	for pos < len(text) {
		i := strings.Index(text[pos:], openTag)
		if i < 0 {
			return Token{}, false
		}
		start := pos + i
		rest := text[start+len(openTag):]

		switch {
		case kind == KindRoll && strings.HasPrefix(rest, keywordRoll):
			if tok, ok := scanRoll(text, start); ok {
				return tok, true
			}
		case kind == KindUpdate && strings.HasPrefix(rest, keywordUpdate):
			if tok, ok := scanUpdate(text, start); ok {
				return tok, true
			}
		}
		pos = start + 1
	}
	return Token{}, false
}

// All возвращает все директивы заданного типа слева направо.
func All(text string, kind Kind) []Token {
	var out []Token
	pos := 0
	for {
		tok, ok := Next(text, pos, kind)
		if !ok {
			return out
		}
		out = append(out, tok)
		pos = tok.End
	}
}

// scanRoll разбирает "<<<ROLL dN>>>". N - положительное целое.
func scanRoll(text string, start int) (Token, bool) {
	p := start + len(openTag) + len(keywordRoll)
	q := skipSpace(text, p)
	if q == p || q >= len(text) || text[q] != 'd' {
		return Token{}, false
	}
	q++
	digitsStart := q
	for q < len(text) && text[q] >= '0' && text[q] <= '9' {
		q++
	}
	if q == digitsStart {
		return Token{}, false
	}
	sides, err := strconv.Atoi(text[digitsStart:q])
	if err != nil || sides <= 0 {
		return Token{}, false
	}
	q = skipSpace(text, q)
	if !strings.HasPrefix(text[q:], closeTag) {
		return Token{}, false
	}
	return Token{Kind: KindRoll, Start: start, End: q + len(closeTag), Sides: sides}, true
}

// scanUpdate разбирает "<<<UPDATE {json}>>>".
// Тело заканчивается на первой "}", за которой (через пробелы) идет ">>>",
// поэтому вложенные объекты внутри JSON допустимы.
func scanUpdate(text string, start int) (Token, bool) {
	p := skipSpace(text, start+len(openTag)+len(keywordUpdate))
	if p >= len(text) || text[p] != '{' {
		return Token{}, false
	}
	for j := p + 1; j < len(text); j++ {
		if text[j] != '}' {
			continue
		}
		k := skipSpace(text, j+1)
		if strings.HasPrefix(text[k:], closeTag) {
			return Token{
				Kind:  KindUpdate,
				Start: start,
				End:   k + len(closeTag),
				Body:  text[p : j+1],
			}, true
		}
	}
	return Token{}, false
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			i++
		default:
			return i
		}
	}
	return i
}
