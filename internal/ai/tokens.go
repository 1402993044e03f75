package ai

import (
	"sync"

	"dm-server/internal/models"

	"github.com/pkoukk/tiktoken-go"
)

const estimateEncoding = "cl100k_base"

// TokenEstimator оценивает размер промпта до отправки.
// Оценка приблизительная: у Anthropic свой токенизатор, cl100k_base дает порядок величины.
type TokenEstimator struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
	err  error
}

// NewTokenEstimator создает оценщик. Словарь загружается лениво при первом вызове.
func NewTokenEstimator() *TokenEstimator {
	return &TokenEstimator{}
}

// Count возвращает оценку числа токенов промпта или ошибку, если словарь недоступен.
func (e *TokenEstimator) Count(p models.Prompt) (int, error) {
	e.once.Do(func() {
		e.enc, e.err = tiktoken.GetEncoding(estimateEncoding)
	})
	if e.err != nil {
		return 0, e.err
	}
	n := len(e.enc.Encode(p.System, nil, nil))
	for _, t := range p.Turns {
		n += len(e.enc.Encode(t.Content, nil, nil))
	}
	return n, nil
}
