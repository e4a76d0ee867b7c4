package initdata

import "time"

// Значения по умолчанию; настраиваются через cfg.
const (
	DefaultMaxAge     = 24 * time.Hour
	DefaultFutureSkew = 5 * time.Minute
	DefaultMaxLen     = 4096
)

// Verifier связывает токен бота и политику свежести. Токен передаётся
// явно при создании, не читается из глобального состояния. Все методы
// чистые и безопасны для конкурентных вызовов.
type Verifier struct {
	Token      string
	MaxAge     time.Duration
	FutureSkew time.Duration
	MaxLen     int // ограничение длины raw до парсинга; <=0 — без лимита

	Now func() time.Time // инжектируемые часы, по умолчанию time.Now
}

func New(token string) *Verifier {
	return &Verifier{
		Token:      token,
		MaxAge:     DefaultMaxAge,
		FutureSkew: DefaultFutureSkew,
		MaxLen:     DefaultMaxLen,
		Now:        time.Now,
	}
}

func (v *Verifier) bound(raw string) error {
	if v.MaxLen > 0 && len(raw) > v.MaxLen {
		return ErrMalformed
	}
	return nil
}

// Verify — подпись. См. Verify пакета.
func (v *Verifier) Verify(raw string) (bool, error) {
	if err := v.bound(raw); err != nil {
		return false, err
	}
	return Verify(raw, v.Token)
}

// IsRecent — свежесть auth_date. См. IsRecent пакета.
func (v *Verifier) IsRecent(raw string) (bool, error) {
	if err := v.bound(raw); err != nil {
		return false, err
	}
	now := v.Now
	if now == nil {
		now = time.Now
	}
	return IsRecent(raw, v.MaxAge, v.FutureSkew, now())
}
