package initdata

import (
	"strconv"
	"time"
)

// IsRecent проверяет возраст auth_date: now - auth_date <= maxAge.
// Политика для будущих меток: auth_date впереди now больше, чем на skew, —
// вердикт false (не ошибка); в пределах skew метка считается свежей
// (рассинхрон часов issuer/verifier). Отсутствующий или нечисловой
// auth_date — ErrNoAuthDate. Часы инжектируются параметром now.
func IsRecent(raw string, maxAge, skew time.Duration, now time.Time) (bool, error) {
	fields, err := Parse(raw)
	if err != nil {
		return false, err
	}
	s, ok := fields["auth_date"]
	if !ok {
		return false, ErrNoAuthDate
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false, ErrNoAuthDate
	}
	issued := time.Unix(sec, 0)
	if issued.After(now.Add(skew)) {
		return false, nil
	}
	return now.Sub(issued) <= maxAge, nil
}
