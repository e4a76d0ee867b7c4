package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strings"
)

// Проверка подписи Telegram WebApp initData.
// Документация: https://core.telegram.org/bots/webapps#validating-data-received-via-the-mini-app

var (
	ErrMalformed  = errors.New("initdata: malformed input")
	ErrNoHash     = errors.New("initdata: hash field missing")
	ErrNoAuthDate = errors.New("initdata: auth_date missing or not a number")
)

// Fields — раскодированные пары initData. Ключи уникальны.
type Fields map[string]string

// Parse разбирает строку вида key=value&key=value (URL-encoded).
// Сегмент без '=', пустой ключ или битый percent-encoding — ErrMalformed.
// Дубликаты ключей: побеждает последнее значение. Пустые значения сохраняются.
func Parse(raw string) (Fields, error) {
	if raw == "" {
		return nil, ErrMalformed
	}
	fields := make(Fields)
	for _, seg := range strings.Split(raw, "&") {
		k, v, ok := strings.Cut(seg, "=")
		if !ok || k == "" {
			return nil, ErrMalformed
		}
		dk, err := url.QueryUnescape(k)
		if err != nil {
			return nil, ErrMalformed
		}
		dv, err := url.QueryUnescape(v)
		if err != nil {
			return nil, ErrMalformed
		}
		fields[dk] = dv
	}
	return fields, nil
}

// checkString собирает data_check_string: key=value по возрастанию ключей
// (байтовая сортировка), через \n, без hash и без завершающего \n.
func checkString(f Fields) string {
	keys := make([]string, 0, len(f))
	for k := range f {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+f[k])
	}
	return strings.Join(parts, "\n")
}

// CheckString — то же, но без hash сравнивать нечего: его отсутствие — ошибка.
func CheckString(f Fields) (string, error) {
	if _, ok := f["hash"]; !ok {
		return "", ErrNoHash
	}
	return checkString(f), nil
}

// SecretKey = HMAC-SHA256(key="WebAppData", message=botToken).
func SecretKey(botToken string) []byte {
	m := hmac.New(sha256.New, []byte("WebAppData"))
	m.Write([]byte(botToken))
	return m.Sum(nil)
}

// Sign подписывает набор полей так же, как Telegram: hex в нижнем регистре.
// Поле hash, если есть, игнорируется. Используется тестами и локальной выдачей.
func Sign(f Fields, botToken string) string {
	m := hmac.New(sha256.New, SecretKey(botToken))
	m.Write([]byte(checkString(f)))
	return hex.EncodeToString(m.Sum(nil))
}

// Verify проверяет подпись initData токеном бота.
// false без ошибки — подпись не сошлась; ErrMalformed/ErrNoHash — строка
// структурно не initData. Часы не участвуют: один и тот же вход всегда
// даёт один и тот же вердикт.
func Verify(raw, botToken string) (bool, error) {
	fields, err := Parse(raw)
	if err != nil {
		return false, err
	}
	dcs, err := CheckString(fields)
	if err != nil {
		return false, err
	}
	m := hmac.New(sha256.New, SecretKey(botToken))
	m.Write([]byte(dcs))
	want := m.Sum(nil)
	got, err := hex.DecodeString(fields["hash"])
	if err != nil {
		// не hex — совпасть не может
		return false, nil
	}
	// сравнение за константное время
	return hmac.Equal(want, got), nil
}
