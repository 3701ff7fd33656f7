package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// StyleScore - количество очков, набранных одним стилем
type StyleScore struct {
	Style  string
	Points int
}

// StyleScores - упорядоченное отображение "стиль → очки".
//
// Используется и для весов ответа (stylePoints), и для итоговой суммы
// по попытке. Порядок элементов - порядок первого появления стиля,
// от него зависит разрешение ничьих при выборе рекомендованного стиля.
// В JSON сериализуется как объект с сохранением порядка ключей.
type StyleScores []StyleScore

// Get возвращает очки стиля
func (s StyleScores) Get(style string) (int, bool) {
	for _, sc := range s {
		if sc.Style == style {
			return sc.Points, true
		}
	}
	return 0, false
}

// Add прибавляет очки к стилю. Новый стиль добавляется в конец.
func (s *StyleScores) Add(style string, points int) {
	for i := range *s {
		if (*s)[i].Style == style {
			(*s)[i].Points += points
			return
		}
	}
	*s = append(*s, StyleScore{Style: style, Points: points})
}

// Set устанавливает очки стиля, сохраняя его позицию, если он уже есть
func (s *StyleScores) Set(style string, points int) {
	for i := range *s {
		if (*s)[i].Style == style {
			(*s)[i].Points = points
			return
		}
	}
	*s = append(*s, StyleScore{Style: style, Points: points})
}

// Map возвращает копию в виде обычной карты (порядок теряется)
func (s StyleScores) Map() map[string]int {
	m := make(map[string]int, len(s))
	for _, sc := range s {
		m[sc.Style] = sc.Points
	}
	return m
}

// Clone возвращает независимую копию
func (s StyleScores) Clone() StyleScores {
	if s == nil {
		return nil
	}
	out := make(StyleScores, len(s))
	copy(out, s)
	return out
}

// Validate проверяет веса ответа: имя стиля в каноническом виде, очки больше нуля
func (s StyleScores) Validate() error {
	for _, sc := range s {
		if sc.Style == "" || sc.Style != NormalizeStyleSlug(sc.Style) {
			return fmt.Errorf("invalid style name %q", sc.Style)
		}
		if sc.Points <= 0 {
			return fmt.Errorf("non-positive weight %d for %q", sc.Points, sc.Style)
		}
	}
	return nil
}

// MarshalJSON пишет JSON-объект в порядке элементов
func (s StyleScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sc := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sc.Style)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(sc.Points))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON читает JSON-объект, сохраняя порядок ключей.
// Повторяющийся ключ перезаписывает значение, позиция остается прежней.
func (s *StyleScores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("style scores: expected JSON object, got %v", tok)
	}

	result := StyleScores{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("style scores: unexpected key %v", keyTok)
		}
		var points float64
		if err := dec.Decode(&points); err != nil {
			return fmt.Errorf("style scores: invalid value for %q: %w", key, err)
		}
		if points != math.Trunc(points) || math.Abs(points) > math.MaxInt32 {
			return fmt.Errorf("style scores: value for %q must be an integer, got %v", key, points)
		}
		result.Set(key, int(points))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = result
	return nil
}

// Scan реализует sql.Scanner для JSONB-колонки
func (s *StyleScores) Scan(value interface{}) error {
	*s = StyleScores{}
	return scanJSONB(value, s)
}

// Value реализует driver.Valuer для JSONB-колонки
func (s StyleScores) Value() (driver.Value, error) {
	return s.MarshalJSON()
}
