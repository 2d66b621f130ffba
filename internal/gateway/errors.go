package gateway

import "encoding/json"

// normalizeRemoteMessage извлекает человекочитаемое сообщение из тела
// ошибки удалённого API. Поддерживаются три наблюдаемых формата:
//
//	{"detail": "текст"}
//	{"поле": ["текст", ...], ...}
//	["текст", ...]
//
// Для нераспознанного тела возвращается пустая строка,
// вызывающая сторона подставит общее сообщение.
func normalizeRemoteMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(raw, &object); err == nil {
		if detail, ok := object["detail"]; ok {
			if msg := asString(detail); msg != "" {
				return msg
			}
		}
		// Объект ошибок по полям: берём первое сообщение первого поля.
		for _, value := range object {
			if msg := firstString(value); msg != "" {
				return msg
			}
		}
		return ""
	}

	var array []json.RawMessage
	if err := json.Unmarshal(raw, &array); err == nil && len(array) > 0 {
		return firstString(raw)
	}

	return ""
}

// asString декодирует JSON-строку, иначе возвращает пустую строку.
func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// firstString достаёт первую строку из значения: саму строку,
// первый элемент массива строк или detail вложенного объекта.
func firstString(raw json.RawMessage) string {
	if s := asString(raw); s != "" {
		return s
	}

	var array []json.RawMessage
	if err := json.Unmarshal(raw, &array); err == nil {
		for _, item := range array {
			if s := asString(item); s != "" {
				return s
			}
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(item, &nested); err == nil {
				if detail, ok := nested["detail"]; ok {
					if s := asString(detail); s != "" {
						return s
					}
				}
			}
		}
	}
	return ""
}
