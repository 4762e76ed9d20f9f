// internal/types/types.go
package types

// EntityID — уникальный идентификатор сущности симуляции.
type EntityID uint64

// IDSource выдаёт монотонно растущие идентификаторы.
// Нулевое значение готово к работе, первый выданный ID равен 1.
type IDSource struct {
	last EntityID
}

// Next возвращает следующий свободный идентификатор.
func (s *IDSource) Next() EntityID {
	s.last++
	return s.last
}

// Reset сбрасывает счётчик (новая игра).
func (s *IDSource) Reset() {
	s.last = 0
}
