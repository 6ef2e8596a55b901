package optimistic

// State - подтвержденное сервером значение и ожидающее подтверждения изменение.
// Ошибка сохранения возвращает текущее значение к подтвержденному.
type State[T any] struct {
	confirmed T
	pending   *T
}

func New[T any](confirmed T) *State[T] {
	return &State[T]{confirmed: confirmed}
}

func (s *State[T]) Confirmed() T {
	return s.confirmed
}

func (s *State[T]) Pending() (value T, ok bool) {
	if s.pending == nil {
		return value, false
	}
	return *s.pending, true
}

// Current - значение для отображения: ожидающее, если есть, иначе подтвержденное
func (s *State[T]) Current() T {
	if s.pending != nil {
		return *s.pending
	}
	return s.confirmed
}

func (s *State[T]) Propose(value T) {
	s.pending = &value
}

func (s *State[T]) Confirm() {
	if s.pending == nil {
		return
	}
	s.confirmed = *s.pending
	s.pending = nil
}

func (s *State[T]) Revert() {
	s.pending = nil
}

// Reconcile сохраняет ожидающее значение. При ошибке изменение отбрасывается
// и возвращается подтвержденное значение вместе с ошибкой.
func (s *State[T]) Reconcile(persist func(value T) error) (T, error) {
	if s.pending == nil {
		return s.confirmed, nil
	}
	if err := persist(*s.pending); err != nil {
		s.Revert()
		return s.confirmed, err
	}
	s.Confirm()
	return s.confirmed, nil
}
