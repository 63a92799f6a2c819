package dialog

type State string

const (
	StateIdle State = "idle"

	// Профиль
	StateAwaitDepartment State = "await_department"

	// Ручная правка счётчиков: сначала attended, потом total
	StateEditAttended State = "edit_attended"
	StateEditTotal    State = "edit_total"

	// Добавление предмета вручную
	StateAwaitSubjectName State = "await_subject_name"

	// Ожидание файла с расписанием (.xlsx или .json)
	StateAwaitTimetable State = "await_timetable"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
