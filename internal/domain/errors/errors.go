package errors

import "errors"

var (
	ErrUserNotFound       = errors.New("пользователь не найден")
	ErrInvalidCredentials = errors.New("неверные учетные данные")
	ErrEmailTaken         = errors.New("email уже используется")
	ErrValidationFailed   = errors.New("ошибка валидации")
	ErrInvalidID          = errors.New("некорректный идентификатор")
	ErrTaskNotFound       = errors.New("задача не найдена или нет доступа")
	ErrStorageUnavailable = errors.New("хранилище временно недоступно")
	ErrInternalServer     = errors.New("внутренняя ошибка сервера")
	ErrBadRequest         = errors.New("неверный запрос")
	ErrUnauthorized       = errors.New("нет доступа")
	ErrInvalidToken       = errors.New("недействительный токен")

	ErrInvalidName     = errors.New("некорректное имя пользователя")
	ErrInvalidEmail    = errors.New("некорректный email")
	ErrInvalidPassword = errors.New("некорректный пароль")
	ErrEmptyTaskText   = errors.New("текст задачи не может быть пустым")
	ErrInvalidText     = errors.New("некорректный текст задачи")
	ErrInvalidPriority = errors.New("недопустимый приоритет задачи")
	ErrInvalidCategory = errors.New("недопустимая категория задачи")

	ErrInvalidGzipRequest    = errors.New("некорректное gzip-тело запроса")
	ErrGzipCompressionFailed = errors.New("ошибка сжатия ответа")
	ErrTooManyRequests       = errors.New("слишком много запросов")

	ErrConfigFileReadFailed = errors.New("не удалось прочитать файл конфигурации")
	ErrConfigParseFailed    = errors.New("не удалось разобрать файл конфигурации")
	ErrConfigInvalidFormat  = errors.New("некорректное значение конфигурации")
)
