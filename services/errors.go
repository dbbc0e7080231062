package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed   = errors.New("validation failed")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrSignupNameRequired = errors.New("signup name is required")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidSkill       = errors.New("skill must be between 1 and 4")
	ErrSameDate           = errors.New("source and target dates must differ")
	ErrNotEnoughEntrants  = errors.New("need at least 2 checked-in players")
	ErrInvalidTarget      = errors.New("target type must be points or time with a positive value")
	ErrNoCourts           = errors.New("at least one court is required")
	ErrDuplicateEntrants  = errors.New("checked-in players must have distinct names")

	// Ошибки состояния
	ErrSignupClosed        = errors.New("signups are closed for this date")
	ErrTournamentNotActive = errors.New("tournament is already completed")

	// Ошибки конфликтов
	ErrActiveTournamentExists = errors.New("another tournament is still active")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials = errors.New("invalid password")

	// Ошибки, специфичные для сущностей
	ErrSignupNotFound     = errors.New("signup not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrNoActiveTournament = errors.New("no tournament is running")
)
