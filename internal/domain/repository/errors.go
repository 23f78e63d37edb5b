package repository

import "errors"

var (
	// ErrDuplicateRegistration означает, что у участника уже есть регистрация
	// на тестовую часть этого соревнования (unique constraint на
	// (competition_id, user_id) в quiz_registrations).
	ErrDuplicateRegistration = errors.New("quiz registration already exists for this participant")

	// ErrAlreadySolved означает, что задание уже засчитано этой команде
	// (unique constraint на (competition_id, team_id, challenge_id) в challenge_solves).
	ErrAlreadySolved = errors.New("challenge already counted for this team")
)
