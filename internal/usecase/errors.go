package usecase

import "errors"

var (
	// ErrForbidden: caller bukan pemilik resource dan bukan admin.
	ErrForbidden = errors.New("forbidden: you can only access your own bookings")

	// ErrInvalidCredentials sengaja tidak membedakan email salah vs
	// password salah.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
