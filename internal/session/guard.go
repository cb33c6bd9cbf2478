package session

import "github.com/yama-admin/video-console-go/internal/models"

// RequireSession gates access to the authenticated surface. It re-checks
// the store after open (the stored value may have been purged during
// hydration) and permits access only when a session with a non-empty
// access token exists. There is no fallback credential; absence fails
// closed and the caller redirects to login.
func RequireSession(s *Store) (models.UserDetails, error) {
	details, err := s.Current()
	if err != nil {
		return models.UserDetails{}, err
	}
	if details.AccessToken == "" {
		return models.UserDetails{}, ErrNoSession
	}
	return details, nil
}
