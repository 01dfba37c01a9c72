package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/utils"
)

// Film sanitises the film's text fields in place and checks its constraints.
// Catalog references are checked by the film service.
func Film(film *models.Film) error {
	film.Name = SanitizeText(film.Name)
	film.Description = SanitizeText(film.Description)

	if utils.IsBlank(film.Name) {
		return errors.Validation("film name can't be empty")
	}
	if utils.RuneLen(film.Description) > models.MaxDescriptionLength {
		return errors.Validation(fmt.Sprintf("film description can't be longer than %d characters", models.MaxDescriptionLength))
	}
	if film.ReleaseDate.IsZero() || !film.ReleaseDate.After(models.EarliestReleaseDate.Time) {
		return errors.Validation("film release date must be after " + models.EarliestReleaseDate.String())
	}
	if film.Duration <= 0 {
		return errors.Validation("film duration must be positive")
	}
	return nil
}

// User sanitises the user in place, defaults a blank name to the login and
// checks the remaining constraints against today's date.
func User(user *models.User, now time.Time) error {
	user.Email = SanitizeString(user.Email)
	user.Name = SanitizeText(user.Name)

	if utils.IsBlank(user.Email) || !strings.Contains(user.Email, "@") {
		return errors.Validation("user email can't be empty and should contain @")
	}
	// checked before sanitising, which trims surrounding spaces
	if utils.IsBlank(user.Login) || utils.HasWhitespace(user.Login) {
		return errors.Validation("user login can't be empty or contain spaces")
	}
	user.Login = SanitizeString(user.Login)
	if utils.IsBlank(user.Login) {
		return errors.Validation("user login can't be empty or contain spaces")
	}
	if user.Birthday.IsZero() || user.Birthday.After(models.DateOf(now).Time) {
		return errors.Validation("user birthday can't be empty or in the future")
	}
	if utils.IsBlank(user.Name) {
		user.Name = user.Login
	}
	return nil
}
