// filepath: internal/store/seed.go
package store

import (
	"fmt"

	"soundvault/internal/logging"
	"soundvault/internal/models"
)

// DefaultAdminUsername is the seeded administrator account name.
const DefaultAdminUsername = "admin"

// Default catalog data populated into every fresh store.
var (
	defaultGenres = []models.InsertGenre{
		{Name: "Cinematic"},
		{Name: "Electronic"},
		{Name: "Ambient"},
		{Name: "Corporate"},
		{Name: "Orchestral"},
	}

	defaultMoods = []models.InsertMood{
		{Name: "Uplifting"},
		{Name: "Dramatic"},
		{Name: "Peaceful"},
		{Name: "Energetic"},
		{Name: "Melancholic"},
		{Name: "Motivational"},
		{Name: "Suspenseful"},
		{Name: "Inspirational"},
	}
)

// adminPromoter is implemented by backends that can flip the admin flag on
// an existing user. CreateUser always defaults isAdmin to false, so seeding
// promotes the admin account as a second step.
type adminPromoter interface {
	setUserAdmin(id int64, isAdmin bool) error
}

// seed populates a fresh store with the default genres, moods, and the
// admin user. It does not de-duplicate against pre-existing data; callers
// decide when a store counts as fresh.
func seed(s Store, promoter adminPromoter, adminPassword string) error {
	for _, g := range defaultGenres {
		if _, err := s.CreateGenre(g); err != nil {
			return fmt.Errorf("seed genre %q: %w", g.Name, err)
		}
	}
	for _, m := range defaultMoods {
		if _, err := s.CreateMood(m); err != nil {
			return fmt.Errorf("seed mood %q: %w", m.Name, err)
		}
	}

	admin, err := s.CreateUser(models.InsertUser{
		Username: DefaultAdminUsername,
		Password: adminPassword,
	})
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	if err := promoter.setUserAdmin(admin.ID, true); err != nil {
		return fmt.Errorf("promote admin user: %w", err)
	}

	logging.Log.Infof("Seeded catalog defaults: %d genres, %d moods, admin user %q",
		len(defaultGenres), len(defaultMoods), DefaultAdminUsername)
	return nil
}
