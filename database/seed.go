package database

import (
	"context"

	"github.com/p-miano/portfolio-api/models"
	"github.com/rs/zerolog/log"
)

// Reference rows created by SeedReferenceData. Names are already in their
// stored (title-cased) form. Seeded rows carry no user associations; a user
// picks them up by creating the same name.
var (
	SeedCategories = []string{"Web", "Mobile", "Desktop", "Api"}

	SeedTechnologies = map[string][]string{
		"Programming Languages": {"C#", "Java"},
		"Frameworks":            {"Asp.net Core", "React"},
		"Tools":                 {},
	}
)

// SeedReferenceData inserts the reference categories, groups and
// technologies that are missing. Running it twice is a no-op.
func (d Database) SeedReferenceData(ctx context.Context) error {
	return d.Transaction(ctx, func(uow Database) error {
		created := 0

		for _, name := range SeedCategories {
			existing, err := uow.CategoryRepo().FindByName(ctx, name)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			if err := uow.CategoryRepo().Add(ctx, &models.Category{Name: name}); err != nil {
				return err
			}
			created++
		}

		for groupName, technologies := range SeedTechnologies {
			group, err := uow.TechnologyGroupRepo().FindByName(ctx, groupName)
			if err != nil {
				return err
			}
			if group == nil {
				group = &models.TechnologyGroup{Name: groupName}
				if err := uow.TechnologyGroupRepo().Add(ctx, group); err != nil {
					return err
				}
				created++
			}

			for _, name := range technologies {
				existing, err := uow.TechnologyRepo().FindByNameInGroup(ctx, name, group.ID)
				if err != nil {
					return err
				}
				if existing != nil {
					continue
				}
				technology := &models.Technology{Name: name, TechnologyGroupID: group.ID}
				if err := uow.TechnologyRepo().Add(ctx, technology); err != nil {
					return err
				}
				created++
			}
		}

		log.Info().Int("created", created).Msg("reference data seeded")
		return nil
	})
}
